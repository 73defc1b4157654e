// Package scroll derives the header's "scrolled" flag from the viewport offset.
package scroll

import (
	"context"
	"sync"
)

// Threshold is the offset, in layout units, past which the page counts as scrolled.
const Threshold = 50

// IsScrolled reports whether offset is past Threshold.
func IsScrolled(offset float64) bool {
	return offset > Threshold
}

// Source delivers scroll offsets. Subscribe registers handler and returns the
// function that deregisters it.
type Source interface {
	Subscribe(handler func(offset float64)) (cancel func())
}

// Observer tracks the scrolled flag for one page view.
type Observer struct {
	scrolled bool
	onChange func(scrolled bool)
	sub      *Subscription
}

// NewObserver returns an observer in the unscrolled state. onChange, when set, runs
// each time the flag flips.
func NewObserver(onChange func(scrolled bool)) *Observer {
	return &Observer{onChange: onChange}
}

// Scrolled returns the flag for the most recent offset.
func (o *Observer) Scrolled() bool {
	return o.scrolled
}

// OnScroll recomputes the flag from offset.
func (o *Observer) OnScroll(offset float64) {
	next := IsScrolled(offset)
	if next == o.scrolled {
		return
	}
	o.scrolled = next
	if o.onChange != nil {
		o.onChange(next)
	}
}

// Attach registers the observer with src. While a subscription is live, further
// calls return it instead of registering again.
func (o *Observer) Attach(src Source) *Subscription {
	if o.sub != nil && !o.sub.Released() {
		return o.sub
	}
	sub := &Subscription{}
	sub.cancel = src.Subscribe(o.OnScroll)
	o.sub = sub
	return sub
}

// AttachContext is Attach plus a release when ctx is done. Attaching a live
// subscription to another context adds a trigger; the first done context wins.
func (o *Observer) AttachContext(ctx context.Context, src Source) *Subscription {
	sub := o.Attach(src)
	stop := context.AfterFunc(ctx, sub.Release)
	sub.mu.Lock()
	if sub.released {
		sub.mu.Unlock()
		stop()
		return sub
	}
	sub.stops = append(sub.stops, stop)
	sub.mu.Unlock()
	return sub
}

// Subscription is the teardown handle for an attached observer.
type Subscription struct {
	mu       sync.Mutex
	cancel   func()
	stops    []func() bool
	released bool
}

// Release deregisters the scroll handler. It is safe to call more than once.
func (s *Subscription) Release() {
	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		return
	}
	s.released = true
	cancel, stops := s.cancel, s.stops
	s.cancel, s.stops = nil, nil
	s.mu.Unlock()

	for _, stop := range stops {
		stop()
	}
	if cancel != nil {
		cancel()
	}
}

// Released reports whether Release has run.
func (s *Subscription) Released() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released
}
