package scroll

import "sync"

// Feed is an in-process Source. Emit delivers an offset to every live handler in
// registration order.
type Feed struct {
	mu       sync.Mutex
	next     int
	handlers map[int]func(float64)
	order    []int
}

// NewFeed returns an empty Feed.
func NewFeed() *Feed {
	return &Feed{handlers: make(map[int]func(float64))}
}

// Subscribe implements Source.
func (f *Feed) Subscribe(handler func(offset float64)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.next
	f.next++
	f.handlers[id] = handler
	f.order = append(f.order, id)
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.handlers, id)
		for i, v := range f.order {
			if v == id {
				f.order = append(f.order[:i], f.order[i+1:]...)
				break
			}
		}
	}
}

// Emit delivers offset to the registered handlers.
func (f *Feed) Emit(offset float64) {
	f.mu.Lock()
	handlers := make([]func(float64), 0, len(f.order))
	for _, id := range f.order {
		handlers = append(handlers, f.handlers[id])
	}
	f.mu.Unlock()

	for _, h := range handlers {
		h(offset)
	}
}

// Len returns the number of live handlers.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.handlers)
}
