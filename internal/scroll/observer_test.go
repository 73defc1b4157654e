package scroll

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsScrolledThreshold(t *testing.T) {
	cases := map[float64]bool{
		-10:   false,
		0:     false,
		49.9:  false,
		50:    false,
		50.01: true,
		51:    true,
		200:   true,
	}
	for offset, want := range cases {
		assert.Equal(t, want, IsScrolled(offset), "offset %v", offset)
	}
}

func TestObserverStartsUnscrolled(t *testing.T) {
	assert.False(t, NewObserver(nil).Scrolled())
}

func TestObserverReflectsLatestOffsetOnly(t *testing.T) {
	o := NewObserver(nil)
	steps := []struct {
		offset float64
		want   bool
	}{
		{100, true},
		{10, false},
		{200, true},
		{50, false},
		{51, true},
		{51, true},
		{0, false},
	}
	for _, step := range steps {
		o.OnScroll(step.offset)
		assert.Equal(t, step.want, o.Scrolled(), "after offset %v", step.offset)
	}
}

func TestObserverNotifiesOnFlipOnly(t *testing.T) {
	var changes []bool
	o := NewObserver(func(scrolled bool) { changes = append(changes, scrolled) })

	for _, offset := range []float64{0, 10, 60, 80, 200, 40, 0, 51} {
		o.OnScroll(offset)
	}
	assert.Equal(t, []bool{true, false, true}, changes)
}

func TestAttachRegistersOnce(t *testing.T) {
	feed := NewFeed()
	o := NewObserver(nil)

	first := o.Attach(feed)
	second := o.Attach(feed)
	assert.Same(t, first, second)
	assert.Equal(t, 1, feed.Len())

	feed.Emit(120)
	assert.True(t, o.Scrolled())
}

func TestReleaseStopsDeliveryAndIsIdempotent(t *testing.T) {
	feed := NewFeed()
	o := NewObserver(nil)
	sub := o.Attach(feed)

	sub.Release()
	sub.Release()
	assert.True(t, sub.Released())
	assert.Zero(t, feed.Len())

	feed.Emit(500)
	assert.False(t, o.Scrolled())
}

func TestAttachAfterReleaseRegistersAgain(t *testing.T) {
	feed := NewFeed()
	o := NewObserver(nil)
	first := o.Attach(feed)
	first.Release()

	second := o.Attach(feed)
	assert.NotSame(t, first, second)
	assert.Equal(t, 1, feed.Len())
}

func TestAttachContextReleasesOnCancel(t *testing.T) {
	feed := NewFeed()
	o := NewObserver(nil)
	ctx, cancel := context.WithCancel(context.Background())

	sub := o.AttachContext(ctx, feed)
	require.Equal(t, 1, feed.Len())

	cancel()
	require.Eventually(t, sub.Released, time.Second, 5*time.Millisecond)
	assert.Zero(t, feed.Len())
}

func TestAttachContextTwiceKeepsEveryTrigger(t *testing.T) {
	feed := NewFeed()
	o := NewObserver(nil)
	first, cancelFirst := context.WithCancel(context.Background())
	defer cancelFirst()
	second, cancelSecond := context.WithCancel(context.Background())
	defer cancelSecond()

	sub := o.AttachContext(first, feed)
	again := o.AttachContext(second, feed)
	require.Same(t, sub, again)
	require.Equal(t, 1, feed.Len())

	sub.mu.Lock()
	assert.Len(t, sub.stops, 2)
	sub.mu.Unlock()

	cancelSecond()
	require.Eventually(t, sub.Released, time.Second, 5*time.Millisecond)
	assert.Zero(t, feed.Len())

	sub.mu.Lock()
	assert.Empty(t, sub.stops)
	sub.mu.Unlock()
}

func TestObserversAreIndependent(t *testing.T) {
	feed := NewFeed()
	one := NewObserver(nil)
	two := NewObserver(nil)
	one.Attach(feed)
	subTwo := two.Attach(feed)

	feed.Emit(75)
	assert.True(t, one.Scrolled())
	assert.True(t, two.Scrolled())

	subTwo.Release()
	feed.Emit(0)
	assert.False(t, one.Scrolled())
	assert.True(t, two.Scrolled())
}
