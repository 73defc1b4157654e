package waitlist

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Controller owns the form state for one page view. It is not safe for concurrent
// use; each page view (or HTTP request) builds its own.
type Controller struct {
	state  FormState
	sink   Sink
	source string
	now    func() time.Time
	newID  func() string
}

// Option customises a Controller.
type Option func(*Controller)

// WithSource sets the Source recorded on each signup.
func WithSource(source string) Option {
	return func(c *Controller) {
		c.source = source
	}
}

// WithClock overrides the registration timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIDGenerator overrides how signup IDs are minted.
func WithIDGenerator(newID func() string) Option {
	return func(c *Controller) {
		if newID != nil {
			c.newID = newID
		}
	}
}

// NewController returns a controller in the Editing state. A nil sink accepts every
// submission without recording it.
func NewController(sink Sink, opts ...Option) *Controller {
	if sink == nil {
		sink = StubSink{}
	}
	c := &Controller{
		state:  InitialState(),
		sink:   sink,
		source: SourceForm,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() FormState {
	return c.state
}

// Email returns the current input value, empty once submitted.
func (c *Controller) Email() string {
	return EmailOf(c.state)
}

// Submitted reports whether the form has reached its terminal state.
func (c *Controller) Submitted() bool {
	return IsSubmitted(c.state)
}

// OnEmailChange replaces the input value. It is ignored once submitted.
func (c *Controller) OnEmailChange(value string) {
	if _, ok := c.state.(Editing); !ok {
		return
	}
	c.state = Editing{Email: value}
}

// OnSubmit hands the current address to the sink. Success and duplicates move the
// form to Submitted; any other error keeps Editing with the typed value and an
// inline notice, and is returned to the caller. Submitting twice is a no-op.
func (c *Controller) OnSubmit(ctx context.Context) error {
	editing, ok := c.state.(Editing)
	if !ok {
		return nil
	}

	signup := Signup{
		ID:           c.newID(),
		Email:        editing.Email,
		Source:       c.source,
		RegisteredAt: c.now().UTC(),
	}
	err := c.sink.Register(ctx, signup)
	switch {
	case err == nil:
		c.state = Submitted{}
		return nil
	case IsDuplicate(err):
		c.state = Submitted{AlreadyRegistered: true}
		return nil
	default:
		// Keep edits made while the sink was busy.
		email := editing.Email
		if cur, ok := c.state.(Editing); ok {
			email = cur.Email
		}
		c.state = Editing{Email: email, Notice: Notice(err)}
		return err
	}
}
