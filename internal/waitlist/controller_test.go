package waitlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	signups []Signup
	err     error
}

func (s *recordingSink) Register(_ context.Context, signup Signup) error {
	s.signups = append(s.signups, signup)
	return s.err
}

func TestNewControllerStartsEditing(t *testing.T) {
	c := NewController(nil)
	assert.Equal(t, Editing{}, c.State())
	assert.False(t, c.Submitted())
	assert.Empty(t, c.Email())
}

func TestOnEmailChangeReplacesValue(t *testing.T) {
	c := NewController(nil)
	for _, value := range []string{"a", "a@", "a@b.com", "", "  spaced  ", "not an email", "ünïcødé@例え.jp"} {
		c.OnEmailChange(value)
		assert.Equal(t, value, c.Email())
		assert.False(t, c.Submitted())
	}
}

func TestOnSubmitFromEditingAlwaysSubmits(t *testing.T) {
	for _, email := range []string{"a@b.com", "", "garbage"} {
		c := NewController(nil)
		c.OnEmailChange(email)

		require.NoError(t, c.OnSubmit(context.Background()))
		assert.True(t, c.Submitted(), "email %q", email)
		assert.Empty(t, c.Email())
		assert.Equal(t, Submitted{}, c.State())
	}
}

func TestOnSubmitIsNoopOnceSubmitted(t *testing.T) {
	sink := &recordingSink{}
	c := NewController(sink)
	c.OnEmailChange("a@b.com")
	require.NoError(t, c.OnSubmit(context.Background()))

	require.NoError(t, c.OnSubmit(context.Background()))
	assert.True(t, c.Submitted())
	assert.Len(t, sink.signups, 1)
}

func TestOnEmailChangeIgnoredOnceSubmitted(t *testing.T) {
	c := NewController(nil)
	require.NoError(t, c.OnSubmit(context.Background()))

	c.OnEmailChange("late@b.com")
	assert.True(t, c.Submitted())
	assert.Empty(t, c.Email())
}

func TestOnSubmitPassesSignupToSink(t *testing.T) {
	sink := &recordingSink{}
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	c := NewController(sink,
		WithSource(SourceAPI),
		WithClock(func() time.Time { return fixed }),
		WithIDGenerator(func() string { return "signup-1" }),
	)
	c.OnEmailChange("a@b.com")

	require.NoError(t, c.OnSubmit(context.Background()))
	require.Len(t, sink.signups, 1)
	assert.Equal(t, Signup{
		ID:           "signup-1",
		Email:        "a@b.com",
		Source:       SourceAPI,
		RegisteredAt: fixed.UTC(),
	}, sink.signups[0])
}

func TestOnSubmitFailureKeepsEditing(t *testing.T) {
	cases := map[string]error{
		"validation": &ValidationError{Email: "nope", Reason: "malformed address"},
		"submission": &SubmissionError{Err: errors.New("connection refused")},
		"other":      errors.New("boom"),
	}
	for name, sinkErr := range cases {
		t.Run(name, func(t *testing.T) {
			c := NewController(&recordingSink{err: sinkErr})
			c.OnEmailChange("nope")

			err := c.OnSubmit(context.Background())
			require.ErrorIs(t, err, sinkErr)
			assert.False(t, c.Submitted())
			assert.Equal(t, "nope", c.Email())

			editing, ok := c.State().(Editing)
			require.True(t, ok)
			assert.NotEmpty(t, editing.Notice)
		})
	}
}

func TestFailedSubmitKeepsEditsMadeWhilePending(t *testing.T) {
	var c *Controller
	sink := SinkFunc(func(_ context.Context, signup Signup) error {
		assert.Equal(t, "a@b.com", signup.Email)
		c.OnEmailChange("a@b.com.corrected")
		return &SubmissionError{Err: errors.New("timeout")}
	})
	c = NewController(sink)
	c.OnEmailChange("a@b.com")

	require.Error(t, c.OnSubmit(context.Background()))
	assert.False(t, c.Submitted())
	assert.Equal(t, "a@b.com.corrected", c.Email())
	editing, ok := c.State().(Editing)
	require.True(t, ok)
	assert.NotEmpty(t, editing.Notice)
}

func TestRetryAfterFailureCanSucceed(t *testing.T) {
	sink := &recordingSink{err: &SubmissionError{Err: errors.New("timeout")}}
	c := NewController(sink)
	c.OnEmailChange("a@b.com")
	require.Error(t, c.OnSubmit(context.Background()))

	sink.err = nil
	require.NoError(t, c.OnSubmit(context.Background()))
	assert.True(t, c.Submitted())
	assert.Len(t, sink.signups, 2)
}

func TestEmailChangeClearsNotice(t *testing.T) {
	c := NewController(&recordingSink{err: &ValidationError{Email: "x"}})
	c.OnEmailChange("x")
	require.Error(t, c.OnSubmit(context.Background()))

	c.OnEmailChange("x@b.com")
	assert.Equal(t, Editing{Email: "x@b.com"}, c.State())
}

func TestDuplicateIsSoftSuccess(t *testing.T) {
	c := NewController(&recordingSink{err: &DuplicateError{Email: "a@b.com"}})
	c.OnEmailChange("a@b.com")

	require.NoError(t, c.OnSubmit(context.Background()))
	assert.Equal(t, Submitted{AlreadyRegistered: true}, c.State())
	assert.Empty(t, c.Email())
}

func TestControllersDoNotShareState(t *testing.T) {
	one := NewController(nil)
	two := NewController(nil)
	one.OnEmailChange("one@b.com")
	require.NoError(t, one.OnSubmit(context.Background()))

	assert.False(t, two.Submitted())
	two.OnEmailChange("two@b.com")
	assert.Equal(t, "two@b.com", two.Email())
}
