// Package waitlist holds the signup form state machine and the sinks that record
// accepted addresses.
package waitlist

import (
	"context"
	"net/mail"
	"strings"
	"time"
)

// Source values recorded with each signup.
const (
	SourceForm = "form"
	SourceAPI  = "api"
	SourceWASM = "wasm"
)

// Signup is what a sink receives for one accepted submission.
type Signup struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Source       string    `json:"source"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// Sink durably records signups. Implementations return *ValidationError,
// *DuplicateError or *SubmissionError so the controller can pick the next state.
type Sink interface {
	Register(ctx context.Context, signup Signup) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, signup Signup) error

// Register calls f.
func (f SinkFunc) Register(ctx context.Context, signup Signup) error {
	return f(ctx, signup)
}

// StubSink accepts everything without recording it.
type StubSink struct{}

// Register always succeeds.
func (StubSink) Register(context.Context, Signup) error {
	return nil
}

// NormalizeEmail trims and lower-cases an address for storage and duplicate checks.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ValidateEmail performs the basic format check used by recording sinks.
func ValidateEmail(raw string) error {
	email := strings.TrimSpace(raw)
	if email == "" {
		return &ValidationError{Email: raw, Reason: "address is required"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return &ValidationError{Email: raw, Reason: "malformed address"}
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 || !strings.Contains(email[at+1:], ".") {
		return &ValidationError{Email: raw, Reason: "missing domain"}
	}
	return nil
}
