package waitlist

import (
	"errors"
	"fmt"
)

// ValidationError reports an address the sink refused to record. The form keeps the
// entered text so the visitor can correct it.
type ValidationError struct {
	Email  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid email %q", e.Email)
	}
	return fmt.Sprintf("invalid email %q: %s", e.Email, e.Reason)
}

// SubmissionError wraps a transport or storage failure from the sink.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	if e.Err == nil {
		return "submission failed"
	}
	return "submission failed: " + e.Err.Error()
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// DuplicateError reports an address that is already on the waitlist. Callers treat
// it as a soft success.
type DuplicateError struct {
	Email string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s is already on the waitlist", e.Email)
}

// IsDuplicate reports whether err carries a DuplicateError.
func IsDuplicate(err error) bool {
	var dup *DuplicateError
	return errors.As(err, &dup)
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// Notice returns the inline message shown under the form for a failed submission.
func Notice(err error) string {
	if err == nil {
		return ""
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return "Cette adresse email ne semble pas valide. Vérifiez-la et réessayez."
	}
	return "L'inscription n'a pas pu être enregistrée. Merci de réessayer dans un instant."
}
