package waitlist

// FormState is either Editing or Submitted.
type FormState interface {
	formState()
}

// Editing is the initial state: the visitor is typing an address. Notice holds the
// message from the last failed submission, if any.
type Editing struct {
	Email  string
	Notice string
}

// Submitted is terminal for the page view. It carries no address.
type Submitted struct {
	AlreadyRegistered bool
}

func (Editing) formState()   {}
func (Submitted) formState() {}

// InitialState is the state a freshly mounted form starts in.
func InitialState() FormState {
	return Editing{}
}

// IsSubmitted reports whether s is the terminal state.
func IsSubmitted(s FormState) bool {
	_, ok := s.(Submitted)
	return ok
}

// EmailOf returns the address held by s, or "" once submitted.
func EmailOf(s FormState) string {
	if e, ok := s.(Editing); ok {
		return e.Email
	}
	return ""
}
