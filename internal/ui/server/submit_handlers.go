package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Its-donkey/BuddyBreak/internal/metrics"
	"github.com/Its-donkey/BuddyBreak/internal/waitlist"
	"github.com/Its-donkey/BuddyBreak/logging"
)

const maxAPIBody = 4 * 1024

// submit runs one controller round for email and reports the terminal state.
func (s *server) submit(ctx context.Context, email, source string, newID func() string) (waitlist.FormState, error) {
	opts := []waitlist.Option{
		waitlist.WithSource(source),
		waitlist.WithClock(s.now),
	}
	if newID != nil {
		opts = append(opts, waitlist.WithIDGenerator(newID))
	}
	controller := waitlist.NewController(s.sink, opts...)
	controller.OnEmailChange(email)

	ctx, cancel := context.WithTimeout(ctx, s.submitTimeout)
	defer cancel()
	err := controller.OnSubmit(ctx)

	state := controller.State()
	s.metrics.ObserveSubmission(outcomeOf(state, err), source)

	log := s.logger.WithRequestID(logging.RequestIDFromContext(ctx)).
		WithCategory("waitlist").
		WithField("source", source)
	switch {
	case err == nil:
		// The address itself is never logged.
		log.WithField("duplicate", isDuplicateState(state)).Info("Waitlist signup accepted")
	case waitlist.IsValidation(err):
		log.Warn("Waitlist signup rejected")
	default:
		log.Error("Waitlist signup failed", err)
	}
	return state, err
}

func (s *server) handleWaitlistForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	email := r.PostForm.Get("email")

	state, err := s.submit(r.Context(), email, waitlist.SourceForm, nil)
	if err != nil {
		status := http.StatusBadGateway
		if waitlist.IsValidation(err) {
			status = http.StatusUnprocessableEntity
		}
		s.renderHome(w, r, state, status)
		return
	}

	joined := joinedRegistered
	if isDuplicateState(state) {
		joined = joinedDuplicate
	}
	http.Redirect(w, r, "/?joined="+joined+"#waitlist", http.StatusSeeOther)
}

func (s *server) handleWaitlistAPI(w http.ResponseWriter, r *http.Request) {
	var req waitlist.APIRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, maxAPIBody+1))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, waitlist.APIResponse{Error: "could not read request"})
		return
	}
	if len(body) > maxAPIBody {
		writeJSON(w, http.StatusRequestEntityTooLarge, waitlist.APIResponse{Error: "request too large"})
		return
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, waitlist.APIResponse{Error: "invalid JSON body"})
		return
	}

	var id string
	newID := func() string {
		id = uuid.NewString()
		return id
	}
	state, err := s.submit(r.Context(), req.Email, apiSource(req.Source), newID)

	var validation *waitlist.ValidationError
	switch {
	case err == nil && isDuplicateState(state):
		writeJSON(w, http.StatusOK, waitlist.APIResponse{Status: waitlist.StatusDuplicate})
	case err == nil:
		writeJSON(w, http.StatusCreated, waitlist.APIResponse{Status: waitlist.StatusRegistered, ID: id})
	case errors.As(err, &validation):
		reason := validation.Reason
		if reason == "" {
			reason = "invalid email address"
		}
		writeJSON(w, http.StatusBadRequest, waitlist.APIResponse{Error: reason})
	default:
		writeJSON(w, http.StatusBadGateway, waitlist.APIResponse{Error: "signup could not be recorded"})
	}
}

func apiSource(requested string) string {
	switch strings.ToLower(strings.TrimSpace(requested)) {
	case waitlist.SourceWASM:
		return waitlist.SourceWASM
	default:
		return waitlist.SourceAPI
	}
}

func isDuplicateState(state waitlist.FormState) bool {
	submitted, ok := state.(waitlist.Submitted)
	return ok && submitted.AlreadyRegistered
}

func outcomeOf(state waitlist.FormState, err error) string {
	switch {
	case err == nil && isDuplicateState(state):
		return metrics.OutcomeDuplicate
	case err == nil:
		return metrics.OutcomeRegistered
	case waitlist.IsValidation(err):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeFailed
	}
}
