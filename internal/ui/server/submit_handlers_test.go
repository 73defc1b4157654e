package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Its-donkey/BuddyBreak/internal/signups"
	"github.com/Its-donkey/BuddyBreak/internal/ui/components"
	"github.com/Its-donkey/BuddyBreak/internal/waitlist"
)

func TestFormSubmitShowsConfirmation(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.postForm("a@b.com")
	require.Equal(t, http.StatusSeeOther, rr.Code)
	location := rr.Header().Get("Location")
	assert.Equal(t, "/?joined=1#waitlist", location)

	doc := document(t, env.get(location))
	assert.Equal(t, "submitted", doc.Find("#"+components.WaitlistPanelID).AttrOr("data-state", ""))
	assert.Zero(t, doc.Find("input#"+components.EmailInputID).Length())
	assert.Contains(t, doc.Find(".waitlist-confirmation").Text(), components.ConfirmationTitle)
}

func TestStubSinkAcceptsEmptyEmail(t *testing.T) {
	env := newTestEnv(t, waitlist.StubSink{})

	rr := env.postForm("")
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/?joined=1#waitlist", rr.Header().Get("Location"))
}

func TestFormSubmitValidationKeepsInput(t *testing.T) {
	store := signups.NewMemoryStore()
	env := newTestEnv(t, store)

	rr := env.postForm("not-an-email")
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	doc := document(t, rr)
	assert.Equal(t, "editing", doc.Find("#"+components.WaitlistPanelID).AttrOr("data-state", ""))
	assert.Equal(t, "not-an-email", doc.Find("input#"+components.EmailInputID).AttrOr("value", ""))
	assert.Equal(t, waitlist.Notice(&waitlist.ValidationError{}), doc.Find(".waitlist-notice").Text())
	assert.Empty(t, store.List())
	assert.NotContains(t, env.logs.String(), "not-an-email")
}

func TestFormSubmitSinkFailureRendersNotice(t *testing.T) {
	sink := waitlist.SinkFunc(func(context.Context, waitlist.Signup) error {
		return &waitlist.SubmissionError{Err: errors.New("database unavailable")}
	})
	env := newTestEnv(t, sink)

	rr := env.postForm("a@b.com")
	require.Equal(t, http.StatusBadGateway, rr.Code)
	doc := document(t, rr)
	assert.Equal(t, "a@b.com", doc.Find("input#"+components.EmailInputID).AttrOr("value", ""))
	assert.Equal(t, waitlist.Notice(&waitlist.SubmissionError{}), doc.Find(".waitlist-notice").Text())
	assert.Contains(t, env.logs.String(), "database unavailable")
}

func TestFormSubmitDuplicateIsSoftSuccess(t *testing.T) {
	store := signups.NewMemoryStore()
	env := newTestEnv(t, store)

	require.Equal(t, "/?joined=1#waitlist", env.postForm("a@b.com").Header().Get("Location"))

	rr := env.postForm("A@B.com")
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/?joined=duplicate#waitlist", rr.Header().Get("Location"))
	assert.Len(t, store.List(), 1)
}

func TestFormSubmitRecordsSourceAndTimestamp(t *testing.T) {
	store := signups.NewMemoryStore()
	env := newTestEnv(t, store)

	env.postForm("a@b.com")

	list := store.List()
	require.Len(t, list, 1)
	assert.Equal(t, waitlist.SourceForm, list[0].Source)
	assert.Equal(t, 2026, list[0].RegisteredAt.Year())
	assert.NotEmpty(t, list[0].ID)
}

func TestWaitlistGetRedirectsToForm(t *testing.T) {
	env := newTestEnv(t, nil)
	rr := env.get("/waitlist")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/#waitlist", rr.Header().Get("Location"))
}

func decodeAPI(t *testing.T, body []byte) waitlist.APIResponse {
	t.Helper()
	var resp waitlist.APIResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestAPIRegistersAndReportsDuplicates(t *testing.T) {
	store := signups.NewMemoryStore()
	env := newTestEnv(t, store)

	rr := env.postJSON(`{"email":"a@b.com","source":"wasm"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decodeAPI(t, rr.Body.Bytes())
	assert.Equal(t, waitlist.StatusRegistered, created.Status)
	require.NotEmpty(t, created.ID)

	list := store.List()
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, waitlist.SourceWASM, list[0].Source)

	rr = env.postJSON(`{"email":"a@b.com"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, waitlist.StatusDuplicate, decodeAPI(t, rr.Body.Bytes()).Status)
}

func TestAPIRejectsInvalidInput(t *testing.T) {
	env := newTestEnv(t, signups.NewMemoryStore())

	rr := env.postJSON(`{"email":"nope"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.NotEmpty(t, decodeAPI(t, rr.Body.Bytes()).Error)

	rr = env.postJSON(`{not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAPISinkFailure(t *testing.T) {
	sink := waitlist.SinkFunc(func(context.Context, waitlist.Signup) error {
		return &waitlist.SubmissionError{Err: errors.New("boom")}
	})
	env := newTestEnv(t, sink)

	rr := env.postJSON(`{"email":"a@b.com"}`)
	require.Equal(t, http.StatusBadGateway, rr.Code)
	assert.NotContains(t, rr.Body.String(), "boom")
}

func TestAPIRoundTripsThroughHTTPSink(t *testing.T) {
	store := signups.NewMemoryStore()
	env := newTestEnv(t, store)
	upstream := newLoopbackServer(t, env.handler)

	controller := waitlist.NewController(
		waitlist.HTTPSink{Endpoint: upstream.URL + "/api/waitlist", Client: upstream.Client()},
		waitlist.WithSource(waitlist.SourceWASM),
	)
	controller.OnEmailChange("a@b.com")
	require.NoError(t, controller.OnSubmit(context.Background()))
	assert.Equal(t, waitlist.Submitted{}, controller.State())

	again := waitlist.NewController(waitlist.HTTPSink{Endpoint: upstream.URL + "/api/waitlist", Client: upstream.Client()})
	again.OnEmailChange("a@b.com")
	require.NoError(t, again.OnSubmit(context.Background()))
	assert.Equal(t, waitlist.Submitted{AlreadyRegistered: true}, again.State())

	invalid := waitlist.NewController(waitlist.HTTPSink{Endpoint: upstream.URL + "/api/waitlist", Client: upstream.Client()})
	invalid.OnEmailChange("nope")
	err := invalid.OnSubmit(context.Background())
	require.Error(t, err)
	assert.True(t, waitlist.IsValidation(err))
	assert.Equal(t, "nope", invalid.Email())
}
