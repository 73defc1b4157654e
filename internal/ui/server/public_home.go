package server

import (
	"net/http"
	"strings"

	"github.com/Its-donkey/BuddyBreak/internal/ui/components"
	"github.com/Its-donkey/BuddyBreak/internal/waitlist"
)

// Values of the joined query parameter set by the form redirect.
const (
	joinedRegistered = "1"
	joinedDuplicate  = "duplicate"
)

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	state := waitlist.InitialState()
	switch strings.TrimSpace(r.URL.Query().Get("joined")) {
	case joinedRegistered:
		state = waitlist.Submitted{}
	case joinedDuplicate:
		state = waitlist.Submitted{AlreadyRegistered: true}
	}
	s.renderHome(w, r, state, http.StatusOK)
}

func (s *server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet && !strings.HasPrefix(r.URL.Path, "/api/") {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.NotFound(w, r)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) renderHome(w http.ResponseWriter, r *http.Request, state waitlist.FormState, status int) {
	page := components.Page(components.PageData{
		SiteName:     s.siteName,
		CanonicalURL: s.absoluteURL(r, "/"),
		Form:         state,
		FormAction:   "/waitlist",
		WASM:         s.enableWASM,
		Year:         s.now().Year(),
	})
	html, err := components.RenderString(page)
	if err != nil {
		s.logger.Error("server", "render home", err, nil)
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(html))
}
