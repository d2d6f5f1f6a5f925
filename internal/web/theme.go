package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/marsadembi/portfolio/internal/settings"
)

const (
	prefsSession      = "pf-prefs"
	themeCookieMaxAge = 86400 * 365
)

// cookieStore is a settings.Store backed by a signed session cookie.
// Writes are sent with the response.
type cookieStore struct {
	w       http.ResponseWriter
	r       *http.Request
	session *sessions.Session
}

func (s *Server) prefsStore(w http.ResponseWriter, r *http.Request) *cookieStore {
	session, err := s.sessions.Get(r, prefsSession)
	if err != nil {
		// Tampered or stale cookies decode to a fresh session.
		slog.DebugContext(r.Context(), "discarding preferences cookie", "error", err)
	}
	return &cookieStore{w: w, r: r, session: session}
}

func (c *cookieStore) Get(key string) (string, bool) {
	v, ok := c.session.Values[key].(string)
	return v, ok
}

func (c *cookieStore) Set(key, value string) error {
	c.session.Values[key] = value
	return c.session.Save(c.r, c.w)
}

// theme returns the request's theme preference.
func (s *Server) theme(w http.ResponseWriter, r *http.Request) settings.Theme {
	return settings.Load(s.prefsStore(w, r)).Theme()
}

// handleThemePost toggles the theme cookie and returns to the page.
func (s *Server) handleThemePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	prefs := settings.Load(s.prefsStore(w, r))
	if _, err := prefs.Toggle(); err != nil {
		slog.ErrorContext(r.Context(), "saving theme", "error", err)
		http.Error(w, "Error saving theme", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
