package web

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/gorilla/sessions"
)

const sessionName = "redblack_session"

// SessionManager wraps the cookie store. The session carries only the user id
// and pending flash messages.
type SessionManager struct {
	store *sessions.CookieStore
}

// NewSessionManager creates a cookie-backed session manager
func NewSessionManager(secret []byte) *SessionManager {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: store}
}

func (m *SessionManager) session(r *http.Request) *sessions.Session {
	// Get never fails for a cookie store with a fresh session fallback
	s, _ := m.store.Get(r, sessionName)
	return s
}

// SignIn binds the session to a user id
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, userID int64) error {
	s := m.session(r)
	s.Values["user_id"] = userID
	return s.Save(r, w)
}

// SignOut clears the session
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) {
	s := m.session(r)
	s.Options.MaxAge = -1
	if err := s.Save(r, w); err != nil {
		log.WithError(err).Warn("Failed to clear session")
	}
}

// UserID returns the signed-in user id, if any
func (m *SessionManager) UserID(r *http.Request) (int64, bool) {
	s := m.session(r)
	id, ok := s.Values["user_id"].(int64)
	return id, ok
}

// Flash queues a one-shot message for the next rendered page
func (m *SessionManager) Flash(w http.ResponseWriter, r *http.Request, message string) {
	s := m.session(r)
	s.AddFlash(message)
	if err := s.Save(r, w); err != nil {
		log.WithError(err).Warn("Failed to save flash message")
	}
}

// PopFlashes drains and returns pending flash messages
func (m *SessionManager) PopFlashes(w http.ResponseWriter, r *http.Request) []string {
	s := m.session(r)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := s.Save(r, w); err != nil {
		log.WithError(err).Warn("Failed to save session after draining flashes")
	}

	messages := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}
