package web

import (
	"context"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"redblack/models"
	"redblack/service"
)

// Handler carries the services and rendering machinery for all routes
type Handler struct {
	auth          service.AuthService
	wallet        service.WalletService
	subscriptions service.SubscriptionService
	games         service.GameService
	vault         service.VaultService
	sessions      *SessionManager
	templates     *Templates
}

// NewHandler creates the web handler
func NewHandler(
	auth service.AuthService,
	wallet service.WalletService,
	subscriptions service.SubscriptionService,
	games service.GameService,
	vault service.VaultService,
	sessions *SessionManager,
	templates *Templates,
) *Handler {
	return &Handler{
		auth:          auth,
		wallet:        wallet,
		subscriptions: subscriptions,
		games:         games,
		vault:         vault,
		sessions:      sessions,
		templates:     templates,
	}
}

type contextKey string

const userContextKey contextKey = "user"

// currentUser returns the signed-in user placed on the context by requireUser
func currentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(userContextKey).(*models.User)
	return user
}

// requireUser gates a route behind a signed-in session. The loaded user is
// attached to the request context so handlers read it once.
func (h *Handler) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := h.sessions.UserID(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		user, err := h.auth.GetUser(r.Context(), userID)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				// Stale session for a user that no longer resolves
				h.sessions.SignOut(w, r)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			log.WithError(err).WithField("userID", userID).Error("Failed to load session user")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin gates admin routes. Non-admins get a 403, not a redirect.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)
		if user == nil || !user.IsAdmin {
			http.Error(w, "Access Denied", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// redirectFlash queues a message and redirects
func (h *Handler) redirectFlash(w http.ResponseWriter, r *http.Request, target, message string) {
	h.sessions.Flash(w, r, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// base builds the common page fields
func (h *Handler) base(w http.ResponseWriter, r *http.Request, active string) basePage {
	return basePage{
		User:    currentUser(r),
		Flashes: h.sessions.PopFlashes(w, r),
		Active:  active,
	}
}

// healthz is the liveness probe
func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
