package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter registers all routes on a chi router
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.healthz)

	// Public auth routes
	r.Get("/login", h.loginPage)
	r.Post("/login", h.loginSubmit)
	r.Get("/register", h.registerPage)
	r.Post("/register", h.registerSubmit)
	r.Get("/logout", h.logout)

	// Signed-in routes
	r.Group(func(r chi.Router) {
		r.Use(h.requireUser)

		r.Get("/", h.dashboard)
		r.Post("/pay_sub", h.paySub)
		r.Get("/create_game", h.createGameForm)
		r.Post("/create_game", h.createGameSubmit)
		r.Get("/play/{id}", h.play)
		r.Post("/resolve_game/{id}", h.resolveGame)
		r.Get("/wallet", h.showWallet)
		r.Post("/transact", h.transact)

		// Admin-only
		r.Group(func(r chi.Router) {
			r.Use(h.requireAdmin)

			r.Get("/admin", h.adminPanel)
			r.Post("/admin_withdraw", h.adminWithdraw)
		})
	})

	return r
}
