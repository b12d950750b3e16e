package web

import (
	"errors"
	"net/http"

	"redblack/service"
)

type authPage struct {
	basePage
	Title      string
	ButtonText string
	LinkText   string
	LinkURL    string
	IsRegister bool
}

func (h *Handler) loginData(w http.ResponseWriter, r *http.Request) authPage {
	return authPage{
		basePage:   h.base(w, r, ""),
		Title:      "LOGIN",
		ButtonText: "ENTER",
		LinkText:   "New? Create Account",
		LinkURL:    "/register",
	}
}

func (h *Handler) registerData(w http.ResponseWriter, r *http.Request) authPage {
	return authPage{
		basePage:   h.base(w, r, ""),
		Title:      "JOIN US",
		ButtonText: "REGISTER",
		LinkText:   "Login",
		LinkURL:    "/login",
		IsRegister: true,
	}
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	h.templates.Render(w, "auth", h.loginData(w, r))
}

func (h *Handler) loginSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := h.auth.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.redirectFlash(w, r, "/login", "Invalid Login")
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := h.sessions.SignIn(w, r, user.ID); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) registerPage(w http.ResponseWriter, r *http.Request) {
	h.templates.Render(w, "auth", h.registerData(w, r))
}

func (h *Handler) registerSubmit(w http.ResponseWriter, r *http.Request) {
	_, err := h.auth.Register(r.Context(),
		r.FormValue("username"),
		r.FormValue("phone"),
		r.FormValue("country_code"),
		r.FormValue("password"),
		r.FormValue("admin_code"),
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWeakPassword):
			h.redirectFlash(w, r, "/register", "Weak Password! Use 1 Capital & 1 Special Char.")
		case errors.Is(err, service.ErrUsernameTaken):
			h.redirectFlash(w, r, "/register", "Username taken")
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.SignOut(w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
