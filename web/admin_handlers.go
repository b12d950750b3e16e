package web

import (
	"errors"
	"net/http"

	"redblack/models"
	"redblack/service"
)

type adminPage struct {
	basePage
	Vault *models.Vault
	Users []*models.User
}

func (h *Handler) adminPanel(w http.ResponseWriter, r *http.Request) {
	vault, err := h.vault.Totals(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	users, err := h.vault.ListUsers(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.templates.Render(w, "admin", adminPage{
		basePage: h.base(w, r, "admin"),
		Vault:    vault,
		Users:    users,
	})
}

func (h *Handler) adminWithdraw(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	total, err := h.vault.Sweep(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			http.Error(w, "Access Denied", http.StatusForbidden)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.redirectFlash(w, r, "/wallet", "Swept "+FormatMoney(total)+" into your balance")
}
