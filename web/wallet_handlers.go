package web

import (
	"errors"
	"net/http"
	"strconv"

	"redblack/models"
	"redblack/service"
)

const recentTransactionLimit = 10

type walletPage struct {
	basePage
	Transactions []*models.Transaction
}

func (h *Handler) showWallet(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	transactions, err := h.wallet.RecentTransactions(r.Context(), user.ID, recentTransactionLimit)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.templates.Render(w, "wallet", walletPage{
		basePage:     h.base(w, r, "wallet"),
		Transactions: transactions,
	})
}

func (h *Handler) transact(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	amount, err := strconv.ParseInt(r.FormValue("amount"), 10, 64)
	if err != nil {
		h.redirectFlash(w, r, "/wallet", "Enter a valid amount")
		return
	}

	switch r.FormValue("type") {
	case "deposit":
		err = h.wallet.Deposit(r.Context(), user.ID, amount)
	case "withdraw":
		err = h.wallet.Withdraw(r.Context(), user.ID, amount)
	default:
		h.redirectFlash(w, r, "/wallet", "Unknown action")
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientBalance):
			h.redirectFlash(w, r, "/wallet", "Low Balance")
		case errors.Is(err, service.ErrInvalidAmount):
			h.redirectFlash(w, r, "/wallet", "Enter a valid amount")
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	http.Redirect(w, r, "/wallet", http.StatusSeeOther)
}
