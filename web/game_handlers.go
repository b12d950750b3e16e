package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"redblack/models"
	"redblack/service"
)

// tierStakes maps the dashboard tab labels to stake values
var tierStakes = map[string]int64{
	"1k": 1000, "2k": 2000, "5k": 5000, "10k": 10000, "20k": 20000, "50k": 50000,
}

var tierOrder = []string{"1k", "2k", "5k", "10k", "20k", "50k"}

type dashboardPage struct {
	basePage
	Tier     string
	Tiers    []string
	Games    []*models.Game
	Creators map[int64]string
}

type createGamePage struct {
	basePage
	Stakes []int64
}

type playPage struct {
	basePage
	Game *models.Game
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	if !h.subscriptions.IsEntitled(user) {
		h.templates.Render(w, "paywall", h.base(w, r, "home"))
		return
	}

	tier := r.URL.Query().Get("tier")
	stake, ok := tierStakes[tier]
	if !ok {
		tier, stake = "1k", 1000
	}

	games, err := h.games.ListOpenGames(r.Context(), stake)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	// Resolve creator names for the cards
	creators := make(map[int64]string)
	for _, game := range games {
		if _, seen := creators[game.CreatorID]; seen {
			continue
		}
		creator, err := h.auth.GetUser(r.Context(), game.CreatorID)
		if err == nil && creator != nil {
			creators[game.CreatorID] = creator.Username
		}
	}

	h.templates.Render(w, "dashboard", dashboardPage{
		basePage: h.base(w, r, "home"),
		Tier:     tier,
		Tiers:    tierOrder,
		Games:    games,
		Creators: creators,
	})
}

func (h *Handler) paySub(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	err := h.subscriptions.PayAccessFee(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, service.ErrInsufficientFunds) {
			h.redirectFlash(w, r, "/wallet", "Insufficient Funds. Please Deposit.")
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) createGameForm(w http.ResponseWriter, r *http.Request) {
	if !h.subscriptions.IsEntitled(currentUser(r)) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.templates.Render(w, "create_game", createGamePage{
		basePage: h.base(w, r, "create"),
		Stakes:   models.StakeTiers,
	})
}

func (h *Handler) createGameSubmit(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	stake, err := strconv.ParseInt(r.FormValue("stake"), 10, 64)
	if err != nil {
		h.redirectFlash(w, r, "/create_game", "Pick a valid stake")
		return
	}
	choice := models.Choice(r.FormValue("choice"))
	hint := r.FormValue("hint")

	_, err = h.games.CreateGame(r.Context(), user.ID, stake, choice, hint)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotEntitled):
			http.Redirect(w, r, "/", http.StatusSeeOther)
		case errors.Is(err, service.ErrInsufficientBalance):
			h.redirectFlash(w, r, "/wallet", "Insufficient Balance")
		case errors.Is(err, service.ErrInvalidStake):
			h.redirectFlash(w, r, "/create_game", "Pick a valid stake")
		case errors.Is(err, service.ErrInvalidChoice):
			h.redirectFlash(w, r, "/create_game", "Pick Red or Black")
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) play(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	if !h.subscriptions.IsEntitled(user) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	gameID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	game, err := h.games.GetGame(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			h.redirectFlash(w, r, "/", "Game closed")
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !game.IsOpen() {
		h.redirectFlash(w, r, "/", "Game closed")
		return
	}
	if game.CreatorID == user.ID {
		h.redirectFlash(w, r, "/", "Cannot play your own game")
		return
	}

	h.templates.Render(w, "play", playPage{
		basePage: h.base(w, r, "home"),
		Game:     game,
	})
}

func (h *Handler) resolveGame(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	gameID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	guess := models.Choice(r.FormValue("guess"))

	result, err := h.games.JoinAndResolve(r.Context(), user.ID, gameID, guess)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientBalance):
			h.redirectFlash(w, r, "/wallet", "Insufficient Funds")
		case errors.Is(err, service.ErrSelfPlayForbidden):
			h.redirectFlash(w, r, "/", "Cannot play your own game")
		case errors.Is(err, service.ErrGameNotFound), errors.Is(err, service.ErrGameAlreadyClosed):
			h.redirectFlash(w, r, "/", "Game closed")
		case errors.Is(err, service.ErrInvalidChoice):
			h.redirectFlash(w, r, "/", "Pick Red or Black")
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	if result.WinnerID == user.ID {
		h.redirectFlash(w, r, "/", "You won "+FormatMoney(result.Payout)+"!")
	} else {
		h.redirectFlash(w, r, "/", "Wrong guess! The creator takes the pot.")
	}
}
