package events

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// RegisterAuditLogger subscribes a structured-log audit trail to every event
// type the system emits.
func RegisterAuditLogger(bus *Bus) {
	bus.Subscribe(EventTypeUserRegistered, func(ctx context.Context, event Event) {
		e := event.(UserRegisteredEvent)
		log.WithFields(log.Fields{
			"userID":         e.UserID,
			"username":       e.Username,
			"isAdmin":        e.IsAdmin,
			"initialBalance": e.InitialBalance,
		}).Info("User registered")
	})

	bus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, event Event) {
		e := event.(BalanceChangeEvent)
		log.WithFields(log.Fields{
			"userID":     e.UserID,
			"kind":       e.Kind,
			"amount":     e.Amount,
			"newBalance": e.NewBalance,
		}).Info("Wallet transaction processed")
	})

	bus.Subscribe(EventTypeGameCreated, func(ctx context.Context, event Event) {
		e := event.(GameCreatedEvent)
		log.WithFields(log.Fields{
			"gameID":    e.GameID,
			"creatorID": e.CreatorID,
			"stake":     e.Stake,
		}).Info("Game created")
	})

	bus.Subscribe(EventTypeGameResolved, func(ctx context.Context, event Event) {
		e := event.(GameResolvedEvent)
		log.WithFields(log.Fields{
			"gameID":       e.GameID,
			"challengerID": e.ChallengerID,
			"winnerID":     e.WinnerID,
			"loserID":      e.LoserID,
			"stake":        e.Stake,
			"payout":       e.Payout,
			"commission":   e.Commission,
		}).Info("Game resolved")
	})

	bus.Subscribe(EventTypeAccessFeePaid, func(ctx context.Context, event Event) {
		e := event.(AccessFeePaidEvent)
		log.WithFields(log.Fields{
			"userID": e.UserID,
			"fee":    e.Fee,
		}).Info("Access fee paid")
	})

	bus.Subscribe(EventTypeVaultSwept, func(ctx context.Context, event Event) {
		e := event.(VaultSweptEvent)
		log.WithFields(log.Fields{
			"adminID": e.AdminID,
			"amount":  e.Amount,
		}).Info("Vault swept")
	})
}
