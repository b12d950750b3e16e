package events

import (
	"context"
	"sync"

	"redblack/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeUserRegistered EventType = "user_registered"
	EventTypeBalanceChange  EventType = "balance_change"
	EventTypeGameCreated    EventType = "game_created"
	EventTypeGameResolved   EventType = "game_resolved"
	EventTypeAccessFeePaid  EventType = "access_fee_paid"
	EventTypeVaultSwept     EventType = "vault_swept"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// UserRegisteredEvent represents a new user registration
type UserRegisteredEvent struct {
	UserID         int64
	Username       string
	IsAdmin        bool
	InitialBalance int64
}

func (e UserRegisteredEvent) Type() EventType {
	return EventTypeUserRegistered
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	UserID     int64
	Kind       models.TransactionKind
	Amount     int64
	NewBalance int64
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// GameCreatedEvent represents a game that was opened
type GameCreatedEvent struct {
	GameID    int64
	CreatorID int64
	Stake     int64
}

func (e GameCreatedEvent) Type() EventType {
	return EventTypeGameCreated
}

// GameResolvedEvent represents a game that was settled
type GameResolvedEvent struct {
	GameID       int64
	ChallengerID int64
	WinnerID     int64
	LoserID      int64
	Stake        int64
	Payout       int64
	Commission   int64
}

func (e GameResolvedEvent) Type() EventType {
	return EventTypeGameResolved
}

// AccessFeePaidEvent represents a paid access window
type AccessFeePaidEvent struct {
	UserID int64
	Fee    int64
}

func (e AccessFeePaidEvent) Type() EventType {
	return EventTypeAccessFeePaid
}

// VaultSweptEvent represents an admin withdrawal of house revenue
type VaultSweptEvent struct {
	AdminID int64
	Amount  int64
}

func (e VaultSweptEvent) Type() EventType {
	return EventTypeVaultSwept
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus holds pending events coupled to a unit of work and
// flushes them to the underlying bus only after the transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush is called after a successful DB commit
func (b *TransactionalBus) Flush(ctx context.Context) error {
	// Events are processed independently of the transaction lifecycle, so a
	// background context is used rather than the possibly-expired request one.
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard is called after a rollback to drop unflushed events
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
