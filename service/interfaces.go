package service

import (
	"context"
	"time"

	"redblack/events"
	"redblack/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by id, nil if not found
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// GetByUsername retrieves a user by username, nil if not found
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// Create inserts a new user and fills in its id and timestamps
	Create(ctx context.Context, user *models.User) error

	// AddBalance adds to a user's balance atomically
	AddBalance(ctx context.Context, id int64, amount int64) error

	// DeductBalance deducts from a user's balance atomically, failing with
	// ErrInsufficientBalance if the balance would go negative
	DeductBalance(ctx context.Context, id int64, amount int64) error

	// SetSubExpiry sets a user's subscription expiry
	SetSubExpiry(ctx context.Context, id int64, expiry time.Time) error

	// GetAll returns all users
	GetAll(ctx context.Context) ([]*models.User, error)
}

// GameRepository defines the interface for game data access
type GameRepository interface {
	// Create inserts a new OPEN game and fills in its id
	Create(ctx context.Context, game *models.Game) error

	// GetByID retrieves a game by id, nil if not found
	GetByID(ctx context.Context, id int64) (*models.Game, error)

	// GetByIDForUpdate retrieves a game by id with a row lock, serializing
	// concurrent resolution attempts
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Game, error)

	// ListOpenByStake returns all OPEN games at the given stake
	ListOpenByStake(ctx context.Context, stake int64) ([]*models.Game, error)

	// Close transitions a game OPEN -> CLOSED, recording the challenger and
	// winner. Fails with ErrGameAlreadyClosed if the game is not OPEN.
	Close(ctx context.Context, gameID, challengerID, winnerID int64) error
}

// VaultRepository defines the interface for the singleton vault row
type VaultRepository interface {
	// Get retrieves the vault totals
	Get(ctx context.Context) (*models.Vault, error)

	// GetForUpdate retrieves the vault totals with a row lock
	GetForUpdate(ctx context.Context) (*models.Vault, error)

	// AddCommission credits game commission to the vault
	AddCommission(ctx context.Context, amount int64) error

	// AddSubFee credits an access fee to the vault
	AddSubFee(ctx context.Context, amount int64) error

	// Reset zeroes both vault totals
	Reset(ctx context.Context) error
}

// TransactionRepository defines the interface for the wallet audit log
type TransactionRepository interface {
	// Record appends a wallet transaction entry
	Record(ctx context.Context, transaction *models.Transaction) error

	// RecentByUser returns a user's most recent transactions, newest first
	RecentByUser(ctx context.Context, userID int64, limit int) ([]*models.Transaction, error)
}

// EventPublisher defines the interface for publishing events within a
// unit of work; events are delivered only after the transaction commits
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork provides transactional boundaries around repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction and discards pending events
	Rollback() error

	// UserRepository returns the user repository bound to this transaction
	UserRepository() UserRepository

	// GameRepository returns the game repository bound to this transaction
	GameRepository() GameRepository

	// VaultRepository returns the vault repository bound to this transaction
	VaultRepository() VaultRepository

	// TransactionRepository returns the audit log repository bound to this transaction
	TransactionRepository() TransactionRepository

	// EventBus returns the transactional event publisher
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// AuthService defines the interface for identity operations
type AuthService interface {
	// Register validates and creates a new account with the welcome balance
	Register(ctx context.Context, username, phone, countryCode, password, adminCode string) (*models.User, error)

	// Authenticate verifies credentials and returns the user
	Authenticate(ctx context.Context, username, password string) (*models.User, error)

	// GetUser retrieves a user by id
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

// WalletService defines the interface for deposit/withdraw operations
type WalletService interface {
	// Deposit credits amount to the user and records it
	Deposit(ctx context.Context, userID int64, amount int64) error

	// Withdraw debits amount from the user and records it
	Withdraw(ctx context.Context, userID int64, amount int64) error

	// RecentTransactions returns the user's latest audit entries
	RecentTransactions(ctx context.Context, userID int64, limit int) ([]*models.Transaction, error)
}

// SubscriptionService defines the interface for the paid access window
type SubscriptionService interface {
	// IsEntitled reports whether the user currently has paid access
	IsEntitled(user *models.User) bool

	// PayAccessFee debits the fee, opens a fresh 24h window and credits the vault
	PayAccessFee(ctx context.Context, userID int64) error
}

// GameService defines the interface for the game lifecycle
type GameService interface {
	// CreateGame escrows the stake and opens a new game
	CreateGame(ctx context.Context, creatorID int64, stake int64, choice models.Choice, hint string) (*models.Game, error)

	// ListOpenGames returns all open games at the given stake
	ListOpenGames(ctx context.Context, stake int64) ([]*models.Game, error)

	// GetGame retrieves a game by id
	GetGame(ctx context.Context, gameID int64) (*models.Game, error)

	// JoinAndResolve escrows the challenger's stake, determines the winner
	// and settles the pot
	JoinAndResolve(ctx context.Context, challengerID int64, gameID int64, guess models.Choice) (*models.GameResult, error)
}

// VaultService defines the interface for admin vault operations
type VaultService interface {
	// Totals returns the current vault balances
	Totals(ctx context.Context) (*models.Vault, error)

	// Sweep credits the vault total to the admin and zeroes the vault
	Sweep(ctx context.Context, adminID int64) (int64, error)

	// ListUsers returns all users for the admin panel
	ListUsers(ctx context.Context) ([]*models.User, error)
}
