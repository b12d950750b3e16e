package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"redblack/database"
	"redblack/models"
	"redblack/service"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// UserRepository implements the service.UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository bound to a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

const userColumns = `id, username, phone, country_code, password_hash, balance, is_admin, sub_expiry, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Phone,
		&user.CountryCode,
		&user.PasswordHash,
		&user.Balance,
		&user.IsAdmin,
		&user.SubExpiry,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}

	return user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}

	return user, nil
}

// Create inserts a new user and fills in its id and timestamps
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, phone, country_code, password_hash, balance, is_admin, sub_expiry)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		user.Username,
		user.Phone,
		user.CountryCode,
		user.PasswordHash,
		user.Balance,
		user.IsAdmin,
		user.SubExpiry,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		// The unique constraint closes the check-then-insert race on username
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return service.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user %q: %w", user.Username, err)
	}

	return nil
}

// AddBalance adds to a user's balance atomically
func (r *UserRepository) AddBalance(ctx context.Context, id int64, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("amount must not be negative")
	}

	query := `
		UPDATE users
		SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, amount, id)
	if err != nil {
		return fmt.Errorf("failed to add balance for user %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return service.ErrUserNotFound
	}

	return nil
}

// DeductBalance deducts from a user's balance atomically. The guarded update
// is what keeps balances non-negative under concurrent requests.
func (r *UserRepository) DeductBalance(ctx context.Context, id int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE users
		SET balance = balance - $1, updated_at = NOW()
		WHERE id = $2 AND balance >= $1
	`

	result, err := r.q.Exec(ctx, query, amount, id)
	if err != nil {
		return fmt.Errorf("failed to deduct balance for user %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		user, err := r.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to check user: %w", err)
		}
		if user == nil {
			return service.ErrUserNotFound
		}
		return service.ErrInsufficientBalance
	}

	return nil
}

// SetSubExpiry sets a user's subscription expiry
func (r *UserRepository) SetSubExpiry(ctx context.Context, id int64, expiry time.Time) error {
	query := `
		UPDATE users
		SET sub_expiry = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, expiry, id)
	if err != nil {
		return fmt.Errorf("failed to set sub expiry for user %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return service.ErrUserNotFound
	}

	return nil
}

// GetAll returns all users, newest first
func (r *UserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}
