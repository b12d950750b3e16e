package repository

import (
	"context"
	"errors"
	"fmt"

	"redblack/database"
	"redblack/models"
	"redblack/service"

	"github.com/jackc/pgx/v5"
)

// GameRepository implements the service.GameRepository interface
type GameRepository struct {
	q queryable
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{q: db.Pool}
}

// newGameRepositoryWithTx creates a new game repository bound to a transaction
func newGameRepositoryWithTx(tx queryable) *GameRepository {
	return &GameRepository{q: tx}
}

const gameColumns = `id, stake, creator_id, creator_choice, hint, status, challenger_id, winner_id, created_at`

func scanGame(row pgx.Row) (*models.Game, error) {
	var game models.Game
	err := row.Scan(
		&game.ID,
		&game.Stake,
		&game.CreatorID,
		&game.CreatorChoice,
		&game.Hint,
		&game.Status,
		&game.ChallengerID,
		&game.WinnerID,
		&game.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// Create inserts a new OPEN game and fills in its id
func (r *GameRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (stake, creator_id, creator_choice, hint, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		game.Stake,
		game.CreatorID,
		game.CreatorChoice,
		game.Hint,
		models.GameStatusOpen,
	).Scan(&game.ID, &game.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	game.Status = models.GameStatusOpen
	return nil
}

// GetByID retrieves a game by id
func (r *GameRepository) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`

	game, err := scanGame(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game %d: %w", id, err)
	}

	return game, nil
}

// GetByIDForUpdate retrieves a game by id with a row lock. Concurrent
// resolution attempts on the same game serialize here.
func (r *GameRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1 FOR UPDATE`

	game, err := scanGame(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock game %d: %w", id, err)
	}

	return game, nil
}

// ListOpenByStake returns all OPEN games at the given stake in insertion order
func (r *GameRepository) ListOpenByStake(ctx context.Context, stake int64) ([]*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE status = $1 AND stake = $2 ORDER BY id`

	rows, err := r.q.Query(ctx, query, models.GameStatusOpen, stake)
	if err != nil {
		return nil, fmt.Errorf("failed to list open games at stake %d: %w", stake, err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}

	return games, nil
}

// Close transitions a game OPEN -> CLOSED exactly once. The status guard
// makes a second attempt fail instead of double-paying.
func (r *GameRepository) Close(ctx context.Context, gameID, challengerID, winnerID int64) error {
	query := `
		UPDATE games
		SET status = $1, challenger_id = $2, winner_id = $3
		WHERE id = $4 AND status = $5
	`

	result, err := r.q.Exec(ctx, query,
		models.GameStatusClosed, challengerID, winnerID, gameID, models.GameStatusOpen)
	if err != nil {
		return fmt.Errorf("failed to close game %d: %w", gameID, err)
	}

	if result.RowsAffected() == 0 {
		game, err := r.GetByID(ctx, gameID)
		if err != nil {
			return fmt.Errorf("failed to check game: %w", err)
		}
		if game == nil {
			return service.ErrGameNotFound
		}
		return service.ErrGameAlreadyClosed
	}

	return nil
}
