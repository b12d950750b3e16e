package service

import (
	"context"
	"fmt"
	"time"

	"redblack/events"
	"redblack/models"
)

// commissionDivisor takes the house's 10% cut of the pot. Integer division
// floors the commission, so the truncation remainder on odd pots accrues to
// neither party. Intentional, do not switch to rounding.
const commissionDivisor = 10

// gameService implements the GameService interface
type gameService struct {
	uowFactory UnitOfWorkFactory
	now        func() time.Time
}

// NewGameService creates a new game service
func NewGameService(uowFactory UnitOfWorkFactory) GameService {
	return &gameService{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// CreateGame escrows the stake and opens a new game. The creator's stake is
// locked for the lifetime of the game, not just at resolution.
func (s *gameService) CreateGame(ctx context.Context, creatorID int64, stake int64, choice models.Choice, hint string) (*models.Game, error) {
	if !models.IsValidStake(stake) {
		return nil, ErrInvalidStake
	}
	if !choice.IsValid() {
		return nil, ErrInvalidChoice
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	creator, err := uow.UserRepository().GetByID(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get creator: %w", err)
	}
	if creator == nil {
		return nil, ErrUserNotFound
	}
	if !creator.IsSubscribed(s.now()) {
		return nil, ErrNotEntitled
	}
	if creator.Balance < stake {
		return nil, ErrInsufficientBalance
	}

	if err := uow.UserRepository().DeductBalance(ctx, creatorID, stake); err != nil {
		return nil, fmt.Errorf("failed to escrow stake: %w", err)
	}

	game := &models.Game{
		Stake:         stake,
		CreatorID:     creatorID,
		CreatorChoice: choice,
		Hint:          hint,
		Status:        models.GameStatusOpen,
	}

	if err := uow.GameRepository().Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	uow.EventBus().Publish(events.GameCreatedEvent{
		GameID:    game.ID,
		CreatorID: creatorID,
		Stake:     stake,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return game, nil
}

// ListOpenGames returns all open games at the given stake
func (s *gameService) ListOpenGames(ctx context.Context, stake int64) ([]*models.Game, error) {
	if !models.IsValidStake(stake) {
		return nil, ErrInvalidStake
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	games, err := uow.GameRepository().ListOpenByStake(ctx, stake)
	if err != nil {
		return nil, fmt.Errorf("failed to list open games: %w", err)
	}

	return games, nil
}

// GetGame retrieves a game by id
func (s *gameService) GetGame(ctx context.Context, gameID int64) (*models.Game, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	game, err := uow.GameRepository().GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return nil, ErrGameNotFound
	}

	return game, nil
}

// JoinAndResolve escrows the challenger's stake, determines the winner and
// settles the pot, all in one transaction. The game row is locked up front so
// at most one of two concurrent attempts closes the game; the other fails
// with ErrGameAlreadyClosed and mutates nothing.
func (s *gameService) JoinAndResolve(ctx context.Context, challengerID int64, gameID int64, guess models.Choice) (*models.GameResult, error) {
	if !guess.IsValid() {
		return nil, ErrInvalidChoice
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	game, err := uow.GameRepository().GetByIDForUpdate(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	if !game.IsOpen() {
		return nil, ErrGameAlreadyClosed
	}
	if game.CreatorID == challengerID {
		return nil, ErrSelfPlayForbidden
	}

	challenger, err := uow.UserRepository().GetByID(ctx, challengerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get challenger: %w", err)
	}
	if challenger == nil {
		return nil, ErrUserNotFound
	}
	if challenger.Balance < game.Stake {
		return nil, ErrInsufficientBalance
	}

	// Challenger's matching escrow
	if err := uow.UserRepository().DeductBalance(ctx, challengerID, game.Stake); err != nil {
		return nil, fmt.Errorf("failed to escrow challenger stake: %w", err)
	}

	// Match = challenger wins, mismatch = creator wins. Pure string equality
	// against the creator's original hidden choice; no randomness here.
	winnerID := game.CreatorID
	loserID := challengerID
	if guess == game.CreatorChoice {
		winnerID = challengerID
		loserID = game.CreatorID
	}

	pot := game.Pot()
	commission := pot / commissionDivisor
	payout := pot - commission

	if err := uow.UserRepository().AddBalance(ctx, winnerID, payout); err != nil {
		return nil, fmt.Errorf("failed to pay out winner: %w", err)
	}

	if err := uow.VaultRepository().AddCommission(ctx, commission); err != nil {
		return nil, fmt.Errorf("failed to credit commission: %w", err)
	}

	if err := uow.GameRepository().Close(ctx, game.ID, challengerID, winnerID); err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.GameResolvedEvent{
		GameID:       game.ID,
		ChallengerID: challengerID,
		WinnerID:     winnerID,
		LoserID:      loserID,
		Stake:        game.Stake,
		Payout:       payout,
		Commission:   commission,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	game.Status = models.GameStatusClosed
	game.ChallengerID = &challengerID
	game.WinnerID = &winnerID

	return &models.GameResult{
		Game:       game,
		WinnerID:   winnerID,
		LoserID:    loserID,
		Payout:     payout,
		Commission: commission,
	}, nil
}
