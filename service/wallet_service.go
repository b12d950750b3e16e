package service

import (
	"context"
	"fmt"

	"redblack/events"
	"redblack/models"
)

// walletService implements the WalletService interface
type walletService struct {
	uowFactory UnitOfWorkFactory
}

// NewWalletService creates a new wallet service
func NewWalletService(uowFactory UnitOfWorkFactory) WalletService {
	return &walletService{
		uowFactory: uowFactory,
	}
}

// Deposit credits amount to the user and appends an audit record
func (s *walletService) Deposit(ctx context.Context, userID int64, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := uow.UserRepository().AddBalance(ctx, userID, amount); err != nil {
		return fmt.Errorf("failed to credit balance: %w", err)
	}

	record := &models.Transaction{
		UserID: userID,
		Kind:   models.TransactionKindDeposit,
		Amount: amount,
	}
	if err := uow.TransactionRepository().Record(ctx, record); err != nil {
		return fmt.Errorf("failed to record deposit: %w", err)
	}

	uow.EventBus().Publish(events.BalanceChangeEvent{
		UserID:     userID,
		Kind:       models.TransactionKindDeposit,
		Amount:     amount,
		NewBalance: user.Balance + amount,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Withdraw debits amount from the user and appends an audit record. A failed
// withdrawal leaves the balance unchanged and records nothing.
func (s *walletService) Withdraw(ctx context.Context, userID int64, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.Balance < amount {
		return ErrInsufficientBalance
	}

	if err := uow.UserRepository().DeductBalance(ctx, userID, amount); err != nil {
		return fmt.Errorf("failed to debit balance: %w", err)
	}

	record := &models.Transaction{
		UserID: userID,
		Kind:   models.TransactionKindWithdraw,
		Amount: amount,
	}
	if err := uow.TransactionRepository().Record(ctx, record); err != nil {
		return fmt.Errorf("failed to record withdrawal: %w", err)
	}

	uow.EventBus().Publish(events.BalanceChangeEvent{
		UserID:     userID,
		Kind:       models.TransactionKindWithdraw,
		Amount:     amount,
		NewBalance: user.Balance - amount,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// RecentTransactions returns the user's latest audit entries
func (s *walletService) RecentTransactions(ctx context.Context, userID int64, limit int) ([]*models.Transaction, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	transactions, err := uow.TransactionRepository().RecentByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	return transactions, nil
}
