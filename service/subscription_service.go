package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"redblack/events"
	"redblack/models"
)

// AccessWindow is the duration of one paid access period
const AccessWindow = 24 * time.Hour

// subscriptionService implements the SubscriptionService interface
type subscriptionService struct {
	uowFactory UnitOfWorkFactory
	fee        int64
	now        func() time.Time
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(uowFactory UnitOfWorkFactory, fee int64) SubscriptionService {
	return &subscriptionService{
		uowFactory: uowFactory,
		fee:        fee,
		now:        time.Now,
	}
}

// IsEntitled reports whether the user currently has paid access
func (s *subscriptionService) IsEntitled(user *models.User) bool {
	return user.IsSubscribed(s.now())
}

// PayAccessFee debits the fee, opens a fresh access window and credits the
// vault, all in one transaction. The window is always a flat 24h from the
// moment of payment; paying early does not stack.
func (s *subscriptionService) PayAccessFee(ctx context.Context, userID int64) error {
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
	if user.Balance < s.fee {
		return ErrInsufficientFunds
	}

	if err := uow.UserRepository().DeductBalance(ctx, userID, s.fee); err != nil {
		if errors.Is(err, ErrInsufficientBalance) {
			return ErrInsufficientFunds
		}
		return fmt.Errorf("failed to deduct access fee: %w", err)
	}

	expiry := s.now().Add(AccessWindow)
	if err := uow.UserRepository().SetSubExpiry(ctx, userID, expiry); err != nil {
		return fmt.Errorf("failed to set sub expiry: %w", err)
	}

	if err := uow.VaultRepository().AddSubFee(ctx, s.fee); err != nil {
		return fmt.Errorf("failed to credit vault: %w", err)
	}

	uow.EventBus().Publish(events.AccessFeePaidEvent{
		UserID: userID,
		Fee:    s.fee,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
