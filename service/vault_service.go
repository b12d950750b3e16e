package service

import (
	"context"
	"fmt"

	"redblack/events"
	"redblack/models"
)

// vaultService implements the VaultService interface
type vaultService struct {
	uowFactory UnitOfWorkFactory
}

// NewVaultService creates a new vault service
func NewVaultService(uowFactory UnitOfWorkFactory) VaultService {
	return &vaultService{
		uowFactory: uowFactory,
	}
}

// Totals returns the current vault balances
func (s *vaultService) Totals(ctx context.Context) (*models.Vault, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	vault, err := uow.VaultRepository().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get vault: %w", err)
	}

	return vault, nil
}

// Sweep credits the vault total to the admin and zeroes the vault. A second
// sweep with no intervening activity credits 0.
func (s *vaultService) Sweep(ctx context.Context, adminID int64) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	admin, err := uow.UserRepository().GetByID(ctx, adminID)
	if err != nil {
		return 0, fmt.Errorf("failed to get admin: %w", err)
	}
	if admin == nil {
		return 0, ErrUserNotFound
	}
	if !admin.IsAdmin {
		return 0, ErrPermissionDenied
	}

	vault, err := uow.VaultRepository().GetForUpdate(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to lock vault: %w", err)
	}

	total := vault.Total()
	if total > 0 {
		if err := uow.UserRepository().AddBalance(ctx, adminID, total); err != nil {
			return 0, fmt.Errorf("failed to credit admin: %w", err)
		}
		if err := uow.VaultRepository().Reset(ctx); err != nil {
			return 0, fmt.Errorf("failed to reset vault: %w", err)
		}
	}

	uow.EventBus().Publish(events.VaultSweptEvent{
		AdminID: adminID,
		Amount:  total,
	})

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return total, nil
}

// ListUsers returns all users for the admin panel
func (s *vaultService) ListUsers(ctx context.Context) ([]*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	users, err := uow.UserRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	return users, nil
}
