package repository

import (
	"context"
	"fmt"

	"redblack/database"
	"redblack/models"
)

// vaultRowID is the well-known id of the singleton vault row, seeded by the
// initial migration.
const vaultRowID = 1

// VaultRepository implements the service.VaultRepository interface
type VaultRepository struct {
	q queryable
}

// NewVaultRepository creates a new vault repository
func NewVaultRepository(db *database.DB) *VaultRepository {
	return &VaultRepository{q: db.Pool}
}

// newVaultRepositoryWithTx creates a new vault repository bound to a transaction
func newVaultRepositoryWithTx(tx queryable) *VaultRepository {
	return &VaultRepository{q: tx}
}

// Get retrieves the vault totals
func (r *VaultRepository) Get(ctx context.Context) (*models.Vault, error) {
	return r.get(ctx, `SELECT id, commission_balance, sub_balance FROM vault WHERE id = $1`)
}

// GetForUpdate retrieves the vault totals with a row lock
func (r *VaultRepository) GetForUpdate(ctx context.Context) (*models.Vault, error) {
	return r.get(ctx, `SELECT id, commission_balance, sub_balance FROM vault WHERE id = $1 FOR UPDATE`)
}

func (r *VaultRepository) get(ctx context.Context, query string) (*models.Vault, error) {
	var vault models.Vault
	err := r.q.QueryRow(ctx, query, vaultRowID).Scan(
		&vault.ID,
		&vault.CommissionBalance,
		&vault.SubBalance,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get vault: %w", err)
	}

	return &vault, nil
}

// AddCommission credits game commission to the vault
func (r *VaultRepository) AddCommission(ctx context.Context, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("amount must not be negative")
	}

	query := `UPDATE vault SET commission_balance = commission_balance + $1 WHERE id = $2`

	if _, err := r.q.Exec(ctx, query, amount, vaultRowID); err != nil {
		return fmt.Errorf("failed to add commission: %w", err)
	}

	return nil
}

// AddSubFee credits an access fee to the vault
func (r *VaultRepository) AddSubFee(ctx context.Context, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("amount must not be negative")
	}

	query := `UPDATE vault SET sub_balance = sub_balance + $1 WHERE id = $2`

	if _, err := r.q.Exec(ctx, query, amount, vaultRowID); err != nil {
		return fmt.Errorf("failed to add sub fee: %w", err)
	}

	return nil
}

// Reset zeroes both vault totals
func (r *VaultRepository) Reset(ctx context.Context) error {
	query := `UPDATE vault SET commission_balance = 0, sub_balance = 0 WHERE id = $1`

	if _, err := r.q.Exec(ctx, query, vaultRowID); err != nil {
		return fmt.Errorf("failed to reset vault: %w", err)
	}

	return nil
}
