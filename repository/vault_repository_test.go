package repository

import (
	"context"
	"testing"

	"redblack/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaultRepository(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewVaultRepository(testDB.DB)
	ctx := context.Background()

	t.Run("migration seeds an empty vault", func(t *testing.T) {
		vault, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), vault.CommissionBalance)
		assert.Equal(t, int64(0), vault.SubBalance)
		assert.Equal(t, int64(0), vault.Total())
	})

	t.Run("commission and fees accumulate separately", func(t *testing.T) {
		require.NoError(t, repo.AddCommission(ctx, 200))
		require.NoError(t, repo.AddCommission(ctx, 400))
		require.NoError(t, repo.AddSubFee(ctx, 1000))

		vault, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(600), vault.CommissionBalance)
		assert.Equal(t, int64(1000), vault.SubBalance)
		assert.Equal(t, int64(1600), vault.Total())
	})

	t.Run("reset zeroes both totals", func(t *testing.T) {
		require.NoError(t, repo.Reset(ctx))

		vault, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), vault.Total())
	})

	t.Run("get for update sees the same row", func(t *testing.T) {
		require.NoError(t, repo.AddSubFee(ctx, 500))

		vault, err := repo.GetForUpdate(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(500), vault.SubBalance)
	})
}
