package repository

import (
	"context"
	"testing"

	"redblack/models"
	"redblack/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRepository(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	repo := NewTransactionRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser("saver")
	require.NoError(t, userRepo.Create(ctx, user))

	t.Run("record fills id and timestamp", func(t *testing.T) {
		entry := testutil.CreateTestTransaction(user.ID, models.TransactionKindDeposit, 10000)
		require.NoError(t, repo.Record(ctx, entry))

		assert.NotZero(t, entry.ID)
		assert.False(t, entry.CreatedAt.IsZero())
	})

	t.Run("recent returns newest first and honors the limit", func(t *testing.T) {
		require.NoError(t, repo.Record(ctx, testutil.CreateTestTransaction(user.ID, models.TransactionKindWithdraw, 2000)))
		require.NoError(t, repo.Record(ctx, testutil.CreateTestTransaction(user.ID, models.TransactionKindDeposit, 3000)))

		entries, err := repo.RecentByUser(ctx, user.ID, 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, int64(3000), entries[0].Amount)
		assert.Equal(t, models.TransactionKindDeposit, entries[0].Kind)
		assert.Equal(t, int64(2000), entries[1].Amount)
	})

	t.Run("other users see nothing", func(t *testing.T) {
		other := testutil.CreateTestUser("stranger")
		require.NoError(t, userRepo.Create(ctx, other))

		entries, err := repo.RecentByUser(ctx, other.ID, 10)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
