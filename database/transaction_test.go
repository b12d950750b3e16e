package database_test

import (
	"context"
	"errors"
	"testing"

	"redblack/repository/testutil"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTransaction(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	insertUser := func(tx pgx.Tx, username string) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO users (username, phone, country_code, password_hash, balance) VALUES ($1, '', '', '', 0)`,
			username)
		return err
	}

	countUsers := func() int {
		var n int
		err := testDB.DB.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
		require.NoError(t, err)
		return n
	}

	t.Run("commit on success", func(t *testing.T) {
		err := testDB.DB.WithTransaction(ctx, func(tx pgx.Tx) error {
			return insertUser(tx, "kept")
		})
		require.NoError(t, err)
		assert.Equal(t, 1, countUsers())
	})

	t.Run("rollback on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := testDB.DB.WithTransaction(ctx, func(tx pgx.Tx) error {
			if err := insertUser(tx, "discarded"); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, countUsers(), "the failed insert must not persist")
	})
}
