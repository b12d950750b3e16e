package models

import (
	"time"
)

// TransactionKind represents the type of wallet operation
type TransactionKind string

const (
	TransactionKindDeposit  TransactionKind = "deposit"
	TransactionKindWithdraw TransactionKind = "withdraw"
)

// Transaction is an append-only audit record of a wallet operation. It is
// never read back by business logic, only displayed.
type Transaction struct {
	ID        int64           `db:"id"`
	UserID    int64           `db:"user_id"`
	Kind      TransactionKind `db:"kind"`
	Amount    int64           `db:"amount"`
	CreatedAt time.Time       `db:"created_at"`
}
