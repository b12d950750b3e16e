package models

// Vault is the singleton ledger accumulating house revenue. Commission comes
// from the 10% cut on resolved games, sub balance from access fees.
type Vault struct {
	ID                int64 `db:"id"`
	CommissionBalance int64 `db:"commission_balance"`
	SubBalance        int64 `db:"sub_balance"`
}

// Total returns the full sweepable amount
func (v *Vault) Total() int64 {
	return v.CommissionBalance + v.SubBalance
}
