package models

import (
	"time"
)

// User represents a registered player with a balance
type User struct {
	ID           int64      `db:"id"`
	Username     string     `db:"username"`
	Phone        string     `db:"phone"`
	CountryCode  string     `db:"country_code"`
	PasswordHash string     `db:"password_hash"`
	Balance      int64      `db:"balance"`
	IsAdmin      bool       `db:"is_admin"`
	SubExpiry    *time.Time `db:"sub_expiry"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

// IsSubscribed checks whether the user has paid access at the given time.
// Admins always have access.
func (u *User) IsSubscribed(now time.Time) bool {
	if u.IsAdmin {
		return true
	}
	if u.SubExpiry == nil {
		return false
	}
	return u.SubExpiry.After(now)
}
