package service

import "errors"

// Domain errors. All are recoverable, user-facing conditions; handlers map
// them to one-line messages.
var (
	// ErrInsufficientBalance is returned when a stake, withdrawal or escrow
	// exceeds the user's balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInsufficientFunds is the access-fee variant of an underfunded wallet.
	ErrInsufficientFunds = errors.New("insufficient funds for access fee")

	// ErrSelfPlayForbidden is returned when a creator tries to resolve their
	// own game.
	ErrSelfPlayForbidden = errors.New("cannot play your own game")

	// ErrGameAlreadyClosed is returned when resolving a game that has already
	// transitioned to CLOSED.
	ErrGameAlreadyClosed = errors.New("game is already closed")

	// ErrGameNotFound is returned for unknown game ids.
	ErrGameNotFound = errors.New("game not found")

	// ErrWeakPassword is returned when a password lacks an upper-case letter
	// or a special character.
	ErrWeakPassword = errors.New("password needs an upper-case letter and a special character")

	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrInvalidCredentials is returned on login failure. Unknown usernames
	// and wrong passwords are indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPermissionDenied is returned for admin-only operations.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUserNotFound is returned for unknown user ids.
	ErrUserNotFound = errors.New("user not found")

	// ErrNotEntitled is returned when a gated action is attempted without an
	// active paid access window.
	ErrNotEntitled = errors.New("active access subscription required")

	// ErrInvalidStake is returned for stakes outside the fixed tier set.
	ErrInvalidStake = errors.New("stake must be one of the fixed tiers")

	// ErrInvalidChoice is returned for outcome values other than Red or Black.
	ErrInvalidChoice = errors.New("choice must be Red or Black")

	// ErrInvalidAmount is returned for non-positive wallet amounts.
	ErrInvalidAmount = errors.New("amount must be positive")
)
