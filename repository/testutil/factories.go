package testutil

import (
	"time"

	"redblack/models"
)

// CreateTestUser creates a test user with default values
func CreateTestUser(username string) *models.User {
	return &models.User{
		Username:     username,
		Phone:        "700000000",
		CountryCode:  "+256",
		PasswordHash: "$2a$10$test.hash.placeholder.value.not.a.real.hash",
		Balance:      5000,
	}
}

// CreateTestUserWithBalance creates a test user with a specific balance
func CreateTestUserWithBalance(username string, balance int64) *models.User {
	user := CreateTestUser(username)
	user.Balance = balance
	return user
}

// CreateTestAdmin creates a test user with the admin flag set
func CreateTestAdmin(username string) *models.User {
	user := CreateTestUser(username)
	user.IsAdmin = true
	return user
}

// CreateTestSubscribedUser creates a test user whose access window is open
func CreateTestSubscribedUser(username string) *models.User {
	user := CreateTestUser(username)
	expiry := time.Now().Add(24 * time.Hour)
	user.SubExpiry = &expiry
	return user
}

// CreateTestGame creates an open test game with sensible defaults
func CreateTestGame(creatorID int64, stake int64, choice models.Choice) *models.Game {
	return &models.Game{
		CreatorID:     creatorID,
		Stake:         stake,
		CreatorChoice: choice,
		Hint:          "take a guess",
		Status:        models.GameStatusOpen,
	}
}

// CreateTestTransaction creates a wallet audit entry with default values
func CreateTestTransaction(userID int64, kind models.TransactionKind, amount int64) *models.Transaction {
	return &models.Transaction{
		UserID: userID,
		Kind:   kind,
		Amount: amount,
	}
}
