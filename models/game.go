package models

import (
	"time"
)

// GameStatus represents the lifecycle state of a game
type GameStatus string

const (
	GameStatusOpen   GameStatus = "OPEN"
	GameStatusClosed GameStatus = "CLOSED"
)

// Choice is one of the two hidden outcome values a creator can pick
type Choice string

const (
	ChoiceRed   Choice = "Red"
	ChoiceBlack Choice = "Black"
)

// IsValid checks that the choice is one of the two allowed values
func (c Choice) IsValid() bool {
	return c == ChoiceRed || c == ChoiceBlack
}

// StakeTiers is the fixed set of stakes games can be created at
var StakeTiers = []int64{1000, 2000, 5000, 10000, 20000, 50000}

// IsValidStake checks that the stake is one of the fixed tiers
func IsValidStake(stake int64) bool {
	for _, tier := range StakeTiers {
		if stake == tier {
			return true
		}
	}
	return false
}

// Game represents a Red/Black stake game between a creator and a challenger
type Game struct {
	ID            int64      `db:"id"`
	Stake         int64      `db:"stake"`
	CreatorID     int64      `db:"creator_id"`
	CreatorChoice Choice     `db:"creator_choice"`
	Hint          string     `db:"hint"`
	Status        GameStatus `db:"status"`
	ChallengerID  *int64     `db:"challenger_id"`
	WinnerID      *int64     `db:"winner_id"`
	CreatedAt     time.Time  `db:"created_at"`
}

// IsOpen checks whether the game can still be challenged
func (g *Game) IsOpen() bool {
	return g.Status == GameStatusOpen
}

// Pot returns the total escrowed value once both sides have staked
func (g *Game) Pot() int64 {
	return g.Stake * 2
}

// GameResult represents the outcome of a resolved game
type GameResult struct {
	Game       *Game
	WinnerID   int64
	LoserID    int64
	Payout     int64
	Commission int64
}
