package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"redblack/events"
	"redblack/models"

	"golang.org/x/crypto/bcrypt"
)

// specialChars is the fixed set a password must draw at least one character from
const specialChars = "!@#$%^&*"

// authService implements the AuthService interface
type authService struct {
	uowFactory      UnitOfWorkFactory
	adminCode       string
	startingBalance int64
}

// NewAuthService creates a new auth service. adminCode is the secret that
// grants the admin flag at registration; startingBalance is the welcome bonus.
func NewAuthService(uowFactory UnitOfWorkFactory, adminCode string, startingBalance int64) AuthService {
	return &authService{
		uowFactory:      uowFactory,
		adminCode:       adminCode,
		startingBalance: startingBalance,
	}
}

// validatePassword enforces the registration password policy: at least one
// upper-case letter and one character from the fixed special set.
func validatePassword(password string) error {
	hasUpper := false
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
			break
		}
	}
	if !hasUpper || !strings.ContainsAny(password, specialChars) {
		return ErrWeakPassword
	}
	return nil
}

// Register validates and creates a new account with the welcome balance
func (s *authService) Register(ctx context.Context, username, phone, countryCode, password, adminCode string) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	existing, err := uow.UserRepository().GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	// An empty configured code must never grant admin
	isAdmin := s.adminCode != "" && adminCode == s.adminCode

	user := &models.User{
		Username:     username,
		Phone:        phone,
		CountryCode:  countryCode,
		PasswordHash: string(hash),
		Balance:      s.startingBalance,
		IsAdmin:      isAdmin,
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.UserRegisteredEvent{
		UserID:         user.ID,
		Username:       user.Username,
		IsAdmin:        user.IsAdmin,
		InitialBalance: user.Balance,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, nil
}

// Authenticate verifies credentials and returns the user. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *authService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by id
func (s *authService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}
