package service

import (
	"context"
	"testing"

	"redblack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthServiceMocks() (*MockUnitOfWorkFactory, *MockUnitOfWork, *MockUserRepository) {
	mockFactory := new(MockUnitOfWorkFactory)
	mockUoW := new(MockUnitOfWork)
	mockUserRepo := new(MockUserRepository)
	mockUoW.SetRepositories(mockUserRepo, new(MockGameRepository), new(MockVaultRepository), new(MockTransactionRepository))
	mockFactory.On("Create").Return(mockUoW)
	return mockFactory, mockUoW, mockUserRepo
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, validatePassword("Secret!1"))
	assert.NoError(t, validatePassword("P@ss"))
	assert.ErrorIs(t, validatePassword("secret1"), ErrWeakPassword)
	assert.ErrorIs(t, validatePassword("secret!"), ErrWeakPassword)
	assert.ErrorIs(t, validatePassword("SECRET1"), ErrWeakPassword)
	assert.ErrorIs(t, validatePassword(""), ErrWeakPassword)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with welcome balance", func(t *testing.T) {
		mockFactory, mockUoW, mockUserRepo := newAuthServiceMocks()
		svc := NewAuthService(mockFactory, "BOSS2025", 5000)

		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Commit").Return(nil)
		mockUoW.On("Rollback").Return(nil)

		mockUserRepo.On("GetByUsername", ctx, "alice").Return(nil, nil)
		mockUserRepo.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
			return u.Username == "alice" &&
				u.Balance == 5000 &&
				!u.IsAdmin &&
				u.SubExpiry == nil &&
				u.PasswordHash != "Secret!1"
		})).Return(nil)

		user, err := svc.Register(ctx, "alice", "700000001", "+256", "Secret!1", "")

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		// The stored hash must verify against the original password
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Secret!1")))
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("grants admin only for the configured code", func(t *testing.T) {
		mockFactory, mockUoW, mockUserRepo := newAuthServiceMocks()
		svc := NewAuthService(mockFactory, "BOSS2025", 5000)

		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Commit").Return(nil)
		mockUoW.On("Rollback").Return(nil)

		mockUserRepo.On("GetByUsername", ctx, "boss").Return(nil, nil)
		mockUserRepo.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
			return u.IsAdmin
		})).Return(nil)

		_, err := svc.Register(ctx, "boss", "700000002", "+256", "Secret!1", "BOSS2025")
		require.NoError(t, err)
	})

	t.Run("wrong admin code yields regular user", func(t *testing.T) {
		mockFactory, mockUoW, mockUserRepo := newAuthServiceMocks()
		svc := NewAuthService(mockFactory, "BOSS2025", 5000)

		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Commit").Return(nil)
		mockUoW.On("Rollback").Return(nil)

		mockUserRepo.On("GetByUsername", ctx, "bob").Return(nil, nil)
		mockUserRepo.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
			return !u.IsAdmin
		})).Return(nil)

		_, err := svc.Register(ctx, "bob", "700000003", "+256", "Secret!1", "guess")
		require.NoError(t, err)
	})

	t.Run("empty configured code never grants admin", func(t *testing.T) {
		mockFactory, mockUoW, mockUserRepo := newAuthServiceMocks()
		svc := NewAuthService(mockFactory, "", 5000)

		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Commit").Return(nil)
		mockUoW.On("Rollback").Return(nil)

		mockUserRepo.On("GetByUsername", ctx, "eve").Return(nil, nil)
		mockUserRepo.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
			return !u.IsAdmin
		})).Return(nil)

		_, err := svc.Register(ctx, "eve", "700000004", "+256", "Secret!1", "")
		require.NoError(t, err)
	})

	t.Run("rejects weak passwords before touching the database", func(t *testing.T) {
		mockFactory, _, mockUserRepo := newAuthServiceMocks()
		svc := NewAuthService(mockFactory, "BOSS2025", 5000)

		_, err := svc.Register(ctx, "alice", "700000001", "+256", "secret1", "")
		assert.ErrorIs(t, err, ErrWeakPassword)
		mockUserRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects taken username", func(t *testing.T) {
		mockFactory, mockUoW, mockUserRepo := newAuthServiceMocks()
		svc := NewAuthService(mockFactory, "BOSS2025", 5000)

		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Rollback").Return(nil)

		mockUserRepo.On("GetByUsername", ctx, "alice").Return(&models.User{ID: 1, Username: "alice"}, nil)

		_, err := svc.Register(ctx, "alice", "700000001", "+256", "Secret!1", "")
		assert.ErrorIs(t, err, ErrUsernameTaken)
		mockUserRepo.AssertNotCalled(t, "Create")
		mockUoW.AssertNotCalled(t, "Commit")
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("Secret!1"), bcrypt.DefaultCost)
	require.NoError(t, err)
	stored := &models.User{ID: 7, Username: "alice", PasswordHash: string(hash)}

	t.Run("valid credentials", func(t *testing.T) {
		mockFactory, mockUoW, mockUserRepo := newAuthServiceMocks()
		svc := NewAuthService(mockFactory, "BOSS2025", 5000)

		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Rollback").Return(nil)
		mockUserRepo.On("GetByUsername", ctx, "alice").Return(stored, nil)

		user, err := svc.Authenticate(ctx, "alice", "Secret!1")
		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockFactory, mockUoW, mockUserRepo := newAuthServiceMocks()
		svc := NewAuthService(mockFactory, "BOSS2025", 5000)

		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Rollback").Return(nil)
		mockUserRepo.On("GetByUsername", ctx, "alice").Return(stored, nil)

		_, err := svc.Authenticate(ctx, "alice", "Wrong!1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username is indistinguishable", func(t *testing.T) {
		mockFactory, mockUoW, mockUserRepo := newAuthServiceMocks()
		svc := NewAuthService(mockFactory, "BOSS2025", 5000)

		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Rollback").Return(nil)
		mockUserRepo.On("GetByUsername", ctx, "nobody").Return(nil, nil)

		_, err := svc.Authenticate(ctx, "nobody", "Secret!1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
