package service

import (
	"context"
	"testing"
	"time"

	"redblack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubscriptionServiceMocks() (*MockUnitOfWorkFactory, *MockUnitOfWork, *MockUserRepository, *MockVaultRepository) {
	mockFactory := new(MockUnitOfWorkFactory)
	mockUoW := new(MockUnitOfWork)
	mockUserRepo := new(MockUserRepository)
	mockVaultRepo := new(MockVaultRepository)
	mockUoW.SetRepositories(mockUserRepo, new(MockGameRepository), mockVaultRepo, new(MockTransactionRepository))
	mockFactory.On("Create").Return(mockUoW)
	return mockFactory, mockUoW, mockUserRepo, mockVaultRepo
}

func TestSubscriptionService_IsEntitled(t *testing.T) {
	mockFactory, _, _, _ := newSubscriptionServiceMocks()
	svc := NewSubscriptionService(mockFactory, 1000).(*subscriptionService)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	assert.True(t, svc.IsEntitled(&models.User{IsAdmin: true}), "admin bypasses the gate")
	assert.False(t, svc.IsEntitled(&models.User{}), "no expiry means no access")
	assert.False(t, svc.IsEntitled(&models.User{SubExpiry: &past}))
	assert.True(t, svc.IsEntitled(&models.User{SubExpiry: &future}))
	assert.False(t, svc.IsEntitled(&models.User{SubExpiry: &now}), "expiry must be strictly in the future")
}

func TestSubscriptionService_PayAccessFee(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("debits fee and opens flat 24h window", func(t *testing.T) {
		mockFactory, mockUoW, mockUserRepo, mockVaultRepo := newSubscriptionServiceMocks()
		svc := NewSubscriptionService(mockFactory, 1000).(*subscriptionService)
		svc.now = func() time.Time { return now }

		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Commit").Return(nil)
		mockUoW.On("Rollback").Return(nil)

		mockUserRepo.On("GetByID", ctx, int64(1)).Return(&models.User{ID: 1, Balance: 5000}, nil)
		mockUserRepo.On("DeductBalance", ctx, int64(1), int64(1000)).Return(nil)
		mockUserRepo.On("SetSubExpiry", ctx, int64(1), now.Add(24*time.Hour)).Return(nil)
		mockVaultRepo.On("AddSubFee", ctx, int64(1000)).Return(nil)

		err := svc.PayAccessFee(ctx, 1)
		require.NoError(t, err)
		mockUserRepo.AssertExpectations(t)
		mockVaultRepo.AssertExpectations(t)
	})

	t.Run("paying early does not stack", func(t *testing.T) {
		// User still has 10h left on the current window; the new expiry is
		// still exactly now+24h, not 34h.
		mockFactory, mockUoW, mockUserRepo, mockVaultRepo := newSubscriptionServiceMocks()
		svc := NewSubscriptionService(mockFactory, 1000).(*subscriptionService)
		svc.now = func() time.Time { return now }

		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Commit").Return(nil)
		mockUoW.On("Rollback").Return(nil)

		remaining := now.Add(10 * time.Hour)
		mockUserRepo.On("GetByID", ctx, int64(1)).Return(&models.User{ID: 1, Balance: 5000, SubExpiry: &remaining}, nil)
		mockUserRepo.On("DeductBalance", ctx, int64(1), int64(1000)).Return(nil)
		mockUserRepo.On("SetSubExpiry", ctx, int64(1), now.Add(24*time.Hour)).Return(nil)
		mockVaultRepo.On("AddSubFee", ctx, int64(1000)).Return(nil)

		err := svc.PayAccessFee(ctx, 1)
		require.NoError(t, err)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("insufficient funds leaves no partial state", func(t *testing.T) {
		mockFactory, mockUoW, mockUserRepo, mockVaultRepo := newSubscriptionServiceMocks()
		svc := NewSubscriptionService(mockFactory, 1000).(*subscriptionService)
		svc.now = func() time.Time { return now }

		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Rollback").Return(nil)

		mockUserRepo.On("GetByID", ctx, int64(1)).Return(&models.User{ID: 1, Balance: 999}, nil)

		err := svc.PayAccessFee(ctx, 1)
		assert.ErrorIs(t, err, ErrInsufficientFunds)
		mockUserRepo.AssertNotCalled(t, "DeductBalance")
		mockUserRepo.AssertNotCalled(t, "SetSubExpiry")
		mockVaultRepo.AssertNotCalled(t, "AddSubFee")
		mockUoW.AssertNotCalled(t, "Commit")
	})

	t.Run("unknown user", func(t *testing.T) {
		mockFactory, mockUoW, mockUserRepo, _ := newSubscriptionServiceMocks()
		svc := NewSubscriptionService(mockFactory, 1000)

		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Rollback").Return(nil)

		mockUserRepo.On("GetByID", ctx, int64(404)).Return(nil, nil)

		err := svc.PayAccessFee(ctx, 404)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
