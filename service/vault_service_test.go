package service

import (
	"context"
	"testing"

	"redblack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVaultServiceMocks() (*MockUnitOfWorkFactory, *MockUnitOfWork, *MockUserRepository, *MockVaultRepository) {
	mockFactory := new(MockUnitOfWorkFactory)
	mockUoW := new(MockUnitOfWork)
	mockUserRepo := new(MockUserRepository)
	mockVaultRepo := new(MockVaultRepository)
	mockUoW.SetRepositories(mockUserRepo, new(MockGameRepository), mockVaultRepo, new(MockTransactionRepository))
	mockFactory.On("Create").Return(mockUoW)
	return mockFactory, mockUoW, mockUserRepo, mockVaultRepo
}

func TestVaultService_Sweep(t *testing.T) {
	ctx := context.Background()

	t.Run("credits admin and resets both totals", func(t *testing.T) {
		mockFactory, mockUoW, mockUserRepo, mockVaultRepo := newVaultServiceMocks()
		svc := NewVaultService(mockFactory)

		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Commit").Return(nil)
		mockUoW.On("Rollback").Return(nil)

		mockUserRepo.On("GetByID", ctx, int64(9)).Return(&models.User{ID: 9, IsAdmin: true}, nil)
		mockVaultRepo.On("GetForUpdate", ctx).Return(&models.Vault{ID: 1, CommissionBalance: 1200, SubBalance: 3000}, nil)
		mockUserRepo.On("AddBalance", ctx, int64(9), int64(4200)).Return(nil)
		mockVaultRepo.On("Reset", ctx).Return(nil)

		total, err := svc.Sweep(ctx, 9)
		require.NoError(t, err)
		assert.Equal(t, int64(4200), total)
		mockVaultRepo.AssertExpectations(t)
	})

	t.Run("empty vault sweeps zero without a balance credit", func(t *testing.T) {
		mockFactory, mockUoW, mockUserRepo, mockVaultRepo := newVaultServiceMocks()
		svc := NewVaultService(mockFactory)

		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Commit").Return(nil)
		mockUoW.On("Rollback").Return(nil)

		mockUserRepo.On("GetByID", ctx, int64(9)).Return(&models.User{ID: 9, IsAdmin: true}, nil)
		mockVaultRepo.On("GetForUpdate", ctx).Return(&models.Vault{ID: 1}, nil)

		total, err := svc.Sweep(ctx, 9)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		mockUserRepo.AssertNotCalled(t, "AddBalance")
		mockVaultRepo.AssertNotCalled(t, "Reset")
	})

	t.Run("non-admin is rejected", func(t *testing.T) {
		mockFactory, mockUoW, mockUserRepo, mockVaultRepo := newVaultServiceMocks()
		svc := NewVaultService(mockFactory)

		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Rollback").Return(nil)

		mockUserRepo.On("GetByID", ctx, int64(2)).Return(&models.User{ID: 2}, nil)

		_, err := svc.Sweep(ctx, 2)
		assert.ErrorIs(t, err, ErrPermissionDenied)
		mockVaultRepo.AssertNotCalled(t, "GetForUpdate")
		mockUoW.AssertNotCalled(t, "Commit")
	})
}

func TestVaultService_Totals(t *testing.T) {
	ctx := context.Background()

	mockFactory, mockUoW, _, mockVaultRepo := newVaultServiceMocks()
	svc := NewVaultService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockVaultRepo.On("Get", ctx).Return(&models.Vault{ID: 1, CommissionBalance: 200, SubBalance: 1000}, nil)

	vault, err := svc.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), vault.Total())
}
