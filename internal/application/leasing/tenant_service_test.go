package leasing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/leasing"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*leasing.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]leasing.Tenant, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]leasing.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindActive(ctx context.Context) ([]leasing.Tenant, error) {
	args := m.Called(ctx)
	return args.Get(0).([]leasing.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) (*leasing.Tenant, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *leasing.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) SaveWithLock(ctx context.Context, tenant *leasing.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*leasing.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]leasing.Property, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]leasing.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindByState(ctx context.Context, state leasing.PropertyState) ([]leasing.Property, error) {
	args := m.Called(ctx, state)
	return args.Get(0).([]leasing.Property), args.Error(1)
}

func (m *MockPropertyRepository) Save(ctx context.Context, property *leasing.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) SaveWithLock(ctx context.Context, property *leasing.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =============================================================================
// TenantService Tests
// =============================================================================

func TestTenantService_Register_WithProperty(t *testing.T) {
	tenantRepo := new(MockTenantRepository)
	propertyRepo := new(MockPropertyRepository)
	service := NewTenantService(tenantRepo, propertyRepo, zap.NewNop())

	ctx := context.Background()
	property, err := leasing.NewProperty("Casa 7", "Privada del Sol 7", decimal.NewFromInt(1500))
	require.NoError(t, err)

	propertyRepo.On("FindByID", ctx, property.ID).Return(property, nil)
	propertyRepo.On("SaveWithLock", ctx, property).Return(nil)
	tenantRepo.On("Save", ctx, mock.AnythingOfType("*leasing.Tenant")).Return(nil)

	tenant, err := service.Register(ctx, RegisterTenantRequest{
		Name:           "Daniel Ortega",
		OccupancyStart: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		PaysServices:   true,
		PropertyID:     &property.ID,
	})
	require.NoError(t, err)

	require.NotNil(t, tenant.PropertyID)
	assert.Equal(t, property.ID, *tenant.PropertyID)
	assert.True(t, property.IsOccupied())
	tenantRepo.AssertExpectations(t)
	propertyRepo.AssertExpectations(t)
}

func TestTenantService_Register_OccupiedPropertyRejected(t *testing.T) {
	tenantRepo := new(MockTenantRepository)
	propertyRepo := new(MockPropertyRepository)
	service := NewTenantService(tenantRepo, propertyRepo, zap.NewNop())

	ctx := context.Background()
	property, err := leasing.NewProperty("Casa 8", "Privada del Sol 8", decimal.NewFromInt(1500))
	require.NoError(t, err)
	require.NoError(t, property.Occupy(uuid.New()))

	propertyRepo.On("FindByID", ctx, property.ID).Return(property, nil)

	_, err = service.Register(ctx, RegisterTenantRequest{
		Name:           "Sofía Lara",
		OccupancyStart: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		PropertyID:     &property.ID,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	tenantRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestTenantService_Vacate_ReleasesProperty(t *testing.T) {
	tenantRepo := new(MockTenantRepository)
	propertyRepo := new(MockPropertyRepository)
	service := NewTenantService(tenantRepo, propertyRepo, zap.NewNop())

	ctx := context.Background()
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	property, err := leasing.NewProperty("Casa 9", "Privada del Sol 9", decimal.NewFromInt(1500))
	require.NoError(t, err)
	tenant, err := leasing.NewTenant("Martín Cano", start, false)
	require.NoError(t, err)
	require.NoError(t, tenant.AssignProperty(property.ID))
	require.NoError(t, property.Occupy(tenant.ID))

	tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
	propertyRepo.On("FindByID", ctx, property.ID).Return(property, nil)
	propertyRepo.On("SaveWithLock", ctx, property).Return(nil)
	tenantRepo.On("SaveWithLock", ctx, tenant).Return(nil)

	err = service.Vacate(ctx, tenant.ID, time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.False(t, tenant.Active)
	assert.Equal(t, leasing.PropertyStateAvailable, property.State)
	assert.Nil(t, property.TenantID)
	propertyRepo.AssertExpectations(t)
}

func TestTenantService_Vacate_UnknownTenant(t *testing.T) {
	tenantRepo := new(MockTenantRepository)
	service := NewTenantService(tenantRepo, new(MockPropertyRepository), zap.NewNop())

	ctx := context.Background()
	missing := uuid.New()
	tenantRepo.On("FindByID", ctx, missing).Return(nil, nil)

	err := service.Vacate(ctx, missing, time.Now())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
