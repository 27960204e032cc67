package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/leasing"
	"github.com/rentledger/backend/internal/domain/ledger"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockPaymentRecordRepository struct {
	mock.Mock
}

func (m *MockPaymentRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.PaymentRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRecordRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]ledger.PaymentRecord, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]ledger.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRecordRepository) FindByTenantPeriod(ctx context.Context, tenantID uuid.UUID, period ledger.Period) (*ledger.PaymentRecord, error) {
	args := m.Called(ctx, tenantID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRecordRepository) FindByPeriod(ctx context.Context, period ledger.Period) ([]ledger.PaymentRecord, error) {
	args := m.Called(ctx, period)
	return args.Get(0).([]ledger.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRecordRepository) FindOutstandingByTenant(ctx context.Context, tenantID uuid.UUID) ([]ledger.PaymentRecord, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]ledger.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRecordRepository) FindSettled(ctx context.Context) ([]ledger.PaymentRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]ledger.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRecordRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[ledger.PaymentRecord], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[ledger.PaymentRecord]), args.Error(1)
}

func (m *MockPaymentRecordRepository) Save(ctx context.Context, record *ledger.PaymentRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockPaymentRecordRepository) SaveWithLock(ctx context.Context, record *ledger.PaymentRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockPaymentRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCreditBalanceRepository struct {
	mock.Mock
}

func (m *MockCreditBalanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.CreditBalance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.CreditBalance), args.Error(1)
}

func (m *MockCreditBalanceRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]ledger.CreditBalance, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]ledger.CreditBalance), args.Error(1)
}

func (m *MockCreditBalanceRepository) FindActiveByTenant(ctx context.Context, tenantID uuid.UUID) ([]ledger.CreditBalance, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]ledger.CreditBalance), args.Error(1)
}

func (m *MockCreditBalanceRepository) Save(ctx context.Context, credit *ledger.CreditBalance) error {
	args := m.Called(ctx, credit)
	return args.Error(0)
}

func (m *MockCreditBalanceRepository) SaveWithLock(ctx context.Context, credit *ledger.CreditBalance) error {
	args := m.Called(ctx, credit)
	return args.Error(0)
}

func (m *MockCreditBalanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCommissionRepository struct {
	mock.Mock
}

func (m *MockCommissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.CommissionRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.CommissionRecord), args.Error(1)
}

func (m *MockCommissionRepository) FindByPeriod(ctx context.Context, period ledger.Period) (*ledger.CommissionRecord, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.CommissionRecord), args.Error(1)
}

func (m *MockCommissionRepository) FindByYear(ctx context.Context, year int) ([]ledger.CommissionRecord, error) {
	args := m.Called(ctx, year)
	return args.Get(0).([]ledger.CommissionRecord), args.Error(1)
}

func (m *MockCommissionRepository) Save(ctx context.Context, record *ledger.CommissionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockCommissionRepository) SaveWithLock(ctx context.Context, record *ledger.CommissionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockCommissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

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

type MockFurnitureRepository struct {
	mock.Mock
}

func (m *MockFurnitureRepository) FindByID(ctx context.Context, id uuid.UUID) (*leasing.FurnitureItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.FurnitureItem), args.Error(1)
}

func (m *MockFurnitureRepository) FindAll(ctx context.Context, filter shared.Filter) ([]leasing.FurnitureItem, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]leasing.FurnitureItem), args.Error(1)
}

func (m *MockFurnitureRepository) FindAssignedTo(ctx context.Context, tenantID uuid.UUID) ([]leasing.FurnitureItem, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]leasing.FurnitureItem), args.Error(1)
}

func (m *MockFurnitureRepository) Save(ctx context.Context, item *leasing.FurnitureItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockFurnitureRepository) SaveWithLock(ctx context.Context, item *leasing.FurnitureItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockFurnitureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
