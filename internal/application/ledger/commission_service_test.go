package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/rentledger/backend/internal/domain/leasing"
	"github.com/rentledger/backend/internal/domain/ledger"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type commissionFixture struct {
	recordRepo     *MockPaymentRecordRepository
	commissionRepo *MockCommissionRepository
	tenantRepo     *MockTenantRepository
	propertyRepo   *MockPropertyRepository
	service        *CommissionService
	tenant         *leasing.Tenant
	property       *leasing.Property
}

func newCommissionFixture(t *testing.T) *commissionFixture {
	f := &commissionFixture{
		recordRepo:     new(MockPaymentRecordRepository),
		commissionRepo: new(MockCommissionRepository),
		tenantRepo:     new(MockTenantRepository),
		propertyRepo:   new(MockPropertyRepository),
	}
	f.service = NewCommissionService(f.recordRepo, f.commissionRepo, f.tenantRepo, f.propertyRepo, zap.NewNop())

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	property, err := leasing.NewProperty("Depto 2C", "Av. Norte 30", decimal.NewFromInt(1000))
	require.NoError(t, err)
	tenant, err := leasing.NewTenant("Jorge Salas", start, false)
	require.NoError(t, err)
	require.NoError(t, tenant.AssignProperty(property.ID))
	require.NoError(t, property.Occupy(tenant.ID))

	f.tenant = tenant
	f.property = property
	return f
}

func (f *commissionFixture) settledMarchRecord(t *testing.T) ledger.PaymentRecord {
	record, err := ledger.NewPaymentRecord(f.tenant.ID, f.property.ID,
		ledger.Period{Year: 2024, Month: time.March}, decimal.NewFromInt(1000))
	require.NoError(t, err)
	_, err = record.AddInstallment(decimal.NewFromInt(1000),
		time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC), ledger.OriginManual, "")
	require.NoError(t, err)
	return *record
}

func TestCommissionService_ComputeMonthly_Complete(t *testing.T) {
	f := newCommissionFixture(t)
	ctx := context.Background()
	march := ledger.Period{Year: 2024, Month: time.March}
	record := f.settledMarchRecord(t)

	f.recordRepo.On("FindSettled", ctx).Return([]ledger.PaymentRecord{record}, nil)
	f.propertyRepo.On("FindByState", ctx, leasing.PropertyStateOccupied).Return([]leasing.Property{*f.property}, nil)
	f.tenantRepo.On("FindByProperty", ctx, f.property.ID).Return(f.tenant, nil)
	f.recordRepo.On("FindByTenantPeriod", ctx, f.tenant.ID, march).Return(&record, nil)
	f.commissionRepo.On("FindByPeriod", ctx, march).Return(nil, nil)

	report, err := f.service.ComputeMonthly(ctx, march)
	require.NoError(t, err)

	assert.True(t, report.Complete)
	assert.Empty(t, report.Pending)
	assert.False(t, report.Collected)
	assert.True(t, report.Summary.Commission.Equal(decimal.NewFromInt(100)))
}

func TestCommissionService_ComputeMonthly_ReportsPending(t *testing.T) {
	f := newCommissionFixture(t)
	ctx := context.Background()
	march := ledger.Period{Year: 2024, Month: time.March}

	f.recordRepo.On("FindSettled", ctx).Return([]ledger.PaymentRecord{}, nil)
	f.propertyRepo.On("FindByState", ctx, leasing.PropertyStateOccupied).Return([]leasing.Property{*f.property}, nil)
	f.tenantRepo.On("FindByProperty", ctx, f.property.ID).Return(f.tenant, nil)
	f.recordRepo.On("FindByTenantPeriod", ctx, f.tenant.ID, march).Return(nil, nil)
	f.commissionRepo.On("FindByPeriod", ctx, march).Return(nil, nil)

	report, err := f.service.ComputeMonthly(ctx, march)
	require.NoError(t, err)

	assert.False(t, report.Complete)
	require.Len(t, report.Pending, 1)
	assert.Equal(t, f.tenant.ID, report.Pending[0].TenantID)
	assert.True(t, report.Summary.Commission.IsZero())
}

func TestCommissionService_SetCollected_GatedOnCompleteness(t *testing.T) {
	f := newCommissionFixture(t)
	ctx := context.Background()
	march := ledger.Period{Year: 2024, Month: time.March}

	f.commissionRepo.On("FindByPeriod", ctx, march).Return(nil, nil)
	f.propertyRepo.On("FindByState", ctx, leasing.PropertyStateOccupied).Return([]leasing.Property{*f.property}, nil)
	f.tenantRepo.On("FindByProperty", ctx, f.property.ID).Return(f.tenant, nil)
	f.recordRepo.On("FindByTenantPeriod", ctx, f.tenant.ID, march).Return(nil, nil)

	_, err := f.service.SetCollected(ctx, march, true)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	f.commissionRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCommissionService_SetCollected_CreatesRecordWhenComplete(t *testing.T) {
	f := newCommissionFixture(t)
	ctx := context.Background()
	march := ledger.Period{Year: 2024, Month: time.March}
	record := f.settledMarchRecord(t)

	f.commissionRepo.On("FindByPeriod", ctx, march).Return(nil, nil)
	f.propertyRepo.On("FindByState", ctx, leasing.PropertyStateOccupied).Return([]leasing.Property{*f.property}, nil)
	f.tenantRepo.On("FindByProperty", ctx, f.property.ID).Return(f.tenant, nil)
	f.recordRepo.On("FindByTenantPeriod", ctx, f.tenant.ID, march).Return(&record, nil)
	f.recordRepo.On("FindSettled", ctx).Return([]ledger.PaymentRecord{record}, nil)
	f.commissionRepo.On("Save", ctx, mock.AnythingOfType("*ledger.CommissionRecord")).Return(nil)

	saved, err := f.service.SetCollected(ctx, march, true)
	require.NoError(t, err)

	assert.True(t, saved.Collected)
	assert.True(t, saved.Amount.Equal(decimal.NewFromInt(100)))
	f.commissionRepo.AssertExpectations(t)
}

func TestCommissionService_SetCollected_UncollectNeedsRecord(t *testing.T) {
	f := newCommissionFixture(t)
	ctx := context.Background()
	march := ledger.Period{Year: 2024, Month: time.March}

	f.commissionRepo.On("FindByPeriod", ctx, march).Return(nil, nil)

	_, err := f.service.SetCollected(ctx, march, false)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCommissionService_SetCollected_Uncollect(t *testing.T) {
	f := newCommissionFixture(t)
	ctx := context.Background()
	march := ledger.Period{Year: 2024, Month: time.March}

	existing, err := ledger.NewCommissionRecord(march, decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NoError(t, existing.MarkCollected(time.Now()))

	f.commissionRepo.On("FindByPeriod", ctx, march).Return(existing, nil)
	f.commissionRepo.On("SaveWithLock", ctx, existing).Return(nil)

	saved, err := f.service.SetCollected(ctx, march, false)
	require.NoError(t, err)
	assert.False(t, saved.Collected)
}
