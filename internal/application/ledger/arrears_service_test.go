package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/leasing"
	"github.com/rentledger/backend/internal/domain/ledger"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestArrearsService_ComputeForTenantAt(t *testing.T) {
	tenantRepo := new(MockTenantRepository)
	propertyRepo := new(MockPropertyRepository)
	furnitureRepo := new(MockFurnitureRepository)
	recordRepo := new(MockPaymentRecordRepository)
	service := NewArrearsService(tenantRepo, propertyRepo, furnitureRepo, recordRepo, zap.NewNop())

	ctx := context.Background()
	start := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	property, err := leasing.NewProperty("Depto 4D", "Calle Oriente 12", decimal.NewFromInt(1000))
	require.NoError(t, err)
	tenant, err := leasing.NewTenant("Paula Reyes", start, false)
	require.NoError(t, err)
	require.NoError(t, tenant.AssignProperty(property.ID))

	record, err := ledger.NewPaymentRecord(tenant.ID, property.ID,
		ledger.Period{Year: 2024, Month: time.January}, decimal.NewFromInt(1000))
	require.NoError(t, err)
	_, err = record.AddInstallment(decimal.NewFromInt(1000), start, ledger.OriginManual, "")
	require.NoError(t, err)

	tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
	propertyRepo.On("FindByID", ctx, property.ID).Return(property, nil)
	furnitureRepo.On("FindAssignedTo", ctx, tenant.ID).Return([]leasing.FurnitureItem{}, nil)
	recordRepo.On("FindByTenant", ctx, tenant.ID).Return([]ledger.PaymentRecord{*record}, nil)

	now := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	result, err := service.ComputeForTenantAt(ctx, tenant.ID, now)
	require.NoError(t, err)

	// January is paid; February and March remain
	require.Len(t, result.Periods, 2)
	assert.Equal(t, "2024-02", result.Periods[0].Period.Key())
	assert.Equal(t, "2024-03", result.Periods[1].Period.Key())
	assert.True(t, result.RentTotal.Equal(decimal.NewFromInt(2000)))
}

func TestArrearsService_ComputeForTenant_NotFound(t *testing.T) {
	tenantRepo := new(MockTenantRepository)
	service := NewArrearsService(tenantRepo, new(MockPropertyRepository),
		new(MockFurnitureRepository), new(MockPaymentRecordRepository), zap.NewNop())

	ctx := context.Background()
	missing := uuid.New()
	tenantRepo.On("FindByID", ctx, missing).Return(nil, nil)

	_, err := service.ComputeForTenant(ctx, missing)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
