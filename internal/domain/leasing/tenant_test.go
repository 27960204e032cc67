package leasing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func createTestTenant(t *testing.T) *Tenant {
	start := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	tenant, err := NewTenant("Carlos Jiménez", start, true)
	require.NoError(t, err)
	return tenant
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Code
}

// ============================================
// Tenant Creation Tests
// ============================================

func TestNewTenant(t *testing.T) {
	tenant := createTestTenant(t)

	assert.True(t, tenant.Active)
	assert.Equal(t, 15, tenant.BillingAnchorDay())
	assert.Nil(t, tenant.PropertyID)
	assert.Nil(t, tenant.VacatedAt)
	assert.Len(t, tenant.GetDomainEvents(), 1)
}

func TestNewTenant_Invalid(t *testing.T) {
	start := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	_, err := NewTenant("  ", start, true)
	assert.Equal(t, "INVALID_NAME", domainCode(t, err))

	_, err = NewTenant("Carlos", time.Time{}, true)
	assert.Equal(t, "INVALID_OCCUPANCY_DATE", domainCode(t, err))
}

// ============================================
// Occupancy Lifecycle Tests
// ============================================

func TestTenant_Vacate(t *testing.T) {
	tenant := createTestTenant(t)
	propertyID := uuid.New()
	require.NoError(t, tenant.AssignProperty(propertyID))

	vacateDate := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
	require.NoError(t, tenant.Vacate(vacateDate))

	assert.False(t, tenant.Active)
	assert.Nil(t, tenant.PropertyID)
	require.NotNil(t, tenant.VacatedAt)
	assert.Equal(t, vacateDate, *tenant.VacatedAt)

	// Vacating twice is an error
	err := tenant.Vacate(vacateDate)
	assert.Equal(t, "INVALID_STATE", domainCode(t, err))
}

func TestTenant_Vacate_BeforeOccupancyStart(t *testing.T) {
	tenant := createTestTenant(t)
	err := tenant.Vacate(time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "INVALID_VACATE_DATE", domainCode(t, err))
	assert.True(t, tenant.Active)
}

func TestTenant_SetOccupancyStart_RequiresReason(t *testing.T) {
	tenant := createTestTenant(t)
	newStart := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	err := tenant.SetOccupancyStart(newStart, "")
	assert.Equal(t, "INVALID_REASON", domainCode(t, err))

	require.NoError(t, tenant.SetOccupancyStart(newStart, "contract renegotiated"))
	assert.Equal(t, newStart, tenant.OccupancyStart)
	assert.Equal(t, 1, tenant.BillingAnchorDay())
}

func TestTenant_OccupancyEnd(t *testing.T) {
	tenant := createTestTenant(t)
	now := time.Date(2024, time.August, 10, 0, 0, 0, 0, time.UTC)

	// Still occupied: the reference instant bounds the span
	assert.Equal(t, now, tenant.OccupancyEnd(now))

	vacateDate := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
	require.NoError(t, tenant.Vacate(vacateDate))
	assert.Equal(t, vacateDate, tenant.OccupancyEnd(now))
}

// ============================================
// Contracted Services Tests
// ============================================

func TestTenant_Services(t *testing.T) {
	tenant := createTestTenant(t)

	require.NoError(t, tenant.AddService("luz", decimal.NewFromInt(200)))
	require.NoError(t, tenant.AddService("agua", decimal.NewFromInt(100)))
	assert.Len(t, tenant.BillableServices(), 2)

	// Re-adding replaces the amount, case-insensitively
	require.NoError(t, tenant.AddService("Luz", decimal.NewFromInt(250)))
	billable := tenant.BillableServices()
	require.Len(t, billable, 2)
	for _, s := range billable {
		if s.Type == "luz" {
			assert.True(t, s.MonthlyAmount.Equal(decimal.NewFromInt(250)))
		}
	}

	require.NoError(t, tenant.RemoveService("agua"))
	assert.Len(t, tenant.BillableServices(), 1)
	assert.ErrorIs(t, tenant.RemoveService("gas"), shared.ErrNotFound)
}

func TestTenant_AddService_Invalid(t *testing.T) {
	tenant := createTestTenant(t)

	err := tenant.AddService("", decimal.NewFromInt(100))
	assert.Equal(t, "INVALID_SERVICE", domainCode(t, err))

	err = tenant.AddService("luz", decimal.Zero)
	assert.Equal(t, "INVALID_AMOUNT", domainCode(t, err))
}

func TestTenant_BillableServices_OffWhenNotPaying(t *testing.T) {
	start := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	tenant, err := NewTenant("Rosa Aguilar", start, false)
	require.NoError(t, err)
	require.NoError(t, tenant.AddService("luz", decimal.NewFromInt(200)))

	assert.Nil(t, tenant.BillableServices())
}
