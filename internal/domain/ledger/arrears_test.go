package ledger

import (
	"testing"
	"time"

	"github.com/rentledger/backend/internal/domain/leasing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers

func createOccupiedTenant(t *testing.T, occupancyStart time.Time) (*leasing.Tenant, *leasing.Property) {
	property, err := leasing.NewProperty("Depto 3B", "Av. Reforma 100", decimal.NewFromInt(1000))
	require.NoError(t, err)

	tenant, err := leasing.NewTenant("Laura Mendoza", occupancyStart, true)
	require.NoError(t, err)
	require.NoError(t, tenant.AssignProperty(property.ID))
	require.NoError(t, property.Occupy(tenant.ID))
	return tenant, property
}

func settledRecord(t *testing.T, tenant *leasing.Tenant, property *leasing.Property, period Period, total float64) PaymentRecord {
	record, err := NewPaymentRecord(tenant.ID, property.ID, period, decimal.NewFromFloat(total))
	require.NoError(t, err)
	_, err = record.AddInstallment(decimal.NewFromFloat(total), period.DueDate(tenant.BillingAnchorDay()), OriginManual, "")
	require.NoError(t, err)
	return *record
}

// ============================================
// Calendar Walk Tests
// ============================================

func TestArrearsCalculator_UnpaidMonthsAccrue(t *testing.T) {
	// Moved in January 15th, nothing ever paid, evaluated March 20th:
	// January, February and March are all owed
	start := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	tenant, property := createOccupiedTenant(t, start)

	result, err := NewArrearsCalculator().Compute(ArrearsInput{
		Tenant: tenant, Property: property, Now: now,
	})
	require.NoError(t, err)

	require.Len(t, result.Periods, 3)
	assert.Equal(t, "2024-01", result.Periods[0].Period.Key())
	assert.Equal(t, "2024-02", result.Periods[1].Period.Key())
	assert.Equal(t, "2024-03", result.Periods[2].Period.Key())
	assert.True(t, result.RentTotal.Equal(decimal.NewFromInt(3000)))
	assert.Empty(t, result.Skipped)
}

func TestArrearsCalculator_CurrentMonthWaitsForAnchorDay(t *testing.T) {
	// Anchor day is the 15th; on March 10th the March rent is not yet due
	start := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	tenant, property := createOccupiedTenant(t, start)

	beforeAnchor := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	result, err := NewArrearsCalculator().Compute(ArrearsInput{
		Tenant: tenant, Property: property, Now: beforeAnchor,
	})
	require.NoError(t, err)
	require.Len(t, result.Periods, 2)
	assert.Equal(t, "2024-02", result.Periods[1].Period.Key())

	// On the 15th it becomes due
	onAnchor := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	result, err = NewArrearsCalculator().Compute(ArrearsInput{
		Tenant: tenant, Property: property, Now: onAnchor,
	})
	require.NoError(t, err)
	require.Len(t, result.Periods, 3)
}

func TestArrearsCalculator_SettledPeriodsDropOut(t *testing.T) {
	start := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	tenant, property := createOccupiedTenant(t, start)

	records := []PaymentRecord{
		settledRecord(t, tenant, property, Period{Year: 2024, Month: time.January}, 1000),
		settledRecord(t, tenant, property, Period{Year: 2024, Month: time.February}, 1000),
	}

	result, err := NewArrearsCalculator().Compute(ArrearsInput{
		Tenant: tenant, Property: property, Records: records, Now: now,
	})
	require.NoError(t, err)
	require.Len(t, result.Periods, 1)
	assert.Equal(t, "2024-03", result.Periods[0].Period.Key())
	assert.True(t, result.RentTotal.Equal(decimal.NewFromInt(1000)))
}

func TestArrearsCalculator_PartialPaymentNetsOut(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	tenant, property := createOccupiedTenant(t, start)

	record, err := NewPaymentRecord(tenant.ID, property.ID, Period{Year: 2024, Month: time.March}, decimal.NewFromInt(1000))
	require.NoError(t, err)
	_, err = record.AddInstallment(decimal.NewFromInt(400), now, OriginManual, "")
	require.NoError(t, err)

	result, err := NewArrearsCalculator().Compute(ArrearsInput{
		Tenant: tenant, Property: property, Records: []PaymentRecord{*record}, Now: now,
	})
	require.NoError(t, err)
	require.Len(t, result.Periods, 1)
	assert.True(t, result.Periods[0].RentDue.Equal(decimal.NewFromInt(600)))
}

// ============================================
// Category Tests
// ============================================

func TestArrearsCalculator_ServicesAndFurniture(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	tenant, property := createOccupiedTenant(t, start)
	require.NoError(t, tenant.AddService("luz", decimal.NewFromInt(200)))
	require.NoError(t, tenant.AddService("agua", decimal.NewFromInt(100)))

	sofa, err := leasing.NewFurnitureItem("Sofá", decimal.NewFromInt(150))
	require.NoError(t, err)
	require.NoError(t, sofa.AssignTo(tenant.ID, 2))

	result, err := NewArrearsCalculator().Compute(ArrearsInput{
		Tenant:    tenant,
		Property:  property,
		Furniture: []leasing.FurnitureItem{*sofa},
		Now:       now,
	})
	require.NoError(t, err)

	require.Len(t, result.Periods, 1)
	period := result.Periods[0]
	assert.True(t, period.RentDue.Equal(decimal.NewFromInt(1000)))
	assert.Len(t, period.ServicesDue, 2)
	assert.True(t, period.FurnitureDue.Equal(decimal.NewFromInt(300)))
	assert.True(t, result.ServicesTotal.Equal(decimal.NewFromInt(300)))
	assert.True(t, result.FurnitureTotal.Equal(decimal.NewFromInt(300)))
	assert.True(t, result.GrandTotal().Equal(decimal.NewFromInt(1600)))
}

func TestArrearsCalculator_PaidMarkersClearCategories(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	tenant, property := createOccupiedTenant(t, start)
	require.NoError(t, tenant.AddService("luz", decimal.NewFromInt(200)))

	sofa, err := leasing.NewFurnitureItem("Sofá", decimal.NewFromInt(150))
	require.NoError(t, err)
	require.NoError(t, sofa.AssignTo(tenant.ID, 1))

	record := settledRecord(t, tenant, property, Period{Year: 2024, Month: time.March}, 1000)
	require.NoError(t, record.MarkServicePaid("luz", decimal.NewFromInt(200)))
	require.NoError(t, record.MarkFurniturePaid(decimal.NewFromInt(150)))

	result, err := NewArrearsCalculator().Compute(ArrearsInput{
		Tenant:    tenant,
		Property:  property,
		Furniture: []leasing.FurnitureItem{*sofa},
		Records:   []PaymentRecord{record},
		Now:       now,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Periods)
	assert.True(t, result.GrandTotal().IsZero())
}

func TestArrearsCalculator_ServiceTypeCaseInsensitive(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	tenant, property := createOccupiedTenant(t, start)
	require.NoError(t, tenant.AddService("Luz", decimal.NewFromInt(200)))

	record := settledRecord(t, tenant, property, Period{Year: 2024, Month: time.March}, 1000)
	require.NoError(t, record.MarkServicePaid("Luz", decimal.NewFromInt(200)))

	result, err := NewArrearsCalculator().Compute(ArrearsInput{
		Tenant:   tenant,
		Property: property,
		Records:  []PaymentRecord{record},
		Now:      now,
	})
	require.NoError(t, err)

	// A service contracted and paid as "Luz" must not linger as "luz" debt
	assert.Empty(t, result.Periods)
	assert.True(t, result.ServicesTotal.IsZero())
}

// ============================================
// Overdue and Integrity Tests
// ============================================

func TestArrearsCalculator_VencidoOutsideCalendarStillOwed(t *testing.T) {
	// Occupancy was reset forward, but an old overdue record remains debt
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	tenant, property := createOccupiedTenant(t, start)

	stale, err := NewPaymentRecord(tenant.ID, property.ID, Period{Year: 2023, Month: time.November}, decimal.NewFromInt(900))
	require.NoError(t, err)
	require.NoError(t, stale.RefreshStatus(now, tenant.BillingAnchorDay()))
	require.Equal(t, PaymentStatusVencido, stale.Status)

	result, err := NewArrearsCalculator().Compute(ArrearsInput{
		Tenant: tenant, Property: property, Records: []PaymentRecord{*stale}, Now: now,
	})
	require.NoError(t, err)

	require.Len(t, result.Periods, 2)
	assert.Equal(t, "2023-11", result.Periods[0].Period.Key())
	assert.True(t, result.Periods[0].RentDue.Equal(decimal.NewFromInt(900)))
	assert.Equal(t, "2024-03", result.Periods[1].Period.Key())
}

func TestArrearsCalculator_VencidoPeriodNotDoubleCounted(t *testing.T) {
	start := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	tenant, property := createOccupiedTenant(t, start)

	overdue, err := NewPaymentRecord(tenant.ID, property.ID, Period{Year: 2024, Month: time.February}, decimal.NewFromInt(1000))
	require.NoError(t, err)
	require.NoError(t, overdue.RefreshStatus(now, tenant.BillingAnchorDay()))

	result, err := NewArrearsCalculator().Compute(ArrearsInput{
		Tenant: tenant, Property: property, Records: []PaymentRecord{*overdue}, Now: now,
	})
	require.NoError(t, err)

	require.Len(t, result.Periods, 2)
	assert.True(t, result.RentTotal.Equal(decimal.NewFromInt(2000)))
}

func TestArrearsCalculator_CorruptRecordSkipped(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	tenant, property := createOccupiedTenant(t, start)

	corrupt := settledRecord(t, tenant, property, Period{Year: 2024, Month: time.March}, 1000)
	corrupt.MonthName = "Ventoso"

	result, err := NewArrearsCalculator().Compute(ArrearsInput{
		Tenant: tenant, Property: property, Records: []PaymentRecord{corrupt}, Now: now,
	})
	require.NoError(t, err)

	require.Len(t, result.Skipped, 1)
	assert.Equal(t, corrupt.ID, result.Skipped[0].RecordID)
	// The corrupt record is dropped from aggregation entirely; its period is
	// reported as owed since no healthy record covers it
	require.Len(t, result.Periods, 1)
}

func TestArrearsCalculator_Deterministic(t *testing.T) {
	start := time.Date(2023, time.June, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	tenant, property := createOccupiedTenant(t, start)
	records := []PaymentRecord{
		settledRecord(t, tenant, property, Period{Year: 2023, Month: time.July}, 1000),
		settledRecord(t, tenant, property, Period{Year: 2023, Month: time.October}, 1000),
	}

	input := ArrearsInput{Tenant: tenant, Property: property, Records: records, Now: now}
	first, err := NewArrearsCalculator().Compute(input)
	require.NoError(t, err)
	second, err := NewArrearsCalculator().Compute(input)
	require.NoError(t, err)

	assert.Equal(t, first.Periods, second.Periods)
	assert.True(t, first.GrandTotal().Equal(second.GrandTotal()))
}

func TestArrearsCalculator_RequiresTenant(t *testing.T) {
	_, err := NewArrearsCalculator().Compute(ArrearsInput{Now: time.Now()})
	assert.Equal(t, "INVALID_TENANT", domainCode(t, err))
}
