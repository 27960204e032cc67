package ledger

import (
	"testing"
	"time"

	"github.com/rentledger/backend/internal/domain/leasing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObligationResolver_AllCategories(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	tenant, property := createOccupiedTenant(t, start)
	require.NoError(t, tenant.AddService("Luz", decimal.NewFromInt(200)))

	mesa, err := leasing.NewFurnitureItem("Mesa", decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NoError(t, mesa.AssignTo(tenant.ID, 1))
	silla, err := leasing.NewFurnitureItem("Silla", decimal.NewFromInt(50))
	require.NoError(t, err)
	require.NoError(t, silla.AssignTo(tenant.ID, 4))

	set := NewObligationResolver().Resolve(tenant, property,
		[]leasing.FurnitureItem{*mesa, *silla}, Period{Year: 2024, Month: time.March})

	rent, ok := set.Rent()
	require.True(t, ok)
	assert.True(t, rent.Equal(decimal.NewFromInt(1000)))

	services := set.Services()
	require.Len(t, services, 1)
	assert.Equal(t, "luz", services[0].ServiceType)

	// Furniture is a single aggregate line: 100 + 4x50
	furniture, ok := set.Furniture()
	require.True(t, ok)
	assert.True(t, furniture.Equal(decimal.NewFromInt(300)))

	assert.True(t, set.Total().Equal(decimal.NewFromInt(1500)))
}

func TestObligationResolver_ZeroAmountsEmitNothing(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	tenant, err := leasing.NewTenant("Luis Rojas", start, true)
	require.NoError(t, err)

	set := NewObligationResolver().Resolve(tenant, nil, nil, Period{Year: 2024, Month: time.March})
	assert.True(t, set.IsEmpty())
	assert.True(t, set.Total().IsZero())
}

func TestObligationResolver_ServicesSkippedWhenNotContracted(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	property, err := leasing.NewProperty("Casa 2", "Calle Norte 5", decimal.NewFromInt(800))
	require.NoError(t, err)

	// Tenant does not pay services, so contracted entries stay out
	tenant, err := leasing.NewTenant("Marta Pineda", start, false)
	require.NoError(t, err)
	require.NoError(t, tenant.AddService("luz", decimal.NewFromInt(200)))

	set := NewObligationResolver().Resolve(tenant, property, nil, Period{Year: 2024, Month: time.March})
	assert.Empty(t, set.Services())
	assert.True(t, set.Total().Equal(decimal.NewFromInt(800)))
}

func TestObligationResolver_UnassignedFurnitureExcluded(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	tenant, property := createOccupiedTenant(t, start)

	mesa, err := leasing.NewFurnitureItem("Mesa", decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NoError(t, mesa.AssignTo(tenant.ID, 1))
	require.NoError(t, mesa.Unassign(tenant.ID))

	set := NewObligationResolver().Resolve(tenant, property, []leasing.FurnitureItem{*mesa}, Period{Year: 2024, Month: time.March})
	_, ok := set.Furniture()
	assert.False(t, ok)
}
