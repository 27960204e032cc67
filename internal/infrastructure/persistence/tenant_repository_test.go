package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/leasing"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/rentledger/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLeasingTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.TenantModel{},
		&models.PropertyModel{},
		&models.FurnitureItemModel{},
	)
	require.NoError(t, err)

	return db
}

func newActiveTenant(t *testing.T, name string) *leasing.Tenant {
	t.Helper()
	tenant, err := leasing.NewTenant(name, time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), true)
	require.NoError(t, err)
	return tenant
}

func TestGormTenantRepository_SaveAndFindByID(t *testing.T) {
	db := setupLeasingTestDB(t)
	repo := NewGormTenantRepository(db)
	ctx := context.Background()

	t.Run("round-trips a tenant with services", func(t *testing.T) {
		tenant := newActiveTenant(t, "Laura Mendoza")
		require.NoError(t, tenant.AddService("agua", decimal.NewFromInt(150)))
		require.NoError(t, repo.Save(ctx, tenant))

		found, err := repo.FindByID(ctx, tenant.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Laura Mendoza", found.Name)
		assert.Equal(t, 15, found.BillingAnchorDay())
		require.Len(t, found.Services, 1)
		assert.Equal(t, "agua", found.Services[0].Type)
	})

	t.Run("returns nil for unknown ID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestGormTenantRepository_FindActive(t *testing.T) {
	db := setupLeasingTestDB(t)
	repo := NewGormTenantRepository(db)
	ctx := context.Background()

	active := newActiveTenant(t, "Carlos Ruiz")
	require.NoError(t, repo.Save(ctx, active))

	vacated := newActiveTenant(t, "Ana Torres")
	require.NoError(t, vacated.Vacate(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, repo.Save(ctx, vacated))

	tenants, err := repo.FindActive(ctx)
	require.NoError(t, err)
	require.Len(t, tenants, 1)
	assert.Equal(t, active.ID, tenants[0].ID)
}

func TestGormTenantRepository_FindByProperty(t *testing.T) {
	db := setupLeasingTestDB(t)
	repo := NewGormTenantRepository(db)
	ctx := context.Background()
	propertyID := uuid.New()

	tenant := newActiveTenant(t, "Laura Mendoza")
	require.NoError(t, tenant.AssignProperty(propertyID))
	require.NoError(t, repo.Save(ctx, tenant))

	t.Run("finds the occupant", func(t *testing.T) {
		found, err := repo.FindByProperty(ctx, propertyID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, tenant.ID, found.ID)
	})

	t.Run("returns nil for a vacant property", func(t *testing.T) {
		found, err := repo.FindByProperty(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestGormTenantRepository_SaveWithLock(t *testing.T) {
	db := setupLeasingTestDB(t)
	repo := NewGormTenantRepository(db)
	ctx := context.Background()

	tenant := newActiveTenant(t, "Carlos Ruiz")
	require.NoError(t, repo.Save(ctx, tenant))

	require.NoError(t, tenant.AssignProperty(uuid.New()))
	require.NoError(t, repo.SaveWithLock(ctx, tenant))

	// Replaying the same version must fail.
	err := repo.SaveWithLock(ctx, tenant)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "OPTIMISTIC_LOCK_ERROR", domainErr.Code)
}
