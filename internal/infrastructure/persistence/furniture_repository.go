package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/leasing"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/rentledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormFurnitureRepository implements leasing.FurnitureRepository using GORM
type GormFurnitureRepository struct {
	db *gorm.DB
}

// NewGormFurnitureRepository creates a new GormFurnitureRepository
func NewGormFurnitureRepository(db *gorm.DB) *GormFurnitureRepository {
	return &GormFurnitureRepository{db: db}
}

// FindByID finds a furniture item by its ID. Returns nil when no item exists.
func (r *GormFurnitureRepository) FindByID(ctx context.Context, id uuid.UUID) (*leasing.FurnitureItem, error) {
	var model models.FurnitureItemModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all furniture items matching the filter
func (r *GormFurnitureRepository) FindAll(ctx context.Context, filter shared.Filter) ([]leasing.FurnitureItem, error) {
	var itemModels []models.FurnitureItemModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.FurnitureItemModel{}), filter)

	if err := query.Find(&itemModels).Error; err != nil {
		return nil, err
	}

	items := make([]leasing.FurnitureItem, len(itemModels))
	for i, model := range itemModels {
		items[i] = *model.ToDomain()
	}
	return items, nil
}

// FindAssignedTo finds items with an active assignment for the tenant.
// Assignments live inside a JSONB document, so the active check happens
// in memory after a coarse containment scan.
func (r *GormFurnitureRepository) FindAssignedTo(ctx context.Context, tenantID uuid.UUID) ([]leasing.FurnitureItem, error) {
	var itemModels []models.FurnitureItemModel
	if err := r.db.WithContext(ctx).
		Where("assignments LIKE ?", "%"+tenantID.String()+"%").
		Order("name ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}

	items := make([]leasing.FurnitureItem, 0, len(itemModels))
	for _, model := range itemModels {
		item := model.ToDomain()
		if item.HasActiveAssignment(tenantID) {
			items = append(items, *item)
		}
	}
	return items, nil
}

// Save creates or updates a furniture item
func (r *GormFurnitureRepository) Save(ctx context.Context, item *leasing.FurnitureItem) error {
	model := models.FurnitureItemModelFromDomain(item)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking
func (r *GormFurnitureRepository) SaveWithLock(ctx context.Context, item *leasing.FurnitureItem) error {
	model := models.FurnitureItemModelFromDomain(item)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", item.ID, item.Version-1).
		Select("*").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The record has been modified by another transaction")
	}
	return nil
}

// Delete removes a furniture item
func (r *GormFurnitureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FurnitureItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormFurnitureRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, FurnitureSortFields, "name")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}
