package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/ledger"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/rentledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCommissionRepository implements ledger.CommissionRepository using GORM
type GormCommissionRepository struct {
	db *gorm.DB
}

// NewGormCommissionRepository creates a new GormCommissionRepository
func NewGormCommissionRepository(db *gorm.DB) *GormCommissionRepository {
	return &GormCommissionRepository{db: db}
}

// FindByID finds a commission record by its ID. Returns nil when none exists.
func (r *GormCommissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.CommissionRecord, error) {
	var model models.CommissionRecordModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPeriod finds the commission record for a billing period.
// Returns nil when the period has no record yet.
func (r *GormCommissionRepository) FindByPeriod(ctx context.Context, period ledger.Period) (*ledger.CommissionRecord, error) {
	var model models.CommissionRecordModel
	if err := r.db.WithContext(ctx).
		Where("year = ? AND month = ?", period.Year, int(period.Month)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByYear finds all commission records for a year, January first
func (r *GormCommissionRepository) FindByYear(ctx context.Context, year int) ([]ledger.CommissionRecord, error) {
	var recordModels []models.CommissionRecordModel
	if err := r.db.WithContext(ctx).
		Where("year = ?", year).
		Order("month ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]ledger.CommissionRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records, nil
}

// Save creates or updates a commission record
func (r *GormCommissionRepository) Save(ctx context.Context, record *ledger.CommissionRecord) error {
	model := models.CommissionRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking
func (r *GormCommissionRepository) SaveWithLock(ctx context.Context, record *ledger.CommissionRecord) error {
	model := models.CommissionRecordModelFromDomain(record)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", record.ID, record.Version-1).
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

// Delete removes a commission record
func (r *GormCommissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CommissionRecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
