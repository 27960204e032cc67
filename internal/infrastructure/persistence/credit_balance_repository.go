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

// GormCreditBalanceRepository implements ledger.CreditBalanceRepository using GORM
type GormCreditBalanceRepository struct {
	db *gorm.DB
}

// NewGormCreditBalanceRepository creates a new GormCreditBalanceRepository
func NewGormCreditBalanceRepository(db *gorm.DB) *GormCreditBalanceRepository {
	return &GormCreditBalanceRepository{db: db}
}

// FindByID finds a credit balance by its ID. Returns nil when none exists.
func (r *GormCreditBalanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.CreditBalance, error) {
	var model models.CreditBalanceModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTenant finds every credit entry for a tenant, newest first
func (r *GormCreditBalanceRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]ledger.CreditBalance, error) {
	var creditModels []models.CreditBalanceModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&creditModels).Error; err != nil {
		return nil, err
	}
	return toDomainCredits(creditModels), nil
}

// FindActiveByTenant finds the tenant's credits that still hold a balance
func (r *GormCreditBalanceRepository) FindActiveByTenant(ctx context.Context, tenantID uuid.UUID) ([]ledger.CreditBalance, error) {
	var creditModels []models.CreditBalanceModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND remaining_amount > 0", tenantID).
		Order("created_at ASC").
		Find(&creditModels).Error; err != nil {
		return nil, err
	}
	return toDomainCredits(creditModels), nil
}

// Save creates or updates a credit balance
func (r *GormCreditBalanceRepository) Save(ctx context.Context, credit *ledger.CreditBalance) error {
	model := models.CreditBalanceModelFromDomain(credit)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking
func (r *GormCreditBalanceRepository) SaveWithLock(ctx context.Context, credit *ledger.CreditBalance) error {
	model := models.CreditBalanceModelFromDomain(credit)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", credit.ID, credit.Version-1).
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

// Delete removes a credit balance
func (r *GormCreditBalanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CreditBalanceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainCredits(creditModels []models.CreditBalanceModel) []ledger.CreditBalance {
	credits := make([]ledger.CreditBalance, len(creditModels))
	for i, model := range creditModels {
		credits[i] = *model.ToDomain()
	}
	return credits
}
