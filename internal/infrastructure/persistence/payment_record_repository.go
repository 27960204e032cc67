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

// GormPaymentRecordRepository implements ledger.PaymentRecordRepository using GORM
type GormPaymentRecordRepository struct {
	db *gorm.DB
}

// NewGormPaymentRecordRepository creates a new GormPaymentRecordRepository
func NewGormPaymentRecordRepository(db *gorm.DB) *GormPaymentRecordRepository {
	return &GormPaymentRecordRepository{db: db}
}

// FindByID finds a payment record by its ID. Returns nil when no record exists.
func (r *GormPaymentRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.PaymentRecord, error) {
	var model models.PaymentRecordModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTenant finds all payment records for a tenant, oldest first
func (r *GormPaymentRecordRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]ledger.PaymentRecord, error) {
	var recordModels []models.PaymentRecordModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("year ASC, created_at ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toDomainRecords(recordModels), nil
}

// FindByTenantPeriod finds the record for a tenant and billing period.
// Returns nil when the period has no record yet.
func (r *GormPaymentRecordRepository) FindByTenantPeriod(ctx context.Context, tenantID uuid.UUID, period ledger.Period) (*ledger.PaymentRecord, error) {
	var model models.PaymentRecordModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND year = ? AND month_name = ?", tenantID, period.Year, period.MonthName()).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPeriod finds all records opened for a billing period
func (r *GormPaymentRecordRepository) FindByPeriod(ctx context.Context, period ledger.Period) ([]ledger.PaymentRecord, error) {
	var recordModels []models.PaymentRecordModel
	if err := r.db.WithContext(ctx).
		Where("year = ? AND month_name = ?", period.Year, period.MonthName()).
		Order("created_at ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toDomainRecords(recordModels), nil
}

// FindOutstandingByTenant finds the tenant's records that still carry a balance
func (r *GormPaymentRecordRepository) FindOutstandingByTenant(ctx context.Context, tenantID uuid.UUID) ([]ledger.PaymentRecord, error) {
	var recordModels []models.PaymentRecordModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status IN ?", tenantID, []ledger.PaymentStatus{
			ledger.PaymentStatusPendiente,
			ledger.PaymentStatusParcial,
			ledger.PaymentStatusVencido,
		}).
		Order("year ASC, created_at ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toDomainRecords(recordModels), nil
}

// FindSettled finds all fully paid records across tenants
func (r *GormPaymentRecordRepository) FindSettled(ctx context.Context) ([]ledger.PaymentRecord, error) {
	var recordModels []models.PaymentRecordModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", ledger.PaymentStatusPagado).
		Order("year ASC, created_at ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toDomainRecords(recordModels), nil
}

// FindAll finds payment records matching the filter, paginated
func (r *GormPaymentRecordRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[ledger.PaymentRecord], error) {
	var total int64
	countQuery := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.PaymentRecordModel{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.PaymentRecordModel{}), filter)
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, PaymentRecordSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	var recordModels []models.PaymentRecordModel
	if err := query.Find(&recordModels).Error; err != nil {
		return nil, err
	}

	page, pageSize := filter.Page, filter.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = len(recordModels)
		if pageSize == 0 {
			pageSize = 1
		}
	}
	paginated := shared.NewPaginated(toDomainRecords(recordModels), total, page, pageSize)
	return &paginated, nil
}

// Save creates or updates a payment record
func (r *GormPaymentRecordRepository) Save(ctx context.Context, record *ledger.PaymentRecord) error {
	model := models.PaymentRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking
func (r *GormPaymentRecordRepository) SaveWithLock(ctx context.Context, record *ledger.PaymentRecord) error {
	model := models.PaymentRecordModelFromDomain(record)
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

// Delete removes a payment record
func (r *GormPaymentRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PaymentRecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormPaymentRecordRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("notes ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "tenant_id":
			query = query.Where("tenant_id = ?", value)
		case "property_id":
			query = query.Where("property_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "year":
			query = query.Where("year = ?", value)
		case "month_name":
			query = query.Where("month_name = ?", value)
		}
	}
	return query
}

func toDomainRecords(recordModels []models.PaymentRecordModel) []ledger.PaymentRecord {
	records := make([]ledger.PaymentRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records
}
