package persistence

import (
	"context"
	"errors"

	"github.com/freightline/backend/internal/domain/consignment"
	"github.com/freightline/backend/internal/domain/shared"
	"github.com/freightline/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var lorryReceiptSortable = map[string]bool{
	"number":     true,
	"date":       true,
	"status":     true,
	"created_at": true,
}

// GormLorryReceiptRepository implements LorryReceiptRepository using GORM
type GormLorryReceiptRepository struct {
	db *gorm.DB
}

// NewGormLorryReceiptRepository creates a new GormLorryReceiptRepository
func NewGormLorryReceiptRepository(db *gorm.DB) *GormLorryReceiptRepository {
	return &GormLorryReceiptRepository{db: db}
}

// FindByID finds a lorry receipt by its ID
func (r *GormLorryReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*consignment.LorryReceipt, error) {
	var model models.LorryReceiptModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple lorry receipts by their IDs. Missing ids are
// simply absent from the result; the caller decides whether that is an error.
func (r *GormLorryReceiptRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]consignment.LorryReceipt, error) {
	if len(ids) == 0 {
		return []consignment.LorryReceipt{}, nil
	}
	var receiptModels []models.LorryReceiptModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&receiptModels).Error; err != nil {
		return nil, err
	}
	return toDomainReceipts(receiptModels), nil
}

// FindAll finds lorry receipts matching the filter along with the unpaged total
func (r *GormLorryReceiptRepository) FindAll(ctx context.Context, filter shared.Filter) ([]consignment.LorryReceipt, int64, error) {
	var total int64
	countQuery := applySearch(r.db.WithContext(ctx).Model(&models.LorryReceiptModel{}), filter.Search, "number", "truck_number", "from_location", "to_location")
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var receiptModels []models.LorryReceiptModel
	query := applySearch(r.db.WithContext(ctx).Model(&models.LorryReceiptModel{}), filter.Search, "number", "truck_number", "from_location", "to_location")
	query = applyPaging(query, filter, lorryReceiptSortable, "date DESC, number DESC")
	if err := query.Find(&receiptModels).Error; err != nil {
		return nil, 0, err
	}
	return toDomainReceipts(receiptModels), total, nil
}

// FindByClientID finds all lorry receipts consigned by the given client
func (r *GormLorryReceiptRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]consignment.LorryReceipt, error) {
	var receiptModels []models.LorryReceiptModel
	if err := r.db.WithContext(ctx).
		Where("consignor_id = ?", clientID).
		Order("date ASC").
		Find(&receiptModels).Error; err != nil {
		return nil, err
	}
	return toDomainReceipts(receiptModels), nil
}

// ExistsByNumber checks if a lorry receipt with the given number exists
func (r *GormLorryReceiptRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.LorryReceiptModel{}).
		Where("number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a lorry receipt
func (r *GormLorryReceiptRepository) Save(ctx context.Context, receipt *consignment.LorryReceipt) error {
	var model models.LorryReceiptModel
	model.FromDomain(receipt)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a lorry receipt
func (r *GormLorryReceiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LorryReceiptModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainReceipts(receiptModels []models.LorryReceiptModel) []consignment.LorryReceipt {
	receipts := make([]consignment.LorryReceipt, len(receiptModels))
	for i, model := range receiptModels {
		receipts[i] = *model.ToDomain()
	}
	return receipts
}

// Ensure GormLorryReceiptRepository implements LorryReceiptRepository
var _ consignment.LorryReceiptRepository = (*GormLorryReceiptRepository)(nil)
