package persistence

import (
	"context"
	"errors"

	"github.com/freightline/backend/internal/domain/billing"
	"github.com/freightline/backend/internal/domain/shared"
	"github.com/freightline/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var paymentSortable = map[string]bool{
	"date":       true,
	"amount":     true,
	"mode":       true,
	"created_at": true,
}

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds payments matching the filter along with the unpaged total
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Payment, int64, error) {
	var total int64
	countQuery := applySearch(r.db.WithContext(ctx).Model(&models.PaymentModel{}), filter.Search, "reference", "remarks")
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var paymentModels []models.PaymentModel
	query := applySearch(r.db.WithContext(ctx).Model(&models.PaymentModel{}), filter.Search, "reference", "remarks")
	query = applyPaging(query, filter, paymentSortable, "date DESC, created_at DESC")
	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, 0, err
	}
	return toDomainPayments(paymentModels), total, nil
}

// FindByClientID finds all payments received from the given client
func (r *GormPaymentRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]billing.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("date ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindByInvoiceID finds all payments applied against the given invoice
func (r *GormPaymentRepository) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]billing.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("date ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// Save creates or updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, payment *billing.Payment) error {
	var model models.PaymentModel
	model.FromDomain(payment)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a payment
func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainPayments(paymentModels []models.PaymentModel) []billing.Payment {
	payments := make([]billing.Payment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ billing.PaymentRepository = (*GormPaymentRepository)(nil)
