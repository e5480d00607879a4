package persistence

import (
	"context"
	"errors"

	"github.com/freightline/backend/internal/domain/numbering"
	"github.com/freightline/backend/internal/domain/shared"
	"github.com/freightline/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormNumberingRepository implements numbering.Repository using GORM
type GormNumberingRepository struct {
	db *gorm.DB
}

// NewGormNumberingRepository creates a new GormNumberingRepository
func NewGormNumberingRepository(db *gorm.DB) *GormNumberingRepository {
	return &GormNumberingRepository{db: db}
}

// FindAll returns all numbering configurations
func (r *GormNumberingRepository) FindAll(ctx context.Context) ([]numbering.Config, error) {
	var configModels []models.NumberingConfigModel
	if err := r.db.WithContext(ctx).
		Order("doc_type ASC").
		Find(&configModels).Error; err != nil {
		return nil, err
	}

	configs := make([]numbering.Config, len(configModels))
	for i, model := range configModels {
		configs[i] = *model.ToDomain()
	}
	return configs, nil
}

// FindByDocType finds the configuration for one document type
func (r *GormNumberingRepository) FindByDocType(ctx context.Context, docType string) (*numbering.Config, error) {
	var model models.NumberingConfigModel
	if err := r.db.WithContext(ctx).
		Where("doc_type = ?", docType).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a numbering configuration
func (r *GormNumberingRepository) Save(ctx context.Context, config *numbering.Config) error {
	var model models.NumberingConfigModel
	model.FromDomain(config)
	return r.db.WithContext(ctx).Save(&model).Error
}

// UpdateSettings persists an administrator edit of the prefix, range and
// entry flags. The cursor column is not in the SET list, so an issuance
// landing while the edit is in flight is never rewound; GREATEST only pulls
// the cursor forward when the start of the range was raised past it.
func (r *GormNumberingRepository) UpdateSettings(ctx context.Context, docType string, settings numbering.Settings) error {
	result := r.db.WithContext(ctx).
		Model(&models.NumberingConfigModel{}).
		Where("doc_type = ?", docType).
		Updates(map[string]any{
			"prefix":              settings.Prefix,
			"start_number":        settings.StartNumber,
			"end_number":          settings.EndNumber,
			"allow_manual_entry":  settings.AllowManualEntry,
			"allow_outside_range": settings.AllowOutsideRange,
			"current_number":      gorm.Expr("GREATEST(current_number, ?)", settings.StartNumber),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// IncrementCurrent advances the cursor by one, but only if the stored cursor
// still equals expected. The WHERE clause makes the read-modify-write a
// single atomic statement; when another session won the number first, zero
// rows match and the caller gets shared.ErrConcurrencyConflict to retry on.
func (r *GormNumberingRepository) IncrementCurrent(ctx context.Context, docType string, expected int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.NumberingConfigModel{}).
		Where("doc_type = ? AND current_number = ?", docType, expected).
		Update("current_number", gorm.Expr("current_number + 1"))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Ensure GormNumberingRepository implements numbering.Repository
var _ numbering.Repository = (*GormNumberingRepository)(nil)
