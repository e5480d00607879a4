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

var hiringNoteSortable = map[string]bool{
	"number":     true,
	"date":       true,
	"owner_name": true,
	"created_at": true,
}

// GormTruckHiringNoteRepository implements TruckHiringNoteRepository using GORM
type GormTruckHiringNoteRepository struct {
	db *gorm.DB
}

// NewGormTruckHiringNoteRepository creates a new GormTruckHiringNoteRepository
func NewGormTruckHiringNoteRepository(db *gorm.DB) *GormTruckHiringNoteRepository {
	return &GormTruckHiringNoteRepository{db: db}
}

// FindByID finds a truck hiring note by its ID
func (r *GormTruckHiringNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*consignment.TruckHiringNote, error) {
	var model models.TruckHiringNoteModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple truck hiring notes by their IDs. Missing ids are
// simply absent from the result; the caller decides whether that is an error.
func (r *GormTruckHiringNoteRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]consignment.TruckHiringNote, error) {
	if len(ids) == 0 {
		return []consignment.TruckHiringNote{}, nil
	}
	var noteModels []models.TruckHiringNoteModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&noteModels).Error; err != nil {
		return nil, err
	}
	return toDomainNotes(noteModels), nil
}

// FindAll finds truck hiring notes matching the filter along with the unpaged total
func (r *GormTruckHiringNoteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]consignment.TruckHiringNote, int64, error) {
	var total int64
	countQuery := applySearch(r.db.WithContext(ctx).Model(&models.TruckHiringNoteModel{}), filter.Search, "number", "truck_number", "owner_name")
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var noteModels []models.TruckHiringNoteModel
	query := applySearch(r.db.WithContext(ctx).Model(&models.TruckHiringNoteModel{}), filter.Search, "number", "truck_number", "owner_name")
	query = applyPaging(query, filter, hiringNoteSortable, "date DESC, number DESC")
	if err := query.Find(&noteModels).Error; err != nil {
		return nil, 0, err
	}

	return toDomainNotes(noteModels), total, nil
}

// ExistsByNumber checks if a truck hiring note with the given number exists
func (r *GormTruckHiringNoteRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TruckHiringNoteModel{}).
		Where("number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a truck hiring note
func (r *GormTruckHiringNoteRepository) Save(ctx context.Context, note *consignment.TruckHiringNote) error {
	var model models.TruckHiringNoteModel
	model.FromDomain(note)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a truck hiring note
func (r *GormTruckHiringNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TruckHiringNoteModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainNotes(noteModels []models.TruckHiringNoteModel) []consignment.TruckHiringNote {
	notes := make([]consignment.TruckHiringNote, len(noteModels))
	for i, model := range noteModels {
		notes[i] = *model.ToDomain()
	}
	return notes
}

// Ensure GormTruckHiringNoteRepository implements TruckHiringNoteRepository
var _ consignment.TruckHiringNoteRepository = (*GormTruckHiringNoteRepository)(nil)
