package consignment

import (
	"context"
	"strings"

	"github.com/freightline/backend/internal/domain/consignment"
	"github.com/freightline/backend/internal/domain/numbering"
	"github.com/freightline/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TruckHiringNoteService handles hiring of outside trucks
type TruckHiringNoteService struct {
	noteRepo consignment.TruckHiringNoteRepository
	numbers  NumberSource
}

// NewTruckHiringNoteService creates a new TruckHiringNoteService
func NewTruckHiringNoteService(
	noteRepo consignment.TruckHiringNoteRepository,
	numbers NumberSource,
) *TruckHiringNoteService {
	return &TruckHiringNoteService{noteRepo: noteRepo, numbers: numbers}
}

// Create records the hiring of an outside truck
func (s *TruckHiringNoteService) Create(ctx context.Context, req CreateTruckHiringNoteRequest) (*TruckHiringNoteResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	number, err := s.resolveNumber(ctx, req.Number)
	if err != nil {
		return nil, err
	}

	note, err := consignment.NewTruckHiringNote(number, date, req.TruckNumber, req.OwnerName, req.FreightAmount)
	if err != nil {
		return nil, err
	}
	note.OwnerPhone = strings.TrimSpace(req.OwnerPhone)
	note.SetRoute(req.FromLocation, req.ToLocation)
	if !req.AdvanceAmount.IsZero() {
		if err := note.RecordAdvance(req.AdvanceAmount); err != nil {
			return nil, err
		}
	}

	if err := s.noteRepo.Save(ctx, note); err != nil {
		return nil, err
	}
	response := ToTruckHiringNoteResponse(note)
	return &response, nil
}

// GetByID retrieves a truck hiring note by ID
func (s *TruckHiringNoteService) GetByID(ctx context.Context, id uuid.UUID) (*TruckHiringNoteResponse, error) {
	note, err := s.noteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToTruckHiringNoteResponse(note)
	return &response, nil
}

// List retrieves truck hiring notes with paging and number search
func (s *TruckHiringNoteService) List(ctx context.Context, q ListQuery) (*shared.Paginated[TruckHiringNoteResponse], error) {
	filter := q.ToFilter()
	notes, total, err := s.noteRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]TruckHiringNoteResponse, 0, len(notes))
	for i := range notes {
		responses = append(responses, ToTruckHiringNoteResponse(&notes[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update edits the owner, route and advance of a hiring note
func (s *TruckHiringNoteService) Update(ctx context.Context, id uuid.UUID, req UpdateTruckHiringNoteRequest) (*TruckHiringNoteResponse, error) {
	note, err := s.noteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ownerName := strings.TrimSpace(req.OwnerName)
	if ownerName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Owner name cannot be empty")
	}
	note.OwnerName = ownerName
	note.OwnerPhone = strings.TrimSpace(req.OwnerPhone)
	note.SetRoute(req.FromLocation, req.ToLocation)
	if err := note.RecordAdvance(req.AdvanceAmount); err != nil {
		return nil, err
	}

	if err := s.noteRepo.Save(ctx, note); err != nil {
		return nil, err
	}
	response := ToTruckHiringNoteResponse(note)
	return &response, nil
}

// Delete removes a truck hiring note
func (s *TruckHiringNoteService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.noteRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.noteRepo.Delete(ctx, id)
}

// ExistsByNumber reports whether a note already carries the number. Wired
// into the allocator as the uniqueness check for manual entries.
func (s *TruckHiringNoteService) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	return s.noteRepo.ExistsByNumber(ctx, number)
}

func (s *TruckHiringNoteService) resolveNumber(ctx context.Context, manual string) (string, error) {
	if manual == "" {
		return s.numbers.NextNumber(ctx, numbering.DocTypeTruckHiringNote)
	}
	return s.numbers.ValidateManualNumber(ctx, numbering.DocTypeTruckHiringNote, manual)
}
