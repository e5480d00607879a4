package consignment

import (
	"context"
	"strings"
	"time"

	"github.com/freightline/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TruckHiringNote records the hiring of an outside truck for a trip: the
// freight agreed with the truck owner is a company expense.
type TruckHiringNote struct {
	shared.BaseEntity
	Number        string
	Date          time.Time
	TruckNumber   string
	OwnerName     string
	OwnerPhone    string
	FromLocation  string
	ToLocation    string
	FreightAmount decimal.Decimal
	AdvanceAmount decimal.Decimal
}

// NewTruckHiringNote creates a truck hiring note. Number must already have
// been issued by the allocator or validated as a manual entry.
func NewTruckHiringNote(
	number string,
	date time.Time,
	truckNumber, ownerName string,
	freightAmount decimal.Decimal,
) (*TruckHiringNote, error) {
	if strings.TrimSpace(number) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Truck hiring note number cannot be empty")
	}
	if strings.TrimSpace(truckNumber) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Truck number cannot be empty")
	}
	if freightAmount.IsNegative() || freightAmount.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Freight amount must be positive")
	}
	if date.IsZero() {
		date = time.Now()
	}
	return &TruckHiringNote{
		BaseEntity:    shared.NewBaseEntity(),
		Number:        strings.TrimSpace(number),
		Date:          date,
		TruckNumber:   strings.ToUpper(strings.TrimSpace(truckNumber)),
		OwnerName:     strings.TrimSpace(ownerName),
		FreightAmount: freightAmount,
		AdvanceAmount: decimal.Zero,
	}, nil
}

// SetRoute records the trip endpoints
func (n *TruckHiringNote) SetRoute(from, to string) {
	n.FromLocation = strings.TrimSpace(from)
	n.ToLocation = strings.TrimSpace(to)
}

// RecordAdvance records an advance paid to the truck owner at booking time
func (n *TruckHiringNote) RecordAdvance(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Advance cannot be negative")
	}
	if amount.GreaterThan(n.FreightAmount) {
		return shared.NewDomainError("INVALID_INPUT", "Advance cannot exceed the freight amount")
	}
	n.AdvanceAmount = amount
	return nil
}

// BalanceDue is the freight remaining to be paid to the truck owner
func (n *TruckHiringNote) BalanceDue() decimal.Decimal {
	return n.FreightAmount.Sub(n.AdvanceAmount)
}

// TruckHiringNoteRepository persists truck hiring notes
type TruckHiringNoteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TruckHiringNote, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]TruckHiringNote, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]TruckHiringNote, int64, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	Save(ctx context.Context, note *TruckHiringNote) error
	Delete(ctx context.Context, id uuid.UUID) error
}
