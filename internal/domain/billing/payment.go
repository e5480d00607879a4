package billing

import (
	"context"
	"time"

	"github.com/freightline/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMode is how a payment was made
type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "CASH"
	PaymentModeCheque PaymentMode = "CHEQUE"
	PaymentModeNEFT   PaymentMode = "NEFT"
	PaymentModeUPI    PaymentMode = "UPI"
)

// IsValid returns true if the payment mode is valid
func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeCash, PaymentModeCheque, PaymentModeNEFT, PaymentModeUPI:
		return true
	}
	return false
}

// Payment is money received from a client against an invoice, or money paid
// out against a truck hiring note. Exactly one of InvoiceID/HiringNoteID is
// set. ClientID is recorded on the payment itself so the payment stays
// attributable on statements even if the linked document is later deleted.
type Payment struct {
	shared.BaseEntity
	Date         time.Time
	Amount       decimal.Decimal
	Mode         PaymentMode
	ClientID     uuid.UUID
	InvoiceID    *uuid.UUID
	HiringNoteID *uuid.UUID
	Reference    string
	Remarks      string
}

// NewInvoicePayment records a payment received against an invoice
func NewInvoicePayment(
	date time.Time,
	amount decimal.Decimal,
	mode PaymentMode,
	clientID, invoiceID uuid.UUID,
) (*Payment, error) {
	if amount.IsNegative() || amount.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid payment mode")
	}
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice cannot be empty")
	}
	if date.IsZero() {
		date = time.Now()
	}
	return &Payment{
		BaseEntity: shared.NewBaseEntity(),
		Date:       date,
		Amount:     amount,
		Mode:       mode,
		ClientID:   clientID,
		InvoiceID:  &invoiceID,
	}, nil
}

// NewHiringNotePayment records freight paid out against a truck hiring note
func NewHiringNotePayment(
	date time.Time,
	amount decimal.Decimal,
	mode PaymentMode,
	hiringNoteID uuid.UUID,
) (*Payment, error) {
	if amount.IsNegative() || amount.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid payment mode")
	}
	if hiringNoteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Truck hiring note cannot be empty")
	}
	if date.IsZero() {
		date = time.Now()
	}
	return &Payment{
		BaseEntity:   shared.NewBaseEntity(),
		Date:         date,
		Amount:       amount,
		Mode:         mode,
		HiringNoteID: &hiringNoteID,
	}, nil
}

// WithReference sets the cheque/UTR reference
func (p *Payment) WithReference(reference string) *Payment {
	p.Reference = reference
	return p
}

// WithRemarks sets free-form notes
func (p *Payment) WithRemarks(remarks string) *Payment {
	p.Remarks = remarks
	return p
}

// PaymentRepository persists payments
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Payment, int64, error)
	FindByClientID(ctx context.Context, clientID uuid.UUID) ([]Payment, error)
	FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]Payment, error)
	Save(ctx context.Context, payment *Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
}
