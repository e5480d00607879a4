package billing

import (
	"context"
	"strings"
	"time"

	"github.com/freightline/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the settlement state of an invoice
type InvoiceStatus string

const (
	// InvoiceStatusUnpaid means no payment has been recorded against the invoice
	InvoiceStatusUnpaid InvoiceStatus = "UNPAID"
	// InvoiceStatusPartiallyPaid means payments cover part of the grand total
	InvoiceStatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	// InvoiceStatusPaid means payments cover the grand total
	InvoiceStatusPaid InvoiceStatus = "PAID"
)

// Invoice bills a client for one or more lorry receipts. On the client's
// statement it contributes a single debit equal to its grand total.
type Invoice struct {
	shared.BaseEntity
	Number          string
	Date            time.Time
	ClientID        uuid.UUID
	LorryReceiptIDs []uuid.UUID
	FreightTotal    decimal.Decimal
	TaxAmount       decimal.Decimal
	GrandTotal      decimal.Decimal
	AmountPaid      decimal.Decimal
	Status          InvoiceStatus
	Remarks         string
}

// NewInvoice creates an invoice. Number must already have been issued by the
// allocator or validated as a manual entry.
func NewInvoice(
	number string,
	date time.Time,
	clientID uuid.UUID,
	lorryReceiptIDs []uuid.UUID,
	freightTotal, taxAmount decimal.Decimal,
) (*Invoice, error) {
	if strings.TrimSpace(number) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice number cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Client cannot be empty")
	}
	if freightTotal.IsNegative() || taxAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice amounts cannot be negative")
	}
	grand := freightTotal.Add(taxAmount)
	if grand.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice grand total must be positive")
	}
	if date.IsZero() {
		date = time.Now()
	}
	return &Invoice{
		BaseEntity:      shared.NewBaseEntity(),
		Number:          strings.TrimSpace(number),
		Date:            date,
		ClientID:        clientID,
		LorryReceiptIDs: lorryReceiptIDs,
		FreightTotal:    freightTotal,
		TaxAmount:       taxAmount,
		GrandTotal:      grand,
		AmountPaid:      decimal.Zero,
		Status:          InvoiceStatusUnpaid,
	}, nil
}

// BalanceDue is the amount still owed on the invoice
func (i *Invoice) BalanceDue() decimal.Decimal {
	return i.GrandTotal.Sub(i.AmountPaid)
}

// ApplyPayment records a payment against the invoice and moves the status
func (i *Invoice) ApplyPayment(amount decimal.Decimal) error {
	if amount.IsNegative() || amount.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}
	if amount.GreaterThan(i.BalanceDue()) {
		return shared.NewDomainError("INVALID_STATE", "Payment exceeds the invoice balance due")
	}
	i.AmountPaid = i.AmountPaid.Add(amount)
	if i.AmountPaid.GreaterThanOrEqual(i.GrandTotal) {
		i.Status = InvoiceStatusPaid
	} else {
		i.Status = InvoiceStatusPartiallyPaid
	}
	return nil
}

// ReversePayment backs a deleted payment out of the invoice
func (i *Invoice) ReversePayment(amount decimal.Decimal) error {
	if amount.IsNegative() || amount.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}
	if amount.GreaterThan(i.AmountPaid) {
		return shared.NewDomainError("INVALID_STATE", "Cannot reverse more than was paid")
	}
	i.AmountPaid = i.AmountPaid.Sub(amount)
	switch {
	case i.AmountPaid.IsZero():
		i.Status = InvoiceStatusUnpaid
	case i.AmountPaid.LessThan(i.GrandTotal):
		i.Status = InvoiceStatusPartiallyPaid
	}
	return nil
}

// InvoiceRepository persists invoices
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, int64, error)
	FindByClientID(ctx context.Context, clientID uuid.UUID) ([]Invoice, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	Save(ctx context.Context, invoice *Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
}
