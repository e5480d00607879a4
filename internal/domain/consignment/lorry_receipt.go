package consignment

import (
	"context"
	"strings"
	"time"

	"github.com/freightline/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LorryReceiptStatus represents the lifecycle state of a lorry receipt
type LorryReceiptStatus string

const (
	// LorryReceiptStatusOpen means the consignment is booked but not yet billed
	LorryReceiptStatusOpen LorryReceiptStatus = "OPEN"
	// LorryReceiptStatusInvoiced means the receipt is covered by an invoice
	LorryReceiptStatusInvoiced LorryReceiptStatus = "INVOICED"
	// LorryReceiptStatusDelivered means the consignment reached the consignee
	LorryReceiptStatusDelivered LorryReceiptStatus = "DELIVERED"
)

// IsValid returns true if the status is valid
func (s LorryReceiptStatus) IsValid() bool {
	switch s {
	case LorryReceiptStatusOpen, LorryReceiptStatusInvoiced, LorryReceiptStatusDelivered:
		return true
	}
	return false
}

// LorryReceipt is the booking record of one consignment: who ships what,
// from where to where, and the freight charged for it.
type LorryReceipt struct {
	shared.BaseEntity
	Number       string
	Date         time.Time
	ConsignorID  uuid.UUID
	ConsigneeID  uuid.UUID
	FromLocation string
	ToLocation   string
	TruckNumber  string
	Packages     int
	Description  string
	ActualWeight decimal.Decimal
	Freight      decimal.Decimal
	Hamali       decimal.Decimal
	OtherCharges decimal.Decimal
	Status       LorryReceiptStatus
	InvoiceID    *uuid.UUID
}

// NewLorryReceipt creates a lorry receipt. Number must already have been
// issued by the allocator or validated as a manual entry.
func NewLorryReceipt(
	number string,
	date time.Time,
	consignorID, consigneeID uuid.UUID,
	fromLocation, toLocation string,
) (*LorryReceipt, error) {
	if strings.TrimSpace(number) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Lorry receipt number cannot be empty")
	}
	if consignorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Consignor cannot be empty")
	}
	if consigneeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Consignee cannot be empty")
	}
	if date.IsZero() {
		date = time.Now()
	}
	return &LorryReceipt{
		BaseEntity:   shared.NewBaseEntity(),
		Number:       strings.TrimSpace(number),
		Date:         date,
		ConsignorID:  consignorID,
		ConsigneeID:  consigneeID,
		FromLocation: strings.TrimSpace(fromLocation),
		ToLocation:   strings.TrimSpace(toLocation),
		ActualWeight: decimal.Zero,
		Freight:      decimal.Zero,
		Hamali:       decimal.Zero,
		OtherCharges: decimal.Zero,
		Status:       LorryReceiptStatusOpen,
	}, nil
}

// SetCharges sets the freight charge breakdown
func (lr *LorryReceipt) SetCharges(freight, hamali, other decimal.Decimal) error {
	if freight.IsNegative() || hamali.IsNegative() || other.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Charges cannot be negative")
	}
	lr.Freight = freight
	lr.Hamali = hamali
	lr.OtherCharges = other
	return nil
}

// SetGoods records the consignment contents
func (lr *LorryReceipt) SetGoods(packages int, description string, actualWeight decimal.Decimal) error {
	if packages < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Package count cannot be negative")
	}
	if actualWeight.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Weight cannot be negative")
	}
	lr.Packages = packages
	lr.Description = strings.TrimSpace(description)
	lr.ActualWeight = actualWeight
	return nil
}

// TotalCharges is the full amount charged for this consignment
func (lr *LorryReceipt) TotalCharges() decimal.Decimal {
	return lr.Freight.Add(lr.Hamali).Add(lr.OtherCharges)
}

// MarkInvoiced links the receipt to the invoice that covers it. A receipt
// can be billed only once.
func (lr *LorryReceipt) MarkInvoiced(invoiceID uuid.UUID) error {
	if lr.InvoiceID != nil {
		return shared.NewDomainError("INVALID_STATE", "Lorry receipt is already invoiced")
	}
	lr.InvoiceID = &invoiceID
	lr.Status = LorryReceiptStatusInvoiced
	return nil
}

// ClearInvoice detaches the receipt from a cancelled invoice
func (lr *LorryReceipt) ClearInvoice() {
	lr.InvoiceID = nil
	if lr.Status == LorryReceiptStatusInvoiced {
		lr.Status = LorryReceiptStatusOpen
	}
}

// MarkDelivered marks the consignment as delivered
func (lr *LorryReceipt) MarkDelivered() {
	lr.Status = LorryReceiptStatusDelivered
}

// LorryReceiptRepository persists lorry receipts
type LorryReceiptRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LorryReceipt, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]LorryReceipt, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]LorryReceipt, int64, error)
	FindByClientID(ctx context.Context, clientID uuid.UUID) ([]LorryReceipt, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	Save(ctx context.Context, receipt *LorryReceipt) error
	Delete(ctx context.Context, id uuid.UUID) error
}
