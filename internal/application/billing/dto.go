package billing

import (
	"time"

	"github.com/freightline/backend/internal/domain/billing"
	"github.com/freightline/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_INPUT", "Date must be YYYY-MM-DD")
	}
	return d, nil
}

// CreateInvoiceRequest bills a client for one or more open lorry receipts.
// The freight total is the sum of the receipts' charges; only the tax is
// supplied. Number is optional: empty means the allocator issues the next
// one.
type CreateInvoiceRequest struct {
	Number          string          `json:"number" binding:"omitempty,docnumber"`
	Date            string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	ClientID        uuid.UUID       `json:"client_id" binding:"required"`
	LorryReceiptIDs []uuid.UUID     `json:"lorry_receipt_ids" binding:"required,min=1"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	Remarks         string          `json:"remarks" binding:"max=500"`
}

// InvoiceResponse is the invoice representation returned by the API
type InvoiceResponse struct {
	ID              uuid.UUID       `json:"id"`
	Number          string          `json:"number"`
	Date            string          `json:"date"`
	ClientID        uuid.UUID       `json:"client_id"`
	LorryReceiptIDs []uuid.UUID     `json:"lorry_receipt_ids"`
	FreightTotal    decimal.Decimal `json:"freight_total"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	BalanceDue      decimal.Decimal `json:"balance_due"`
	Status          string          `json:"status"`
	Remarks         string          `json:"remarks"`
}

// ToInvoiceResponse converts a domain invoice to an InvoiceResponse
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:              inv.ID,
		Number:          inv.Number,
		Date:            inv.Date.Format(dateLayout),
		ClientID:        inv.ClientID,
		LorryReceiptIDs: inv.LorryReceiptIDs,
		FreightTotal:    inv.FreightTotal,
		TaxAmount:       inv.TaxAmount,
		GrandTotal:      inv.GrandTotal,
		AmountPaid:      inv.AmountPaid,
		BalanceDue:      inv.BalanceDue(),
		Status:          string(inv.Status),
		Remarks:         inv.Remarks,
	}
}

// CreateInvoicePaymentRequest records money received against an invoice
type CreateInvoicePaymentRequest struct {
	InvoiceID uuid.UUID       `json:"invoice_id" binding:"required"`
	Date      string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Mode      string          `json:"mode" binding:"required,oneof=CASH CHEQUE NEFT UPI"`
	Reference string          `json:"reference" binding:"max=100"`
	Remarks   string          `json:"remarks" binding:"max=500"`
}

// CreateHiringNotePaymentRequest records freight paid out against a truck
// hiring note
type CreateHiringNotePaymentRequest struct {
	HiringNoteID uuid.UUID       `json:"hiring_note_id" binding:"required"`
	Date         string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Mode         string          `json:"mode" binding:"required,oneof=CASH CHEQUE NEFT UPI"`
	Reference    string          `json:"reference" binding:"max=100"`
	Remarks      string          `json:"remarks" binding:"max=500"`
}

// PaymentResponse is the payment representation returned by the API
type PaymentResponse struct {
	ID           uuid.UUID       `json:"id"`
	Date         string          `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Mode         string          `json:"mode"`
	ClientID     uuid.UUID       `json:"client_id,omitempty"`
	InvoiceID    *uuid.UUID      `json:"invoice_id,omitempty"`
	HiringNoteID *uuid.UUID      `json:"hiring_note_id,omitempty"`
	Reference    string          `json:"reference"`
	Remarks      string          `json:"remarks"`
}

// ToPaymentResponse converts a domain payment to a PaymentResponse
func ToPaymentResponse(p *billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:           p.ID,
		Date:         p.Date.Format(dateLayout),
		Amount:       p.Amount,
		Mode:         string(p.Mode),
		ClientID:     p.ClientID,
		InvoiceID:    p.InvoiceID,
		HiringNoteID: p.HiringNoteID,
		Reference:    p.Reference,
		Remarks:      p.Remarks,
	}
}

// ListQuery selects and pages documents
type ListQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
}

// ToFilter converts the query to a repository filter
func (q ListQuery) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}
	filter.Search = q.Search
	return filter
}
