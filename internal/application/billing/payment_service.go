package billing

import (
	"context"
	"errors"

	"github.com/freightline/backend/internal/domain/billing"
	"github.com/freightline/backend/internal/domain/consignment"
	"github.com/freightline/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentService records money moving in and out: client payments against
// invoices, freight payouts against truck hiring notes.
type PaymentService struct {
	paymentRepo billing.PaymentRepository
	invoiceRepo billing.InvoiceRepository
	noteRepo    consignment.TruckHiringNoteRepository
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo billing.PaymentRepository,
	invoiceRepo billing.InvoiceRepository,
	noteRepo consignment.TruckHiringNoteRepository,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		noteRepo:    noteRepo,
	}
}

// CreateInvoicePayment records a payment received against an invoice and
// moves the invoice's settlement status
func (s *PaymentService) CreateInvoicePayment(ctx context.Context, req CreateInvoicePaymentRequest) (*PaymentResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	invoice, err := s.invoiceRepo.FindByID(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}

	// ApplyPayment validates the amount against the balance due
	if err := invoice.ApplyPayment(req.Amount); err != nil {
		return nil, err
	}
	payment, err := billing.NewInvoicePayment(date, req.Amount, billing.PaymentMode(req.Mode), invoice.ClientID, invoice.ID)
	if err != nil {
		return nil, err
	}
	payment.WithReference(req.Reference).WithRemarks(req.Remarks)

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	response := ToPaymentResponse(payment)
	return &response, nil
}

// CreateHiringNotePayment records freight paid out to a truck owner against
// a hiring note
func (s *PaymentService) CreateHiringNotePayment(ctx context.Context, req CreateHiringNotePaymentRequest) (*PaymentResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	note, err := s.noteRepo.FindByID(ctx, req.HiringNoteID)
	if err != nil {
		return nil, err
	}

	payment, err := billing.NewHiringNotePayment(date, req.Amount, billing.PaymentMode(req.Mode), note.ID)
	if err != nil {
		return nil, err
	}
	payment.WithReference(req.Reference).WithRemarks(req.Remarks)

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}
	response := ToPaymentResponse(payment)
	return &response, nil
}

// GetByID retrieves a payment by ID
func (s *PaymentService) GetByID(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPaymentResponse(payment)
	return &response, nil
}

// List retrieves payments with paging
func (s *PaymentService) List(ctx context.Context, q ListQuery) (*shared.Paginated[PaymentResponse], error) {
	filter := q.ToFilter()
	payments, total, err := s.paymentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, ToPaymentResponse(&payments[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListByInvoice retrieves all payments recorded against one invoice
func (s *PaymentService) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	responses := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, ToPaymentResponse(&payments[i]))
	}
	return responses, nil
}

// Delete removes a payment. A payment linked to a surviving invoice is backed
// out of the invoice's settlement status first; if the invoice is already
// gone the payment is simply removed.
func (s *PaymentService) Delete(ctx context.Context, id uuid.UUID) error {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if payment.InvoiceID != nil {
		invoice, err := s.invoiceRepo.FindByID(ctx, *payment.InvoiceID)
		switch {
		case err == nil:
			if err := invoice.ReversePayment(payment.Amount); err != nil {
				return err
			}
			if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
				return err
			}
		case errors.Is(err, shared.ErrNotFound):
			// Invoice deleted out from under the payment; nothing to reverse
		default:
			return err
		}
	}
	return s.paymentRepo.Delete(ctx, id)
}
