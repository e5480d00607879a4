package billing

import (
	"context"
	"fmt"

	"github.com/freightline/backend/internal/domain/billing"
	"github.com/freightline/backend/internal/domain/consignment"
	"github.com/freightline/backend/internal/domain/numbering"
	"github.com/freightline/backend/internal/domain/partner"
	"github.com/freightline/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NumberSource issues and validates document numbers. Implemented by the
// numbering allocator service.
type NumberSource interface {
	NextNumber(ctx context.Context, docType string) (string, error)
	ValidateManualNumber(ctx context.Context, docType, candidate string) (string, error)
}

// InvoiceService bills clients for lorry receipts
type InvoiceService struct {
	invoiceRepo billing.InvoiceRepository
	receiptRepo consignment.LorryReceiptRepository
	clientRepo  partner.ClientRepository
	numbers     NumberSource
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	receiptRepo consignment.LorryReceiptRepository,
	clientRepo partner.ClientRepository,
	numbers NumberSource,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		receiptRepo: receiptRepo,
		clientRepo:  clientRepo,
		numbers:     numbers,
	}
}

// Create bills a client for a set of open lorry receipts. The freight total
// is derived from the receipts' charges, each receipt is marked invoiced, and
// the invoice number comes from the allocator unless a validated manual one
// is supplied.
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	client, err := s.clientRepo.FindByID(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if !client.Active {
		return nil, shared.NewDomainError("INVALID_STATE", "Client is deactivated")
	}

	receipts, err := s.receiptRepo.FindByIDs(ctx, req.LorryReceiptIDs)
	if err != nil {
		return nil, err
	}
	if len(receipts) != len(req.LorryReceiptIDs) {
		return nil, shared.NewDomainError("NOT_FOUND", "One or more lorry receipts do not exist")
	}

	freightTotal := decimal.Zero
	for i := range receipts {
		lr := &receipts[i]
		if lr.ConsignorID != req.ClientID {
			return nil, shared.NewDomainError("INVALID_INPUT",
				fmt.Sprintf("Lorry receipt %s does not belong to this client", lr.Number))
		}
		if lr.InvoiceID != nil {
			return nil, shared.NewDomainError("INVALID_STATE",
				fmt.Sprintf("Lorry receipt %s is already invoiced", lr.Number))
		}
		freightTotal = freightTotal.Add(lr.TotalCharges())
	}

	number, err := s.resolveNumber(ctx, req.Number)
	if err != nil {
		return nil, err
	}

	invoice, err := billing.NewInvoice(number, date, req.ClientID, req.LorryReceiptIDs, freightTotal, req.TaxAmount)
	if err != nil {
		return nil, err
	}
	invoice.Remarks = req.Remarks

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	for i := range receipts {
		lr := &receipts[i]
		if err := lr.MarkInvoiced(invoice.ID); err != nil {
			return nil, err
		}
		if err := s.receiptRepo.Save(ctx, lr); err != nil {
			return nil, err
		}
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves invoices with paging and number search
func (s *InvoiceService) List(ctx context.Context, q ListQuery) (*shared.Paginated[InvoiceResponse], error) {
	filter := q.ToFilter()
	invoices, total, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, ToInvoiceResponse(&invoices[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListByClient retrieves all invoices for one client
func (s *InvoiceService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]InvoiceResponse, error) {
	invoices, err := s.invoiceRepo.FindByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	responses := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, ToInvoiceResponse(&invoices[i]))
	}
	return responses, nil
}

// Delete cancels an invoice and releases its lorry receipts for re-billing.
// Invoices with recorded payments cannot be deleted; the payments must be
// removed first.
func (s *InvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !invoice.AmountPaid.IsZero() {
		return shared.NewDomainError("INVALID_STATE", "Cannot delete an invoice with recorded payments")
	}

	receipts, err := s.receiptRepo.FindByIDs(ctx, invoice.LorryReceiptIDs)
	if err != nil {
		return err
	}
	for i := range receipts {
		lr := &receipts[i]
		lr.ClearInvoice()
		if err := s.receiptRepo.Save(ctx, lr); err != nil {
			return err
		}
	}
	return s.invoiceRepo.Delete(ctx, id)
}

// ExistsByNumber reports whether an invoice already carries the number.
// Wired into the allocator as the uniqueness check for manual entries.
func (s *InvoiceService) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	return s.invoiceRepo.ExistsByNumber(ctx, number)
}

func (s *InvoiceService) resolveNumber(ctx context.Context, manual string) (string, error) {
	if manual == "" {
		return s.numbers.NextNumber(ctx, numbering.DocTypeInvoice)
	}
	return s.numbers.ValidateManualNumber(ctx, numbering.DocTypeInvoice, manual)
}
