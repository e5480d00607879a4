package consignment

import (
	"context"
	"strings"

	"github.com/freightline/backend/internal/domain/consignment"
	"github.com/freightline/backend/internal/domain/numbering"
	"github.com/freightline/backend/internal/domain/partner"
	"github.com/freightline/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// NumberSource issues and validates document numbers. Implemented by the
// numbering allocator service.
type NumberSource interface {
	NextNumber(ctx context.Context, docType string) (string, error)
	ValidateManualNumber(ctx context.Context, docType, candidate string) (string, error)
}

// LorryReceiptService handles consignment bookings
type LorryReceiptService struct {
	receiptRepo consignment.LorryReceiptRepository
	clientRepo  partner.ClientRepository
	numbers     NumberSource
}

// NewLorryReceiptService creates a new LorryReceiptService
func NewLorryReceiptService(
	receiptRepo consignment.LorryReceiptRepository,
	clientRepo partner.ClientRepository,
	numbers NumberSource,
) *LorryReceiptService {
	return &LorryReceiptService{
		receiptRepo: receiptRepo,
		clientRepo:  clientRepo,
		numbers:     numbers,
	}
}

// Create books a consignment. The receipt number is issued by the allocator
// unless the request carries a manual one, which is validated first.
func (s *LorryReceiptService) Create(ctx context.Context, req CreateLorryReceiptRequest) (*LorryReceiptResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if err := s.requireActiveClient(ctx, req.ConsignorID, "Consignor"); err != nil {
		return nil, err
	}
	if err := s.requireActiveClient(ctx, req.ConsigneeID, "Consignee"); err != nil {
		return nil, err
	}

	number, err := s.resolveNumber(ctx, req.Number)
	if err != nil {
		return nil, err
	}

	lr, err := consignment.NewLorryReceipt(number, date, req.ConsignorID, req.ConsigneeID, req.FromLocation, req.ToLocation)
	if err != nil {
		return nil, err
	}
	lr.TruckNumber = strings.ToUpper(strings.TrimSpace(req.TruckNumber))
	if err := lr.SetGoods(req.Packages, req.Description, req.ActualWeight); err != nil {
		return nil, err
	}
	if err := lr.SetCharges(req.Freight, req.Hamali, req.OtherCharges); err != nil {
		return nil, err
	}

	if err := s.receiptRepo.Save(ctx, lr); err != nil {
		return nil, err
	}
	response := ToLorryReceiptResponse(lr)
	return &response, nil
}

// GetByID retrieves a lorry receipt by ID
func (s *LorryReceiptService) GetByID(ctx context.Context, id uuid.UUID) (*LorryReceiptResponse, error) {
	lr, err := s.receiptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToLorryReceiptResponse(lr)
	return &response, nil
}

// List retrieves lorry receipts with paging and number search
func (s *LorryReceiptService) List(ctx context.Context, q ListQuery) (*shared.Paginated[LorryReceiptResponse], error) {
	filter := q.ToFilter()
	receipts, total, err := s.receiptRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]LorryReceiptResponse, 0, len(receipts))
	for i := range receipts {
		responses = append(responses, ToLorryReceiptResponse(&receipts[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update edits a booked consignment. Charges are frozen once the receipt is
// covered by an invoice; the invoice must be cancelled first.
func (s *LorryReceiptService) Update(ctx context.Context, id uuid.UUID, req UpdateLorryReceiptRequest) (*LorryReceiptResponse, error) {
	lr, err := s.receiptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	chargesChanged := !lr.Freight.Equal(req.Freight) ||
		!lr.Hamali.Equal(req.Hamali) ||
		!lr.OtherCharges.Equal(req.OtherCharges)
	if chargesChanged && lr.InvoiceID != nil {
		return nil, shared.NewDomainError("INVALID_STATE", "Charges cannot change on an invoiced lorry receipt")
	}

	lr.FromLocation = strings.TrimSpace(req.FromLocation)
	lr.ToLocation = strings.TrimSpace(req.ToLocation)
	lr.TruckNumber = strings.ToUpper(strings.TrimSpace(req.TruckNumber))
	if err := lr.SetGoods(req.Packages, req.Description, req.ActualWeight); err != nil {
		return nil, err
	}
	if err := lr.SetCharges(req.Freight, req.Hamali, req.OtherCharges); err != nil {
		return nil, err
	}

	if err := s.receiptRepo.Save(ctx, lr); err != nil {
		return nil, err
	}
	response := ToLorryReceiptResponse(lr)
	return &response, nil
}

// MarkDelivered marks the consignment as delivered
func (s *LorryReceiptService) MarkDelivered(ctx context.Context, id uuid.UUID) (*LorryReceiptResponse, error) {
	lr, err := s.receiptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lr.MarkDelivered()
	if err := s.receiptRepo.Save(ctx, lr); err != nil {
		return nil, err
	}
	response := ToLorryReceiptResponse(lr)
	return &response, nil
}

// Delete removes a lorry receipt. Invoiced receipts cannot be deleted.
func (s *LorryReceiptService) Delete(ctx context.Context, id uuid.UUID) error {
	lr, err := s.receiptRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if lr.InvoiceID != nil {
		return shared.NewDomainError("INVALID_STATE", "Cannot delete an invoiced lorry receipt")
	}
	return s.receiptRepo.Delete(ctx, id)
}

// ExistsByNumber reports whether a receipt already carries the number. Wired
// into the allocator as the uniqueness check for manual entries.
func (s *LorryReceiptService) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	return s.receiptRepo.ExistsByNumber(ctx, number)
}

func (s *LorryReceiptService) resolveNumber(ctx context.Context, manual string) (string, error) {
	if manual == "" {
		return s.numbers.NextNumber(ctx, numbering.DocTypeLorryReceipt)
	}
	return s.numbers.ValidateManualNumber(ctx, numbering.DocTypeLorryReceipt, manual)
}

func (s *LorryReceiptService) requireActiveClient(ctx context.Context, id uuid.UUID, role string) error {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !client.Active {
		return shared.NewDomainError("INVALID_STATE", role+" is deactivated")
	}
	return nil
}
