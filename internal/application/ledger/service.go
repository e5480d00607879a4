package ledger

import (
	"context"

	"github.com/freightline/backend/internal/domain/billing"
	"github.com/freightline/backend/internal/domain/consignment"
	"github.com/freightline/backend/internal/domain/ledger"
	"github.com/freightline/backend/internal/domain/partner"
	"github.com/freightline/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Service assembles ledger views from the billing and consignment stores and
// hands the merged data to the engine. All computation happens in the engine;
// this layer only fetches, converts and shapes responses.
type Service struct {
	engine         *ledger.Engine
	clientRepo     partner.ClientRepository
	invoiceRepo    billing.InvoiceRepository
	paymentRepo    billing.PaymentRepository
	hiringNoteRepo consignment.TruckHiringNoteRepository
}

// NewService creates a ledger service
func NewService(
	engine *ledger.Engine,
	clientRepo partner.ClientRepository,
	invoiceRepo billing.InvoiceRepository,
	paymentRepo billing.PaymentRepository,
	hiringNoteRepo consignment.TruckHiringNoteRepository,
) *Service {
	return &Service{
		engine:         engine,
		clientRepo:     clientRepo,
		invoiceRepo:    invoiceRepo,
		paymentRepo:    paymentRepo,
		hiringNoteRepo: hiringNoteRepo,
	}
}

// ClientStatement builds the running-balance statement for one client. The
// query narrows the rows returned; the balance column is always computed over
// the client's full history.
func (s *Service) ClientStatement(ctx context.Context, clientID uuid.UUID, q StatementQuery) (*StatementResponse, error) {
	filter, err := q.toFilter()
	if err != nil {
		return nil, err
	}

	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.FindByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	notes, err := s.linkedHiringNotes(ctx, payments)
	if err != nil {
		return nil, err
	}

	stmt := s.engine.BuildClientStatement(clientID, toInvoiceEntries(invoices), toPaymentEntries(payments), toHiringNoteEntries(notes), filter)
	return &StatementResponse{
		ClientID:       client.ID,
		ClientName:     client.Name,
		Transactions:   toTransactionRows(stmt.Transactions),
		TotalDebit:     stmt.TotalDebit,
		TotalCredit:    stmt.TotalCredit,
		ClosingBalance: stmt.ClosingBalance,
	}, nil
}

// CompanyLedger builds the company-wide income/expense view: every invoice as
// income, every truck hiring note as expense.
func (s *Service) CompanyLedger(ctx context.Context, q StatementQuery) (*CompanyLedgerResponse, error) {
	filter, err := q.toFilter()
	if err != nil {
		return nil, err
	}

	invoices, _, err := s.invoiceRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	notes, _, err := s.hiringNoteRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	summary := s.engine.BuildCompanyLedger(toInvoiceEntries(invoices), toHiringNoteEntries(notes), filter)
	return &CompanyLedgerResponse{
		Transactions: toTransactionRows(summary.Transactions),
		TotalIncome:  summary.TotalIncome,
		TotalExpense: summary.TotalExpense,
		Net:          summary.Net,
	}, nil
}

// linkedHiringNotes loads the truck hiring notes the given payments settle,
// so their numbers can be rendered on the statement. Notes deleted since the
// payment was recorded are simply absent and the row degrades to a generic
// description.
func (s *Service) linkedHiringNotes(ctx context.Context, payments []billing.Payment) ([]consignment.TruckHiringNote, error) {
	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0)
	for _, p := range payments {
		if p.HiringNoteID != nil && !seen[*p.HiringNoteID] {
			seen[*p.HiringNoteID] = true
			ids = append(ids, *p.HiringNoteID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return s.hiringNoteRepo.FindByIDs(ctx, ids)
}

func toInvoiceEntries(invoices []billing.Invoice) []ledger.InvoiceEntry {
	entries := make([]ledger.InvoiceEntry, 0, len(invoices))
	for _, inv := range invoices {
		entries = append(entries, ledger.InvoiceEntry{
			ID:         inv.ID,
			Number:     inv.Number,
			ClientID:   inv.ClientID,
			Date:       inv.Date,
			GrandTotal: inv.GrandTotal,
		})
	}
	return entries
}

func toPaymentEntries(payments []billing.Payment) []ledger.PaymentEntry {
	entries := make([]ledger.PaymentEntry, 0, len(payments))
	for _, p := range payments {
		entry := ledger.PaymentEntry{
			ID:       p.ID,
			ClientID: p.ClientID,
			Date:     p.Date,
			Amount:   p.Amount,
			Mode:     string(p.Mode),
		}
		// Links are carried as bare ids; the engine resolves numbers against
		// the supplied collections and degrades gracefully when the target
		// is gone.
		if p.InvoiceID != nil {
			entry.Invoice = &ledger.DocumentRef{ID: *p.InvoiceID}
		}
		if p.HiringNoteID != nil {
			entry.HiringNote = &ledger.DocumentRef{ID: *p.HiringNoteID}
		}
		entries = append(entries, entry)
	}
	return entries
}

func toHiringNoteEntries(notes []consignment.TruckHiringNote) []ledger.HiringNoteEntry {
	entries := make([]ledger.HiringNoteEntry, 0, len(notes))
	for _, n := range notes {
		entries = append(entries, ledger.HiringNoteEntry{
			ID:            n.ID,
			Number:        n.Number,
			Date:          n.Date,
			FreightAmount: n.FreightAmount,
		})
	}
	return entries
}
