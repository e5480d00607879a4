package billing

import (
	"context"
	"testing"
	"time"

	"github.com/freightline/backend/internal/domain/billing"
	"github.com/freightline/backend/internal/domain/consignment"
	"github.com/freightline/backend/internal/domain/numbering"
	"github.com/freightline/backend/internal/domain/partner"
	"github.com/freightline/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockInvoiceRepository is a mock implementation of billing.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Invoice, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.Invoice), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvoiceRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]billing.Invoice, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of billing.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Payment, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.Payment), args.Get(1).(int64), args.Error(2)
}

func (m *MockPaymentRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]billing.Payment, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]billing.Payment, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).([]billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *billing.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLorryReceiptRepository is a mock implementation of consignment.LorryReceiptRepository
type MockLorryReceiptRepository struct {
	mock.Mock
}

func (m *MockLorryReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*consignment.LorryReceipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*consignment.LorryReceipt), args.Error(1)
}

func (m *MockLorryReceiptRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]consignment.LorryReceipt, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]consignment.LorryReceipt), args.Error(1)
}

func (m *MockLorryReceiptRepository) FindAll(ctx context.Context, filter shared.Filter) ([]consignment.LorryReceipt, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]consignment.LorryReceipt), args.Get(1).(int64), args.Error(2)
}

func (m *MockLorryReceiptRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]consignment.LorryReceipt, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]consignment.LorryReceipt), args.Error(1)
}

func (m *MockLorryReceiptRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockLorryReceiptRepository) Save(ctx context.Context, receipt *consignment.LorryReceipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockLorryReceiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockClientRepository is a mock implementation of partner.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Client, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Client), args.Get(1).(int64), args.Error(2)
}

func (m *MockClientRepository) Save(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockHiringNoteRepository is a mock implementation of consignment.TruckHiringNoteRepository
type MockHiringNoteRepository struct {
	mock.Mock
}

func (m *MockHiringNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*consignment.TruckHiringNote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*consignment.TruckHiringNote), args.Error(1)
}

func (m *MockHiringNoteRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]consignment.TruckHiringNote, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]consignment.TruckHiringNote), args.Error(1)
}

func (m *MockHiringNoteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]consignment.TruckHiringNote, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]consignment.TruckHiringNote), args.Get(1).(int64), args.Error(2)
}

func (m *MockHiringNoteRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockHiringNoteRepository) Save(ctx context.Context, note *consignment.TruckHiringNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockHiringNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNumberSource is a mock implementation of NumberSource
type MockNumberSource struct {
	mock.Mock
}

func (m *MockNumberSource) NextNumber(ctx context.Context, docType string) (string, error) {
	args := m.Called(ctx, docType)
	return args.String(0), args.Error(1)
}

func (m *MockNumberSource) ValidateManualNumber(ctx context.Context, docType, candidate string) (string, error) {
	args := m.Called(ctx, docType, candidate)
	return args.String(0), args.Error(1)
}

func day(n int) time.Time {
	return time.Date(2024, 3, n, 0, 0, 0, 0, time.UTC)
}

func openReceipt(t *testing.T, number string, consignorID uuid.UUID, freight int64) consignment.LorryReceipt {
	t.Helper()
	lr, err := consignment.NewLorryReceipt(number, day(1), consignorID, uuid.New(), "Mumbai", "Delhi")
	require.NoError(t, err)
	require.NoError(t, lr.SetCharges(decimal.NewFromInt(freight), decimal.Zero, decimal.Zero))
	return *lr
}

func TestInvoiceCreate(t *testing.T) {
	ctx := context.Background()

	newService := func() (*InvoiceService, *MockInvoiceRepository, *MockLorryReceiptRepository, *MockClientRepository, *MockNumberSource) {
		invoices := new(MockInvoiceRepository)
		receipts := new(MockLorryReceiptRepository)
		clients := new(MockClientRepository)
		numbers := new(MockNumberSource)
		return NewInvoiceService(invoices, receipts, clients, numbers), invoices, receipts, clients, numbers
	}

	client, err := partner.NewClient("Sharma Traders", "14 MG Road", "Pune")
	require.NoError(t, err)

	t.Run("freight total derived from receipts", func(t *testing.T) {
		svc, invoices, receipts, clients, numbers := newService()
		lr1 := openReceipt(t, "LR000001", client.ID, 5000)
		lr2 := openReceipt(t, "LR000002", client.ID, 3000)
		ids := []uuid.UUID{lr1.ID, lr2.ID}

		clients.On("FindByID", ctx, client.ID).Return(client, nil)
		receipts.On("FindByIDs", ctx, ids).Return([]consignment.LorryReceipt{lr1, lr2}, nil)
		numbers.On("NextNumber", ctx, numbering.DocTypeInvoice).Return("INV000009", nil)
		invoices.On("Save", ctx, mock.AnythingOfType("*billing.Invoice")).Return(nil)
		receipts.On("Save", ctx, mock.MatchedBy(func(lr *consignment.LorryReceipt) bool {
			return lr.Status == consignment.LorryReceiptStatusInvoiced
		})).Return(nil).Twice()

		resp, err := svc.Create(ctx, CreateInvoiceRequest{
			Date:            "2024-03-10",
			ClientID:        client.ID,
			LorryReceiptIDs: ids,
			TaxAmount:       decimal.NewFromInt(400),
		})
		require.NoError(t, err)
		assert.Equal(t, "INV000009", resp.Number)
		assert.Equal(t, "8000", resp.FreightTotal.String())
		assert.Equal(t, "8400", resp.GrandTotal.String())
		receipts.AssertExpectations(t)
	})

	t.Run("already invoiced receipt rejected", func(t *testing.T) {
		svc, invoices, receipts, clients, _ := newService()
		lr := openReceipt(t, "LR000003", client.ID, 5000)
		require.NoError(t, lr.MarkInvoiced(uuid.New()))

		clients.On("FindByID", ctx, client.ID).Return(client, nil)
		receipts.On("FindByIDs", ctx, []uuid.UUID{lr.ID}).Return([]consignment.LorryReceipt{lr}, nil)

		_, err := svc.Create(ctx, CreateInvoiceRequest{
			ClientID:        client.ID,
			LorryReceiptIDs: []uuid.UUID{lr.ID},
		})
		require.Error(t, err)
		invoices.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("receipt of another client rejected", func(t *testing.T) {
		svc, _, receipts, clients, _ := newService()
		other := openReceipt(t, "LR000004", uuid.New(), 5000)

		clients.On("FindByID", ctx, client.ID).Return(client, nil)
		receipts.On("FindByIDs", ctx, []uuid.UUID{other.ID}).Return([]consignment.LorryReceipt{other}, nil)

		_, err := svc.Create(ctx, CreateInvoiceRequest{
			ClientID:        client.ID,
			LorryReceiptIDs: []uuid.UUID{other.ID},
		})
		require.Error(t, err)
	})

	t.Run("missing receipt rejected", func(t *testing.T) {
		svc, _, receipts, clients, _ := newService()
		missing := uuid.New()

		clients.On("FindByID", ctx, client.ID).Return(client, nil)
		receipts.On("FindByIDs", ctx, []uuid.UUID{missing}).Return([]consignment.LorryReceipt{}, nil)

		_, err := svc.Create(ctx, CreateInvoiceRequest{
			ClientID:        client.ID,
			LorryReceiptIDs: []uuid.UUID{missing},
		})
		assert.ErrorContains(t, err, "do not exist")
	})
}

func TestInvoiceDelete(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.New()

	t.Run("paid invoice cannot be deleted", func(t *testing.T) {
		invoices := new(MockInvoiceRepository)
		svc := NewInvoiceService(invoices, new(MockLorryReceiptRepository), new(MockClientRepository), new(MockNumberSource))

		inv, err := billing.NewInvoice("INV000001", day(1), clientID, nil, decimal.NewFromInt(1000), decimal.Zero)
		require.NoError(t, err)
		require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(100)))
		invoices.On("FindByID", ctx, inv.ID).Return(inv, nil)

		err = svc.Delete(ctx, inv.ID)
		require.Error(t, err)
		invoices.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("delete releases the receipts", func(t *testing.T) {
		invoices := new(MockInvoiceRepository)
		receipts := new(MockLorryReceiptRepository)
		svc := NewInvoiceService(invoices, receipts, new(MockClientRepository), new(MockNumberSource))

		lr := openReceipt(t, "LR000001", clientID, 1000)
		inv, err := billing.NewInvoice("INV000001", day(1), clientID, []uuid.UUID{lr.ID}, decimal.NewFromInt(1000), decimal.Zero)
		require.NoError(t, err)
		require.NoError(t, lr.MarkInvoiced(inv.ID))

		invoices.On("FindByID", ctx, inv.ID).Return(inv, nil)
		receipts.On("FindByIDs", ctx, []uuid.UUID{lr.ID}).Return([]consignment.LorryReceipt{lr}, nil)
		receipts.On("Save", ctx, mock.MatchedBy(func(lr *consignment.LorryReceipt) bool {
			return lr.InvoiceID == nil && lr.Status == consignment.LorryReceiptStatusOpen
		})).Return(nil).Once()
		invoices.On("Delete", ctx, inv.ID).Return(nil)

		require.NoError(t, svc.Delete(ctx, inv.ID))
		invoices.AssertExpectations(t)
		receipts.AssertExpectations(t)
	})
}

func TestCreateInvoicePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("payment applied and both saved", func(t *testing.T) {
		payments := new(MockPaymentRepository)
		invoices := new(MockInvoiceRepository)
		svc := NewPaymentService(payments, invoices, new(MockHiringNoteRepository))

		inv, err := billing.NewInvoice("INV000001", day(1), uuid.New(), nil, decimal.NewFromInt(1000), decimal.Zero)
		require.NoError(t, err)
		invoices.On("FindByID", ctx, inv.ID).Return(inv, nil)
		payments.On("Save", ctx, mock.AnythingOfType("*billing.Payment")).Return(nil)
		invoices.On("Save", ctx, inv).Return(nil)

		resp, err := svc.CreateInvoicePayment(ctx, CreateInvoicePaymentRequest{
			InvoiceID: inv.ID,
			Date:      "2024-03-12",
			Amount:    decimal.NewFromInt(600),
			Mode:      "NEFT",
			Reference: "UTR123",
		})
		require.NoError(t, err)
		assert.Equal(t, inv.ClientID, resp.ClientID)
		assert.Equal(t, billing.InvoiceStatusPartiallyPaid, inv.Status)
		invoices.AssertExpectations(t)
	})

	t.Run("overpayment rejected, nothing saved", func(t *testing.T) {
		payments := new(MockPaymentRepository)
		invoices := new(MockInvoiceRepository)
		svc := NewPaymentService(payments, invoices, new(MockHiringNoteRepository))

		inv, err := billing.NewInvoice("INV000001", day(1), uuid.New(), nil, decimal.NewFromInt(1000), decimal.Zero)
		require.NoError(t, err)
		invoices.On("FindByID", ctx, inv.ID).Return(inv, nil)

		_, err = svc.CreateInvoicePayment(ctx, CreateInvoicePaymentRequest{
			InvoiceID: inv.ID,
			Amount:    decimal.NewFromInt(2000),
			Mode:      "CASH",
		})
		require.Error(t, err)
		payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		invoices.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestDeletePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("reverses the invoice settlement", func(t *testing.T) {
		payments := new(MockPaymentRepository)
		invoices := new(MockInvoiceRepository)
		svc := NewPaymentService(payments, invoices, new(MockHiringNoteRepository))

		inv, err := billing.NewInvoice("INV000001", day(1), uuid.New(), nil, decimal.NewFromInt(1000), decimal.Zero)
		require.NoError(t, err)
		require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(1000)))
		pay, err := billing.NewInvoicePayment(day(2), decimal.NewFromInt(1000), billing.PaymentModeCash, inv.ClientID, inv.ID)
		require.NoError(t, err)

		payments.On("FindByID", ctx, pay.ID).Return(pay, nil)
		invoices.On("FindByID", ctx, inv.ID).Return(inv, nil)
		invoices.On("Save", ctx, inv).Return(nil)
		payments.On("Delete", ctx, pay.ID).Return(nil)

		require.NoError(t, svc.Delete(ctx, pay.ID))
		assert.Equal(t, billing.InvoiceStatusUnpaid, inv.Status)
	})

	t.Run("deleted invoice does not block removal", func(t *testing.T) {
		payments := new(MockPaymentRepository)
		invoices := new(MockInvoiceRepository)
		svc := NewPaymentService(payments, invoices, new(MockHiringNoteRepository))

		gone := uuid.New()
		pay, err := billing.NewInvoicePayment(day(2), decimal.NewFromInt(500), billing.PaymentModeCash, uuid.New(), gone)
		require.NoError(t, err)

		payments.On("FindByID", ctx, pay.ID).Return(pay, nil)
		invoices.On("FindByID", ctx, gone).Return(nil, shared.ErrNotFound)
		payments.On("Delete", ctx, pay.ID).Return(nil)

		require.NoError(t, svc.Delete(ctx, pay.ID))
		invoices.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCreateHiringNotePayment(t *testing.T) {
	ctx := context.Background()
	payments := new(MockPaymentRepository)
	notes := new(MockHiringNoteRepository)
	svc := NewPaymentService(payments, new(MockInvoiceRepository), notes)

	note, err := consignment.NewTruckHiringNote("THN000101", day(5), "MH12AB1234", "Ramesh", decimal.NewFromInt(8000))
	require.NoError(t, err)
	notes.On("FindByID", ctx, note.ID).Return(note, nil)
	payments.On("Save", ctx, mock.AnythingOfType("*billing.Payment")).Return(nil)

	resp, err := svc.CreateHiringNotePayment(ctx, CreateHiringNotePaymentRequest{
		HiringNoteID: note.ID,
		Amount:       decimal.NewFromInt(5000),
		Mode:         "NEFT",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.HiringNoteID)
	assert.Equal(t, note.ID, *resp.HiringNoteID)
	assert.Equal(t, uuid.Nil, resp.ClientID)
}
