package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestInvoice(t *testing.T) *Invoice {
	t.Helper()
	inv, err := NewInvoice(
		"INV000001",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		uuid.New(),
		[]uuid.UUID{uuid.New()},
		decimal.NewFromInt(1000),
		decimal.NewFromInt(50),
	)
	require.NoError(t, err)
	return inv
}

func TestNewInvoice(t *testing.T) {
	t.Run("valid invoice", func(t *testing.T) {
		inv := createTestInvoice(t)
		assert.Equal(t, "1050", inv.GrandTotal.String())
		assert.Equal(t, InvoiceStatusUnpaid, inv.Status)
		assert.Equal(t, "1050", inv.BalanceDue().String())
	})

	t.Run("empty number rejected", func(t *testing.T) {
		_, err := NewInvoice("", time.Now(), uuid.New(), nil, decimal.NewFromInt(100), decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("nil client rejected", func(t *testing.T) {
		_, err := NewInvoice("INV000001", time.Now(), uuid.Nil, nil, decimal.NewFromInt(100), decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("zero grand total rejected", func(t *testing.T) {
		_, err := NewInvoice("INV000001", time.Now(), uuid.New(), nil, decimal.Zero, decimal.Zero)
		assert.Error(t, err)
	})
}

func TestInvoiceApplyPayment(t *testing.T) {
	t.Run("partial then full payment", func(t *testing.T) {
		inv := createTestInvoice(t)

		require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(500)))
		assert.Equal(t, InvoiceStatusPartiallyPaid, inv.Status)
		assert.Equal(t, "550", inv.BalanceDue().String())

		require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(550)))
		assert.Equal(t, InvoiceStatusPaid, inv.Status)
		assert.Equal(t, "0", inv.BalanceDue().String())
	})

	t.Run("overpayment rejected", func(t *testing.T) {
		inv := createTestInvoice(t)
		assert.Error(t, inv.ApplyPayment(decimal.NewFromInt(2000)))
		assert.Equal(t, InvoiceStatusUnpaid, inv.Status)
	})

	t.Run("zero payment rejected", func(t *testing.T) {
		inv := createTestInvoice(t)
		assert.Error(t, inv.ApplyPayment(decimal.Zero))
	})
}

func TestInvoiceReversePayment(t *testing.T) {
	inv := createTestInvoice(t)
	require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(1050)))
	require.Equal(t, InvoiceStatusPaid, inv.Status)

	require.NoError(t, inv.ReversePayment(decimal.NewFromInt(50)))
	assert.Equal(t, InvoiceStatusPartiallyPaid, inv.Status)

	require.NoError(t, inv.ReversePayment(decimal.NewFromInt(1000)))
	assert.Equal(t, InvoiceStatusUnpaid, inv.Status)

	assert.Error(t, inv.ReversePayment(decimal.NewFromInt(1)))
}

func TestNewInvoicePayment(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		p, err := NewInvoicePayment(time.Now(), decimal.NewFromInt(100), PaymentModeCash, uuid.New(), uuid.New())
		require.NoError(t, err)
		require.NotNil(t, p.InvoiceID)
		assert.Nil(t, p.HiringNoteID)
	})

	t.Run("invalid mode", func(t *testing.T) {
		_, err := NewInvoicePayment(time.Now(), decimal.NewFromInt(100), PaymentMode("BARTER"), uuid.New(), uuid.New())
		assert.Error(t, err)
	})

	t.Run("zero amount", func(t *testing.T) {
		_, err := NewInvoicePayment(time.Now(), decimal.Zero, PaymentModeCash, uuid.New(), uuid.New())
		assert.Error(t, err)
	})
}

func TestNewHiringNotePayment(t *testing.T) {
	p, err := NewHiringNotePayment(time.Now(), decimal.NewFromInt(400), PaymentModeNEFT, uuid.New())
	require.NoError(t, err)
	require.NotNil(t, p.HiringNoteID)
	assert.Nil(t, p.InvoiceID)
	assert.Equal(t, uuid.Nil, p.ClientID)
}
