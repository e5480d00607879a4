package ledger_test

import (
	"testing"
	"time"

	"github.com/freightline/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBuildClientStatement_DebitCreditSigns(t *testing.T) {
	engine := ledger.NewEngine()
	clientID := uuid.New()
	invID := uuid.New()

	invoices := []ledger.InvoiceEntry{
		{ID: invID, Number: "INV000001", ClientID: clientID, Date: day(2024, 1, 1), GrandTotal: amt("2000")},
	}

	t.Run("invoice alone is a debit", func(t *testing.T) {
		stmt := engine.BuildClientStatement(clientID, invoices, nil, nil, ledger.Filter{})
		require.Len(t, stmt.Transactions, 1)
		tx := stmt.Transactions[0]
		assert.Equal(t, ledger.EntryTypeInvoice, tx.Type)
		assert.Equal(t, "Invoice No: INV000001", tx.Particulars)
		assert.Equal(t, "2000", tx.Debit.String())
		assert.Equal(t, "0", tx.Credit.String())
		assert.Equal(t, "2000", tx.Balance.String())
		assert.Equal(t, "2000", stmt.ClosingBalance.String())
	})

	t.Run("settling payment zeroes the balance", func(t *testing.T) {
		payments := []ledger.PaymentEntry{
			{ID: uuid.New(), ClientID: clientID, Date: day(2024, 1, 5), Amount: amt("2000"),
				Mode: "Cash", Invoice: &ledger.DocumentRef{ID: invID}},
		}
		stmt := engine.BuildClientStatement(clientID, invoices, payments, nil, ledger.Filter{})
		require.Len(t, stmt.Transactions, 2)
		tx := stmt.Transactions[1]
		assert.Equal(t, ledger.EntryTypePayment, tx.Type)
		assert.Equal(t, "Payment (Cash) against Invoice No: INV000001", tx.Particulars)
		assert.Equal(t, "0", tx.Debit.String())
		assert.Equal(t, "2000", tx.Credit.String())
		assert.Equal(t, "0", tx.Balance.String())
		assert.Equal(t, "0", stmt.ClosingBalance.String())
	})
}

func TestBuildClientStatement_OrderIndependence(t *testing.T) {
	engine := ledger.NewEngine()
	clientID := uuid.New()
	inv1 := ledger.InvoiceEntry{ID: uuid.New(), Number: "INV000001", ClientID: clientID, Date: day(2024, 1, 10), GrandTotal: amt("500")}
	inv2 := ledger.InvoiceEntry{ID: uuid.New(), Number: "INV000002", ClientID: clientID, Date: day(2024, 1, 1), GrandTotal: amt("1000")}
	pay := ledger.PaymentEntry{ID: uuid.New(), ClientID: clientID, Date: day(2024, 1, 5), Amount: amt("1000"),
		Invoice: &ledger.DocumentRef{ID: inv2.ID}}

	a := engine.BuildClientStatement(clientID, []ledger.InvoiceEntry{inv1, inv2}, []ledger.PaymentEntry{pay}, nil, ledger.Filter{})
	b := engine.BuildClientStatement(clientID, []ledger.InvoiceEntry{inv2, inv1}, []ledger.PaymentEntry{pay}, nil, ledger.Filter{})

	require.Len(t, a.Transactions, 3)
	require.Len(t, b.Transactions, 3)
	for i := range a.Transactions {
		assert.True(t, a.Transactions[i].Date.Equal(b.Transactions[i].Date))
		assert.Equal(t, a.Transactions[i].Balance.String(), b.Transactions[i].Balance.String())
	}
	// Oldest first, balance cumulative
	assert.Equal(t, "1000", a.Transactions[0].Balance.String())
	assert.Equal(t, "0", a.Transactions[1].Balance.String())
	assert.Equal(t, "500", a.Transactions[2].Balance.String())
}

func TestBuildClientStatement_SameDayInvoiceBeforePayment(t *testing.T) {
	engine := ledger.NewEngine()
	clientID := uuid.New()
	invID := uuid.New()
	invoices := []ledger.InvoiceEntry{
		{ID: invID, Number: "INV000009", ClientID: clientID, Date: day(2024, 3, 1), GrandTotal: amt("750")},
	}
	payments := []ledger.PaymentEntry{
		{ID: uuid.New(), ClientID: clientID, Date: day(2024, 3, 1), Amount: amt("750"),
			Invoice: &ledger.DocumentRef{ID: invID}},
	}

	stmt := engine.BuildClientStatement(clientID, invoices, payments, nil, ledger.Filter{})
	require.Len(t, stmt.Transactions, 2)
	assert.Equal(t, ledger.EntryTypeInvoice, stmt.Transactions[0].Type)
	assert.Equal(t, ledger.EntryTypePayment, stmt.Transactions[1].Type)
	// Balance never dips negative from the payment landing first
	assert.Equal(t, "750", stmt.Transactions[0].Balance.String())
	assert.Equal(t, "0", stmt.Transactions[1].Balance.String())
}

func TestBuildClientStatement_FilterIndependentClosingBalance(t *testing.T) {
	engine := ledger.NewEngine()
	clientID := uuid.New()
	inv1 := ledger.InvoiceEntry{ID: uuid.New(), Number: "INV000001", ClientID: clientID, Date: day(2024, 1, 1), GrandTotal: amt("1000")}
	inv2 := ledger.InvoiceEntry{ID: uuid.New(), Number: "INV000002", ClientID: clientID, Date: day(2024, 1, 10), GrandTotal: amt("500")}
	pay := ledger.PaymentEntry{ID: uuid.New(), ClientID: clientID, Date: day(2024, 1, 5), Amount: amt("1000"),
		Invoice: &ledger.DocumentRef{ID: inv1.ID}}
	invoices := []ledger.InvoiceEntry{inv1, inv2}
	payments := []ledger.PaymentEntry{pay}

	t.Run("unfiltered closing balance", func(t *testing.T) {
		stmt := engine.BuildClientStatement(clientID, invoices, payments, nil, ledger.Filter{})
		assert.Equal(t, "500", stmt.ClosingBalance.String())
	})

	t.Run("type filter hides payments but not their effect", func(t *testing.T) {
		stmt := engine.BuildClientStatement(clientID, invoices, payments, nil, ledger.Filter{
			Types: []ledger.EntryType{ledger.EntryTypeInvoice},
		})
		require.Len(t, stmt.Transactions, 2)
		assert.Equal(t, "1500", stmt.TotalDebit.String())
		assert.Equal(t, "0", stmt.TotalCredit.String())
		// Closing balance still reflects the hidden payment
		assert.Equal(t, "500", stmt.ClosingBalance.String())
	})

	t.Run("date filter anchors closing balance at end date", func(t *testing.T) {
		from := day(2024, 1, 3)
		to := day(2024, 1, 7)
		stmt := engine.BuildClientStatement(clientID, invoices, payments, nil, ledger.Filter{
			DateFrom: &from,
			DateTo:   &to,
		})
		require.Len(t, stmt.Transactions, 1)
		assert.Equal(t, ledger.EntryTypePayment, stmt.Transactions[0].Type)
		// Balance at Jan 7 covers the Jan 1 invoice too
		assert.Equal(t, "0", stmt.ClosingBalance.String())
	})

	t.Run("running balance on filtered rows comes from full history", func(t *testing.T) {
		from := day(2024, 1, 8)
		stmt := engine.BuildClientStatement(clientID, invoices, payments, nil, ledger.Filter{DateFrom: &from})
		require.Len(t, stmt.Transactions, 1)
		assert.Equal(t, "500", stmt.Transactions[0].Balance.String())
	})
}

func TestBuildClientStatement_PaymentSelection(t *testing.T) {
	engine := ledger.NewEngine()
	clientA := uuid.New()
	clientB := uuid.New()
	invA := ledger.InvoiceEntry{ID: uuid.New(), Number: "INV000001", ClientID: clientA, Date: day(2024, 2, 1), GrandTotal: amt("100")}
	invB := ledger.InvoiceEntry{ID: uuid.New(), Number: "INV000002", ClientID: clientB, Date: day(2024, 2, 1), GrandTotal: amt("200")}
	invoices := []ledger.InvoiceEntry{invA, invB}

	payments := []ledger.PaymentEntry{
		// Bare-id link resolved through the invoice collection
		{ID: uuid.New(), Date: day(2024, 2, 2), Amount: amt("100"), Invoice: &ledger.DocumentRef{ID: invA.ID}},
		// Belongs to the other client
		{ID: uuid.New(), Date: day(2024, 2, 3), Amount: amt("200"), Invoice: &ledger.DocumentRef{ID: invB.ID}},
	}

	stmt := engine.BuildClientStatement(clientA, invoices, payments, nil, ledger.Filter{})
	require.Len(t, stmt.Transactions, 2)
	assert.Equal(t, "100", stmt.TotalCredit.String())
}

func TestBuildClientStatement_MissingReferenceDegradesGracefully(t *testing.T) {
	engine := ledger.NewEngine()
	clientID := uuid.New()
	deletedInvoiceID := uuid.New()

	payments := []ledger.PaymentEntry{
		{ID: uuid.New(), ClientID: clientID, Date: day(2024, 4, 1), Amount: amt("300"),
			Mode: "NEFT", Invoice: &ledger.DocumentRef{ID: deletedInvoiceID}},
	}

	stmt := engine.BuildClientStatement(clientID, nil, payments, nil, ledger.Filter{})
	require.Len(t, stmt.Transactions, 1)
	assert.Equal(t, "Payment (NEFT)", stmt.Transactions[0].Particulars)
	assert.Equal(t, "300", stmt.TotalCredit.String())
	assert.Equal(t, "-300", stmt.ClosingBalance.String())
}

func TestBuildClientStatement_ExpandedRecordLink(t *testing.T) {
	engine := ledger.NewEngine()
	clientID := uuid.New()

	// The linked invoice is gone from the collection but the ref carries the
	// expanded snapshot, so the description survives.
	payments := []ledger.PaymentEntry{
		{ID: uuid.New(), ClientID: clientID, Date: day(2024, 4, 2), Amount: amt("50"),
			Mode: "Cheque", Invoice: &ledger.DocumentRef{ID: uuid.New(), Number: "INV000077"}},
	}

	stmt := engine.BuildClientStatement(clientID, nil, payments, nil, ledger.Filter{})
	require.Len(t, stmt.Transactions, 1)
	assert.Equal(t, "Payment (Cheque) against Invoice No: INV000077", stmt.Transactions[0].Particulars)
}

func TestBuildClientStatement_HiringNotePaymentResolvesNumber(t *testing.T) {
	engine := ledger.NewEngine()
	clientID := uuid.New()
	note := ledger.HiringNoteEntry{ID: uuid.New(), Number: "THN000012", Date: day(2024, 5, 1), FreightAmount: amt("900")}

	payments := []ledger.PaymentEntry{
		{ID: uuid.New(), ClientID: clientID, Date: day(2024, 5, 3), Amount: amt("900"),
			Mode: "RTGS", HiringNote: &ledger.DocumentRef{ID: note.ID}},
	}

	t.Run("bare-id link resolved through the note collection", func(t *testing.T) {
		stmt := engine.BuildClientStatement(clientID, nil, payments, []ledger.HiringNoteEntry{note}, ledger.Filter{})
		require.Len(t, stmt.Transactions, 1)
		assert.Equal(t, "Payment (RTGS) against Truck Hiring Note No: THN000012", stmt.Transactions[0].Particulars)
		assert.Equal(t, "900", stmt.TotalCredit.String())
	})

	t.Run("deleted note degrades to the generic label", func(t *testing.T) {
		stmt := engine.BuildClientStatement(clientID, nil, payments, nil, ledger.Filter{})
		require.Len(t, stmt.Transactions, 1)
		assert.Equal(t, "Payment (RTGS)", stmt.Transactions[0].Particulars)
		assert.Equal(t, "900", stmt.TotalCredit.String())
	})
}

func TestBuildClientStatement_EmptyAccount(t *testing.T) {
	engine := ledger.NewEngine()

	stmt := engine.BuildClientStatement(uuid.New(), nil, nil, nil, ledger.Filter{})
	assert.Empty(t, stmt.Transactions)
	assert.Equal(t, "0", stmt.TotalDebit.String())
	assert.Equal(t, "0", stmt.TotalCredit.String())
	assert.Equal(t, "0", stmt.ClosingBalance.String())
}

func TestBuildCompanyLedger(t *testing.T) {
	engine := ledger.NewEngine()
	invoices := []ledger.InvoiceEntry{
		{ID: uuid.New(), Number: "INV000001", ClientID: uuid.New(), Date: day(2024, 1, 1), GrandTotal: amt("1000")},
		{ID: uuid.New(), Number: "INV000002", ClientID: uuid.New(), Date: day(2024, 1, 15), GrandTotal: amt("2500")},
	}
	hiringNotes := []ledger.HiringNoteEntry{
		{ID: uuid.New(), Number: "THN000001", Date: day(2024, 1, 10), FreightAmount: amt("1200")},
	}

	t.Run("income and expense netted", func(t *testing.T) {
		summary := engine.BuildCompanyLedger(invoices, hiringNotes, ledger.Filter{})
		require.Len(t, summary.Transactions, 3)
		assert.Equal(t, "3500", summary.TotalIncome.String())
		assert.Equal(t, "1200", summary.TotalExpense.String())
		assert.Equal(t, "2300", summary.Net.String())
		assert.Equal(t, "Truck Hiring Note No: THN000001", summary.Transactions[1].Particulars)
	})

	t.Run("type filter", func(t *testing.T) {
		summary := engine.BuildCompanyLedger(invoices, hiringNotes, ledger.Filter{
			Types: []ledger.EntryType{ledger.EntryTypeExpense},
		})
		require.Len(t, summary.Transactions, 1)
		assert.Equal(t, "0", summary.TotalIncome.String())
		assert.Equal(t, "1200", summary.TotalExpense.String())
		assert.Equal(t, "-1200", summary.Net.String())
	})

	t.Run("date filter", func(t *testing.T) {
		to := day(2024, 1, 12)
		summary := engine.BuildCompanyLedger(invoices, hiringNotes, ledger.Filter{DateTo: &to})
		require.Len(t, summary.Transactions, 2)
		assert.Equal(t, "1000", summary.TotalIncome.String())
	})

	t.Run("empty inputs", func(t *testing.T) {
		summary := engine.BuildCompanyLedger(nil, nil, ledger.Filter{})
		assert.Empty(t, summary.Transactions)
		assert.Equal(t, "0", summary.Net.String())
	})
}
