package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryType classifies a ledger transaction
type EntryType string

const (
	// EntryTypeInvoice is a debit entry on a client statement
	EntryTypeInvoice EntryType = "invoice"
	// EntryTypePayment is a credit entry on a client statement
	EntryTypePayment EntryType = "payment"
	// EntryTypeIncome classifies invoices on the company ledger
	EntryTypeIncome EntryType = "income"
	// EntryTypeExpense classifies truck hiring notes on the company ledger
	EntryTypeExpense EntryType = "expense"
)

// IsValid returns true if the entry type is known
func (t EntryType) IsValid() bool {
	switch t {
	case EntryTypeInvoice, EntryTypePayment, EntryTypeIncome, EntryTypeExpense:
		return true
	}
	return false
}

// DocumentRef points a payment at the document it settles. Number is a
// display snapshot and may be empty when the link was stored as a bare id;
// the engine resolves it against the supplied collections before rendering.
type DocumentRef struct {
	ID     uuid.UUID
	Number string
}

// InvoiceEntry is the invoice shape the engine consumes. One invoice
// contributes one debit entry equal to its grand total.
type InvoiceEntry struct {
	ID         uuid.UUID
	Number     string
	ClientID   uuid.UUID
	Date       time.Time
	GrandTotal decimal.Decimal
}

// PaymentEntry is the payment shape the engine consumes. One payment
// contributes one credit entry equal to its amount. ClientID is the payer
// recorded on the payment itself; it keeps the payment attributable when the
// linked document has been deleted.
type PaymentEntry struct {
	ID         uuid.UUID
	ClientID   uuid.UUID
	Date       time.Time
	Amount     decimal.Decimal
	Mode       string
	Invoice    *DocumentRef
	HiringNote *DocumentRef
}

// HiringNoteEntry is the truck-hiring-note shape the engine consumes. Hiring
// notes appear only on the company ledger, as expense entries equal to the
// freight amount.
type HiringNoteEntry struct {
	ID            uuid.UUID
	Number        string
	Date          time.Time
	FreightAmount decimal.Decimal
}

// Transaction is a derived, display-oriented ledger row. It is never
// persisted. Balance is the running balance over the complete unfiltered
// sequence for the account, so a display filter can never distort it.
type Transaction struct {
	Type        EntryType       `json:"type"`
	Date        time.Time       `json:"date"`
	Particulars string          `json:"particulars"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// Filter selects which rows a statement returns. It affects only the
// returned rows and the filtered totals, never the running balance.
type Filter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Types    []EntryType
}

func (f Filter) matchesDate(d time.Time) bool {
	if f.DateFrom != nil && d.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && d.After(*f.DateTo) {
		return false
	}
	return true
}

func (f Filter) matchesType(t EntryType) bool {
	if len(f.Types) == 0 {
		return true
	}
	for _, want := range f.Types {
		if t == want {
			return true
		}
	}
	return false
}

// Statement is the running-balance view of one client's activity
type Statement struct {
	Transactions   []Transaction   `json:"transactions"`
	TotalDebit     decimal.Decimal `json:"total_debit"`
	TotalCredit    decimal.Decimal `json:"total_credit"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

// CompanySummary is the company-wide income/expense view. There is no
// running balance across accounts; income sits in the Credit column and
// expense in the Debit column of its transactions.
type CompanySummary struct {
	Transactions []Transaction   `json:"transactions"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Net          decimal.Decimal `json:"net"`
}
