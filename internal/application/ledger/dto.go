package ledger

import (
	"fmt"
	"time"

	"github.com/freightline/backend/internal/domain/ledger"
	"github.com/freightline/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// dateLayout is the wire format for statement dates
const dateLayout = "2006-01-02"

// StatementQuery narrows which rows a statement returns. Dates are
// YYYY-MM-DD; Types is a subset of the entry type names.
type StatementQuery struct {
	DateFrom string   `form:"date_from"`
	DateTo   string   `form:"date_to"`
	Types    []string `form:"types"`
}

// toFilter parses and validates the query into a domain filter
func (q StatementQuery) toFilter() (ledger.Filter, error) {
	var filter ledger.Filter
	if q.DateFrom != "" {
		from, err := time.Parse(dateLayout, q.DateFrom)
		if err != nil {
			return filter, shared.NewDomainError("INVALID_INPUT",
				fmt.Sprintf("date_from must be %s", dateLayout))
		}
		filter.DateFrom = &from
	}
	if q.DateTo != "" {
		to, err := time.Parse(dateLayout, q.DateTo)
		if err != nil {
			return filter, shared.NewDomainError("INVALID_INPUT",
				fmt.Sprintf("date_to must be %s", dateLayout))
		}
		filter.DateTo = &to
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return filter, shared.NewDomainError("INVALID_INPUT", "date_to cannot be before date_from")
	}
	for _, name := range q.Types {
		entryType := ledger.EntryType(name)
		if !entryType.IsValid() {
			return filter, shared.NewDomainError("INVALID_INPUT",
				fmt.Sprintf("Unknown entry type %q", name))
		}
		filter.Types = append(filter.Types, entryType)
	}
	return filter, nil
}

// TransactionRow is one display row of a statement
type TransactionRow struct {
	Type        string          `json:"type"`
	Date        string          `json:"date"`
	Particulars string          `json:"particulars"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// StatementResponse is one client's running-balance statement
type StatementResponse struct {
	ClientID       uuid.UUID        `json:"client_id"`
	ClientName     string           `json:"client_name"`
	Transactions   []TransactionRow `json:"transactions"`
	TotalDebit     decimal.Decimal  `json:"total_debit"`
	TotalCredit    decimal.Decimal  `json:"total_credit"`
	ClosingBalance decimal.Decimal  `json:"closing_balance"`
}

// CompanyLedgerResponse is the company-wide income/expense view
type CompanyLedgerResponse struct {
	Transactions []TransactionRow `json:"transactions"`
	TotalIncome  decimal.Decimal  `json:"total_income"`
	TotalExpense decimal.Decimal  `json:"total_expense"`
	Net          decimal.Decimal  `json:"net"`
}

func toTransactionRows(txs []ledger.Transaction) []TransactionRow {
	rows := make([]TransactionRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, TransactionRow{
			Type:        string(tx.Type),
			Date:        tx.Date.Format(dateLayout),
			Particulars: tx.Particulars,
			Debit:       tx.Debit,
			Credit:      tx.Credit,
			Balance:     tx.Balance,
		})
	}
	return rows
}
