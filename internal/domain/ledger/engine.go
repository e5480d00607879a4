package ledger

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Engine merges independently-sourced financial record streams into
// chronologically ordered, running-balance statements. It is a pure
// computation over already-fetched data: no I/O, no shared state, safe to
// call speculatively while a user adjusts filters.
type Engine struct{}

// NewEngine creates a ledger engine
func NewEngine() *Engine {
	return &Engine{}
}

// typeRank orders entries sharing a date: an invoice logically precedes the
// payment that settles it.
func typeRank(t EntryType) int {
	if t == EntryTypePayment {
		return 1
	}
	return 0
}

// BuildClientStatement produces the running-balance statement for one client.
//
// The running balance is computed by a single scan over the complete date-
// sorted sequence before any display filter is applied. The returned
// TotalDebit/TotalCredit are sums over the filtered rows; ClosingBalance is
// the running balance of the last transaction at or before the filter's end
// date, so hiding payments with a type filter cannot inflate it.
func (e *Engine) BuildClientStatement(
	clientID uuid.UUID,
	invoices []InvoiceEntry,
	payments []PaymentEntry,
	hiringNotes []HiringNoteEntry,
	filter Filter,
) *Statement {
	invoiceByID := make(map[uuid.UUID]InvoiceEntry, len(invoices))
	for _, inv := range invoices {
		invoiceByID[inv.ID] = inv
	}
	noteByID := make(map[uuid.UUID]HiringNoteEntry, len(hiringNotes))
	for _, hn := range hiringNotes {
		noteByID[hn.ID] = hn
	}

	all := make([]Transaction, 0, len(invoices)+len(payments))
	for _, inv := range invoices {
		if inv.ClientID != clientID {
			continue
		}
		all = append(all, Transaction{
			Type:        EntryTypeInvoice,
			Date:        inv.Date,
			Particulars: fmt.Sprintf("Invoice No: %s", inv.Number),
			Debit:       inv.GrandTotal,
			Credit:      decimal.Zero,
		})
	}
	for _, p := range payments {
		if !paymentBelongsToClient(p, clientID, invoiceByID) {
			continue
		}
		all = append(all, Transaction{
			Type:        EntryTypePayment,
			Date:        p.Date,
			Particulars: paymentParticulars(p, invoiceByID, noteByID),
			Debit:       decimal.Zero,
			Credit:      p.Amount,
		})
	}

	sortTransactions(all)

	balance := decimal.Zero
	for i := range all {
		balance = balance.Add(all[i].Debit).Sub(all[i].Credit)
		all[i].Balance = balance
	}

	stmt := &Statement{
		Transactions: make([]Transaction, 0, len(all)),
		TotalDebit:   decimal.Zero,
		TotalCredit:  decimal.Zero,
	}
	for _, tx := range all {
		if !filter.matchesDate(tx.Date) || !filter.matchesType(tx.Type) {
			continue
		}
		stmt.Transactions = append(stmt.Transactions, tx)
		stmt.TotalDebit = stmt.TotalDebit.Add(tx.Debit)
		stmt.TotalCredit = stmt.TotalCredit.Add(tx.Credit)
	}
	stmt.ClosingBalance = closingBalance(all, filter)
	return stmt
}

// BuildCompanyLedger produces the company-wide income/expense summary. A
// cross-account running balance has no meaning, so rows carry no balance:
// invoices are classified as income, truck hiring notes as expense, and the
// net is their difference.
func (e *Engine) BuildCompanyLedger(
	invoices []InvoiceEntry,
	hiringNotes []HiringNoteEntry,
	filter Filter,
) *CompanySummary {
	all := make([]Transaction, 0, len(invoices)+len(hiringNotes))
	for _, inv := range invoices {
		all = append(all, Transaction{
			Type:        EntryTypeIncome,
			Date:        inv.Date,
			Particulars: fmt.Sprintf("Invoice No: %s", inv.Number),
			Debit:       decimal.Zero,
			Credit:      inv.GrandTotal,
		})
	}
	for _, hn := range hiringNotes {
		all = append(all, Transaction{
			Type:        EntryTypeExpense,
			Date:        hn.Date,
			Particulars: fmt.Sprintf("Truck Hiring Note No: %s", hn.Number),
			Debit:       hn.FreightAmount,
			Credit:      decimal.Zero,
		})
	}

	sortTransactions(all)

	summary := &CompanySummary{
		Transactions: make([]Transaction, 0, len(all)),
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, tx := range all {
		if !filter.matchesDate(tx.Date) || !filter.matchesType(tx.Type) {
			continue
		}
		summary.Transactions = append(summary.Transactions, tx)
		if tx.Type == EntryTypeIncome {
			summary.TotalIncome = summary.TotalIncome.Add(tx.Credit)
		} else {
			summary.TotalExpense = summary.TotalExpense.Add(tx.Debit)
		}
	}
	summary.Net = summary.TotalIncome.Sub(summary.TotalExpense)
	return summary
}

// sortTransactions orders by date ascending; invoices sort before payments
// when dates are equal. The sort is stable so equal entries keep input order.
func sortTransactions(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].Date.Equal(txs[j].Date) {
			return txs[i].Date.Before(txs[j].Date)
		}
		return typeRank(txs[i].Type) < typeRank(txs[j].Type)
	})
}

// paymentBelongsToClient resolves the payment's link to decide account
// membership. The link may resolve against the invoice collection, or fall
// back to the payer recorded on the payment itself when the linked document
// has been deleted.
func paymentBelongsToClient(p PaymentEntry, clientID uuid.UUID, invoiceByID map[uuid.UUID]InvoiceEntry) bool {
	if p.Invoice != nil {
		if inv, ok := invoiceByID[p.Invoice.ID]; ok {
			return inv.ClientID == clientID
		}
	}
	return p.ClientID == clientID
}

// paymentParticulars describes the payment mode and the document it settles.
// Bare-id links resolve against the supplied collections; a missing link
// target degrades to a generic label and the amount is counted either way.
func paymentParticulars(p PaymentEntry, invoiceByID map[uuid.UUID]InvoiceEntry, noteByID map[uuid.UUID]HiringNoteEntry) string {
	label := "Payment"
	if p.Mode != "" {
		label = fmt.Sprintf("Payment (%s)", p.Mode)
	}
	if p.Invoice != nil {
		number := p.Invoice.Number
		if inv, ok := invoiceByID[p.Invoice.ID]; ok {
			number = inv.Number
		}
		if number != "" {
			return fmt.Sprintf("%s against Invoice No: %s", label, number)
		}
	}
	if p.HiringNote != nil {
		number := p.HiringNote.Number
		if hn, ok := noteByID[p.HiringNote.ID]; ok {
			number = hn.Number
		}
		if number != "" {
			return fmt.Sprintf("%s against Truck Hiring Note No: %s", label, number)
		}
	}
	return label
}

// closingBalance is the running balance of the last transaction at or before
// the filter's end date, over the complete sequence. With no end date it is
// simply the final balance.
func closingBalance(all []Transaction, filter Filter) decimal.Decimal {
	if len(all) == 0 {
		return decimal.Zero
	}
	if filter.DateTo == nil {
		return all[len(all)-1].Balance
	}
	closing := decimal.Zero
	for _, tx := range all {
		if tx.Date.After(*filter.DateTo) {
			break
		}
		closing = tx.Balance
	}
	return closing
}
