package ledger

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/google/uuid"
)

// ExportClientStatementCSV writes a client statement as CSV. The column
// layout mirrors the statement table: one row per transaction with the
// running balance, then a closing balance row.
func (s *Service) ExportClientStatementCSV(ctx context.Context, clientID uuid.UUID, q StatementQuery, w io.Writer) error {
	stmt, err := s.ClientStatement(ctx, clientID, q)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Type", "Particulars", "Debit", "Credit", "Balance"}); err != nil {
		return err
	}
	for _, tx := range stmt.Transactions {
		record := []string{
			tx.Date,
			tx.Type,
			tx.Particulars,
			tx.Debit.String(),
			tx.Credit.String(),
			tx.Balance.String(),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	totals := []string{"", "", "Total", stmt.TotalDebit.String(), stmt.TotalCredit.String(), ""}
	if err := cw.Write(totals); err != nil {
		return err
	}
	closing := []string{"", "", "Closing Balance", "", "", stmt.ClosingBalance.String()}
	if err := cw.Write(closing); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// ExportCompanyLedgerCSV writes the company income/expense ledger as CSV
func (s *Service) ExportCompanyLedgerCSV(ctx context.Context, q StatementQuery, w io.Writer) error {
	summary, err := s.CompanyLedger(ctx, q)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Type", "Particulars", "Debit", "Credit"}); err != nil {
		return err
	}
	for _, tx := range summary.Transactions {
		record := []string{
			tx.Date,
			tx.Type,
			tx.Particulars,
			tx.Debit.String(),
			tx.Credit.String(),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	totals := []string{"", "", "Total", summary.TotalExpense.String(), summary.TotalIncome.String()}
	if err := cw.Write(totals); err != nil {
		return err
	}
	net := []string{"", "", "Net", "", summary.Net.String()}
	if err := cw.Write(net); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
