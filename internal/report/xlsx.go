// Package report builds the downloadable financial overview workbook from
// a user's income, expense, and invoice records.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"factuur/internal/domain"
)

const (
	sheetSummary  = "Overzicht"
	sheetIncome   = "Inkomsten"
	sheetExpenses = "Uitgaven"
	sheetInvoices = "Facturen"

	dateLayout = "02-01-2006"
)

// BuildOverview renders the four-sheet financial overview as XLSX bytes.
func BuildOverview(incomes []domain.Income, expenses []domain.Expense, invoices []domain.StoredInvoice) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// The default sheet becomes the summary; the rest are appended.
	if err := f.SetSheetName(f.GetSheetName(0), sheetSummary); err != nil {
		return nil, fmt.Errorf("report: rename sheet: %w", err)
	}
	for _, name := range []string{sheetIncome, sheetExpenses, sheetInvoices} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("report: create sheet %s: %w", name, err)
		}
	}

	if err := writeIncomeSheet(f, incomes); err != nil {
		return nil, err
	}
	if err := writeExpenseSheet(f, expenses); err != nil {
		return nil, err
	}
	if err := writeInvoiceSheet(f, invoices); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, incomes, expenses, invoices); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("report: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("report: cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("report: set cell %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func writeIncomeSheet(f *excelize.File, incomes []domain.Income) error {
	if err := setRow(f, sheetIncome, 1, "Datum", "Bron", "Categorie", "Omschrijving", "Betaalmethode", "Bedrag"); err != nil {
		return err
	}
	for i, in := range incomes {
		err := setRow(f, sheetIncome, i+2,
			in.Date.Format(dateLayout), in.Source, in.Category, in.Description,
			in.PaymentMethod, in.Amount.InexactFloat64())
		if err != nil {
			return err
		}
	}
	return nil
}

func writeExpenseSheet(f *excelize.File, expenses []domain.Expense) error {
	if err := setRow(f, sheetExpenses, 1, "Datum", "Categorie", "Omschrijving", "Aftrekbaar", "Bedrag"); err != nil {
		return err
	}
	for i, ex := range expenses {
		deductible := "Nee"
		if ex.TaxDeductible {
			deductible = "Ja"
		}
		err := setRow(f, sheetExpenses, i+2,
			ex.Date.Format(dateLayout), ex.Category, ex.Description, deductible,
			ex.Amount.InexactFloat64())
		if err != nil {
			return err
		}
	}
	return nil
}

func writeInvoiceSheet(f *excelize.File, invoices []domain.StoredInvoice) error {
	if err := setRow(f, sheetInvoices, 1, "Factuurnummer", "Klant", "Factuurdatum", "Vervaldatum", "Status", "Bedrag"); err != nil {
		return err
	}
	for i, inv := range invoices {
		err := setRow(f, sheetInvoices, i+2,
			inv.InvoiceNumber, inv.ClientName, inv.IssueDate.Format(dateLayout),
			inv.DueDate.Format(dateLayout), string(inv.Status), inv.Amount.InexactFloat64())
		if err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, incomes []domain.Income, expenses []domain.Expense, invoices []domain.StoredInvoice) error {
	totalIncome := decimal.Zero
	for _, in := range incomes {
		totalIncome = totalIncome.Add(in.Amount)
	}
	totalExpenses := decimal.Zero
	deductible := decimal.Zero
	for _, ex := range expenses {
		totalExpenses = totalExpenses.Add(ex.Amount)
		if ex.TaxDeductible {
			deductible = deductible.Add(ex.Amount)
		}
	}
	outstanding := decimal.Zero
	for _, inv := range invoices {
		if inv.Status == domain.InvoiceStatusPending || inv.Status == domain.InvoiceStatusOverdue {
			outstanding = outstanding.Add(inv.Amount)
		}
	}

	rows := []struct {
		label string
		value interface{}
	}{
		{"Gegenereerd op", time.Now().UTC().Format(dateLayout)},
		{"Totaal inkomsten", totalIncome.InexactFloat64()},
		{"Totaal uitgaven", totalExpenses.InexactFloat64()},
		{"Waarvan aftrekbaar", deductible.InexactFloat64()},
		{"Resultaat", totalIncome.Sub(totalExpenses).InexactFloat64()},
		{"Openstaande facturen", outstanding.InexactFloat64()},
		{"Aantal facturen", len(invoices)},
	}
	for i, r := range rows {
		if err := setRow(f, sheetSummary, i+1, r.label, r.value); err != nil {
			return err
		}
	}
	return nil
}
