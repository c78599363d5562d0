package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"factuur/internal/domain"
)

func overviewFixture() ([]domain.Income, []domain.Expense, []domain.StoredInvoice) {
	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC)

	incomes := []domain.Income{
		{Date: jan, Source: "Bakkerij de Vries", Category: "omzet", Description: "Factuur 2025-001", PaymentMethod: "bank", Amount: decimal.NewFromFloat(303.11)},
		{Date: feb, Source: "Cafe het Hoekje", Category: "omzet", Amount: decimal.NewFromFloat(150)},
	}
	expenses := []domain.Expense{
		{Date: jan, Category: "software", Description: "Hosting", TaxDeductible: true, Amount: decimal.NewFromFloat(25.50)},
		{Date: feb, Category: "lunch", Description: "Klantlunch", TaxDeductible: false, Amount: decimal.NewFromFloat(40)},
	}
	invoices := []domain.StoredInvoice{
		{InvoiceNumber: "2025-001", ClientName: "Bakkerij de Vries", IssueDate: jan, DueDate: jan.AddDate(0, 0, 14), Status: domain.InvoiceStatusPaid, Amount: decimal.NewFromFloat(303.11)},
		{InvoiceNumber: "2025-002", ClientName: "Cafe het Hoekje", IssueDate: feb, DueDate: feb.AddDate(0, 0, 14), Status: domain.InvoiceStatusPending, Amount: decimal.NewFromFloat(150)},
	}
	return incomes, expenses, invoices
}

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, sheet, ref string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, ref)
	require.NoError(t, err)
	return v
}

func TestBuildOverviewSheets(t *testing.T) {
	incomes, expenses, invoices := overviewFixture()
	data, err := BuildOverview(incomes, expenses, invoices)
	require.NoError(t, err)

	f := openWorkbook(t, data)
	assert.Equal(t, []string{"Overzicht", "Inkomsten", "Uitgaven", "Facturen"}, f.GetSheetList())
}

func TestBuildOverviewSummary(t *testing.T) {
	incomes, expenses, invoices := overviewFixture()
	data, err := BuildOverview(incomes, expenses, invoices)
	require.NoError(t, err)

	f := openWorkbook(t, data)

	assert.Equal(t, "Gegenereerd op", cell(t, f, "Overzicht", "A1"))
	assert.Equal(t, time.Now().UTC().Format("02-01-2006"), cell(t, f, "Overzicht", "B1"))

	assert.Equal(t, "Totaal inkomsten", cell(t, f, "Overzicht", "A2"))
	assert.Equal(t, "453.11", cell(t, f, "Overzicht", "B2"))

	assert.Equal(t, "Totaal uitgaven", cell(t, f, "Overzicht", "A3"))
	assert.Equal(t, "65.5", cell(t, f, "Overzicht", "B3"))

	assert.Equal(t, "Waarvan aftrekbaar", cell(t, f, "Overzicht", "A4"))
	assert.Equal(t, "25.5", cell(t, f, "Overzicht", "B4"))

	assert.Equal(t, "Resultaat", cell(t, f, "Overzicht", "A5"))
	assert.Equal(t, "387.61", cell(t, f, "Overzicht", "B5"))

	// Only the pending invoice counts as outstanding.
	assert.Equal(t, "Openstaande facturen", cell(t, f, "Overzicht", "A6"))
	assert.Equal(t, "150", cell(t, f, "Overzicht", "B6"))

	assert.Equal(t, "Aantal facturen", cell(t, f, "Overzicht", "A7"))
	assert.Equal(t, "2", cell(t, f, "Overzicht", "B7"))
}

func TestBuildOverviewIncomeSheet(t *testing.T) {
	incomes, expenses, invoices := overviewFixture()
	data, err := BuildOverview(incomes, expenses, invoices)
	require.NoError(t, err)

	f := openWorkbook(t, data)

	assert.Equal(t, "Datum", cell(t, f, "Inkomsten", "A1"))
	assert.Equal(t, "Bedrag", cell(t, f, "Inkomsten", "F1"))
	assert.Equal(t, "10-01-2025", cell(t, f, "Inkomsten", "A2"))
	assert.Equal(t, "Bakkerij de Vries", cell(t, f, "Inkomsten", "B2"))
	assert.Equal(t, "303.11", cell(t, f, "Inkomsten", "F2"))
	assert.Equal(t, "Cafe het Hoekje", cell(t, f, "Inkomsten", "B3"))
}

func TestBuildOverviewExpenseSheet(t *testing.T) {
	incomes, expenses, invoices := overviewFixture()
	data, err := BuildOverview(incomes, expenses, invoices)
	require.NoError(t, err)

	f := openWorkbook(t, data)

	assert.Equal(t, "Aftrekbaar", cell(t, f, "Uitgaven", "D1"))
	assert.Equal(t, "Ja", cell(t, f, "Uitgaven", "D2"))
	assert.Equal(t, "Nee", cell(t, f, "Uitgaven", "D3"))
	assert.Equal(t, "25.5", cell(t, f, "Uitgaven", "E2"))
}

func TestBuildOverviewInvoiceSheet(t *testing.T) {
	incomes, expenses, invoices := overviewFixture()
	data, err := BuildOverview(incomes, expenses, invoices)
	require.NoError(t, err)

	f := openWorkbook(t, data)

	assert.Equal(t, "Factuurnummer", cell(t, f, "Facturen", "A1"))
	assert.Equal(t, "2025-001", cell(t, f, "Facturen", "A2"))
	assert.Equal(t, "paid", cell(t, f, "Facturen", "E2"))
	assert.Equal(t, "24-01-2025", cell(t, f, "Facturen", "D2"))
	assert.Equal(t, "pending", cell(t, f, "Facturen", "E3"))
}

func TestBuildOverviewEmpty(t *testing.T) {
	data, err := BuildOverview(nil, nil, nil)
	require.NoError(t, err)

	f := openWorkbook(t, data)
	assert.Equal(t, "0", cell(t, f, "Overzicht", "B2"))
	assert.Equal(t, "0", cell(t, f, "Overzicht", "B7"))
	assert.Equal(t, "Datum", cell(t, f, "Inkomsten", "A1"))
}
