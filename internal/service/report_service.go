package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"factuur/internal/domain"
	"factuur/internal/port"
	"factuur/internal/report"
)

// ReportService produces downloadable financial reports.
type ReportService interface {
	FinancialOverviewXLSX(ctx context.Context, userID uuid.UUID) ([]byte, string, error)
}

type reportService struct {
	incomeRepo  port.IncomeRepository
	expenseRepo port.ExpenseRepository
	invoiceRepo port.StoredInvoiceRepository
}

// NewReportService creates a new ReportService implementation.
func NewReportService(
	incomeRepo port.IncomeRepository,
	expenseRepo port.ExpenseRepository,
	invoiceRepo port.StoredInvoiceRepository,
) ReportService {
	return &reportService{
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
		invoiceRepo: invoiceRepo,
	}
}

func (s *reportService) FinancialOverviewXLSX(ctx context.Context, userID uuid.UUID) ([]byte, string, error) {
	var incomes []domain.Income
	for offset := 0; ; offset += exportPageSize {
		page, total, err := s.incomeRepo.ListByUser(ctx, userID, offset, exportPageSize)
		if err != nil {
			return nil, "", fmt.Errorf("report.FinancialOverviewXLSX income: %w", err)
		}
		incomes = append(incomes, page...)
		if offset+len(page) >= total || len(page) == 0 {
			break
		}
	}

	var expenses []domain.Expense
	for offset := 0; ; offset += exportPageSize {
		page, total, err := s.expenseRepo.ListByUser(ctx, userID, offset, exportPageSize)
		if err != nil {
			return nil, "", fmt.Errorf("report.FinancialOverviewXLSX expenses: %w", err)
		}
		expenses = append(expenses, page...)
		if offset+len(page) >= total || len(page) == 0 {
			break
		}
	}

	var invoices []domain.StoredInvoice
	for offset := 0; ; offset += exportPageSize {
		page, total, err := s.invoiceRepo.ListByUser(ctx, userID, "", offset, exportPageSize)
		if err != nil {
			return nil, "", fmt.Errorf("report.FinancialOverviewXLSX invoices: %w", err)
		}
		invoices = append(invoices, page...)
		if offset+len(page) >= total || len(page) == 0 {
			break
		}
	}

	data, err := report.BuildOverview(incomes, expenses, invoices)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("financieel-overzicht_%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	return data, filename, nil
}
