package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"factuur/internal/domain"
	"factuur/internal/port"
)

// ExpenseInput is the DTO for creating or updating an expense.
type ExpenseInput struct {
	Date          string          `json:"date" binding:"required"` // YYYY-MM-DD
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Category      string          `json:"category" binding:"required"`
	Description   string          `json:"description"`
	TaxDeductible bool            `json:"tax_deductible"`
	Attachments   json.RawMessage `json:"attachments"`
}

// ExpenseService manages expense records.
type ExpenseService interface {
	Create(ctx context.Context, userID uuid.UUID, input ExpenseInput) (*domain.Expense, error)
	GetByID(ctx context.Context, userID, expenseID uuid.UUID) (*domain.Expense, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Expense, int, error)
	Update(ctx context.Context, userID, expenseID uuid.UUID, input ExpenseInput) (*domain.Expense, error)
	Delete(ctx context.Context, userID, expenseID uuid.UUID) error
}

type expenseService struct {
	expenseRepo port.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService implementation.
func NewExpenseService(expenseRepo port.ExpenseRepository) ExpenseService {
	return &expenseService{expenseRepo: expenseRepo}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func (s *expenseService) Create(ctx context.Context, userID uuid.UUID, input ExpenseInput) (*domain.Expense, error) {
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, err
	}

	expense := &domain.Expense{
		UserID:        userID,
		Date:          date,
		Amount:        input.Amount,
		Category:      input.Category,
		Description:   input.Description,
		TaxDeductible: input.TaxDeductible,
		Attachments:   input.Attachments,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) GetByID(ctx context.Context, userID, expenseID uuid.UUID) (*domain.Expense, error) {
	return s.expenseRepo.GetByID(ctx, userID, expenseID)
}

func (s *expenseService) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Expense, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.expenseRepo.ListByUser(ctx, userID, offset, limit)
}

func (s *expenseService) Update(ctx context.Context, userID, expenseID uuid.UUID, input ExpenseInput) (*domain.Expense, error) {
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, err
	}

	expense, err := s.expenseRepo.GetByID(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}
	expense.Date = date
	expense.Amount = input.Amount
	expense.Category = input.Category
	expense.Description = input.Description
	expense.TaxDeductible = input.TaxDeductible
	expense.Attachments = input.Attachments

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) Delete(ctx context.Context, userID, expenseID uuid.UUID) error {
	return s.expenseRepo.Delete(ctx, userID, expenseID)
}
