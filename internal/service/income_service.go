package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"factuur/internal/domain"
	"factuur/internal/port"
)

// IncomeInput is the DTO for creating or updating an income record.
type IncomeInput struct {
	Date          string          `json:"date" binding:"required"` // YYYY-MM-DD
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Source        string          `json:"source" binding:"required"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	PaymentMethod string          `json:"payment_method"`
	Attachments   json.RawMessage `json:"attachments"`
}

// IncomeService manages income records.
type IncomeService interface {
	Create(ctx context.Context, userID uuid.UUID, input IncomeInput) (*domain.Income, error)
	GetByID(ctx context.Context, userID, incomeID uuid.UUID) (*domain.Income, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Income, int, error)
	Update(ctx context.Context, userID, incomeID uuid.UUID, input IncomeInput) (*domain.Income, error)
	Delete(ctx context.Context, userID, incomeID uuid.UUID) error
}

type incomeService struct {
	incomeRepo port.IncomeRepository
}

// NewIncomeService creates a new IncomeService implementation.
func NewIncomeService(incomeRepo port.IncomeRepository) IncomeService {
	return &incomeService{incomeRepo: incomeRepo}
}

func (s *incomeService) Create(ctx context.Context, userID uuid.UUID, input IncomeInput) (*domain.Income, error) {
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, err
	}

	income := &domain.Income{
		UserID:        userID,
		Date:          date,
		Amount:        input.Amount,
		Source:        input.Source,
		Category:      input.Category,
		Description:   input.Description,
		PaymentMethod: input.PaymentMethod,
		Attachments:   input.Attachments,
	}
	if err := s.incomeRepo.Create(ctx, income); err != nil {
		return nil, err
	}
	return income, nil
}

func (s *incomeService) GetByID(ctx context.Context, userID, incomeID uuid.UUID) (*domain.Income, error) {
	return s.incomeRepo.GetByID(ctx, userID, incomeID)
}

func (s *incomeService) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Income, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.incomeRepo.ListByUser(ctx, userID, offset, limit)
}

func (s *incomeService) Update(ctx context.Context, userID, incomeID uuid.UUID, input IncomeInput) (*domain.Income, error) {
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, err
	}

	income, err := s.incomeRepo.GetByID(ctx, userID, incomeID)
	if err != nil {
		return nil, err
	}
	income.Date = date
	income.Amount = input.Amount
	income.Source = input.Source
	income.Category = input.Category
	income.Description = input.Description
	income.PaymentMethod = input.PaymentMethod
	income.Attachments = input.Attachments

	if err := s.incomeRepo.Update(ctx, income); err != nil {
		return nil, err
	}
	return income, nil
}

func (s *incomeService) Delete(ctx context.Context, userID, incomeID uuid.UUID) error {
	return s.incomeRepo.Delete(ctx, userID, incomeID)
}
