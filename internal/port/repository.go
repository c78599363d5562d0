package port

import (
	"context"

	"github.com/google/uuid"

	"factuur/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// StoredInvoiceRepository defines the contract for persisted invoice records.
// All query methods include userID so one user can never see another's invoices.
type StoredInvoiceRepository interface {
	Create(ctx context.Context, inv *domain.StoredInvoice) error
	GetByID(ctx context.Context, userID, invoiceID uuid.UUID) (*domain.StoredInvoice, error)
	ListByUser(ctx context.Context, userID uuid.UUID, status domain.InvoiceStatus, offset, limit int) ([]domain.StoredInvoice, int, error)
	UpdateStatus(ctx context.Context, userID, invoiceID uuid.UUID, status domain.InvoiceStatus) error
	Delete(ctx context.Context, userID, invoiceID uuid.UUID) error
}

// ExpenseRepository defines the contract for expense persistence.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	GetByID(ctx context.Context, userID, expenseID uuid.UUID) (*domain.Expense, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Expense, int, error)
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, userID, expenseID uuid.UUID) error
}

// IncomeRepository defines the contract for income persistence.
type IncomeRepository interface {
	Create(ctx context.Context, income *domain.Income) error
	GetByID(ctx context.Context, userID, incomeID uuid.UUID) (*domain.Income, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Income, int, error)
	Update(ctx context.Context, income *domain.Income) error
	Delete(ctx context.Context, userID, incomeID uuid.UUID) error
}
