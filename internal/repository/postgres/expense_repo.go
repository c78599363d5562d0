package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"factuur/internal/domain"
	"factuur/internal/port"
)

type expenseRepo struct {
	db *sqlx.DB
}

// NewExpenseRepo creates a new PostgreSQL-backed ExpenseRepository.
func NewExpenseRepo(db *sqlx.DB) port.ExpenseRepository {
	return &expenseRepo{db: db}
}

func (r *expenseRepo) Create(ctx context.Context, expense *domain.Expense) error {
	expense.ID = uuid.New()
	now := time.Now().UTC()
	expense.CreatedAt = now
	expense.UpdatedAt = now

	query := `INSERT INTO expenses (id, user_id, date, amount, category, description,
		tax_deductible, attachments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		expense.ID, expense.UserID, expense.Date, expense.Amount, expense.Category,
		expense.Description, expense.TaxDeductible, expense.Attachments,
		expense.CreatedAt, expense.UpdatedAt)
	if err != nil {
		return fmt.Errorf("expenseRepo.Create: %w", err)
	}
	return nil
}

func (r *expenseRepo) GetByID(ctx context.Context, userID, expenseID uuid.UUID) (*domain.Expense, error) {
	var expense domain.Expense
	err := r.db.GetContext(ctx, &expense,
		"SELECT * FROM expenses WHERE id = $1 AND user_id = $2", expenseID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("expenseRepo.GetByID: %w", err)
	}
	return &expense, nil
}

func (r *expenseRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Expense, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM expenses WHERE user_id = $1", userID)
	if err != nil {
		return nil, 0, fmt.Errorf("expenseRepo.ListByUser count: %w", err)
	}

	var expenses []domain.Expense
	err = r.db.SelectContext(ctx, &expenses,
		"SELECT * FROM expenses WHERE user_id = $1 ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3",
		userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("expenseRepo.ListByUser: %w", err)
	}
	return expenses, total, nil
}

func (r *expenseRepo) Update(ctx context.Context, expense *domain.Expense) error {
	expense.UpdatedAt = time.Now().UTC()
	query := `UPDATE expenses SET date = $1, amount = $2, category = $3, description = $4,
		tax_deductible = $5, attachments = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9`
	result, err := r.db.ExecContext(ctx, query,
		expense.Date, expense.Amount, expense.Category, expense.Description,
		expense.TaxDeductible, expense.Attachments, expense.UpdatedAt,
		expense.ID, expense.UserID)
	if err != nil {
		return fmt.Errorf("expenseRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *expenseRepo) Delete(ctx context.Context, userID, expenseID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = $1 AND user_id = $2", expenseID, userID)
	if err != nil {
		return fmt.Errorf("expenseRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
