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

type incomeRepo struct {
	db *sqlx.DB
}

// NewIncomeRepo creates a new PostgreSQL-backed IncomeRepository.
func NewIncomeRepo(db *sqlx.DB) port.IncomeRepository {
	return &incomeRepo{db: db}
}

func (r *incomeRepo) Create(ctx context.Context, income *domain.Income) error {
	income.ID = uuid.New()
	now := time.Now().UTC()
	income.CreatedAt = now
	income.UpdatedAt = now

	query := `INSERT INTO income (id, user_id, date, amount, source, category, description,
		payment_method, attachments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		income.ID, income.UserID, income.Date, income.Amount, income.Source,
		income.Category, income.Description, income.PaymentMethod, income.Attachments,
		income.CreatedAt, income.UpdatedAt)
	if err != nil {
		return fmt.Errorf("incomeRepo.Create: %w", err)
	}
	return nil
}

func (r *incomeRepo) GetByID(ctx context.Context, userID, incomeID uuid.UUID) (*domain.Income, error) {
	var income domain.Income
	err := r.db.GetContext(ctx, &income,
		"SELECT * FROM income WHERE id = $1 AND user_id = $2", incomeID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("incomeRepo.GetByID: %w", err)
	}
	return &income, nil
}

func (r *incomeRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Income, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM income WHERE user_id = $1", userID)
	if err != nil {
		return nil, 0, fmt.Errorf("incomeRepo.ListByUser count: %w", err)
	}

	var incomes []domain.Income
	err = r.db.SelectContext(ctx, &incomes,
		"SELECT * FROM income WHERE user_id = $1 ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3",
		userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("incomeRepo.ListByUser: %w", err)
	}
	return incomes, total, nil
}

func (r *incomeRepo) Update(ctx context.Context, income *domain.Income) error {
	income.UpdatedAt = time.Now().UTC()
	query := `UPDATE income SET date = $1, amount = $2, source = $3, category = $4,
		description = $5, payment_method = $6, attachments = $7, updated_at = $8
		WHERE id = $9 AND user_id = $10`
	result, err := r.db.ExecContext(ctx, query,
		income.Date, income.Amount, income.Source, income.Category,
		income.Description, income.PaymentMethod, income.Attachments, income.UpdatedAt,
		income.ID, income.UserID)
	if err != nil {
		return fmt.Errorf("incomeRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *incomeRepo) Delete(ctx context.Context, userID, incomeID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM income WHERE id = $1 AND user_id = $2", incomeID, userID)
	if err != nil {
		return fmt.Errorf("incomeRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
