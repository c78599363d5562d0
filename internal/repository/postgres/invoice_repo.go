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

type invoiceRepo struct {
	db *sqlx.DB
}

// NewStoredInvoiceRepo creates a new PostgreSQL-backed StoredInvoiceRepository.
func NewStoredInvoiceRepo(db *sqlx.DB) port.StoredInvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.StoredInvoice) error {
	inv.ID = uuid.New()
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	if inv.Status == "" {
		inv.Status = domain.InvoiceStatusDraft
	}

	query := `INSERT INTO stored_invoices (id, user_id, invoice_number, client_name, amount,
		issue_date, due_date, status, pdf_bucket, pdf_key, pdf_url, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		inv.ID, inv.UserID, inv.InvoiceNumber, inv.ClientName, inv.Amount,
		inv.IssueDate, inv.DueDate, inv.Status, inv.PDFBucket, inv.PDFKey, inv.PDFURL,
		inv.Metadata, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, userID, invoiceID uuid.UUID) (*domain.StoredInvoice, error) {
	var inv domain.StoredInvoice
	err := r.db.GetContext(ctx, &inv,
		"SELECT * FROM stored_invoices WHERE id = $1 AND user_id = $2", invoiceID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) ListByUser(ctx context.Context, userID uuid.UUID, status domain.InvoiceStatus, offset, limit int) ([]domain.StoredInvoice, int, error) {
	countQuery := "SELECT COUNT(*) FROM stored_invoices WHERE user_id = $1"
	listQuery := "SELECT * FROM stored_invoices WHERE user_id = $1 ORDER BY issue_date DESC, created_at DESC LIMIT $2 OFFSET $3"
	countArgs := []interface{}{userID}
	listArgs := []interface{}{userID, limit, offset}

	if status != "" {
		countQuery = "SELECT COUNT(*) FROM stored_invoices WHERE user_id = $1 AND status = $2"
		listQuery = "SELECT * FROM stored_invoices WHERE user_id = $1 AND status = $2 ORDER BY issue_date DESC, created_at DESC LIMIT $3 OFFSET $4"
		countArgs = append(countArgs, status)
		listArgs = []interface{}{userID, status, limit, offset}
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByUser count: %w", err)
	}

	var invoices []domain.StoredInvoice
	if err := r.db.SelectContext(ctx, &invoices, listQuery, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByUser: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, userID, invoiceID uuid.UUID, status domain.InvoiceStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE stored_invoices SET status = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3",
		status, invoiceID, userID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invoiceRepo) Delete(ctx context.Context, userID, invoiceID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM stored_invoices WHERE id = $1 AND user_id = $2", invoiceID, userID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
