package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one billable row on an invoice. Items are owned by the
// InvoiceRecord that contains them and are never persisted on their own.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// InvoiceRecord is the immutable input to totals calculation and rendering.
// The renderer never mutates it; concurrent edits produce a new record.
// Fields are not validated here: blank identity fields render as blanks,
// and numeric sanity is a form-layer concern.
type InvoiceRecord struct {
	SellerName    string          `json:"seller_name"`
	SenderName    string          `json:"sender_name"`
	Address       string          `json:"address"`
	CoCNumber     string          `json:"coc_number"`
	VATNumber     string          `json:"vat_number"`
	IBAN          string          `json:"iban"`
	InvoiceNumber string          `json:"invoice_number"`
	IssueDate     time.Time       `json:"issue_date"`
	PaymentTerm   PaymentTermCode `json:"payment_term"`
	LineItems     []LineItem      `json:"line_items"`
	VATRate       float64         `json:"vat_rate"`
	Currency      Currency        `json:"currency"`
	Notes         string          `json:"notes,omitempty"`
}

// DerivedTotals is the pure output of the totals calculator. Never stored;
// always recomputed from the line items so stored and displayed values
// cannot diverge.
type DerivedTotals struct {
	Subtotal  float64 `json:"subtotal"`
	VATAmount float64 `json:"vat_amount"`
	Total     float64 `json:"total"`
}

// User represents an authenticated account.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// StoredInvoice is the persisted record of a generated invoice document.
type StoredInvoice struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	UserID        uuid.UUID       `db:"user_id" json:"user_id"`
	InvoiceNumber string          `db:"invoice_number" json:"invoice_number"`
	ClientName    string          `db:"client_name" json:"client_name"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	IssueDate     time.Time       `db:"issue_date" json:"issue_date"`
	DueDate       time.Time       `db:"due_date" json:"due_date"`
	Status        InvoiceStatus   `db:"status" json:"status"`
	PDFBucket     string          `db:"pdf_bucket" json:"-"`
	PDFKey        string          `db:"pdf_key" json:"-"`
	PDFURL        string          `db:"pdf_url" json:"pdf_url"`
	Metadata      json.RawMessage `db:"metadata" json:"metadata,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// Expense is a single outgoing-money record.
type Expense struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	UserID        uuid.UUID       `db:"user_id" json:"user_id"`
	Date          time.Time       `db:"date" json:"date"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Category      string          `db:"category" json:"category"`
	Description   string          `db:"description" json:"description"`
	TaxDeductible bool            `db:"tax_deductible" json:"tax_deductible"`
	Attachments   json.RawMessage `db:"attachments" json:"attachments,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// Income is a single incoming-money record.
type Income struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	UserID        uuid.UUID       `db:"user_id" json:"user_id"`
	Date          time.Time       `db:"date" json:"date"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Source        string          `db:"source" json:"source"`
	Category      string          `db:"category" json:"category"`
	Description   string          `db:"description" json:"description"`
	PaymentMethod string          `db:"payment_method" json:"payment_method"`
	Attachments   json.RawMessage `db:"attachments" json:"attachments,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}
