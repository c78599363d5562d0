package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"factuur/internal/config"
	"factuur/internal/csvexport"
	"factuur/internal/domain"
	"factuur/internal/invoice"
	"factuur/internal/port"
	"factuur/internal/render"
)

// LineItemInput is one line-item row in a generate request.
type LineItemInput struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// GenerateInput is the DTO for invoice generation requests. Identity fields
// may be blank; they render as blanks on the document.
type GenerateInput struct {
	SellerName    string          `json:"seller_name"`
	SenderName    string          `json:"sender_name"`
	Address       string          `json:"address"`
	CoCNumber     string          `json:"coc_number"`
	VATNumber     string          `json:"vat_number"`
	IBAN          string          `json:"iban"`
	ClientName    string          `json:"client_name"`
	InvoiceNumber string          `json:"invoice_number"`
	IssueDate     string          `json:"issue_date"` // YYYY-MM-DD; empty means today
	PaymentTerm   string          `json:"payment_term"`
	LineItems     []LineItemInput `json:"line_items" binding:"required,min=1"`
	VATRate       float64         `json:"vat_rate"`
	Currency      string          `json:"currency" binding:"omitempty,oneof=EUR USD GBP"`
	Notes         string          `json:"notes"`
	Template      string          `json:"template"`
	Language      string          `json:"language"`
	LogoBase64    string          `json:"logo_base64"`
	SkipQR        bool            `json:"skip_qr"`
}

// SendInput is the DTO for invoice email delivery requests.
type SendInput struct {
	GenerateInput
	To      string `json:"to" binding:"required,email"`
	ReplyTo string `json:"reply_to" binding:"omitempty,email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// InvoiceService generates, stores, delivers, and tracks invoices.
type InvoiceService interface {
	Generate(ctx context.Context, input GenerateInput) (*render.Document, error)
	Store(ctx context.Context, userID uuid.UUID, input GenerateInput) (*domain.StoredInvoice, error)
	Send(ctx context.Context, userID uuid.UUID, input SendInput) error
	GetByID(ctx context.Context, userID, invoiceID uuid.UUID) (*domain.StoredInvoice, error)
	List(ctx context.Context, userID uuid.UUID, status string, offset, limit int) ([]domain.StoredInvoice, int, error)
	DownloadPDF(ctx context.Context, userID, invoiceID uuid.UUID) ([]byte, string, error)
	UpdateStatus(ctx context.Context, userID, invoiceID uuid.UUID, status string) error
	Delete(ctx context.Context, userID, invoiceID uuid.UUID) error
	ExportCSV(ctx context.Context, userID uuid.UUID, w io.Writer) error
}

type invoiceService struct {
	invoiceRepo port.StoredInvoiceRepository
	storage     port.ObjectStorage
	email       port.EmailSender
	s3Cfg       *config.S3Config
	invCfg      *config.InvoiceConfig
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	invoiceRepo port.StoredInvoiceRepository,
	storage port.ObjectStorage,
	email port.EmailSender,
	s3Cfg *config.S3Config,
	invCfg *config.InvoiceConfig,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		storage:     storage,
		email:       email,
		s3Cfg:       s3Cfg,
		invCfg:      invCfg,
	}
}

// toRecord resolves request defaults against configuration and builds the
// immutable record the calculator and renderer consume.
func (s *invoiceService) toRecord(input GenerateInput) (*domain.InvoiceRecord, render.Options, error) {
	issueDate := time.Now().UTC().Truncate(24 * time.Hour)
	if input.IssueDate != "" {
		parsed, err := time.Parse("2006-01-02", input.IssueDate)
		if err != nil {
			return nil, render.Options{}, fmt.Errorf("invoice.toRecord: invalid issue_date %q: %w", input.IssueDate, err)
		}
		issueDate = parsed
	}

	paymentTerm := input.PaymentTerm
	if paymentTerm == "" {
		paymentTerm = s.invCfg.DefaultPaymentTerm
	}
	currency := input.Currency
	if currency == "" {
		currency = string(domain.CurrencyEUR)
	}
	vatRate := input.VATRate
	if vatRate == 0 {
		vatRate = domain.SupportedVATRates[len(domain.SupportedVATRates)-1]
	}

	items := make([]domain.LineItem, len(input.LineItems))
	for i, item := range input.LineItems {
		items[i] = domain.LineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}

	rec := &domain.InvoiceRecord{
		SellerName:    input.SellerName,
		SenderName:    input.SenderName,
		Address:       input.Address,
		CoCNumber:     input.CoCNumber,
		VATNumber:     input.VATNumber,
		IBAN:          input.IBAN,
		InvoiceNumber: input.InvoiceNumber,
		IssueDate:     issueDate,
		PaymentTerm:   domain.PaymentTermCode(paymentTerm),
		LineItems:     items,
		VATRate:       vatRate,
		Currency:      domain.Currency(currency),
		Notes:         input.Notes,
	}

	template := input.Template
	if template == "" {
		template = s.invCfg.DefaultTemplate
	}
	language := input.Language
	if language == "" {
		language = s.invCfg.DefaultLanguage
	}

	var logo []byte
	if input.LogoBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(input.LogoBase64)
		if err != nil {
			// Recoverable: the renderer also drops undecodable logos.
			log.Printf("invoice: dropping undecodable logo: %v", err)
		} else {
			logo = decoded
		}
	}

	labels := render.LabelsForLanguage(language)
	opts := render.Options{
		Logo:     logo,
		Template: domain.TemplateID(template),
		Labels:   &labels,
		SkipQR:   input.SkipQR,
	}
	return rec, opts, nil
}

func (s *invoiceService) Generate(_ context.Context, input GenerateInput) (*render.Document, error) {
	rec, opts, err := s.toRecord(input)
	if err != nil {
		return nil, err
	}
	doc, err := render.Render(rec, opts)
	if err != nil {
		return nil, fmt.Errorf("invoice.Generate: %w", err)
	}
	for _, w := range doc.Warnings {
		log.Printf("invoice %q: %s", rec.InvoiceNumber, w)
	}
	return doc, nil
}

func (s *invoiceService) Store(ctx context.Context, userID uuid.UUID, input GenerateInput) (*domain.StoredInvoice, error) {
	rec, opts, err := s.toRecord(input)
	if err != nil {
		return nil, err
	}
	doc, err := render.Render(rec, opts)
	if err != nil {
		return nil, fmt.Errorf("invoice.Store render: %w", err)
	}

	key := fmt.Sprintf("invoices/%s/%s.pdf", userID, uuid.New())
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(doc.Bytes),
		ContentType: "application/pdf",
		Size:        int64(len(doc.Bytes)),
	})
	if err != nil {
		log.Printf("invoice.Store upload: %v", err)
		return nil, domain.ErrUploadFailed
	}

	url, err := s.storage.GetPresignedURL(ctx, s.s3Cfg.Bucket, key, s.s3Cfg.PresignExpiry)
	if err != nil {
		log.Printf("invoice.Store presign: %v", err)
		url = ""
	}

	totals := invoice.CalculateTotals(rec.LineItems, rec.VATRate)
	dueDate := invoice.CalculateDueDate(rec.IssueDate, rec.PaymentTerm)

	metadata, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("invoice.Store metadata: %w", err)
	}

	stored := &domain.StoredInvoice{
		UserID:        userID,
		InvoiceNumber: rec.InvoiceNumber,
		ClientName:    input.ClientName,
		Amount:        decimal.NewFromFloat(totals.Total),
		IssueDate:     rec.IssueDate,
		DueDate:       dueDate,
		Status:        domain.InvoiceStatusDraft,
		PDFBucket:     s.s3Cfg.Bucket,
		PDFKey:        key,
		PDFURL:        url,
		Metadata:      metadata,
	}
	if err := s.invoiceRepo.Create(ctx, stored); err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *invoiceService) Send(ctx context.Context, userID uuid.UUID, input SendInput) error {
	doc, err := s.Generate(ctx, input.GenerateInput)
	if err != nil {
		return err
	}

	subject := input.Subject
	if subject == "" {
		subject = fmt.Sprintf("Factuur %s", input.InvoiceNumber)
	}
	body := input.Message
	if body == "" {
		body = fmt.Sprintf("Beste,\n\nHierbij ontvangt u factuur %s als bijlage.\n\nMet vriendelijke groet,\n%s",
			input.InvoiceNumber, input.SellerName)
	}

	err = s.email.SendInvoiceEmail(ctx, port.InvoiceEmail{
		To:      input.To,
		ReplyTo: input.ReplyTo,
		Subject: subject,
		Body:    body,
		Attachment: &port.EmailAttachment{
			Filename:    doc.Filename,
			ContentType: "application/pdf",
			Data:        doc.Bytes,
		},
	})
	if err != nil {
		log.Printf("invoice.Send user=%s: %v", userID, err)
		return domain.ErrEmailSendFailed
	}
	return nil
}

func (s *invoiceService) GetByID(ctx context.Context, userID, invoiceID uuid.UUID) (*domain.StoredInvoice, error) {
	return s.invoiceRepo.GetByID(ctx, userID, invoiceID)
}

func (s *invoiceService) List(ctx context.Context, userID uuid.UUID, status string, offset, limit int) ([]domain.StoredInvoice, int, error) {
	if status != "" && !domain.ValidInvoiceStatuses[domain.InvoiceStatus(status)] {
		return nil, 0, domain.ErrInvalidStatus
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.invoiceRepo.ListByUser(ctx, userID, domain.InvoiceStatus(status), offset, limit)
}

func (s *invoiceService) DownloadPDF(ctx context.Context, userID, invoiceID uuid.UUID) ([]byte, string, error) {
	stored, err := s.invoiceRepo.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, "", err
	}

	data, err := s.storage.Download(ctx, stored.PDFBucket, stored.PDFKey)
	if err != nil {
		return nil, "", fmt.Errorf("invoice.DownloadPDF: %w", err)
	}

	labels := render.LabelsForLanguage(s.invCfg.DefaultLanguage)
	number := stored.InvoiceNumber
	if number == "" {
		number = labels.Unnumbered
	}
	return data, fmt.Sprintf("%s-%s.pdf", labels.FilenamePrefix, number), nil
}

func (s *invoiceService) UpdateStatus(ctx context.Context, userID, invoiceID uuid.UUID, status string) error {
	if !domain.ValidInvoiceStatuses[domain.InvoiceStatus(status)] {
		return domain.ErrInvalidStatus
	}
	return s.invoiceRepo.UpdateStatus(ctx, userID, invoiceID, domain.InvoiceStatus(status))
}

func (s *invoiceService) Delete(ctx context.Context, userID, invoiceID uuid.UUID) error {
	stored, err := s.invoiceRepo.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return err
	}
	if stored.PDFKey != "" {
		if err := s.storage.Delete(ctx, stored.PDFBucket, stored.PDFKey); err != nil {
			// The row is still deleted; an orphaned object is preferable to
			// a record pointing at storage we failed to reach.
			log.Printf("invoice.Delete object %s/%s: %v", stored.PDFBucket, stored.PDFKey, err)
		}
	}
	return s.invoiceRepo.Delete(ctx, userID, invoiceID)
}

// exportPageSize bounds a single repository read during CSV export.
const exportPageSize = 500

func (s *invoiceService) ExportCSV(ctx context.Context, userID uuid.UUID, w io.Writer) error {
	if _, err := w.Write(csvexport.BOM); err != nil {
		return fmt.Errorf("invoice.ExportCSV: %w", err)
	}

	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("invoice.ExportCSV header: %w", err)
	}

	for offset := 0; ; offset += exportPageSize {
		page, total, err := s.invoiceRepo.ListByUser(ctx, userID, "", offset, exportPageSize)
		if err != nil {
			return fmt.Errorf("invoice.ExportCSV list: %w", err)
		}
		if err := cw.WriteInvoices(page); err != nil {
			return fmt.Errorf("invoice.ExportCSV rows: %w", err)
		}
		if offset+len(page) >= total || len(page) == 0 {
			break
		}
	}

	cw.Flush()
	return cw.Error()
}
