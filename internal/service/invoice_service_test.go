package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factuur/internal/config"
	"factuur/internal/domain"
	"factuur/internal/port"
)

type fakeInvoiceRepo struct {
	invoices []domain.StoredInvoice
}

func (f *fakeInvoiceRepo) Create(_ context.Context, inv *domain.StoredInvoice) error {
	inv.ID = uuid.New()
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	if inv.Status == "" {
		inv.Status = domain.InvoiceStatusDraft
	}
	f.invoices = append(f.invoices, *inv)
	return nil
}

func (f *fakeInvoiceRepo) GetByID(_ context.Context, userID, invoiceID uuid.UUID) (*domain.StoredInvoice, error) {
	for i := range f.invoices {
		if f.invoices[i].ID == invoiceID && f.invoices[i].UserID == userID {
			inv := f.invoices[i]
			return &inv, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInvoiceRepo) ListByUser(_ context.Context, userID uuid.UUID, status domain.InvoiceStatus, offset, limit int) ([]domain.StoredInvoice, int, error) {
	var all []domain.StoredInvoice
	for _, inv := range f.invoices {
		if inv.UserID != userID {
			continue
		}
		if status != "" && inv.Status != status {
			continue
		}
		all = append(all, inv)
	}
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (f *fakeInvoiceRepo) UpdateStatus(_ context.Context, userID, invoiceID uuid.UUID, status domain.InvoiceStatus) error {
	for i := range f.invoices {
		if f.invoices[i].ID == invoiceID && f.invoices[i].UserID == userID {
			f.invoices[i].Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeInvoiceRepo) Delete(_ context.Context, userID, invoiceID uuid.UUID) error {
	for i := range f.invoices {
		if f.invoices[i].ID == invoiceID && f.invoices[i].UserID == userID {
			f.invoices = append(f.invoices[:i], f.invoices[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeStorage struct {
	objects map[string][]byte
	deleted []string
	failUp  bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) Upload(_ context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	if f.failUp {
		return nil, errors.New("boom")
	}
	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.objects[input.Bucket+"/"+input.Key] = data
	return &port.UploadOutput{Location: "https://example.com/" + input.Key}, nil
}

func (f *fakeStorage) Download(_ context.Context, bucket, key string) ([]byte, error) {
	data, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return data, nil
}

func (f *fakeStorage) Delete(_ context.Context, bucket, key string) error {
	f.deleted = append(f.deleted, bucket+"/"+key)
	delete(f.objects, bucket+"/"+key)
	return nil
}

func (f *fakeStorage) GetPresignedURL(_ context.Context, bucket, key string, _ int64) (string, error) {
	return fmt.Sprintf("https://presigned.example.com/%s/%s", bucket, key), nil
}

type fakeEmail struct {
	sent []port.InvoiceEmail
	fail bool
}

func (f *fakeEmail) SendInvoiceEmail(_ context.Context, msg port.InvoiceEmail) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func testInvoiceService() (InvoiceService, *fakeInvoiceRepo, *fakeStorage, *fakeEmail) {
	repo := &fakeInvoiceRepo{}
	storage := newFakeStorage()
	email := &fakeEmail{}
	s3Cfg := &config.S3Config{Bucket: "factuur-test", PresignExpiry: 3600}
	invCfg := &config.InvoiceConfig{
		DefaultTemplate:    "classic",
		DefaultLanguage:    "nl",
		DefaultPaymentTerm: "14_days",
	}
	return NewInvoiceService(repo, storage, email, s3Cfg, invCfg), repo, storage, email
}

func generateInput() GenerateInput {
	return GenerateInput{
		SellerName:    "Jansen Webdesign",
		SenderName:    "P. Jansen",
		Address:       "Keizersgracht 1, Amsterdam",
		CoCNumber:     "12345678",
		VATNumber:     "NL001234567B01",
		IBAN:          "NL91 ABNA 0417 1643 00",
		ClientName:    "Bakkerij de Vries",
		InvoiceNumber: "2025-001",
		IssueDate:     "2025-01-15",
		LineItems: []LineItemInput{
			{Description: "Webdesign", Quantity: 10, UnitPrice: 20.05},
			{Description: "Hosting", Quantity: 1, UnitPrice: 50},
		},
		VATRate:  21,
		Currency: "EUR",
	}
}

func TestInvoiceGenerate(t *testing.T) {
	svc, _, _, _ := testInvoiceService()

	doc, err := svc.Generate(context.Background(), generateInput())
	require.NoError(t, err)
	assert.Equal(t, "factuur-2025-001.pdf", doc.Filename)
	assert.Equal(t, "%PDF", string(doc.Bytes[:4]))
}

func TestInvoiceGenerateBadIssueDate(t *testing.T) {
	svc, _, _, _ := testInvoiceService()

	input := generateInput()
	input.IssueDate = "15-01-2025"
	_, err := svc.Generate(context.Background(), input)
	assert.Error(t, err)
}

func TestInvoiceGenerateEnglishLabels(t *testing.T) {
	svc, _, _, _ := testInvoiceService()

	input := generateInput()
	input.Language = "en"
	doc, err := svc.Generate(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "invoice-2025-001.pdf", doc.Filename)
}

func TestInvoiceStore(t *testing.T) {
	svc, repo, storage, _ := testInvoiceService()
	userID := uuid.New()

	stored, err := svc.Store(context.Background(), userID, generateInput())
	require.NoError(t, err)

	assert.Equal(t, userID, stored.UserID)
	assert.Equal(t, "2025-001", stored.InvoiceNumber)
	assert.Equal(t, "Bakkerij de Vries", stored.ClientName)
	assert.Equal(t, domain.InvoiceStatusDraft, stored.Status)
	assert.InDelta(t, 303.105, stored.Amount.InexactFloat64(), 1e-6)
	assert.Equal(t, time.Date(2025, 1, 29, 0, 0, 0, 0, time.UTC), stored.DueDate)
	assert.NotEmpty(t, stored.Metadata)
	assert.Contains(t, stored.PDFURL, "presigned.example.com")

	require.Len(t, repo.invoices, 1)
	require.True(t, strings.HasPrefix(stored.PDFKey, "invoices/"+userID.String()+"/"))
	data, ok := storage.objects["factuur-test/"+stored.PDFKey]
	require.True(t, ok, "uploaded object missing")
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestInvoiceStoreUploadFailure(t *testing.T) {
	svc, repo, storage, _ := testInvoiceService()
	storage.failUp = true

	_, err := svc.Store(context.Background(), uuid.New(), generateInput())
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	assert.Empty(t, repo.invoices)
}

func TestInvoiceSend(t *testing.T) {
	svc, _, _, email := testInvoiceService()

	input := SendInput{
		GenerateInput: generateInput(),
		To:            "klant@example.com",
	}
	require.NoError(t, svc.Send(context.Background(), uuid.New(), input))

	require.Len(t, email.sent, 1)
	msg := email.sent[0]
	assert.Equal(t, "klant@example.com", msg.To)
	assert.Equal(t, "Factuur 2025-001", msg.Subject)
	assert.Contains(t, msg.Body, "2025-001")
	require.NotNil(t, msg.Attachment)
	assert.Equal(t, "factuur-2025-001.pdf", msg.Attachment.Filename)
	assert.Equal(t, "application/pdf", msg.Attachment.ContentType)
	assert.Equal(t, "%PDF", string(msg.Attachment.Data[:4]))
}

func TestInvoiceSendCustomSubject(t *testing.T) {
	svc, _, _, email := testInvoiceService()

	input := SendInput{
		GenerateInput: generateInput(),
		To:            "klant@example.com",
		Subject:       "Uw factuur van januari",
		Message:       "Zie bijlage.",
	}
	require.NoError(t, svc.Send(context.Background(), uuid.New(), input))

	require.Len(t, email.sent, 1)
	assert.Equal(t, "Uw factuur van januari", email.sent[0].Subject)
	assert.Equal(t, "Zie bijlage.", email.sent[0].Body)
}

func TestInvoiceSendFailure(t *testing.T) {
	svc, _, _, email := testInvoiceService()
	email.fail = true

	input := SendInput{GenerateInput: generateInput(), To: "klant@example.com"}
	err := svc.Send(context.Background(), uuid.New(), input)
	assert.ErrorIs(t, err, domain.ErrEmailSendFailed)
}

func TestInvoiceUpdateStatus(t *testing.T) {
	svc, repo, _, _ := testInvoiceService()
	userID := uuid.New()

	stored, err := svc.Store(context.Background(), userID, generateInput())
	require.NoError(t, err)

	t.Run("valid status", func(t *testing.T) {
		require.NoError(t, svc.UpdateStatus(context.Background(), userID, stored.ID, "paid"))
		assert.Equal(t, domain.InvoiceStatusPaid, repo.invoices[0].Status)
	})

	t.Run("invalid status", func(t *testing.T) {
		err := svc.UpdateStatus(context.Background(), userID, stored.ID, "archived")
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})

	t.Run("other user's invoice", func(t *testing.T) {
		err := svc.UpdateStatus(context.Background(), uuid.New(), stored.ID, "paid")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestInvoiceListStatusFilter(t *testing.T) {
	svc, _, _, _ := testInvoiceService()
	userID := uuid.New()

	stored, err := svc.Store(context.Background(), userID, generateInput())
	require.NoError(t, err)
	require.NoError(t, svc.UpdateStatus(context.Background(), userID, stored.ID, "pending"))

	invoices, total, err := svc.List(context.Background(), userID, "pending", 0, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, invoices, 1)

	_, _, err = svc.List(context.Background(), userID, "archived", 0, 20)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestInvoiceDeleteRemovesObject(t *testing.T) {
	svc, repo, storage, _ := testInvoiceService()
	userID := uuid.New()

	stored, err := svc.Store(context.Background(), userID, generateInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), userID, stored.ID))
	assert.Empty(t, repo.invoices)
	assert.Contains(t, storage.deleted, "factuur-test/"+stored.PDFKey)
}

func TestInvoiceDownloadPDF(t *testing.T) {
	svc, _, _, _ := testInvoiceService()
	userID := uuid.New()

	stored, err := svc.Store(context.Background(), userID, generateInput())
	require.NoError(t, err)

	data, filename, err := svc.DownloadPDF(context.Background(), userID, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "factuur-2025-001.pdf", filename)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestInvoiceExportCSV(t *testing.T) {
	svc, _, _, _ := testInvoiceService()
	userID := uuid.New()

	_, err := svc.Store(context.Background(), userID, generateInput())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), userID, &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\xEF\xBB\xBF"), "missing UTF-8 BOM")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Invoice Number")
	assert.Contains(t, lines[1], "2025-001")
	assert.Contains(t, lines[1], "303.11")
	assert.Contains(t, lines[1], "draft")
}
