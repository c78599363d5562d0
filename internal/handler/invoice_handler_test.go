package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factuur/internal/domain"
	"factuur/internal/middleware"
	"factuur/internal/render"
	"factuur/internal/service"
)

// stubInvoiceService returns canned responses and records the last call.
type stubInvoiceService struct {
	doc        *render.Document
	stored     *domain.StoredInvoice
	invoices   []domain.StoredInvoice
	total      int
	err        error
	lastStatus string
}

func (s *stubInvoiceService) Generate(_ context.Context, _ service.GenerateInput) (*render.Document, error) {
	return s.doc, s.err
}

func (s *stubInvoiceService) Store(_ context.Context, _ uuid.UUID, _ service.GenerateInput) (*domain.StoredInvoice, error) {
	return s.stored, s.err
}

func (s *stubInvoiceService) Send(_ context.Context, _ uuid.UUID, _ service.SendInput) error {
	return s.err
}

func (s *stubInvoiceService) GetByID(_ context.Context, _, _ uuid.UUID) (*domain.StoredInvoice, error) {
	return s.stored, s.err
}

func (s *stubInvoiceService) List(_ context.Context, _ uuid.UUID, status string, _, _ int) ([]domain.StoredInvoice, int, error) {
	s.lastStatus = status
	return s.invoices, s.total, s.err
}

func (s *stubInvoiceService) DownloadPDF(_ context.Context, _, _ uuid.UUID) ([]byte, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return s.doc.Bytes, s.doc.Filename, nil
}

func (s *stubInvoiceService) UpdateStatus(_ context.Context, _, _ uuid.UUID, status string) error {
	s.lastStatus = status
	return s.err
}

func (s *stubInvoiceService) Delete(_ context.Context, _, _ uuid.UUID) error {
	return s.err
}

func (s *stubInvoiceService) ExportCSV(_ context.Context, _ uuid.UUID, w io.Writer) error {
	if s.err != nil {
		return s.err
	}
	_, err := w.Write(append([]byte{0xEF, 0xBB, 0xBF}, []byte("Invoice Number\n")...))
	return err
}

// fakeAuth injects a fixed user into the request context.
func fakeAuth(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, userID)
		c.Next()
	}
}

func invoiceTestRouter(svc service.InvoiceService, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewInvoiceHandler(svc)

	r.POST("/invoices/generate", h.Generate)

	authed := r.Group("/", fakeAuth(userID))
	authed.POST("/invoices", h.Store)
	authed.POST("/invoices/send", h.Send)
	authed.GET("/invoices", h.List)
	authed.GET("/invoices/export", h.ExportCSV)
	authed.GET("/invoices/:id", h.GetByID)
	authed.GET("/invoices/:id/pdf", h.Download)
	authed.PATCH("/invoices/:id/status", h.UpdateStatus)
	authed.DELETE("/invoices/:id", h.Delete)
	return r
}

func generateBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(gin.H{
		"seller_name":    "Jansen Webdesign",
		"client_name":    "Bakkerij de Vries",
		"invoice_number": "2025-001",
		"line_items": []gin.H{
			{"description": "Webdesign", "quantity": 10, "unit_price": 20.05},
		},
		"vat_rate": 21,
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGenerateReturnsPDF(t *testing.T) {
	svc := &stubInvoiceService{doc: &render.Document{
		Bytes:    []byte("%PDF-1.3 stub"),
		Filename: "factuur-2025-001.pdf",
	}}
	r := invoiceTestRouter(svc, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/invoices/generate", generateBody(t))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "factuur-2025-001.pdf")
	assert.Equal(t, "%PDF-1.3 stub", w.Body.String())
}

func TestGenerateValidationError(t *testing.T) {
	svc := &stubInvoiceService{}
	r := invoiceTestRouter(svc, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/invoices/generate", bytes.NewBufferString(`{"line_items":[]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestStoreCreated(t *testing.T) {
	svc := &stubInvoiceService{stored: &domain.StoredInvoice{
		ID:            uuid.New(),
		InvoiceNumber: "2025-001",
		Amount:        decimal.NewFromFloat(303.11),
		Status:        domain.InvoiceStatusDraft,
	}}
	r := invoiceTestRouter(svc, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/invoices", generateBody(t))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
}

func TestSendEmailFailure(t *testing.T) {
	svc := &stubInvoiceService{err: domain.ErrEmailSendFailed}
	r := invoiceTestRouter(svc, uuid.New())

	body, err := json.Marshal(gin.H{
		"to": "klant@example.com",
		"line_items": []gin.H{
			{"description": "Webdesign", "quantity": 1, "unit_price": 100},
		},
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/invoices/send", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "EMAIL_SEND_FAILED", resp.Error.Code)
}

func TestListPaginationMeta(t *testing.T) {
	svc := &stubInvoiceService{
		invoices: []domain.StoredInvoice{{InvoiceNumber: "2025-001"}},
		total:    42,
	}
	r := invoiceTestRouter(svc, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invoices?status=paid&offset=20&limit=10", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "paid", svc.lastStatus)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 42, resp.Meta.Total)
	assert.Equal(t, 20, resp.Meta.Offset)
	assert.Equal(t, 10, resp.Meta.Limit)
}

func TestListInvalidStatus(t *testing.T) {
	svc := &stubInvoiceService{err: domain.ErrInvalidStatus}
	r := invoiceTestRouter(svc, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invoices?status=archived", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "INVALID_STATUS", resp.Error.Code)
}

func TestGetByIDNotFound(t *testing.T) {
	svc := &stubInvoiceService{err: domain.ErrNotFound}
	r := invoiceTestRouter(svc, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invoices/"+uuid.NewString(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestPathIDValidation(t *testing.T) {
	svc := &stubInvoiceService{}
	r := invoiceTestRouter(svc, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invoices/not-a-uuid", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestUpdateStatusForwarded(t *testing.T) {
	svc := &stubInvoiceService{}
	r := invoiceTestRouter(svc, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/invoices/"+uuid.NewString()+"/status",
		bytes.NewBufferString(`{"status":"paid"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "paid", svc.lastStatus)
}

func TestDownloadHeaders(t *testing.T) {
	svc := &stubInvoiceService{doc: &render.Document{
		Bytes:    []byte("%PDF-1.3 stub"),
		Filename: "factuur-2025-001.pdf",
	}}
	r := invoiceTestRouter(svc, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invoices/"+uuid.NewString()+"/pdf", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "factuur-2025-001.pdf")
	assert.Equal(t, "%PDF-1.3 stub", w.Body.String())
}

func TestExportCSVHeaders(t *testing.T) {
	svc := &stubInvoiceService{}
	r := invoiceTestRouter(svc, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invoices/export", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
}

func TestMissingAuthContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewInvoiceHandler(&stubInvoiceService{})
	r.GET("/invoices", h.List)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invoices", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
}
