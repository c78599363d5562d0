package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"factuur/internal/csvexport"
	"factuur/internal/service"
)

// InvoiceHandler handles invoice generation and tracking endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Generate handles POST /api/v1/invoices/generate.
// Returns the rendered PDF directly with a Content-Disposition filename.
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var input service.GenerateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	doc, err := h.invoiceService.Generate(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", doc.Bytes)
}

// Store handles POST /api/v1/invoices.
// Renders the invoice, uploads the PDF, and persists the record.
func (h *InvoiceHandler) Store(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	var input service.GenerateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	stored, err := h.invoiceService.Store(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, stored)
}

// Send handles POST /api/v1/invoices/send.
// Renders the invoice and emails it as a PDF attachment.
func (h *InvoiceHandler) Send(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	var input service.SendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.invoiceService.Send(c.Request.Context(), userID, input); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "invoice sent"})
}

// List handles GET /api/v1/invoices?status=&offset=&limit=
func (h *InvoiceHandler) List(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	status := c.Query("status")

	invoices, total, err := h.invoiceService.List(c.Request.Context(), userID, status, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	invoiceID, ok := pathID(c)
	if !ok {
		return
	}

	stored, err := h.invoiceService.GetByID(c.Request.Context(), userID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stored)
}

// Download handles GET /api/v1/invoices/:id/pdf
func (h *InvoiceHandler) Download(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	invoiceID, ok := pathID(c)
	if !ok {
		return
	}

	data, filename, err := h.invoiceService.DownloadPDF(c.Request.Context(), userID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// UpdateStatus handles PATCH /api/v1/invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	invoiceID, ok := pathID(c)
	if !ok {
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.invoiceService.UpdateStatus(c.Request.Context(), userID, invoiceID, input.Status); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "status updated"})
}

// Delete handles DELETE /api/v1/invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	invoiceID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), userID, invoiceID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "invoice deleted"})
}

// ExportCSV handles GET /api/v1/invoices/export
func (h *InvoiceHandler) ExportCSV(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	filename := csvexport.BuildFilename("facturen")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")

	if err := h.invoiceService.ExportCSV(c.Request.Context(), userID, c.Writer); err != nil {
		// Headers may already be out; record the error and abort the stream.
		_ = c.Error(err)
		c.Abort()
	}
}
