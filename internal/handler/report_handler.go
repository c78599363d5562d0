package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"factuur/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles financial report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// FinancialOverview handles GET /api/v1/reports/overview
func (h *ReportHandler) FinancialOverview(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	data, filename, err := h.reportService.FinancialOverviewXLSX(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
