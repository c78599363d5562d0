package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"factuur/internal/service"
)

// IncomeHandler handles income CRUD endpoints.
type IncomeHandler struct {
	incomeService service.IncomeService
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService service.IncomeService) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

// Create handles POST /api/v1/income
func (h *IncomeHandler) Create(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	var input service.IncomeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	income, err := h.incomeService.Create(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, income)
}

// List handles GET /api/v1/income?offset=&limit=
func (h *IncomeHandler) List(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	incomes, total, err := h.incomeService.List(c.Request.Context(), userID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, incomes, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/income/:id
func (h *IncomeHandler) GetByID(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	incomeID, ok := pathID(c)
	if !ok {
		return
	}

	income, err := h.incomeService.GetByID(c.Request.Context(), userID, incomeID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, income)
}

// Update handles PUT /api/v1/income/:id
func (h *IncomeHandler) Update(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	incomeID, ok := pathID(c)
	if !ok {
		return
	}

	var input service.IncomeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	income, err := h.incomeService.Update(c.Request.Context(), userID, incomeID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, income)
}

// Delete handles DELETE /api/v1/income/:id
func (h *IncomeHandler) Delete(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	incomeID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.incomeService.Delete(c.Request.Context(), userID, incomeID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "income deleted"})
}
