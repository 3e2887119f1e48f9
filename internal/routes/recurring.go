package routes

import (
	"net/http"
	"strconv"

	"FinControl/internal/contracts"
	"FinControl/internal/domain/recurring"
	"FinControl/internal/domain/transaction"
	appErrors "FinControl/internal/errors"
	"FinControl/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListRecurringTemplates(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	activeOnly := false
	if value := c.Query("active"); value != "" {
		activeOnly, err = strconv.ParseBool(value)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("active", "valor booleano inválido"))
			return
		}
	}

	pagination := h.parsePagination(c)
	templates, total, err := h.RecurringService.ListTemplates(c.Request.Context(), userID, activeOnly, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(templates, pagination.Page, pagination.Limit, total))
}

func (h *Handler) CancelRecurrence(c *gin.Context) {
	transactionID, ok := h.parseID(c)
	if !ok {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	updated, err := h.RecurringService.CancelRecurrence(c.Request.Context(), transactionID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.RecurrenceResponse{
		Message:     "Recorrência cancelada com sucesso",
		Transaction: updated,
	})
}

func (h *Handler) UpdateRecurrence(c *gin.Context) {
	transactionID, ok := h.parseID(c)
	if !ok {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.RecurrenceUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	endDate, err := parseOptionalDate(body.RecurrenceEndDate, "recurrence_end_date")
	if err != nil {
		h.respondError(c, err)
		return
	}

	req := recurring.UpdateRecurrenceRequest{
		RecurrenceEndDate: endDate,
		ClearEndDate:      body.ClearEndDate,
	}
	if body.RecurrenceType != nil {
		req.RecurrenceType = transaction.RecurrenceType(*body.RecurrenceType).Ptr()
	}

	updated, err := h.RecurringService.UpdateRecurrence(c.Request.Context(), transactionID, userID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.RecurrenceResponse{
		Message:     "Recorrência atualizada com sucesso",
		Transaction: updated,
	})
}

func (h *Handler) ListGeneratedTransactions(c *gin.Context) {
	transactionID, ok := h.parseID(c)
	if !ok {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	children, err := h.RecurringService.ListGenerated(c.Request.Context(), transactionID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if children == nil {
		children = []*transaction.Transaction{}
	}

	c.JSON(http.StatusOK, contracts.GeneratedListResponse{
		Transactions: children,
		Total:        len(children),
	})
}

func (h *Handler) ProcessRecurring(c *gin.Context) {
	generated, err := h.Runner.RunNow(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.RecurringProcessResponse{
		Message:   "Recorrências processadas com sucesso",
		Generated: generated,
	})
}
