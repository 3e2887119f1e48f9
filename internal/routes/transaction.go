package routes

import (
	"net/http"

	"FinControl/internal/contracts"
	"FinControl/internal/domain/recurring"
	"FinControl/internal/domain/transaction"
	appErrors "FinControl/internal/errors"
	"FinControl/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateTransaction(c *gin.Context) {
	var body contracts.TransactionCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	categoryID, err := pkg.ParseULID(body.CategoryId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("category_id", "formato inválido"))
		return
	}

	date, err := parseDate(body.Date, "date")
	if err != nil {
		h.respondError(c, err)
		return
	}

	draft := transaction.Draft{
		UserId:      userID,
		CategoryId:  categoryID,
		Type:        transaction.Types(body.Type),
		Amount:      body.Amount,
		Description: body.Description,
		Date:        date,
	}

	ctx := c.Request.Context()
	if !body.IsRecurring {
		created, err := h.TransactionService.CreateTransaction(ctx, draft)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, contracts.TransactionCreateResponse{
			Message:     "Transação criada com sucesso",
			Transaction: created,
		})
		return
	}

	if body.RecurrenceType == nil {
		h.respondError(c, appErrors.NewValidationError("recurrence_type", "obrigatório para transações recorrentes"))
		return
	}

	endDate, err := parseOptionalDate(body.RecurrenceEndDate, "recurrence_end_date")
	if err != nil {
		h.respondError(c, err)
		return
	}

	created, err := h.RecurringService.CreateRecurring(ctx, recurring.CreateRecurringRequest{
		Draft:             draft,
		RecurrenceType:    transaction.RecurrenceType(*body.RecurrenceType),
		RecurrenceEndDate: endDate,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.TransactionCreateResponse{
		Message:     "Transação recorrente criada com sucesso",
		Transaction: created,
	})
}

func (h *Handler) GetTransactions(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	filters := &transaction.Filters{}

	if value := c.Query("type"); value != "" {
		typ := transaction.Types(value)
		if !typ.IsValid() {
			h.respondError(c, appErrors.NewValidationError("type", "tipo invalido"))
			return
		}
		filters.Type = &typ
	}

	if value := c.Query("category_id"); value != "" {
		categoryID, err := pkg.ParseULID(value)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("category_id", "formato inválido"))
			return
		}
		filters.CategoryID = &categoryID
	}

	if value := c.Query("parent_id"); value != "" {
		parentID, err := pkg.ParseULID(value)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("parent_id", "formato inválido"))
			return
		}
		filters.ParentID = &parentID
	}

	if filters.DateFrom, err = parseOptionalDate(queryPtr(c, "date_from"), "date_from"); err != nil {
		h.respondError(c, err)
		return
	}
	if filters.DateTo, err = parseOptionalDate(queryPtr(c, "date_to"), "date_to"); err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	transactions, total, err := h.TransactionService.GetAllTransactions(ctx, userID, filters, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(transactions, pagination.Page, pagination.Limit, total))
}

func (h *Handler) GetTransaction(c *gin.Context) {
	transactionID, ok := h.parseID(c)
	if !ok {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	found, err := h.TransactionService.GetTransactionByID(c.Request.Context(), transactionID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.TransactionSingleResponse{Transaction: found})
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	transactionID, ok := h.parseID(c)
	if !ok {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.TransactionService.DeleteTransaction(c.Request.Context(), transactionID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Transação removida com sucesso"})
}

func queryPtr(c *gin.Context, key string) *string {
	value, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	return &value
}
