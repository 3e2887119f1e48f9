package routes

import (
	"context"
	"strings"

	"FinControl/internal/domain/notification"
	"FinControl/internal/domain/recurring"
	"FinControl/internal/domain/transaction"
	appErrors "FinControl/internal/errors"
	"FinControl/internal/logger"
	"FinControl/internal/middleware"
	"FinControl/internal/pkg"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

// RecurringRunner executa um lote de recorrências fora do horário agendado.
type RecurringRunner interface {
	RunNow(ctx context.Context) (int, error)
}

type Handler struct {
	TransactionService  *transaction.Service
	RecurringService    *recurring.Service
	NotificationService *notification.Service
	Runner              RecurringRunner
	Ping                func(ctx context.Context) error
}

func (h *Handler) GetUserIDFromContext(c *gin.Context) (ulid.ULID, error) {
	userIDStr := c.GetString(middleware.ContextUserID)
	if userIDStr == "" {
		return ulid.ULID{}, appErrors.ErrUnauthorized
	}

	userID, err := pkg.ParseULID(userIDStr)
	if err != nil {
		return ulid.ULID{}, appErrors.ErrUnauthorized.WithError(err)
	}

	return userID, nil
}

func (h *Handler) parsePagination(c *gin.Context) *pkg.PaginationParams {
	page := c.DefaultQuery("page", "1")
	limit := c.DefaultQuery("limit", "10")

	pageNum, err := pkg.ParseInt(page)
	if err != nil || pageNum < 1 {
		pageNum = 1
	}

	limitNum, err := pkg.ParseInt(limit)
	if err != nil || limitNum < 1 {
		limitNum = 10
	}

	return pkg.NormalizePagination(&pkg.PaginationParams{
		Page:  pageNum,
		Limit: limitNum,
	})
}

func (h *Handler) parseID(c *gin.Context) (ulid.ULID, bool) {
	id, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return ulid.ULID{}, false
	}
	return id, true
}

func parseDate(value, field string) (civil.Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return civil.Date{}, appErrors.NewValidationError(field, "data inválida, use AAAA-MM-DD")
	}
	return d, nil
}

func parseOptionalDate(value *string, field string) (*civil.Date, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	d, err := parseDate(*value, field)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (h *Handler) respondError(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)

	event := logger.Warn()
	if appErr.StatusCode >= 500 {
		event = logger.Error()
	}
	event = event.Str("code", appErr.Code).Str("path", c.FullPath())
	if appErr.Err != nil {
		event = event.Err(appErr.Err)
	}
	event.Msg("request_error")

	payload := gin.H{
		"error":   appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Details) > 0 {
		payload["details"] = appErr.Details
	}
	c.JSON(appErr.StatusCode, payload)
}
