package contracts

import (
	"FinControl/internal/domain/transaction"

	"github.com/shopspring/decimal"
)

type TransactionCreateRequest struct {
	Type              string          `json:"type" binding:"required,oneof=income expense"`
	CategoryId        string          `json:"category_id" binding:"required"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description" binding:"omitempty,max=500"`
	Date              string          `json:"date" binding:"required,datetime=2006-01-02"`
	IsRecurring       bool            `json:"is_recurring"`
	RecurrenceType    *string         `json:"recurrence_type" binding:"omitempty,oneof=daily weekly monthly yearly"`
	RecurrenceEndDate *string         `json:"recurrence_end_date" binding:"omitempty,datetime=2006-01-02"`
}

type TransactionCreateResponse struct {
	Message     string                   `json:"message"`
	Transaction *transaction.Transaction `json:"transaction"`
}

type TransactionSingleResponse struct {
	Transaction *transaction.Transaction `json:"transaction"`
}
