package contracts

import (
	"FinControl/internal/domain/transaction"
)

type RecurrenceUpdateRequest struct {
	RecurrenceType    *string `json:"recurrence_type" binding:"omitempty,oneof=daily weekly monthly yearly"`
	RecurrenceEndDate *string `json:"recurrence_end_date" binding:"omitempty,datetime=2006-01-02"`
	ClearEndDate      bool    `json:"clear_end_date"`
}

type RecurrenceResponse struct {
	Message     string                   `json:"message"`
	Transaction *transaction.Transaction `json:"transaction"`
}

type GeneratedListResponse struct {
	Transactions []*transaction.Transaction `json:"transactions"`
	Total        int                        `json:"total"`
}

type RecurringProcessResponse struct {
	Message   string `json:"message"`
	Generated int    `json:"generated"`
}
