package transaction

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Transaction struct {
	Id                  ulid.ULID       `json:"id"`
	UserId              ulid.ULID       `json:"userId"`
	CategoryId          ulid.ULID       `json:"categoryId"`
	Type                Types           `json:"type"`
	Amount              decimal.Decimal `json:"amount"`
	Description         string          `json:"description"`
	Date                civil.Date      `json:"date"`
	IsRecurring         bool            `json:"isRecurring"`
	RecurrenceType      *RecurrenceType `json:"recurrenceType"`
	RecurrenceEndDate   *civil.Date     `json:"recurrenceEndDate"`
	NextOccurrence      *civil.Date     `json:"nextOccurrence"`
	ParentTransactionId *ulid.ULID      `json:"parentTransactionId"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// IsActiveTemplate indica um modelo de recorrência que ainda gera ocorrências.
func (t *Transaction) IsActiveTemplate() bool {
	return t.IsRecurring && t.NextOccurrence != nil && t.RecurrenceType != nil
}

type Types string

const (
	Income  Types = "income"
	Expense Types = "expense"
)

func (t Types) IsValid() bool {
	return t == Income || t == Expense
}

type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
	RecurrenceYearly  RecurrenceType = "yearly"
)

func (r RecurrenceType) IsValid() bool {
	switch r {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

func (r RecurrenceType) Ptr() *RecurrenceType {
	return &r
}

// Draft carrega os campos informados pelo usuário antes da persistência.
type Draft struct {
	UserId      ulid.ULID
	CategoryId  ulid.ULID
	Type        Types
	Amount      decimal.Decimal
	Description string
	Date        civil.Date
}

type Filters struct {
	Type       *Types
	CategoryID *ulid.ULID
	DateFrom   *civil.Date
	DateTo     *civil.Date
	ParentID   *ulid.ULID
}
