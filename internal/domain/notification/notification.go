package notification

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Notification struct {
	Id          ulid.ULID  `json:"id"`
	UserId      ulid.ULID  `json:"userId"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	Type        Types      `json:"type"`
	Category    Category   `json:"category"`
	IsRead      bool       `json:"isRead"`
	RelatedId   *ulid.ULID `json:"relatedId,omitempty"`
	RelatedType string     `json:"relatedType,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type Types string

const (
	TypeInfo    Types = "info"
	TypeWarning Types = "warning"
	TypeSuccess Types = "success"
	TypeError   Types = "error"
)

type Category string

const (
	CategoryTransaction Category = "transaction"
	CategoryGoal        Category = "goal"
	CategoryBudget      Category = "budget"
	CategoryPremium     Category = "premium"
	CategorySystem      Category = "system"
)

const RelatedTypeTransaction = "transaction"
