package transaction

import (
	"context"

	"FinControl/internal/pkg"

	"cloud.google.com/go/civil"
	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, transaction *Transaction) error
	Delete(ctx context.Context, transactionID, userID ulid.ULID) error
	GetByID(ctx context.Context, transactionID, userID ulid.ULID) (*Transaction, error)
	GetAll(ctx context.Context, userID ulid.ULID, filters *Filters, pagination *pkg.PaginationParams) ([]*Transaction, int64, error)
	GetTemplates(ctx context.Context, userID ulid.ULID, activeOnly bool, pagination *pkg.PaginationParams) ([]*Transaction, int64, error)
	FindByParent(ctx context.Context, parentID, userID ulid.ULID) ([]*Transaction, error)

	// FindDue lista os modelos ativos com next_occurrence <= today, de todos os usuários.
	FindDue(ctx context.Context, today civil.Date) ([]*Transaction, error)
	// AdvanceNextOccurrence só grava se next_occurrence ainda for igual a current.
	AdvanceNextOccurrence(ctx context.Context, transactionID ulid.ULID, current, next civil.Date) error
	Deactivate(ctx context.Context, transactionID ulid.ULID) error
	UpdateRecurrenceRule(ctx context.Context, transactionID ulid.ULID, recurrenceType RecurrenceType, endDate *civil.Date, next civil.Date) error

	WithinTransaction(ctx context.Context, fn func(repo Repository) error) error
}
