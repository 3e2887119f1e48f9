package recurring

import (
	"context"
	"errors"

	"FinControl/internal/domain/transaction"

	"cloud.google.com/go/civil"
)

// Notifier recebe os eventos do motor de recorrência. Implementações não devem bloquear.
type Notifier interface {
	RecurringGenerated(ctx context.Context, template, child *transaction.Transaction)
	RecurrenceEnded(ctx context.Context, template *transaction.Transaction)
}

// Locker garante exclusão do lote entre instâncias.
type Locker interface {
	WithLock(ctx context.Context, fn func(ctx context.Context) error) error
}

var ErrLockNotAcquired = errors.New("recurring: batch lock held by another instance")

type CreateRecurringRequest struct {
	Draft             transaction.Draft
	RecurrenceType    transaction.RecurrenceType
	RecurrenceEndDate *civil.Date
}

type UpdateRecurrenceRequest struct {
	RecurrenceType    *transaction.RecurrenceType
	RecurrenceEndDate *civil.Date
	ClearEndDate      bool
}

type nopNotifier struct{}

func (nopNotifier) RecurringGenerated(context.Context, *transaction.Transaction, *transaction.Transaction) {
}

func (nopNotifier) RecurrenceEnded(context.Context, *transaction.Transaction) {}
