package recurring_test

import (
	"context"
	"sort"
	"sync"

	"FinControl/internal/domain/transaction"
	appErrors "FinControl/internal/errors"
	"FinControl/internal/pkg"

	"cloud.google.com/go/civil"
	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// memRepository guarda as transações em memória; os campos xxxFn permitem injetar falhas.
type memRepository struct {
	mu   sync.Mutex
	rows map[ulid.ULID]*transaction.Transaction

	createFn     func(ctx context.Context, tx *transaction.Transaction) error
	findDueFn    func(ctx context.Context, today civil.Date) ([]*transaction.Transaction, error)
	advanceFn    func(ctx context.Context, id ulid.ULID, current, next civil.Date) error
	deactivateFn func(ctx context.Context, id ulid.ULID) error

	deactivateCalls int
	updateCalls     int
}

func newMemRepository(rows ...*transaction.Transaction) *memRepository {
	r := &memRepository{rows: make(map[ulid.ULID]*transaction.Transaction)}
	for _, row := range rows {
		r.rows[row.Id] = clone(row)
	}
	return r
}

func clone(tx *transaction.Transaction) *transaction.Transaction {
	c := *tx
	return &c
}

func (r *memRepository) Create(ctx context.Context, tx *transaction.Transaction) error {
	if r.createFn != nil {
		if err := r.createFn(ctx, tx); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[tx.Id] = clone(tx)
	return nil
}

func (r *memRepository) Delete(ctx context.Context, id, userID ulid.ULID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *memRepository) GetByID(ctx context.Context, id, userID ulid.ULID) (*transaction.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok || row.UserId != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return clone(row), nil
}

func (r *memRepository) GetAll(ctx context.Context, userID ulid.ULID, filters *transaction.Filters, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*transaction.Transaction
	for _, row := range r.rows {
		if row.UserId == userID {
			out = append(out, clone(row))
		}
	}
	return out, int64(len(out)), nil
}

func (r *memRepository) GetTemplates(ctx context.Context, userID ulid.ULID, activeOnly bool, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*transaction.Transaction
	for _, row := range r.rows {
		if row.UserId != userID || row.RecurrenceType == nil || row.ParentTransactionId != nil {
			continue
		}
		if activeOnly && !row.IsRecurring {
			continue
		}
		out = append(out, clone(row))
	}
	return out, int64(len(out)), nil
}

func (r *memRepository) FindByParent(ctx context.Context, parentID, userID ulid.ULID) ([]*transaction.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*transaction.Transaction
	for _, row := range r.rows {
		if row.ParentTransactionId != nil && *row.ParentTransactionId == parentID && row.UserId == userID {
			out = append(out, clone(row))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *memRepository) FindDue(ctx context.Context, today civil.Date) ([]*transaction.Transaction, error) {
	if r.findDueFn != nil {
		return r.findDueFn(ctx, today)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*transaction.Transaction
	for _, row := range r.rows {
		if row.IsRecurring && row.NextOccurrence != nil && !row.NextOccurrence.After(today) {
			out = append(out, clone(row))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id.Compare(out[j].Id) < 0 })
	return out, nil
}

func (r *memRepository) AdvanceNextOccurrence(ctx context.Context, id ulid.ULID, current, next civil.Date) error {
	if r.advanceFn != nil {
		if err := r.advanceFn(ctx, id, current, next); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok || !row.IsRecurring || row.NextOccurrence == nil || *row.NextOccurrence != current {
		return appErrors.ErrStaleTemplate
	}
	row.NextOccurrence = &next
	return nil
}

func (r *memRepository) Deactivate(ctx context.Context, id ulid.ULID) error {
	if r.deactivateFn != nil {
		if err := r.deactivateFn(ctx, id); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deactivateCalls++
	if row, ok := r.rows[id]; ok {
		row.IsRecurring = false
		row.NextOccurrence = nil
	}
	return nil
}

func (r *memRepository) UpdateRecurrenceRule(ctx context.Context, id ulid.ULID, recurrenceType transaction.RecurrenceType, endDate *civil.Date, next civil.Date) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	row, ok := r.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	row.RecurrenceType = recurrenceType.Ptr()
	row.RecurrenceEndDate = endDate
	row.NextOccurrence = &next
	return nil
}

func (r *memRepository) WithinTransaction(ctx context.Context, fn func(repo transaction.Repository) error) error {
	r.mu.Lock()
	snapshot := make(map[ulid.ULID]*transaction.Transaction, len(r.rows))
	for id, row := range r.rows {
		snapshot[id] = clone(row)
	}
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.rows = snapshot
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *memRepository) get(id ulid.ULID) *transaction.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row, ok := r.rows[id]; ok {
		return clone(row)
	}
	return nil
}

func (r *memRepository) children(parentID ulid.ULID) []*transaction.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*transaction.Transaction
	for _, row := range r.rows {
		if row.ParentTransactionId != nil && *row.ParentTransactionId == parentID {
			out = append(out, clone(row))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

type recordingNotifier struct {
	mu        sync.Mutex
	generated []*transaction.Transaction
	ended     []*transaction.Transaction
}

func (n *recordingNotifier) RecurringGenerated(ctx context.Context, template, child *transaction.Transaction) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.generated = append(n.generated, child)
}

func (n *recordingNotifier) RecurrenceEnded(ctx context.Context, template *transaction.Transaction) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ended = append(n.ended, template)
}

type fakeLocker struct {
	withLockFn func(ctx context.Context, fn func(ctx context.Context) error) error
	calls      int
}

func (l *fakeLocker) WithLock(ctx context.Context, fn func(ctx context.Context) error) error {
	l.calls++
	if l.withLockFn != nil {
		return l.withLockFn(ctx, fn)
	}
	return fn(ctx)
}
