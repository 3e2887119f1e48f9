package notification_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"FinControl/internal/domain/notification"
	"FinControl/internal/domain/transaction"
	"FinControl/internal/logger"
	"FinControl/internal/pkg"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.SetLogger(zerolog.Nop())
}

type collector struct {
	mu    sync.Mutex
	saved []*notification.Notification
}

func (c *collector) repo() *fakeRepository {
	return &fakeRepository{createFn: func(ctx context.Context, n *notification.Notification) error {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.saved = append(c.saved, n)
		return nil
	}}
}

func (c *collector) all() []*notification.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*notification.Notification(nil), c.saved...)
}

func child() *transaction.Transaction {
	parent := pkg.GenerateULIDObject()
	return &transaction.Transaction{
		Id:                  pkg.GenerateULIDObject(),
		UserId:              pkg.GenerateULIDObject(),
		Type:                transaction.Expense,
		Amount:              decimal.RequireFromString("89.9"),
		Description:         "Internet",
		Date:                civil.Date{Year: 2025, Month: time.April, Day: 10},
		ParentTransactionId: &parent,
	}
}

func TestDispatcherPersistsGeneratedNotification(t *testing.T) {
	c := &collector{}
	d := notification.NewDispatcher(c.repo(), 4)
	d.Start()

	tx := child()
	d.RecurringGenerated(context.Background(), &transaction.Transaction{Id: *tx.ParentTransactionId}, tx)
	require.NoError(t, d.Stop(context.Background()))

	saved := c.all()
	require.Len(t, saved, 1)
	n := saved[0]
	assert.Equal(t, tx.UserId, n.UserId)
	assert.Equal(t, notification.TypeSuccess, n.Type)
	assert.Equal(t, notification.CategoryTransaction, n.Category)
	assert.Equal(t, "Transação recorrente gerada", n.Title)
	assert.Equal(t, `"Internet" de R$ 89.90 lançada em 2025-04-10`, n.Message)
	require.NotNil(t, n.RelatedId)
	assert.Equal(t, tx.Id, *n.RelatedId)
	assert.Equal(t, notification.RelatedTypeTransaction, n.RelatedType)
	assert.False(t, n.IsRead)
}

func TestDispatcherRecurrenceEnded(t *testing.T) {
	c := &collector{}
	d := notification.NewDispatcher(c.repo(), 4)
	d.Start()

	tpl := &transaction.Transaction{Id: pkg.GenerateULIDObject(), UserId: pkg.GenerateULIDObject(), Type: transaction.Income}
	d.RecurrenceEnded(context.Background(), tpl)
	require.NoError(t, d.Stop(context.Background()))

	saved := c.all()
	require.Len(t, saved, 1)
	assert.Equal(t, notification.TypeInfo, saved[0].Type)
	assert.Contains(t, saved[0].Message, "Receita")
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	c := &collector{}
	d := notification.NewDispatcher(c.repo(), 1)

	assert.True(t, d.Enqueue(&notification.Notification{UserId: pkg.GenerateULIDObject()}))

	done := make(chan bool)
	go func() {
		done <- d.Enqueue(&notification.Notification{UserId: pkg.GenerateULIDObject()})
	}()

	select {
	case accepted := <-done:
		assert.False(t, accepted)
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
	assert.EqualValues(t, 1, d.Dropped())

	d.Start()
	require.NoError(t, d.Stop(context.Background()))
	assert.Len(t, c.all(), 1)
}

func TestDispatcherDropsAfterStop(t *testing.T) {
	d := notification.NewDispatcher(&fakeRepository{}, 2)
	d.Start()
	require.NoError(t, d.Stop(context.Background()))
	require.NoError(t, d.Stop(context.Background()))

	assert.False(t, d.Enqueue(&notification.Notification{}))
	assert.EqualValues(t, 1, d.Dropped())
}

func TestDispatcherKeepsRunningAfterPersistError(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	repo := &fakeRepository{createFn: func(ctx context.Context, n *notification.Notification) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls == 1 {
			return errors.New("insert failed")
		}
		return nil
	}}

	d := notification.NewDispatcher(repo, 4)
	d.Start()
	d.Enqueue(&notification.Notification{})
	d.Enqueue(&notification.Notification{})
	require.NoError(t, d.Stop(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, calls)
}

func TestDispatcherStopHonoursContext(t *testing.T) {
	release := make(chan struct{})
	repo := &fakeRepository{createFn: func(ctx context.Context, n *notification.Notification) error {
		<-release
		return nil
	}}

	d := notification.NewDispatcher(repo, 2)
	d.Start()
	d.Enqueue(&notification.Notification{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Stop(ctx), context.DeadlineExceeded)

	close(release)
}
