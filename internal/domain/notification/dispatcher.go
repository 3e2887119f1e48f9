package notification

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"FinControl/internal/domain/recurring"
	"FinControl/internal/domain/transaction"
	"FinControl/internal/logger"
	"FinControl/internal/pkg"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	notificationMeter     = otel.Meter("fincontrol/notification")
	notificationsTotal, _ = notificationMeter.Int64Counter("notification.dispatch.total", metric.WithDescription("Notifications handled by the dispatcher by status"))
)

const persistTimeout = 5 * time.Second

var _ recurring.Notifier = (*Dispatcher)(nil)

// Dispatcher persiste notificações em segundo plano. Enfileirar nunca bloqueia: com a fila
// cheia a notificação é descartada.
type Dispatcher struct {
	repo  Repository
	queue chan *Notification
	now   func() time.Time

	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	dropped atomic.Int64
}

func NewDispatcher(repo Repository, queueSize int) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Dispatcher{
		repo:  repo,
		queue: make(chan *Notification, queueSize),
		now:   time.Now,
	}
}

func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go d.run()
	logger.Info().Int("queue_size", cap(d.queue)).Msg("Dispatcher de notificações iniciado")
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for n := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		err := d.repo.Create(ctx, n)
		cancel()

		if err != nil {
			notificationsTotal.Add(context.Background(), 1, metric.WithAttributes(attribute.String("status", "error")))
			logger.Error().Err(err).Str("user_id", n.UserId.String()).Msg("Erro ao salvar notificação")
			continue
		}
		notificationsTotal.Add(context.Background(), 1, metric.WithAttributes(attribute.String("status", "persisted")))
	}
}

// Stop fecha a fila e espera o worker esvaziar o que já foi aceito.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info().Int64("dropped", d.Dropped()).Msg("Dispatcher de notificações finalizado")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) Enqueue(n *Notification) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop(n, "closed")
		return false
	}

	select {
	case d.queue <- n:
		return true
	default:
		d.drop(n, "queue_full")
		return false
	}
}

func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

func (d *Dispatcher) drop(n *Notification, reason string) {
	d.dropped.Add(1)
	notificationsTotal.Add(context.Background(), 1, metric.WithAttributes(attribute.String("status", "dropped")))
	logger.Warn().Str("user_id", n.UserId.String()).Str("reason", reason).Msg("Notificação descartada")
}

func (d *Dispatcher) RecurringGenerated(ctx context.Context, template, child *transaction.Transaction) {
	d.Enqueue(d.build(
		child.UserId,
		"Transação recorrente gerada",
		fmt.Sprintf("%s de R$ %s lançada em %s", describe(child), child.Amount.StringFixed(2), child.Date),
		TypeSuccess,
		child.Id,
	))
}

func (d *Dispatcher) RecurrenceEnded(ctx context.Context, template *transaction.Transaction) {
	d.Enqueue(d.build(
		template.UserId,
		"Recorrência encerrada",
		fmt.Sprintf("%s chegou à data final e não gerará novas ocorrências", describe(template)),
		TypeInfo,
		template.Id,
	))
}

func (d *Dispatcher) build(userID ulid.ULID, title, message string, typ Types, related ulid.ULID) *Notification {
	now := d.now()
	return &Notification{
		Id:          pkg.GenerateULIDObject(),
		UserId:      userID,
		Title:       title,
		Message:     message,
		Type:        typ,
		Category:    CategoryTransaction,
		RelatedId:   &related,
		RelatedType: RelatedTypeTransaction,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func describe(tx *transaction.Transaction) string {
	if tx.Description != "" {
		return fmt.Sprintf("%q", tx.Description)
	}
	if tx.Type == transaction.Income {
		return "Receita"
	}
	return "Despesa"
}
