package recurring

import (
	"context"
	"errors"
	"sync"
	"time"

	"FinControl/internal/domain/transaction"
	appErrors "FinControl/internal/errors"
	"FinControl/internal/logger"
	"FinControl/internal/pkg"

	"cloud.google.com/go/civil"
	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

var (
	recurringTracer    = otel.Tracer("fincontrol/recurring")
	recurringMeter     = otel.Meter("fincontrol/recurring")
	batchDuration, _   = recurringMeter.Float64Histogram("recurring.batch.duration", metric.WithDescription("Recurring batch duration in seconds"), metric.WithUnit("s"))
	templatesTotal, _  = recurringMeter.Int64Counter("recurring.templates.total", metric.WithDescription("Due templates processed by outcome"))
	batchesRejected, _ = recurringMeter.Int64Counter("recurring.batch.rejected", metric.WithDescription("Batches rejected because another one was running"))
)

const (
	outcomeGenerated = "generated"
	outcomeEnded     = "ended"
	outcomeFailed    = "failed"
)

type Service struct {
	Repository transaction.Repository
	Notifier   Notifier
	Locker     Locker
	Now        func() time.Time

	mu sync.Mutex
}

func NewService(repo transaction.Repository, notifier Notifier, locker Locker) *Service {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Service{
		Repository: repo,
		Notifier:   notifier,
		Locker:     locker,
		Now:        time.Now,
	}
}

func (s *Service) CreateRecurring(ctx context.Context, req CreateRecurringRequest) (*transaction.Transaction, error) {
	if !req.RecurrenceType.IsValid() {
		return nil, appErrors.NewValidationError("recurrence_type", "tipo de recorrência invalido")
	}

	draft := req.Draft
	if err := transaction.ValidateDraft(&draft); err != nil {
		return nil, err
	}

	if req.RecurrenceEndDate != nil && req.RecurrenceEndDate.Before(draft.Date) {
		return nil, appErrors.NewValidationError("recurrence_end_date", "data final anterior à data da transação")
	}

	next := NextOccurrence(draft.Date, req.RecurrenceType)

	tx := transaction.NewFromDraft(draft, s.now())
	tx.IsRecurring = true
	tx.RecurrenceType = req.RecurrenceType.Ptr()
	tx.RecurrenceEndDate = req.RecurrenceEndDate
	tx.NextOccurrence = &next

	if err := s.Repository.Create(ctx, tx); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	logger.Info().
		Str("transaction_id", tx.Id.String()).
		Str("recurrence_type", string(req.RecurrenceType)).
		Str("next_occurrence", next.String()).
		Msg("Transação recorrente criada")

	return tx, nil
}

// ProcessDue gera uma ocorrência para cada modelo vencido em now e devolve quantas foram criadas.
// Falhas de um modelo são registradas e não interrompem o lote.
func (s *Service) ProcessDue(ctx context.Context, now time.Time) (int, error) {
	if !s.mu.TryLock() {
		batchesRejected.Add(ctx, 1)
		return 0, appErrors.ErrBatchInProgress
	}
	defer s.mu.Unlock()

	today := civil.DateOf(now)

	ctx, span := recurringTracer.Start(ctx, "recurring.process_due",
		trace.WithAttributes(attribute.String("recurring.today", today.String())),
	)
	defer span.End()

	start := time.Now()
	generated := 0
	run := func(ctx context.Context) error {
		var err error
		generated, err = s.processDue(ctx, today)
		return err
	}

	var err error
	if s.Locker != nil {
		err = s.Locker.WithLock(ctx, run)
		if errors.Is(err, ErrLockNotAcquired) {
			batchesRejected.Add(ctx, 1)
			err = appErrors.ErrBatchInProgress.WithError(err)
		}
	} else {
		err = run(ctx)
	}

	batchDuration.Record(ctx, time.Since(start).Seconds())
	span.SetAttributes(attribute.Int("recurring.generated", generated))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return generated, err
	}

	return generated, nil
}

func (s *Service) processDue(ctx context.Context, today civil.Date) (int, error) {
	templates, err := s.Repository.FindDue(ctx, today)
	if err != nil {
		logger.Error().Err(err).Str("today", today.String()).Msg("Erro ao buscar recorrências vencidas")
		return 0, appErrors.NewDatabaseError(err)
	}

	logger.Info().Int("due", len(templates)).Str("today", today.String()).Msg("Processando transações recorrentes")

	generated := 0
	for _, template := range templates {
		if err := ctx.Err(); err != nil {
			logger.Warn().Err(err).Int("generated", generated).Msg("Processamento de recorrências interrompido")
			return generated, appErrors.FromError(err)
		}

		outcome, err := s.processTemplate(ctx, template)
		templatesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
		if err != nil {
			logger.Error().
				Err(err).
				Str("transaction_id", template.Id.String()).
				Msg("Erro ao processar transação recorrente")
			continue
		}

		if outcome == outcomeGenerated {
			generated++
		}
	}

	logger.Info().Int("generated", generated).Int("due", len(templates)).Msg("Processamento de recorrências concluído")
	return generated, nil
}

func (s *Service) processTemplate(ctx context.Context, template *transaction.Transaction) (string, error) {
	if template.NextOccurrence == nil || template.RecurrenceType == nil || !template.RecurrenceType.IsValid() {
		return outcomeFailed, errors.New("modelo recorrente sem próxima ocorrência ou tipo de recorrência")
	}

	current := *template.NextOccurrence

	if template.RecurrenceEndDate != nil && current.After(*template.RecurrenceEndDate) {
		if err := s.Repository.Deactivate(ctx, template.Id); err != nil {
			return outcomeFailed, err
		}

		template.IsRecurring = false
		template.NextOccurrence = nil
		s.Notifier.RecurrenceEnded(ctx, template)

		logger.Info().Str("transaction_id", template.Id.String()).Msg("Recorrência encerrada")
		return outcomeEnded, nil
	}

	next := NextOccurrence(current, *template.RecurrenceType)
	child := s.newChild(template, current)

	err := s.Repository.WithinTransaction(ctx, func(repo transaction.Repository) error {
		if err := repo.Create(ctx, child); err != nil {
			return err
		}
		return repo.AdvanceNextOccurrence(ctx, template.Id, current, next)
	})
	if err != nil {
		return outcomeFailed, err
	}

	template.NextOccurrence = &next
	s.Notifier.RecurringGenerated(ctx, template, child)

	logger.Debug().
		Str("transaction_id", template.Id.String()).
		Str("child_id", child.Id.String()).
		Str("date", current.String()).
		Str("next_occurrence", next.String()).
		Msg("Ocorrência gerada")

	return outcomeGenerated, nil
}

func (s *Service) newChild(template *transaction.Transaction, date civil.Date) *transaction.Transaction {
	now := s.now()
	parentID := template.Id

	return &transaction.Transaction{
		Id:                  pkg.GenerateULIDObject(),
		UserId:              template.UserId,
		CategoryId:          template.CategoryId,
		Type:                template.Type,
		Amount:              template.Amount,
		Description:         template.Description,
		Date:                date,
		ParentTransactionId: &parentID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

func (s *Service) CancelRecurrence(ctx context.Context, transactionID, userID ulid.ULID) (*transaction.Transaction, error) {
	tx, err := s.getOwned(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}

	if !tx.IsRecurring && tx.NextOccurrence == nil {
		return tx, nil
	}

	if err := s.Repository.Deactivate(ctx, tx.Id); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	tx.IsRecurring = false
	tx.NextOccurrence = nil
	tx.UpdatedAt = s.now()

	logger.Info().Str("transaction_id", tx.Id.String()).Msg("Recorrência cancelada")
	return tx, nil
}

// UpdateRecurrence altera cadência ou data final de um modelo ativo. A troca de cadência
// recalcula a próxima ocorrência a partir da atual.
func (s *Service) UpdateRecurrence(ctx context.Context, transactionID, userID ulid.ULID, req UpdateRecurrenceRequest) (*transaction.Transaction, error) {
	tx, err := s.getOwned(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}

	if !tx.IsActiveTemplate() {
		return nil, appErrors.ErrRecurrenceInactive
	}

	cadence := *tx.RecurrenceType
	next := *tx.NextOccurrence

	if req.RecurrenceType != nil {
		if !req.RecurrenceType.IsValid() {
			return nil, appErrors.NewValidationError("recurrence_type", "tipo de recorrência invalido")
		}
		if *req.RecurrenceType != cadence {
			cadence = *req.RecurrenceType
			next = NextOccurrence(next, cadence)
		}
	}

	endDate := tx.RecurrenceEndDate
	switch {
	case req.ClearEndDate:
		endDate = nil
	case req.RecurrenceEndDate != nil:
		if req.RecurrenceEndDate.Before(tx.Date) {
			return nil, appErrors.NewValidationError("recurrence_end_date", "data final anterior à data da transação")
		}
		endDate = req.RecurrenceEndDate
	}

	if err := s.Repository.UpdateRecurrenceRule(ctx, tx.Id, cadence, endDate, next); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	tx.RecurrenceType = cadence.Ptr()
	tx.RecurrenceEndDate = endDate
	tx.NextOccurrence = &next
	tx.UpdatedAt = s.now()

	return tx, nil
}

func (s *Service) ListGenerated(ctx context.Context, transactionID, userID ulid.ULID) ([]*transaction.Transaction, error) {
	if _, err := s.getOwned(ctx, transactionID, userID); err != nil {
		return nil, err
	}

	children, err := s.Repository.FindByParent(ctx, transactionID, userID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return children, nil
}

func (s *Service) ListTemplates(ctx context.Context, userID ulid.ULID, activeOnly bool, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	templates, total, err := s.Repository.GetTemplates(ctx, userID, activeOnly, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return templates, total, nil
}

func (s *Service) getOwned(ctx context.Context, transactionID, userID ulid.ULID) (*transaction.Transaction, error) {
	tx, err := s.Repository.GetByID(ctx, transactionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrTransactionNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return tx, nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
