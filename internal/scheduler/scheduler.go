package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	appErrors "FinControl/internal/errors"
	"FinControl/internal/logger"

	"cloud.google.com/go/civil"
)

// Runner processa as recorrências vencidas no instante informado.
type Runner interface {
	ProcessDue(ctx context.Context, now time.Time) (int, error)
}

type Config struct {
	ScheduleTime  string
	Location      *time.Location
	CheckInterval time.Duration
	BatchTimeout  time.Duration
	RunOnStartup  bool
}

// Scheduler dispara o lote de recorrências uma vez por dia, no primeiro tick a partir do
// horário configurado. Trigger e RunNow permitem execuções manuais.
type Scheduler struct {
	runner        Runner
	at            ScheduleTime
	loc           *time.Location
	checkInterval time.Duration
	batchTimeout  time.Duration
	runOnStartup  bool
	now           func() time.Time

	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	notifyCh chan struct{}

	mu          sync.Mutex
	lastRunDate civil.Date
	started     bool
}

func New(runner Runner, cfg Config) (*Scheduler, error) {
	at, err := ParseScheduleTime(cfg.ScheduleTime)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schedule time %q: %w", cfg.ScheduleTime, err)
	}

	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = time.Minute
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = 10 * time.Minute
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		runner:        runner,
		at:            at,
		loc:           cfg.Location,
		checkInterval: cfg.CheckInterval,
		batchTimeout:  cfg.BatchTimeout,
		runOnStartup:  cfg.RunOnStartup,
		now:           time.Now,
		ctx:           ctx,
		cancel:        cancel,
		notifyCh:      make(chan struct{}, 1),
	}, nil
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	if s.runOnStartup {
		s.Trigger()
	}

	s.wg.Add(1)
	go s.loop()

	logger.Info().
		Str("schedule_time", s.at.String()).
		Str("timezone", s.loc.String()).
		Dur("check_interval", s.checkInterval).
		Bool("run_on_startup", s.runOnStartup).
		Msg("Agendador de recorrências iniciado")
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	if s.shouldRun(s.now()) {
		s.run("schedule")
	}

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			if s.shouldRun(s.now()) {
				s.run("schedule")
			}
		case <-s.notifyCh:
			s.run("manual")
		}
	}
}

// shouldRun marca o dia como executado quando now já passou do horário agendado.
func (s *Scheduler) shouldRun(now time.Time) bool {
	local := now.In(s.loc)
	today := civil.DateOf(local)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastRunDate == today {
		return false
	}
	if local.Before(s.at.On(local)) {
		return false
	}

	s.lastRunDate = today
	return true
}

func (s *Scheduler) run(trigger string) {
	ctx, cancel := context.WithTimeout(s.ctx, s.batchTimeout)
	defer cancel()

	start := time.Now()
	count, err := s.runner.ProcessDue(ctx, s.now().In(s.loc))
	if err != nil {
		if errors.Is(err, appErrors.ErrBatchInProgress) {
			logger.Warn().Str("trigger", trigger).Msg("Lote de recorrências já em execução, ignorando disparo")
			return
		}
		logger.Error().Err(err).Str("trigger", trigger).Int("generated", count).Msg("Erro ao processar transações recorrentes")
		return
	}

	logger.Info().
		Str("trigger", trigger).
		Int("generated", count).
		Dur("duration", time.Since(start)).
		Msg("Transações recorrentes processadas")
}

// Trigger agenda uma execução imediata sem bloquear; disparos acumulados viram um só.
func (s *Scheduler) Trigger() {
	select {
	case s.notifyCh <- struct{}{}:
	default:
	}
}

// RunNow executa o lote de forma síncrona e devolve quantas ocorrências foram geradas.
func (s *Scheduler) RunNow(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.batchTimeout)
	defer cancel()

	logger.Info().Msg("Processamento manual de recorrências solicitado")
	return s.runner.ProcessDue(ctx, s.now().In(s.loc))
}

func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info().Msg("Agendador de recorrências finalizado")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NextRun devolve o próximo instante agendado a partir de now.
func (s *Scheduler) NextRun(now time.Time) time.Time {
	local := now.In(s.loc)
	today := civil.DateOf(local)

	s.mu.Lock()
	ranToday := s.lastRunDate == today
	s.mu.Unlock()

	scheduled := s.at.On(local)
	if ranToday || local.After(scheduled) {
		scheduled = s.at.On(local.AddDate(0, 0, 1))
	}
	return scheduled
}
