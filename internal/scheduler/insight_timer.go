package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/robfig/cron/v3"
	"github.com/vfg2006/subscription-insights-api/infrastructure/repository"
	"github.com/vfg2006/subscription-insights-api/internal/config"
	"github.com/vfg2006/subscription-insights-api/pkg/log"
)

const (
	TriggerScheduled = "scheduled"
	TriggerCatchUp   = "catch-up"
	TriggerManual    = "manual"

	// InsightTimerName identifica o timer na tabela timer_runs
	InsightTimerName = "insight-timer"

	recordRunTimeout = 10 * time.Second
)

// InsightTimerConfig representa a configuração do timer de insights
type InsightTimerConfig struct {
	CronSchedule     string
	Enabled          bool
	PastDueTolerance time.Duration
}

// InsightTimerService agenda o gatilho diário de insights.
// O corpo ainda não gera insights: apenas registra a execução.
type InsightTimerService struct {
	scheduler *gocron.Scheduler
	schedule  cron.Schedule
	config    InsightTimerConfig
	runRepo   repository.TimerRunRepository
	logger    log.Logger
	now       func() time.Time
	body      func()

	running            bool
	mutex              sync.Mutex
	nextExpectedAt     time.Time
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
	lastRunTrigger     string
	lastRunPastDue     bool
	pastDueCount       int
}

// NewInsightTimerService cria o timer e valida a expressão cron.
// runRepo guarda a última ocorrência concluída para recuperar disparos perdidos
// enquanto o processo esteve fora do ar.
func NewInsightTimerService(appConfig *config.Config, runRepo repository.TimerRunRepository) (*InsightTimerService, error) {
	timerConfig := InsightTimerConfig{
		CronSchedule:     appConfig.InsightTimer.CronSchedule,
		Enabled:          appConfig.InsightTimer.Enabled,
		PastDueTolerance: appConfig.InsightTimer.PastDueTolerance,
	}

	schedule, err := cron.ParseStandard(timerConfig.CronSchedule)
	if err != nil {
		return nil, fmt.Errorf("expressão cron inválida %q: %w", timerConfig.CronSchedule, err)
	}

	log.L.WithFields(log.Fields{
		"cron_schedule":      timerConfig.CronSchedule,
		"enabled":            timerConfig.Enabled,
		"past_due_tolerance": timerConfig.PastDueTolerance.String(),
	}).Info("Configuração do timer de insights carregada")

	s := &InsightTimerService{
		scheduler: gocron.NewScheduler(time.UTC),
		schedule:  schedule,
		config:    timerConfig,
		runRepo:   runRepo,
		logger:    log.L,
		now:       func() time.Time { return time.Now().UTC() },
	}
	s.body = s.noop

	return s, nil
}

// Start recupera uma ocorrência perdida, se houver, e inicia o agendador
func (s *InsightTimerService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		s.logger.Info("Timer de insights desabilitado por configuração")
		return nil
	}

	s.mutex.Lock()
	s.nextExpectedAt = s.schedule.Next(s.now())
	s.mutex.Unlock()

	s.catchUpMissedRun(ctx)

	s.logger.WithField("cron", s.config.CronSchedule).Info("Iniciando timer de insights")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(s.onTick)
	if err != nil {
		return fmt.Errorf("erro ao agendar timer de insights: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		s.logger.Info("Parando timer de insights")
		s.scheduler.Stop()
	}()

	return nil
}

// catchUpMissedRun executa uma única vez quando a ocorrência seguinte à última
// execução registrada já passou. Várias ocorrências perdidas geram uma só execução.
func (s *InsightTimerService) catchUpMissedRun(ctx context.Context) {
	if s.runRepo == nil {
		return
	}

	lastRun, err := s.runRepo.GetLastRun(ctx, InsightTimerName)
	if err != nil {
		s.logger.WithError(err).Warn("Não foi possível ler a última execução do timer; ocorrências perdidas não serão recuperadas")
		return
	}
	if lastRun == nil {
		return
	}

	now := s.now()
	missedAt := s.schedule.Next(*lastRun)
	if missedAt.After(now) {
		return
	}

	pastDue := now.Sub(missedAt) > s.config.PastDueTolerance
	if pastDue {
		s.mutex.Lock()
		s.pastDueCount++
		s.mutex.Unlock()

		s.logger.WithFields(log.Fields{
			"expected_at": missedAt.Format(time.RFC3339),
			"fired_at":    now.Format(time.RFC3339),
			"last_run_at": lastRun.Format(time.RFC3339),
			"delay":       now.Sub(missedAt).String(),
		}).Warn("The timer is past due!")
	}

	s.run(TriggerCatchUp, pastDue)
}

// onTick é chamado pelo agendador a cada disparo
func (s *InsightTimerService) onTick() {
	firedAt := s.now()

	s.mutex.Lock()
	expectedAt := s.nextExpectedAt
	pastDue := !expectedAt.IsZero() && firedAt.Sub(expectedAt) > s.config.PastDueTolerance
	s.nextExpectedAt = s.schedule.Next(firedAt)
	if pastDue {
		s.pastDueCount++
	}
	s.mutex.Unlock()

	if pastDue {
		s.logger.WithFields(log.Fields{
			"expected_at": expectedAt.Format(time.RFC3339),
			"fired_at":    firedAt.Format(time.RFC3339),
			"delay":       firedAt.Sub(expectedAt).String(),
		}).Warn("The timer is past due!")
	}

	s.run(TriggerScheduled, pastDue)
}

// tryStart marca o timer como em execução; false quando já há uma execução
func (s *InsightTimerService) tryStart(trigger string, pastDue bool) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.running {
		return false
	}
	s.running = true
	s.lastRunStartedAt = s.now()
	s.lastRunTrigger = trigger
	s.lastRunPastDue = pastDue

	return true
}

// run executa o corpo do timer sem sobreposição
func (s *InsightTimerService) run(trigger string, pastDue bool) {
	if !s.tryStart(trigger, pastDue) {
		s.logger.WithField("trigger", trigger).Info("Timer de insights já em andamento, ignorando")
		return
	}
	s.execute(trigger)
}

// execute roda o corpo; tryStart precisa ter retornado true antes
func (s *InsightTimerService) execute(trigger string) {
	s.mutex.Lock()
	startedAt := s.lastRunStartedAt
	s.mutex.Unlock()

	defer func() {
		s.mutex.Lock()
		s.running = false
		s.lastRunCompletedAt = s.now()
		s.mutex.Unlock()
	}()

	s.body()

	// Execuções manuais não contam como ocorrência do agendamento
	if trigger != TriggerManual {
		s.recordRun(startedAt)
	}
}

func (s *InsightTimerService) recordRun(startedAt time.Time) {
	if s.runRepo == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordRunTimeout)
	defer cancel()

	if err := s.runRepo.SaveLastRun(ctx, InsightTimerName, startedAt); err != nil {
		s.logger.WithError(err).Warn("Erro ao registrar execução do timer de insights")
	}
}

func (s *InsightTimerService) noop() {
	s.logger.Info("Timer trigger fired (no-op for now).")
}

// TriggerManualSync dispara o corpo do timer fora do agendamento
func (s *InsightTimerService) TriggerManualSync() bool {
	if !s.tryStart(TriggerManual, false) {
		s.logger.Info("Timer de insights já em andamento, ignorando solicitação manual")
		return false
	}

	s.logger.Info("Iniciando execução manual do timer de insights")
	go s.execute(TriggerManual)

	return true
}

// GetStatus retorna o estado atual do timer
func (s *InsightTimerService) GetStatus() map[string]any {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return map[string]any{
		"running":               s.running,
		"cron":                  s.config.CronSchedule,
		"enabled":               s.config.Enabled,
		"past_due_tolerance":    s.config.PastDueTolerance.String(),
		"next_expected_at":      s.nextExpectedAt,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
		"last_run_trigger":      s.lastRunTrigger,
		"last_run_past_due":     s.lastRunPastDue,
		"past_due_count":        s.pastDueCount,
	}
}
