package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/subscription-insights-api/infrastructure/repository"
	"github.com/vfg2006/subscription-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/subscription-insights-api/internal/config"
	"github.com/vfg2006/subscription-insights-api/pkg/log"
)

func newTestTimer(t *testing.T, now *time.Time, runRepo repository.TimerRunRepository) (*InsightTimerService, *test.Hook) {
	t.Helper()

	service, err := NewInsightTimerService(&config.Config{
		InsightTimer: config.InsightTimer{
			CronSchedule:     "0 3 * * *",
			Enabled:          true,
			PastDueTolerance: time.Minute,
		},
	}, runRepo)
	require.NoError(t, err)

	testLogger, hook := test.NewNullLogger()
	service.logger = log.New(testLogger)
	service.now = func() time.Time { return *now }

	return service, hook
}

func warnings(hook *test.Hook) []*logrus.Entry {
	var entries []*logrus.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			entries = append(entries, entry)
		}
	}
	return entries
}

func TestNewInsightTimerService_InvalidCron(t *testing.T) {
	_, err := NewInsightTimerService(&config.Config{
		InsightTimer: config.InsightTimer{CronSchedule: "todo dia às 3"},
	}, nil)
	assert.Error(t, err)
}

func TestOnTick_PastDue(t *testing.T) {
	expected := time.Date(2025, 12, 10, 3, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		firedAt     time.Time
		wantPastDue bool
	}{
		{name: "no horário", firedAt: expected, wantPastDue: false},
		{name: "atraso dentro da tolerância", firedAt: expected.Add(30 * time.Second), wantPastDue: false},
		{name: "atraso acima da tolerância", firedAt: expected.Add(5 * time.Minute), wantPastDue: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := tt.firedAt
			service, hook := newTestTimer(t, &now, nil)
			service.nextExpectedAt = expected

			service.onTick()

			if tt.wantPastDue {
				require.Len(t, warnings(hook), 1)
				assert.Equal(t, "The timer is past due!", warnings(hook)[0].Message)
			} else {
				assert.Empty(t, warnings(hook))
			}

			// O corpo roda mesmo quando atrasado
			assert.Equal(t, "Timer trigger fired (no-op for now).", hook.LastEntry().Message)

			status := service.GetStatus()
			assert.Equal(t, tt.wantPastDue, status["last_run_past_due"])
			assert.Equal(t, TriggerScheduled, status["last_run_trigger"])
			assert.Equal(t, time.Date(2025, 12, 11, 3, 0, 0, 0, time.UTC), status["next_expected_at"])
		})
	}
}

func TestTriggerManualSync(t *testing.T) {
	now := time.Date(2025, 12, 10, 15, 0, 0, 0, time.UTC)
	service, hook := newTestTimer(t, &now, nil)

	assert.True(t, service.TriggerManualSync())

	assert.Eventually(t, func() bool {
		status := service.GetStatus()
		return status["last_run_trigger"] == TriggerManual && !status["last_run_completed_at"].(time.Time).IsZero()
	}, time.Second, 10*time.Millisecond)
	assert.Empty(t, warnings(hook))
}

func TestRun_SkipsWhenAlreadyRunning(t *testing.T) {
	now := time.Date(2025, 12, 10, 15, 0, 0, 0, time.UTC)
	service, hook := newTestTimer(t, &now, nil)
	service.running = true

	assert.False(t, service.TriggerManualSync())

	service.run(TriggerScheduled, false)
	assert.Equal(t, "Timer de insights já em andamento, ignorando", hook.LastEntry().Message)
	assert.True(t, service.lastRunStartedAt.IsZero())
}

func TestStart_Disabled(t *testing.T) {
	now := time.Date(2025, 12, 10, 15, 0, 0, 0, time.UTC)
	service, _ := newTestTimer(t, &now, nil)
	service.config.Enabled = false

	require.NoError(t, service.Start(context.Background()))
	assert.True(t, service.GetStatus()["next_expected_at"].(time.Time).IsZero())
}

func TestStart_SchedulesNextRun(t *testing.T) {
	now := time.Date(2025, 12, 10, 15, 0, 0, 0, time.UTC)
	service, _ := newTestTimer(t, &now, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, service.Start(ctx))
	assert.Equal(t, time.Date(2025, 12, 11, 3, 0, 0, 0, time.UTC), service.GetStatus()["next_expected_at"])
}

func TestStart_CatchesUpMissedRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Host fora do ar às 03:00 de 10/12; última execução registrada no dia anterior
	now := time.Date(2025, 12, 10, 3, 5, 0, 0, time.UTC)
	lastRun := time.Date(2025, 12, 9, 3, 0, 10, 0, time.UTC)

	runRepo := mocks.NewMockTimerRunRepository(ctrl)
	runRepo.EXPECT().GetLastRun(gomock.Any(), InsightTimerName).Return(&lastRun, nil)
	runRepo.EXPECT().SaveLastRun(gomock.Any(), InsightTimerName, now).Return(nil)

	service, hook := newTestTimer(t, &now, runRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, service.Start(ctx))

	require.Len(t, warnings(hook), 1)
	assert.Equal(t, "The timer is past due!", warnings(hook)[0].Message)
	assert.Equal(t, "2025-12-10T03:00:00Z", warnings(hook)[0].Data["expected_at"])

	status := service.GetStatus()
	assert.Equal(t, TriggerCatchUp, status["last_run_trigger"])
	assert.Equal(t, true, status["last_run_past_due"])
	assert.Equal(t, 1, status["past_due_count"])
	assert.Equal(t, false, status["running"])
	assert.Equal(t, now, status["last_run_started_at"])
	assert.Equal(t, time.Date(2025, 12, 11, 3, 0, 0, 0, time.UTC), status["next_expected_at"])
}

func TestStart_NoCatchUp(t *testing.T) {
	now := time.Date(2025, 12, 10, 3, 5, 0, 0, time.UTC)
	ranToday := time.Date(2025, 12, 10, 3, 0, 5, 0, time.UTC)

	tests := []struct {
		name    string
		lastRun *time.Time
		err     error
	}{
		{name: "ocorrência de hoje já executada", lastRun: &ranToday},
		{name: "nenhuma execução registrada", lastRun: nil},
		{name: "erro ao ler última execução", err: errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			runRepo := mocks.NewMockTimerRunRepository(ctrl)
			runRepo.EXPECT().GetLastRun(gomock.Any(), InsightTimerName).Return(tt.lastRun, tt.err)

			now := now
			service, _ := newTestTimer(t, &now, runRepo)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			require.NoError(t, service.Start(ctx))

			status := service.GetStatus()
			assert.Equal(t, "", status["last_run_trigger"])
			assert.Equal(t, 0, status["past_due_count"])
			assert.True(t, status["last_run_started_at"].(time.Time).IsZero())
		})
	}
}

func TestOnTick_RecordsRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2025, 12, 10, 3, 0, 0, 0, time.UTC)

	runRepo := mocks.NewMockTimerRunRepository(ctrl)
	runRepo.EXPECT().SaveLastRun(gomock.Any(), InsightTimerName, now).Return(errors.New("timeout"))

	service, hook := newTestTimer(t, &now, runRepo)
	service.nextExpectedAt = now

	service.onTick()

	require.Len(t, warnings(hook), 1)
	assert.Equal(t, "Erro ao registrar execução do timer de insights", warnings(hook)[0].Message)
	assert.Equal(t, false, service.GetStatus()["running"])
}

func TestTriggerManualSync_DoesNotRecordRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2025, 12, 10, 15, 0, 0, 0, time.UTC)

	// Sem EXPECT: qualquer chamada ao repositório falha o teste
	runRepo := mocks.NewMockTimerRunRepository(ctrl)
	service, _ := newTestTimer(t, &now, runRepo)

	assert.True(t, service.TriggerManualSync())

	assert.Eventually(t, func() bool {
		return !service.GetStatus()["last_run_completed_at"].(time.Time).IsZero()
	}, time.Second, 10*time.Millisecond)
}

func TestTriggerManualSync_MarksRunningBeforeReturning(t *testing.T) {
	now := time.Date(2025, 12, 10, 15, 0, 0, 0, time.UTC)
	service, _ := newTestTimer(t, &now, nil)

	release := make(chan struct{})
	var calls int
	var callsMutex sync.Mutex
	service.body = func() {
		callsMutex.Lock()
		calls++
		callsMutex.Unlock()
		<-release
	}

	assert.True(t, service.TriggerManualSync())
	// A goroutine pode ainda não ter começado; o estado já precisa refletir a execução
	assert.Equal(t, true, service.GetStatus()["running"])
	assert.False(t, service.TriggerManualSync())

	close(release)

	assert.Eventually(t, func() bool {
		return service.GetStatus()["running"] == false
	}, time.Second, 10*time.Millisecond)

	callsMutex.Lock()
	defer callsMutex.Unlock()
	assert.Equal(t, 1, calls)
}
