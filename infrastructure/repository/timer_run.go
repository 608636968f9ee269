package repository

//go:generate mockgen -source=timer_run.go -destination=mocks/mock_timer_run.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/subscription-insights-api/infrastructure/database/postgres"
)

const timerRunsTable = "timer_runs"

// TimerRunRepository guarda a última ocorrência concluída de cada timer
type TimerRunRepository interface {
	// GetLastRun retorna nil quando o timer nunca concluiu uma execução
	GetLastRun(ctx context.Context, name string) (*time.Time, error)
	SaveLastRun(ctx context.Context, name string, ranAt time.Time) error
}

type timerRunRepository struct {
	connector postgres.Connector
}

func NewTimerRunRepository(connector postgres.Connector) TimerRunRepository {
	return &timerRunRepository{
		connector: connector,
	}
}

func (r *timerRunRepository) GetLastRun(ctx context.Context, name string) (*time.Time, error) {
	query, args, err := squirrel.
		Select("last_run_at_utc").
		From(timerRunsTable).
		Where(squirrel.Eq{"name": name}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	conn, err := r.connector.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar ao banco de dados: %w", err)
	}
	defer conn.Close()

	var lastRun time.Time
	if err := conn.QueryRowContext(ctx, query, args...).Scan(&lastRun); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar última execução do timer: %w", err)
	}

	lastRun = lastRun.UTC()
	return &lastRun, nil
}

func (r *timerRunRepository) SaveLastRun(ctx context.Context, name string, ranAt time.Time) error {
	query, args, err := buildSaveLastRunQuery(name, ranAt)
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	conn, err := r.connector.Open(ctx)
	if err != nil {
		return fmt.Errorf("erro ao conectar ao banco de dados: %w", err)
	}
	defer conn.Close()

	return conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("erro ao registrar execução do timer: %w", err)
		}
		return nil
	})
}

func buildSaveLastRunQuery(name string, ranAt time.Time) (string, []interface{}, error) {
	return squirrel.StatementBuilder.
		Insert(timerRunsTable).
		Columns("name", "last_run_at_utc", "updated_at_utc").
		Values(name, ranAt.UTC(), squirrel.Expr("timezone('utc', now())")).
		Suffix(`
			ON CONFLICT (name) DO UPDATE SET
				last_run_at_utc = EXCLUDED.last_run_at_utc,
				updated_at_utc = EXCLUDED.updated_at_utc
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}
