package repository

//go:generate mockgen -source=ai_insight.go -destination=mocks/mock_ai_insight.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/subscription-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/subscription-insights-api/internal/domain"
	"github.com/vfg2006/subscription-insights-api/pkg/utils"
)

const (
	aiInsightsTable = "ai_insights"
)

var aiInsightColumns = []string{
	"id", "insight_month", "scope_type", "scope_value",
	"narrative", "action1", "action2", "action3",
	"risk1", "risk2", "risk3", "model_name", "generated_at_utc",
}

type AIInsightRepository interface {
	SaveOrUpdate(ctx context.Context, insight *domain.AIInsightEntry) error
	GetByKey(ctx context.Context, key domain.InsightKey) (*domain.AIInsightEntry, error)
}

type aiInsightRepository struct {
	connector postgres.Connector
}

func NewAIInsightRepository(connector postgres.Connector) AIInsightRepository {
	return &aiInsightRepository{
		connector: connector,
	}
}

// SaveOrUpdate grava o insight em um único comando atômico: insere na primeira vez
// e sobrescreve todo o conteúdo quando a chave (mês, tipo, valor) já existe.
func (r *aiInsightRepository) SaveOrUpdate(ctx context.Context, insight *domain.AIInsightEntry) error {
	id, err := utils.GenerateID()
	if err != nil {
		return fmt.Errorf("erro ao gerar ID do insight: %w", err)
	}

	sqlQuery, args, err := buildUpsertQuery(id, insight)
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	conn, err := r.connector.Open(ctx)
	if err != nil {
		return fmt.Errorf("erro ao conectar ao banco de dados: %w", err)
	}
	defer conn.Close()

	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, sqlQuery, args...)
		return err
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *aiInsightRepository) GetByKey(ctx context.Context, key domain.InsightKey) (*domain.AIInsightEntry, error) {
	query, args, err := squirrel.
		Select(aiInsightColumns...).
		From(aiInsightsTable).
		Where(squirrel.Eq{
			"insight_month": key.InsightMonth,
			"scope_type":    key.ScopeType,
			"scope_value":   key.ScopeValue,
		}).
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

	insight := &domain.AIInsightEntry{}
	var modelName sql.NullString

	err = conn.QueryRowContext(ctx, query, args...).Scan(
		&insight.ID,
		&insight.InsightMonth,
		&insight.ScopeType,
		&insight.ScopeValue,
		&insight.Narrative,
		&insight.Action1,
		&insight.Action2,
		&insight.Action3,
		&insight.Risk1,
		&insight.Risk2,
		&insight.Risk3,
		&modelName,
		&insight.GeneratedAtUTC,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear insight: %w", err)
	}
	insight.ModelName = modelName.String

	return insight, nil
}

func buildUpsertQuery(id string, insight *domain.AIInsightEntry) (string, []interface{}, error) {
	return squirrel.StatementBuilder.
		Insert(aiInsightsTable).
		Columns(aiInsightColumns...).
		Values(
			id,
			insight.InsightMonth,
			insight.ScopeType,
			insight.ScopeValue,
			insight.Narrative,
			insight.Action1,
			insight.Action2,
			insight.Action3,
			insight.Risk1,
			insight.Risk2,
			insight.Risk3,
			insight.ModelName,
			squirrel.Expr("timezone('utc', now())"),
		).
		Suffix(`
			ON CONFLICT (insight_month, scope_type, scope_value) DO UPDATE SET
				narrative = EXCLUDED.narrative,
				action1 = EXCLUDED.action1,
				action2 = EXCLUDED.action2,
				action3 = EXCLUDED.action3,
				risk1 = EXCLUDED.risk1,
				risk2 = EXCLUDED.risk2,
				risk3 = EXCLUDED.risk3,
				model_name = EXCLUDED.model_name,
				generated_at_utc = EXCLUDED.generated_at_utc
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}
