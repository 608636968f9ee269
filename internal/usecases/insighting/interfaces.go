package insighting

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

import (
	"context"

	"github.com/vfg2006/subscription-insights-api/internal/domain"
)

// Generator gera, valida e persiste insights de assinatura
type Generator interface {
	// Generate executa o fluxo completo: prompt, modelo, validação e upsert
	Generate(ctx context.Context, metrics *domain.MetricsRecord) (*domain.InsightResult, error)

	// Probe verifica conectividade e credenciais do serviço de completions
	Probe(ctx context.Context) (string, error)

	// GetInsight lê um insight persistido; retorna nil quando não existe
	GetInsight(ctx context.Context, key domain.InsightKey) (*domain.AIInsightEntry, error)
}
