package insighting

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/vfg2006/subscription-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/subscription-insights-api/infrastructure/integrator/openai"
	"github.com/vfg2006/subscription-insights-api/infrastructure/integrator/openai/openaiclient"
	"github.com/vfg2006/subscription-insights-api/infrastructure/repository"
	"github.com/vfg2006/subscription-insights-api/internal/domain"
	"github.com/vfg2006/subscription-insights-api/pkg/apiErrors"
	"github.com/vfg2006/subscription-insights-api/pkg/log"
	"github.com/vfg2006/subscription-insights-api/pkg/utils"
)

const (
	MsgMissingInsightMonth = "InsightMonth is required (e.g. 2025-12)."
	MsgInvalidInsightMonth = "InsightMonth must use the YYYY-MM format (e.g. 2025-12)."
)

var (
	MsgScopeTypeTooLong  = fmt.Sprintf("ScopeType must be at most %d characters.", domain.ScopeTypeMaxLength)
	MsgScopeValueTooLong = fmt.Sprintf("ScopeValue must be at most %d characters.", domain.ScopeValueMaxLength)
)

type Service struct {
	integrator openai.OpenAIIntegrator
	repository repository.AIInsightRepository
}

func NewService(integrator openai.OpenAIIntegrator, repo repository.AIInsightRepository) Generator {
	return &Service{
		integrator: integrator,
		repository: repo,
	}
}

// ValidateMetrics confere os campos obrigatórios antes de qualquer chamada externa
func ValidateMetrics(metrics *domain.MetricsRecord) error {
	if metrics == nil || metrics.InsightMonth == "" {
		return NewInsightError(ErrClientInput, apiErrors.ErrMissingRequiredData, MsgMissingInsightMonth)
	}

	if _, err := utils.ParseMonth(metrics.InsightMonth); err != nil {
		return NewInsightError(ErrClientInput, apiErrors.ErrInvalidFormat, MsgInvalidInsightMonth)
	}

	return validateScope(metrics.ScopeType, metrics.ScopeValue)
}

// validateScope rejeita escopos que não cabem nas colunas da tabela
func validateScope(scopeType, scopeValue string) error {
	if utf8.RuneCountInString(scopeType) > domain.ScopeTypeMaxLength {
		return NewInsightError(ErrClientInput, apiErrors.ErrInvalidFormat, MsgScopeTypeTooLong)
	}
	if utf8.RuneCountInString(scopeValue) > domain.ScopeValueMaxLength {
		return NewInsightError(ErrClientInput, apiErrors.ErrInvalidFormat, MsgScopeValueTooLong)
	}
	return nil
}

func (s *Service) Generate(ctx context.Context, metrics *domain.MetricsRecord) (*domain.InsightResult, error) {
	if err := ValidateMetrics(metrics); err != nil {
		return nil, err
	}

	key := metrics.Key()
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"insight_month": key.InsightMonth,
		"scope_type":    key.ScopeType,
		"scope_value":   key.ScopeValue,
	})

	logger.Info("Gerando insight de assinaturas")

	obj, err := s.integrator.GenerateInsight(ctx, SystemPrompt, BuildUserPrompt(metrics))
	if err != nil {
		logger.WithError(err).Error("Erro ao chamar o serviço de completions")
		return nil, classifyIntegratorError(err)
	}

	result, err := ValidateInsight(obj)
	if err != nil {
		logger.WithError(err).Error("Resposta do modelo fora do contrato")
		return nil, err
	}
	result.ModelName = s.integrator.ModelName()

	if err := s.repository.SaveOrUpdate(ctx, domain.NewAIInsightEntry(key, result)); err != nil {
		logger.WithError(err).Error("Erro ao persistir insight")
		return nil, classifyRepositoryError(err)
	}

	logger.WithField("model_name", result.ModelName).Info("Insight gerado e persistido com sucesso")

	return result, nil
}

func (s *Service) Probe(ctx context.Context) (string, error) {
	text, err := s.integrator.Probe(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro no probe do serviço de completions")
		return "", classifyIntegratorError(err)
	}
	return text, nil
}

func (s *Service) GetInsight(ctx context.Context, key domain.InsightKey) (*domain.AIInsightEntry, error) {
	if key.InsightMonth == "" {
		return nil, NewInsightError(ErrClientInput, apiErrors.ErrMissingRequiredData, "month is required (e.g. 2025-12).")
	}
	if err := validateScope(key.ScopeType, key.ScopeValue); err != nil {
		return nil, err
	}
	if key.ScopeType == "" {
		key.ScopeType = domain.DefaultScopeType
	}

	entry, err := s.repository.GetByKey(ctx, key)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao buscar insight")
		return nil, classifyRepositoryError(err)
	}

	return entry, nil
}

func classifyIntegratorError(err error) error {
	switch {
	case errors.Is(err, openaiclient.ErrMissingAPIKey):
		return NewInsightError(ErrConfiguration, apiErrors.ErrConfiguration, err.Error())
	default:
		// Texto que não é JSON é falha do serviço externo, não do contrato do insight
		return NewInsightError(ErrUpstreamService, apiErrors.ErrExternalService, err.Error())
	}
}

func classifyRepositoryError(err error) error {
	if errors.Is(err, postgres.ErrMissingConnectionString) {
		return NewInsightError(ErrConfiguration, apiErrors.ErrConfiguration, err.Error())
	}
	return NewInsightError(ErrPersistence, apiErrors.ErrDatabaseOperation, err.Error())
}
