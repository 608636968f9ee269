package insighting

import (
	"fmt"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/subscription-insights-api/internal/domain"
	"github.com/vfg2006/subscription-insights-api/pkg/apiErrors"
	"github.com/vfg2006/subscription-insights-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	keyNarrative = "Narrative"
	keyActions   = "Actions"
	keyRisks     = "Risks"
)

// ValidateInsight confere o objeto devolvido pelo modelo e normaliza os textos.
// A ordem das verificações é: chaves, Actions, Risks.
func ValidateInsight(obj map[string]any) (*domain.InsightResult, error) {
	_, hasNarrative := obj[keyNarrative]
	_, hasActions := obj[keyActions]
	_, hasRisks := obj[keyRisks]
	if !hasNarrative || !hasActions || !hasRisks {
		return nil, schemaViolation(fmt.Sprintf("Invalid JSON keys. Expected Narrative, Actions, Risks. Got: %s", compactJSON(obj)))
	}

	actions, ok := obj[keyActions].([]any)
	if !ok || len(actions) != domain.ItemsPerList {
		return nil, schemaViolation(fmt.Sprintf("Actions must be an array of exactly %d items.", domain.ItemsPerList))
	}

	risks, ok := obj[keyRisks].([]any)
	if !ok || len(risks) != domain.ItemsPerList {
		return nil, schemaViolation(fmt.Sprintf("Risks must be an array of exactly %d items.", domain.ItemsPerList))
	}

	return &domain.InsightResult{
		Narrative: utils.Truncate(toText(obj[keyNarrative]), domain.NarrativeMaxLength),
		Actions:   normalizeItems(actions),
		Risks:     normalizeItems(risks),
	}, nil
}

func normalizeItems(items []any) []string {
	normalized := make([]string, 0, len(items))
	for _, item := range items {
		normalized = append(normalized, utils.Truncate(toText(item), domain.ItemMaxLength))
	}
	return normalized
}

// toText converte qualquer valor JSON para texto
func toText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return compactJSON(v)
	}
}

func compactJSON(value any) string {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(b)
}

func schemaViolation(details string) *InsightError {
	return NewInsightError(ErrSchemaViolation, apiErrors.ErrSchemaViolation, details)
}
