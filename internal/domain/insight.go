package domain

import "time"

// Limites do contrato de saída do modelo
const (
	NarrativeMaxLength = 280
	ItemMaxLength      = 90
	ItemsPerList       = 3
)

// InsightResult é o insight validado devolvido ao chamador e persistido
type InsightResult struct {
	Narrative string   `json:"Narrative"`
	Actions   []string `json:"Actions"`
	Risks     []string `json:"Risks"`
	ModelName string   `json:"ModelName"`
}

// AIInsightEntry representa uma linha da tabela ai_insights
type AIInsightEntry struct {
	ID             string    `json:"id"`
	InsightMonth   string    `json:"insight_month"`
	ScopeType      string    `json:"scope_type"`
	ScopeValue     string    `json:"scope_value"`
	Narrative      string    `json:"narrative"`
	Action1        string    `json:"action1"`
	Action2        string    `json:"action2"`
	Action3        string    `json:"action3"`
	Risk1          string    `json:"risk1"`
	Risk2          string    `json:"risk2"`
	Risk3          string    `json:"risk3"`
	ModelName      string    `json:"model_name"`
	GeneratedAtUTC time.Time `json:"generated_at_utc"`
}

// NewAIInsightEntry monta a linha a partir da chave e do resultado validado.
// O resultado precisa ter exatamente três ações e três riscos.
func NewAIInsightEntry(key InsightKey, result *InsightResult) *AIInsightEntry {
	return &AIInsightEntry{
		InsightMonth: key.InsightMonth,
		ScopeType:    key.ScopeType,
		ScopeValue:   key.ScopeValue,
		Narrative:    result.Narrative,
		Action1:      result.Actions[0],
		Action2:      result.Actions[1],
		Action3:      result.Actions[2],
		Risk1:        result.Risks[0],
		Risk2:        result.Risks[1],
		Risk3:        result.Risks[2],
		ModelName:    result.ModelName,
	}
}

// Result converte a linha persistida de volta para o formato da API
func (e *AIInsightEntry) Result() *InsightResult {
	return &InsightResult{
		Narrative: e.Narrative,
		Actions:   []string{e.Action1, e.Action2, e.Action3},
		Risks:     []string{e.Risk1, e.Risk2, e.Risk3},
		ModelName: e.ModelName,
	}
}
