package domain

// DefaultScopeType é usado quando o payload não informa ScopeType
const DefaultScopeType = "Overall"

// Limites das colunas scope_type e scope_value em ai_insights
const (
	ScopeTypeMaxLength  = 64
	ScopeValueMaxLength = 128
)

// MetricsRecord representa as métricas de assinatura de um período/escopo.
// Os campos numéricos são ponteiros para diferenciar "ausente" de zero.
type MetricsRecord struct {
	InsightMonth string `json:"InsightMonth"` // Período no formato yyyy-mm
	ScopeType    string `json:"ScopeType"`
	ScopeValue   string `json:"ScopeValue"`

	MRR          *float64 `json:"MRR,omitempty"`
	MRRMoMPct    *float64 `json:"MRR_MoM_Pct,omitempty"`
	ChurnM1      *float64 `json:"Churn_M1,omitempty"`
	ChurnM2      *float64 `json:"Churn_M2,omitempty"`
	ChurnM2MoM   *float64 `json:"Churn_M2_MoM,omitempty"`
	AvgLTV       *float64 `json:"Avg_LTV,omitempty"`
	AvgCAC       *float64 `json:"Avg_CAC,omitempty"`
	LTVCAC       *float64 `json:"LTV_CAC,omitempty"`
	WorstChannel string   `json:"Worst_Channel,omitempty"`
	WorstOffer   string   `json:"Worst_Offer,omitempty"`
	TopCohort    string   `json:"Top_Cohort,omitempty"`
}

// InsightKey identifica unicamente um insight persistido
type InsightKey struct {
	InsightMonth string
	ScopeType    string
	ScopeValue   string
}

// Key retorna a chave do registro aplicando os valores padrão de escopo
func (m *MetricsRecord) Key() InsightKey {
	scopeType := m.ScopeType
	if scopeType == "" {
		scopeType = DefaultScopeType
	}

	return InsightKey{
		InsightMonth: m.InsightMonth,
		ScopeType:    scopeType,
		ScopeValue:   m.ScopeValue,
	}
}

// SampleMetrics retorna o payload fixo usado no GET e no timer
func SampleMetrics() *MetricsRecord {
	return &MetricsRecord{
		InsightMonth: "2025-12",
		ScopeType:    DefaultScopeType,
		ScopeValue:   "",
		MRR:          float64Ptr(282530),
		MRRMoMPct:    float64Ptr(0.042),
		ChurnM1:      float64Ptr(0.18),
		ChurnM2:      float64Ptr(0.21),
		ChurnM2MoM:   float64Ptr(0.03),
		AvgLTV:       float64Ptr(87),
		AvgCAC:       float64Ptr(64),
		LTVCAC:       float64Ptr(1.36),
		WorstChannel: "Instagram",
		WorstOffer:   "$1 Trial",
		TopCohort:    "2025-07",
	}
}

func float64Ptr(v float64) *float64 {
	return &v
}
