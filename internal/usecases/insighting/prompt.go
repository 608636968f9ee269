package insighting

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vfg2006/subscription-insights-api/internal/domain"
)

// SystemPrompt define o papel do modelo e exige JSON estrito
const SystemPrompt = "You are a subscription analytics expert. " +
	"Write concise, executive-ready insights for founders. " +
	"Return strict JSON only. No markdown. No commentary."

// BuildUserPrompt renderiza as métricas e o contrato de saída.
// Campos ausentes aparecem vazios; nunca falha.
func BuildUserPrompt(metrics *domain.MetricsRecord) string {
	if metrics == nil {
		metrics = &domain.MetricsRecord{}
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Metrics for %s (scope: %s / %s):\n", metrics.InsightMonth, metrics.ScopeType, metrics.ScopeValue)
	fmt.Fprintf(&b, "MRR: %s\n", formatNumber(metrics.MRR))
	fmt.Fprintf(&b, "MRR_MoM_Pct: %s\n", formatNumber(metrics.MRRMoMPct))
	fmt.Fprintf(&b, "Churn_M1: %s\n", formatNumber(metrics.ChurnM1))
	fmt.Fprintf(&b, "Churn_M2: %s (change: %s)\n", formatNumber(metrics.ChurnM2), formatNumber(metrics.ChurnM2MoM))
	fmt.Fprintf(&b, "Avg_LTV: %s\n", formatNumber(metrics.AvgLTV))
	fmt.Fprintf(&b, "Avg_CAC: %s\n", formatNumber(metrics.AvgCAC))
	fmt.Fprintf(&b, "LTV_CAC: %s\n", formatNumber(metrics.LTVCAC))
	fmt.Fprintf(&b, "Worst_Channel: %s\n", metrics.WorstChannel)
	fmt.Fprintf(&b, "Worst_Offer: %s\n", metrics.WorstOffer)
	fmt.Fprintf(&b, "Top_Cohort: %s\n", metrics.TopCohort)

	b.WriteString("\nReturn JSON with:\n")
	fmt.Fprintf(&b, "- Narrative (max %d characters, plain English)\n", domain.NarrativeMaxLength)
	fmt.Fprintf(&b, "- Actions (array of exactly %d items, each max %d characters)\n", domain.ItemsPerList, domain.ItemMaxLength)
	fmt.Fprintf(&b, "- Risks (array of exactly %d items, each max %d characters)", domain.ItemsPerList, domain.ItemMaxLength)

	return b.String()
}

func formatNumber(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
