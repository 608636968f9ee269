package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/subscription-insights-api/internal/domain"
	"github.com/vfg2006/subscription-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/subscription-insights-api/pkg/apiErrors"
	"github.com/vfg2006/subscription-insights-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const msgInvalidBody = "POST body must be valid JSON."

// maxBodyBytes limita o corpo aceito em POST /insights/generate
const maxBodyBytes = 1 << 20

// GenerateInsights atende GET (payload de exemplo) e POST (payload do chamador)
func GenerateInsights(service insighting.Generator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("AI insights HTTP trigger received")

		var metrics *domain.MetricsRecord
		if r.Method == http.MethodGet {
			metrics = domain.SampleMetrics()
		} else {
			decoded, err := decodeMetrics(http.MaxBytesReader(w, r.Body, maxBodyBytes))
			if err != nil {
				logger.WithError(err).Warn("Corpo da requisição inválido")
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, msgInvalidBody)
				return
			}
			metrics = decoded
		}

		result, err := service.Generate(r.Context(), metrics)
		if err != nil {
			writeInsightError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	})
}

// ProbeInsights verifica conectividade com o serviço de completions
func ProbeInsights(service insighting.Generator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		text, err := service.Probe(r.Context())
		if err != nil {
			writeInsightError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"text": text})
	})
}

// GetInsight retorna um insight persistido por mês e escopo
func GetInsight(service insighting.Generator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		key := domain.InsightKey{
			InsightMonth: query.Get("month"),
			ScopeType:    query.Get("scope_type"),
			ScopeValue:   query.Get("scope_value"),
		}

		entry, err := service.GetInsight(r.Context(), key)
		if err != nil {
			writeInsightError(w, err)
			return
		}

		if entry == nil {
			apiErrors.WriteError(w, apiErrors.ErrNotFound, "Insight não encontrado")
			return
		}

		writeJSON(w, http.StatusOK, entry)
	})
}

// decodeMetrics aceita apenas um objeto JSON
func decodeMetrics(body io.Reader) (*domain.MetricsRecord, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(string(raw)) == "" {
		return nil, errors.New("corpo vazio")
	}

	var metrics *domain.MetricsRecord
	if err := json.Unmarshal(raw, &metrics); err != nil {
		return nil, err
	}
	if metrics == nil {
		return nil, errors.New("corpo não é um objeto JSON")
	}

	return metrics, nil
}

func writeInsightError(w http.ResponseWriter, err error) {
	var insightErr *insighting.InsightError
	if !errors.As(err, &insightErr) {
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error())
		return
	}

	// Erros do chamador expõem apenas a mensagem de validação
	if errors.Is(insightErr, insighting.ErrClientInput) {
		apiErrors.WriteError(w, insightErr.Code, insightErr.Details)
		return
	}

	apiErrors.WriteError(w, insightErr.Code, insightErr.Error())
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.L.WithError(err).Error("Erro ao codificar resposta")
	}
}
