package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/subscription-insights-api/infrastructure/integrator/openai"
	"github.com/vfg2006/subscription-insights-api/infrastructure/integrator/openai/openaiclient"
	repomocks "github.com/vfg2006/subscription-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/subscription-insights-api/internal/api/handler/router"
	"github.com/vfg2006/subscription-insights-api/internal/config"
	"github.com/vfg2006/subscription-insights-api/internal/domain"
	"github.com/vfg2006/subscription-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/subscription-insights-api/internal/usecases/insighting/mocks"
	"github.com/vfg2006/subscription-insights-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func newInsightsRouter(service insighting.Generator) router.Router {
	return router.New(router.WithRoutes(Insights(service)...))
}

func decodeError(t *testing.T, body io.Reader) apiErrors.APIError {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, json.NewDecoder(body).Decode(&apiErr))
	return apiErr
}

func TestGenerateInsights_InvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "corpo vazio", body: ""},
		{name: "apenas espaços", body: "   "},
		{name: "JSON inválido", body: "{not json"},
		{name: "array", body: `[1,2]`},
		{name: "null", body: "null"},
		{name: "tipo errado", body: `{"InsightMonth":"2025-12","MRR":"alto"}`},
		{name: "corpo acima do limite", body: `{"InsightMonth":"2025-12","ScopeValue":"` + strings.Repeat("a", maxBodyBytes) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			// Nenhuma chamada ao serviço é esperada
			service := mocks.NewMockGenerator(ctrl)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/insights/generate", strings.NewReader(tt.body))
			newInsightsRouter(service).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, "POST body must be valid JSON.", decodeError(t, rec.Body).Error)
		})
	}
}

func TestGenerateInsights_GetUsesSampleMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockGenerator(ctrl)

	result := &domain.InsightResult{
		Narrative: "X",
		Actions:   []string{"a", "b", "c"},
		Risks:     []string{"d", "e", "f"},
		ModelName: "gpt-4.1-mini",
	}
	service.EXPECT().Generate(gomock.Any(), domain.SampleMetrics()).Return(result, nil)

	rec := httptest.NewRecorder()
	newInsightsRouter(service).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/insights/generate", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"Narrative":"X","Actions":["a","b","c"],"Risks":["d","e","f"],"ModelName":"gpt-4.1-mini"}`, rec.Body.String())
}

func TestGenerateInsights_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "mês ausente",
			err:        insighting.NewInsightError(insighting.ErrClientInput, apiErrors.ErrMissingRequiredData, insighting.MsgMissingInsightMonth),
			wantStatus: http.StatusBadRequest,
			wantError:  "InsightMonth is required (e.g. 2025-12).",
		},
		{
			name:       "violação de schema",
			err:        insighting.NewInsightError(insighting.ErrSchemaViolation, apiErrors.ErrSchemaViolation, "Actions must be an array of exactly 3 items."),
			wantStatus: http.StatusInternalServerError,
			wantError:  "model output violates the insight schema: Actions must be an array of exactly 3 items.",
		},
		{
			name:       "configuração ausente",
			err:        insighting.NewInsightError(insighting.ErrConfiguration, apiErrors.ErrConfiguration, "SQL_CONNECTION_STRING environment variable not set"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "missing required configuration: SQL_CONNECTION_STRING environment variable not set",
		},
		{
			name:       "erro desconhecido",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := mocks.NewMockGenerator(ctrl)
			service.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/insights/generate", strings.NewReader(`{"ScopeType":"Channel"}`))
			newInsightsRouter(service).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantError, decodeError(t, rec.Body).Error)
		})
	}
}

func TestProbeInsights(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockGenerator(ctrl)
	service.EXPECT().Probe(gomock.Any()).Return(`{"message":"ok"}`, nil)

	rec := httptest.NewRecorder()
	newInsightsRouter(service).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/insights/probe", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"text":"{\"message\":\"ok\"}"}`, rec.Body.String())
}

func TestGetInsight(t *testing.T) {
	key := domain.InsightKey{InsightMonth: "2025-12", ScopeType: "Channel", ScopeValue: "Instagram"}

	t.Run("encontrado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockGenerator(ctrl)
		service.EXPECT().GetInsight(gomock.Any(), key).Return(&domain.AIInsightEntry{
			ID:           "abc",
			InsightMonth: "2025-12",
			ScopeType:    "Channel",
			ScopeValue:   "Instagram",
			Narrative:    "X",
		}, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/insights?month=2025-12&scope_type=Channel&scope_value=Instagram", nil)
		newInsightsRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"narrative":"X"`)
	})

	t.Run("não encontrado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockGenerator(ctrl)
		service.EXPECT().GetInsight(gomock.Any(), key).Return(nil, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/insights?month=2025-12&scope_type=Channel&scope_value=Instagram", nil)
		newInsightsRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrNotFound, decodeError(t, rec.Body).Code)
	})
}

// newStubCompletionServer simula a Responses API devolvendo text no formato aninhado
func newStubCompletionServer(t *testing.T, text string, calls *int32) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)

		quoted, err := json.Marshal(text)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"resp_1","output":[{"type":"message","role":"assistant","content":[{"type":"output_text","text":` + string(quoted) + `}]}]}`))
	}))
	t.Cleanup(server.Close)

	return server
}

func newEndToEndRouter(t *testing.T, baseURL string, repo *repomocks.MockAIInsightRepository) router.Router {
	t.Helper()

	cfg := &config.Config{
		OpenAI: config.OpenAI{
			APIKey:         "sk-test",
			Model:          "gpt-4.1-mini",
			BaseURL:        baseURL,
			InsightTimeout: 5 * time.Second,
			ProbeTimeout:   5 * time.Second,
		},
	}

	integrator := openai.New(cfg, openaiclient.NewClient(cfg))
	return newInsightsRouter(insighting.NewService(integrator, repo))
}

func TestGenerateInsights_EndToEnd(t *testing.T) {
	var calls int32
	server := newStubCompletionServer(t, `{"Narrative":"X","Actions":["a","b","c"],"Risks":["d","e","f"]}`, &calls)

	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockAIInsightRepository(ctrl)
	repo.EXPECT().
		SaveOrUpdate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *domain.AIInsightEntry) error {
			assert.Equal(t, domain.InsightKey{InsightMonth: "2025-12", ScopeType: "Overall", ScopeValue: ""},
				domain.InsightKey{InsightMonth: entry.InsightMonth, ScopeType: entry.ScopeType, ScopeValue: entry.ScopeValue})
			return nil
		})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/insights/generate", strings.NewReader(`{"InsightMonth":"2025-12"}`))
	newEndToEndRouter(t, server.URL, repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"Narrative":"X","Actions":["a","b","c"],"Risks":["d","e","f"],"ModelName":"gpt-4.1-mini"}`, rec.Body.String())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGenerateInsights_EndToEndNoOutboundOnBadRequest(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{name: "corpo vazio", body: "", wantError: "POST body must be valid JSON."},
		{name: "sem InsightMonth", body: `{"ScopeType":"Overall"}`, wantError: "InsightMonth is required (e.g. 2025-12)."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := newStubCompletionServer(t, "{}", &calls)

			ctrl := gomock.NewController(t)
			repo := repomocks.NewMockAIInsightRepository(ctrl)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/insights/generate", strings.NewReader(tt.body))
			newEndToEndRouter(t, server.URL, repo).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantError, decodeError(t, rec.Body).Error)
			assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
		})
	}
}
