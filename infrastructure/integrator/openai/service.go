package openai

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	openaidomain "github.com/vfg2006/subscription-insights-api/infrastructure/integrator/openai/domain"
	"github.com/vfg2006/subscription-insights-api/infrastructure/integrator/openai/openaiclient"
	"github.com/vfg2006/subscription-insights-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	insightTemperature = 0.2

	probePrompt = "Return JSON with a key 'message' explaining why subscription churn might increase."
)

var (
	ErrEmptyOutput = errors.New("could not find output_text in response")
	ErrInvalidJSON = errors.New("model did not return valid JSON")
)

type OpenAIIntegrator interface {
	// GenerateInsight envia o prompt e devolve o objeto JSON produzido pelo modelo
	GenerateInsight(ctx context.Context, systemPrompt, userPrompt string) (map[string]any, error)
	// Probe faz uma chamada leve para verificar credenciais e conectividade
	Probe(ctx context.Context) (string, error)
	ModelName() string
}

type integrator struct {
	cfg    *config.Config
	client openaiclient.Client
}

func New(cfg *config.Config, client openaiclient.Client) OpenAIIntegrator {
	return &integrator{
		cfg:    cfg,
		client: client,
	}
}

func (i *integrator) ModelName() string {
	return i.cfg.OpenAI.Model
}

func (i *integrator) GenerateInsight(ctx context.Context, systemPrompt, userPrompt string) (map[string]any, error) {
	temperature := insightTemperature
	request := &openaidomain.ResponseRequest{
		Model: i.cfg.OpenAI.Model,
		Input: []openaidomain.Message{
			{Role: openaidomain.RoleSystem, Content: systemPrompt},
			{Role: openaidomain.RoleUser, Content: userPrompt},
		},
		Text:        jsonObjectFormat(),
		Temperature: &temperature,
	}

	text, err := i.complete(ctx, request, i.timeout(i.cfg.OpenAI.InsightTimeout, 60*time.Second))
	if err != nil {
		return nil, err
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil || obj == nil {
		return nil, fmt.Errorf("%w. Got: %s", ErrInvalidJSON, text)
	}

	return obj, nil
}

func (i *integrator) Probe(ctx context.Context) (string, error) {
	request := &openaidomain.ResponseRequest{
		Model: i.cfg.OpenAI.Model,
		Input: []openaidomain.Message{
			{Role: openaidomain.RoleUser, Content: probePrompt},
		},
		Text: jsonObjectFormat(),
	}

	return i.complete(ctx, request, i.timeout(i.cfg.OpenAI.ProbeTimeout, 30*time.Second))
}

func (i *integrator) complete(ctx context.Context, request *openaidomain.ResponseRequest, timeout time.Duration) (string, error) {
	response, raw, err := i.client.CreateResponse(ctx, request, timeout)
	if err != nil {
		return "", err
	}

	text := response.Text()
	if text == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyOutput, raw)
	}

	return text, nil
}

func (i *integrator) timeout(configured, fallback time.Duration) time.Duration {
	if configured > 0 {
		return configured
	}
	return fallback
}

func jsonObjectFormat() *openaidomain.TextOptions {
	return &openaidomain.TextOptions{
		Format: openaidomain.TextFormat{Type: openaidomain.JSONObjectFormat},
	}
}
