package openaiclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	openaidomain "github.com/vfg2006/subscription-insights-api/infrastructure/integrator/openai/domain"
	"github.com/vfg2006/subscription-insights-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrMissingAPIKey é retornado antes de qualquer chamada de rede
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY environment variable not set")

type Client interface {
	// CreateResponse chama POST {base_url}/responses e devolve a resposta decodificada e o corpo cru
	CreateResponse(ctx context.Context, request *openaidomain.ResponseRequest, timeout time.Duration) (*openaidomain.Response, []byte, error)
}

type OpenAIClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	return NewClientWithHTTPClient(cfg, &http.Client{
		// Cada invocação abre a própria conexão
		Transport: &http.Transport{
			Proxy:             http.ProxyFromEnvironment,
			DisableKeepAlives: true,
		},
	})
}

func NewClientWithHTTPClient(cfg *config.Config, httpClient *http.Client) Client {
	return &OpenAIClient{
		httpClient: httpClient,
		config:     cfg,
	}
}

func (c *OpenAIClient) CreateResponse(ctx context.Context, request *openaidomain.ResponseRequest, timeout time.Duration) (*openaidomain.Response, []byte, error) {
	if c.config.OpenAI.APIKey == "" {
		return nil, nil, ErrMissingAPIKey
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, nil, errors.Wrap(err, "openai: erro ao serializar a requisição")
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	url := c.config.OpenAI.BaseURL + "/responses"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, errors.Wrap(err, "openai: erro ao criar a requisição")
	}
	req.Header.Set("Authorization", "Bearer "+c.config.OpenAI.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).WithField("url", url).Error("openai: erro ao fazer a requisição")
		return nil, nil, errors.Wrap(err, "openai: erro ao fazer a requisição")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, errors.Wrap(err, "openai: erro ao ler a resposta")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, body, newAPIError(resp.StatusCode, body)
	}

	var response openaidomain.Response
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, body, errors.Wrapf(err, "openai: resposta não é um JSON válido: %s", body)
	}

	return &response, body, nil
}

func newAPIError(statusCode int, body []byte) *openaidomain.APIError {
	apiErr := &openaidomain.APIError{
		StatusCode: statusCode,
		Body:       string(body),
	}

	var errResponse openaidomain.ErrorResponse
	if err := json.Unmarshal(body, &errResponse); err == nil && errResponse.Error != nil {
		apiErr.Details = errResponse.Error
	}

	logrus.WithFields(logrus.Fields{
		"status_code": statusCode,
		"body":        string(body),
	}).Warn("openai: resposta com status de erro")

	return apiErr
}
