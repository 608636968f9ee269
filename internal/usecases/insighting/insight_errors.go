package insighting

import (
	"errors"
	"fmt"
)

// Erros específicos para a geração de insights
var (
	// Erros de configuração
	ErrConfiguration = errors.New("missing required configuration")

	// Erros de entrada do chamador
	ErrClientInput = errors.New("invalid request")

	// Erros do serviço de completions
	ErrUpstreamService = errors.New("completion service call failed")
	ErrSchemaViolation = errors.New("model output violates the insight schema")

	// Erros de banco de dados
	ErrPersistence = errors.New("error persisting insight")
)

// InsightError é um erro com contexto adicional para a geração de insights
type InsightError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *InsightError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *InsightError) Unwrap() error {
	return e.Err
}

// NewInsightError cria um novo InsightError
func NewInsightError(err error, code string, details string) *InsightError {
	return &InsightError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
