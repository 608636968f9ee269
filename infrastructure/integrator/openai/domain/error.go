package openaidomain

import "fmt"

// ErrorResponse representa a estrutura de erro da API da OpenAI
type ErrorResponse struct {
	Error *ErrorDetails `json:"error"`
}

type ErrorDetails struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param,omitempty"`
	Code    string `json:"code,omitempty"`
}

// APIError é retornado quando o serviço responde com status diferente de 2xx
type APIError struct {
	StatusCode int
	Body       string
	Details    *ErrorDetails
}

func (e *APIError) Error() string {
	if e.Details != nil && e.Details.Message != "" {
		return fmt.Sprintf("openai: status %d: %s", e.StatusCode, e.Details.Message)
	}
	return fmt.Sprintf("openai: status %d: %s", e.StatusCode, e.Body)
}
