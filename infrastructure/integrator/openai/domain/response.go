package openaidomain

import (
	"encoding/json"
	"strings"
)

const (
	RoleSystem = "system"
	RoleUser   = "user"

	// OutputTextType é o tipo dos blocos de conteúdo que carregam o texto do modelo
	OutputTextType = "output_text"

	JSONObjectFormat = "json_object"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type TextFormat struct {
	Type string `json:"type"`
}

type TextOptions struct {
	Format TextFormat `json:"format"`
}

// ResponseRequest é o corpo de POST {base_url}/responses
type ResponseRequest struct {
	Model       string       `json:"model"`
	Input       []Message    `json:"input"`
	Text        *TextOptions `json:"text,omitempty"`
	Temperature *float64     `json:"temperature,omitempty"`
}

type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// OutputItem mantém o conteúdo cru: itens que não são mensagens (ex.: reasoning)
// podem trazer formatos diferentes e são ignorados na leitura do texto.
type OutputItem struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Role    string          `json:"role,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
}

type Response struct {
	ID         string       `json:"id"`
	Model      string       `json:"model"`
	Status     string       `json:"status"`
	OutputText string       `json:"output_text,omitempty"`
	Output     []OutputItem `json:"output"`
}

type textReader func(*Response) string

// Ordem de prioridade: campo achatado primeiro, depois os blocos aninhados
var textReaders = []textReader{
	flatText,
	nestedContentBlocks,
}

// Text extrai o texto do modelo, retornando a primeira leitura não vazia
func (r *Response) Text() string {
	if r == nil {
		return ""
	}

	for _, read := range textReaders {
		if text := strings.TrimSpace(read(r)); text != "" {
			return text
		}
	}

	return ""
}

func flatText(r *Response) string {
	return r.OutputText
}

func nestedContentBlocks(r *Response) string {
	texts := make([]string, 0)
	for _, item := range r.Output {
		if len(item.Content) == 0 {
			continue
		}

		var blocks []ContentBlock
		if err := json.Unmarshal(item.Content, &blocks); err != nil {
			continue
		}

		for _, block := range blocks {
			if block.Type == OutputTextType && block.Text != "" {
				texts = append(texts, block.Text)
			}
		}
	}

	return strings.Join(texts, "\n")
}
