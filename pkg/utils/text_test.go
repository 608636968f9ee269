package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{name: "texto menor que o limite", input: "abc", max: 5, expected: "abc"},
		{name: "texto exatamente no limite", input: "abcde", max: 5, expected: "abcde"},
		{name: "texto maior que o limite", input: "abcdef", max: 5, expected: "abcde"},
		{name: "conta runas e não bytes", input: "ação rápida", max: 4, expected: "ação"},
		{name: "limite zero", input: "abc", max: 0, expected: ""},
		{name: "texto vazio", input: "", max: 3, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.input, tt.max))
		})
	}
}

func TestTruncate_Idempotent(t *testing.T) {
	narrative := strings.Repeat("MRR cresceu enquanto o churn subiu. ", 12)

	once := Truncate(narrative, 280)
	twice := Truncate(once, 280)

	assert.Equal(t, once, twice)
	assert.Len(t, []rune(once), 280)
}

func TestParseMonth(t *testing.T) {
	month, err := ParseMonth("2025-12")
	assert.NoError(t, err)
	assert.Equal(t, 2025, month.Year())
	assert.Equal(t, 12, int(month.Month()))

	_, err = ParseMonth("12-2025")
	assert.Error(t, err)

	_, err = ParseMonth("2025-13")
	assert.Error(t, err)
}

func TestGenerateID(t *testing.T) {
	first, err := GenerateID()
	assert.NoError(t, err)
	assert.Len(t, first, idLength)

	second, err := GenerateID()
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}
