package plate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "siscav/internal/errors"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "legacy with hyphen", raw: "ABC-1234", expected: "ABC1234"},
		{name: "lowercase with hyphen", raw: "abc-1234", expected: "ABC1234"},
		{name: "lowercase with space", raw: "abc 1234", expected: "ABC1234"},
		{name: "dot separator", raw: "XYZ.9999", expected: "XYZ9999"},
		{name: "mercosul no separator", raw: "ABC1D23", expected: "ABC1D23"},
		{name: "already normalized", raw: "ABC1234", expected: "ABC1234"},
		{name: "mixed punctuation", raw: " a-b c/1!2@3#4 ", expected: "ABC1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"ABC-1234", "abc 1234", "XYZ.9999", "ABC1D23"}
	for _, raw := range inputs {
		once, err := Normalize(raw)
		assert.NoError(t, err)
		twice, err := Normalize(once)
		assert.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestNormalize_EmptyInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty string", raw: ""},
		{name: "whitespace only", raw: "   "},
		{name: "punctuation only", raw: "---"},
		{name: "mixed punctuation only", raw: " .-/ "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.raw)
			assert.ErrorIs(t, err, apperrors.ErrEmptyPlate)
		})
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{name: "legacy with hyphen", raw: "ABC-1234", valid: true},
		{name: "legacy lowercase", raw: "abc-1234", valid: true},
		{name: "mercosul", raw: "ABC1D23", valid: true},
		{name: "mercosul lowercase", raw: "abc1d23", valid: true},
		{name: "legacy without hyphen", raw: "ABC1234", valid: false},
		{name: "empty", raw: "", valid: false},
		{name: "too short", raw: "ABC-123", valid: false},
		{name: "too long", raw: "ABCD-1234", valid: false},
		{name: "wrong character classes right length", raw: "1BC-A234", valid: false},
		{name: "mercosul with hyphen", raw: "ABC-1D23", valid: false},
		{name: "digits only", raw: "123-4567", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateFormat(tt.raw))
		})
	}
}
