package runner

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	tests := []struct {
		language string
		category Category
		output   string
	}{
		{"javascript", CategoryScript, "JavaScript code validation successful. Full execution requires additional sandbox setup."},
		{"typescript", CategoryScript, "JavaScript code validation successful. Full execution requires additional sandbox setup."},
		{"react", CategoryScript, "JavaScript code validation successful. Full execution requires additional sandbox setup."},
		{"python", CategoryPython, "Python execution requires a Python runtime environment"},
		{"html", CategoryMarkup, "HTML/CSS code is best viewed in the Preview tab"},
		{"css", CategoryMarkup, "HTML/CSS code is best viewed in the Preview tab"},
		{"rust", CategoryUnsupported, "Execution for rust is not yet supported"},
	}

	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			out := Run("print('x')", tt.language)

			assert.Equal(t, tt.category, out.Category)
			assert.Equal(t, tt.output, out.Output)
			assert.Nil(t, out.Error)
		})
	}
}

func TestOutput_JSONHasNullError(t *testing.T) {
	data, err := json.Marshal(Run("x", "python"))
	require.NoError(t, err)

	assert.JSONEq(t, `{"output":"Python execution requires a Python runtime environment","error":null}`, string(data))
}
