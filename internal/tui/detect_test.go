package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectMode_Overrides(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"LAWCAT_PLAIN", map[string]string{"LAWCAT_PLAIN": "1", "CI": "", "NO_COLOR": ""}},
		{"CI", map[string]string{"LAWCAT_PLAIN": "", "CI": "true", "NO_COLOR": ""}},
		{"NO_COLOR", map[string]string{"LAWCAT_PLAIN": "", "CI": "", "NO_COLOR": "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, ModePlain, DetectMode())
		})
	}
}

func TestDetectMode_NoTerminal(t *testing.T) {
	// In test context, stderr is not a terminal
	t.Setenv("LAWCAT_PLAIN", "")
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "")

	assert.Equal(t, ModePlain, DetectMode())
	assert.False(t, IsStyled())
}
