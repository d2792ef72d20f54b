package checksum

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSHA256_CalculateRaw(t *testing.T) {
	calc := New()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "Empty content",
			content:  "",
			expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "Empty catalog",
			content:  "[]\n",
			expected: calc.CalculateRaw([]byte("[]\n")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calc.CalculateRaw([]byte(tt.content))
			assert.Len(t, result, 64)
			assert.Equal(t, tt.expected, result)
			assert.Equal(t, strings.ToLower(result), result)
		})
	}
}

func TestSHA256_CalculateRawDiffersOnAnyByte(t *testing.T) {
	calc := New()
	assert.NotEqual(t,
		calc.CalculateRaw([]byte(`[{"law_id":"A"}]`)),
		calc.CalculateRaw([]byte(`[{"law_id":"B"}]`)),
	)
}

func TestSHA256_Fingerprint(t *testing.T) {
	calc := New()

	a := calc.Fingerprint([]string{"a.xml 1 10", "b.xml 2 20"})
	b := calc.Fingerprint([]string{"b.xml 2 20", "a.xml 1 10"})
	assert.Equal(t, a, b, "order must not matter")

	c := calc.Fingerprint([]string{"a.xml 1 10", "b.xml 2 21"})
	assert.NotEqual(t, a, c)

	d := calc.Fingerprint([]string{"a.xml 1 10", "b.xml 2 20", "a.xml 1 10"})
	assert.NotEqual(t, a, d, "duplicates count")

	// Line boundaries are part of the digest.
	assert.NotEqual(t, calc.Fingerprint([]string{"ab", "c"}), calc.Fingerprint([]string{"a", "bc"}))
}

func TestSHA256_FingerprintDoesNotMutateInput(t *testing.T) {
	lines := []string{"z", "a"}
	New().Fingerprint(lines)
	assert.Equal(t, []string{"z", "a"}, lines)
}

func BenchmarkCalculateRaw(b *testing.B) {
	calculator := New()
	content := []byte(strings.Repeat(`{"law_id":"322AC0000000049","title":"労働基準法"},`+"\n", 1000))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		calculator.CalculateRaw(content)
	}
}
