package cli

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveVersionInfo_LdflagsOverride(t *testing.T) {
	original := version
	defer func() { version = original }()

	version = "1.2.3"
	v, _, _ := resolveVersionInfo()
	assert.Equal(t, "1.2.3", v)
}

func TestResolveVersionInfo_DevFallback(t *testing.T) {
	origV, origC, origD := version, commit, date
	defer func() { version, commit, date = origV, origC, origD }()

	version, commit, date = "dev", "unknown", "unknown"
	v, c, d := resolveVersionInfo()

	// In a test binary ReadBuildInfo describes the test module; only
	// check that something sensible comes back.
	assert.NotEmpty(t, v)
	t.Logf("resolved: version=%s commit=%s date=%s", v, c, d)
}

func TestPrintVersionInfo_StdoutIsOneLine(t *testing.T) {
	var stdout, stderr bytes.Buffer
	printVersionInfo(&stdout, &stderr)

	line := strings.TrimSuffix(stdout.String(), "\n")
	assert.NotContains(t, line, "\n")
	assert.True(t, strings.HasPrefix(line, "lawcat "))
	assert.True(t, strings.HasSuffix(line, runtime.GOOS+"/"+runtime.GOARCH))
	assert.NotEmpty(t, stderr.String())
}

func TestVersionCommand(t *testing.T) {
	r := run(t, "version")
	assert.NoError(t, r.err)
	assert.True(t, strings.HasPrefix(r.stdout, "lawcat "))
}
