package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/lawcat/pkg/lawcat"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("work", "", "")
	fs.String("output", "", "")
	fs.String("index", "", "")
	fs.String("index-encoding", lawcat.IndexEncodingAuto, "")
	fs.String("schema", "", "")
	fs.String("report", "", "")
	fs.Bool("log-json", false, "")
	fs.Duration("debounce", lawcat.DefaultWatchDebounce, "")
	require.NoError(t, fs.Parse(args))
	return fs
}

// clearEnv unsets every LAWCAT_* variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		name := EnvPrefix + "_" + upper(key)
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

func TestResolve_Defaults(t *testing.T) {
	clearEnv(t)

	s, err := Resolve(Options{Dir: t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, lawcat.IndexEncodingAuto, s.Build.IndexEncoding)
	assert.Equal(t, lawcat.DefaultWatchDebounce, s.Debounce)
	assert.False(t, s.LogJSON)
	assert.Empty(t, s.Build.WorkDir)
	assert.Empty(t, s.ConfigFile)
}

func TestResolve_Precedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, FileNameYAML, `work: file-work
output: file-out.json
index: file-index.csv
report: file-report.json
`)

	t.Setenv("LAWCAT_OUTPUT", "/env/out.json")
	t.Setenv("LAWCAT_INDEX", "/env/index.csv")
	flags := newFlags(t, "--index", "/flag/index.csv")

	s, err := Resolve(Options{Dir: dir, Flags: flags})
	require.NoError(t, err)

	assert.Equal(t, cfgPath, s.ConfigFile)
	assert.Equal(t, filepath.Join(dir, "file-work"), s.Build.WorkDir, "file over default")
	assert.Equal(t, "/env/out.json", s.Build.OutputPath, "env over file")
	assert.Equal(t, "/flag/index.csv", s.Build.IndexPath, "flag over env")
	assert.Equal(t, filepath.Join(dir, "file-report.json"), s.Build.ReportPath)
}

func TestResolve_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, ".env", "LAWCAT_WORK=/dotenv/laws\nLAWCAT_LOG_JSON=true\n")

	s, err := Resolve(Options{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, "/dotenv/laws", s.Build.WorkDir)
	assert.True(t, s.LogJSON)
}

func TestResolve_ExplicitConfig(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	p := writeFile(t, dir, "custom.toml", "work = \"w\"\ndebounce = \"750ms\"\nindex_encoding = \"SHIFT_JIS\"\n")

	s, err := Resolve(Options{Dir: t.TempDir(), ConfigPath: p})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "w"), s.Build.WorkDir)
	assert.Equal(t, 750*time.Millisecond, s.Debounce)
	assert.Equal(t, lawcat.IndexEncodingShiftJIS, s.Build.IndexEncoding)
}

func TestResolve_Errors(t *testing.T) {
	clearEnv(t)

	t.Run("explicit config missing", func(t *testing.T) {
		_, err := Resolve(Options{Dir: t.TempDir(), ConfigPath: filepath.Join(t.TempDir(), "nope.yaml")})
		require.Error(t, err)
		assert.True(t, errors.Is(err, lawcat.ErrInvalidConfig))
	})

	t.Run("bad debounce", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, FileNameYAML, "debounce: soon\n")
		_, err := Resolve(Options{Dir: dir})
		require.Error(t, err)
		assert.Equal(t, lawcat.ExitConfigError, lawcat.ExitCodeForError(err))
	})
}

func TestSettings_Effective(t *testing.T) {
	s := &Settings{
		Build:    lawcat.BuildConfig{WorkDir: "/w", OutputPath: "/o.json", IndexEncoding: "auto"},
		Debounce: 3 * time.Second,
	}
	eff := s.Effective()
	assert.Equal(t, "/w", eff.Work)
	assert.Equal(t, "3s", eff.Debounce)
}
