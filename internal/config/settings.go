package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vvka-141/lawcat/pkg/lawcat"
)

// EnvPrefix is the prefix of environment variables read by Resolve,
// e.g. LAWCAT_WORK or LAWCAT_INDEX_ENCODING.
const EnvPrefix = "LAWCAT"

// Setting keys. Flags use the same names with dashes.
const (
	KeyWork          = "work"
	KeyOutput        = "output"
	KeyIndex         = "index"
	KeyIndexEncoding = "index_encoding"
	KeySchema        = "schema"
	KeyReport        = "report"
	KeyLogJSON       = "log_json"
	KeyDebounce      = "debounce"
)

var allKeys = []string{KeyWork, KeyOutput, KeyIndex, KeyIndexEncoding, KeySchema, KeyReport, KeyLogJSON, KeyDebounce}

// Settings are the effective settings of one invocation.
type Settings struct {
	Build    lawcat.BuildConfig
	LogJSON  bool
	Debounce time.Duration

	// ConfigFile is the project file that was read, or "".
	ConfigFile string
}

// Options control where Resolve looks.
type Options struct {
	// ConfigPath is an explicit project file (--config). When empty the
	// working directory is searched for lawcat.yaml, then lawcat.toml.
	ConfigPath string

	// Dir is the directory searched for the project file and .env.
	// Defaults to the current directory.
	Dir string

	// Flags, when set, take precedence over every other source for the
	// flags the user actually passed.
	Flags *pflag.FlagSet
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyIndexEncoding, lawcat.IndexEncodingAuto)
	v.SetDefault(KeyLogJSON, false)
	v.SetDefault(KeyDebounce, lawcat.DefaultWatchDebounce.String())
	for _, k := range []string{KeyWork, KeyOutput, KeyIndex, KeySchema, KeyReport} {
		v.SetDefault(k, "")
	}
}

// Resolve merges settings with precedence flags > LAWCAT_* environment
// (including .env) > project file > defaults.
func Resolve(opts Options) (*Settings, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	// .env never overrides variables already set in the environment.
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	configFile, err := mergeProjectFile(v, opts.ConfigPath, dir)
	if err != nil {
		return nil, err
	}

	if opts.Flags != nil {
		for _, key := range allKeys {
			if f := opts.Flags.Lookup(strings.ReplaceAll(key, "_", "-")); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "bind flag %s", f.Name)
				}
			}
		}
	}

	debounce, err := time.ParseDuration(v.GetString(KeyDebounce))
	if err != nil || debounce < 0 {
		return nil, errors.Wrapf(lawcat.ErrInvalidConfig, "invalid debounce %q", v.GetString(KeyDebounce))
	}

	return &Settings{
		Build: lawcat.BuildConfig{
			WorkDir:       v.GetString(KeyWork),
			OutputPath:    v.GetString(KeyOutput),
			IndexPath:     v.GetString(KeyIndex),
			IndexEncoding: strings.ToLower(v.GetString(KeyIndexEncoding)),
			SchemaPath:    v.GetString(KeySchema),
			ReportPath:    v.GetString(KeyReport),
		},
		LogJSON:    v.GetBool(KeyLogJSON),
		Debounce:   debounce,
		ConfigFile: configFile,
	}, nil
}

func mergeProjectFile(v *viper.Viper, explicit, dir string) (string, error) {
	path := explicit
	if path == "" {
		found, err := Find(dir)
		if errors.Is(err, ErrConfigNotFound) {
			return "", nil
		}
		if err != nil {
			return "", err
		}
		path = found
	}

	cfg, err := LoadFile(path)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			return "", errors.Wrapf(lawcat.ErrInvalidConfig, "config file %s does not exist", path)
		}
		return "", err
	}

	values := map[string]interface{}{}
	add := func(key, value string) {
		if value != "" {
			values[key] = value
		}
	}
	add(KeyWork, cfg.Work)
	add(KeyOutput, cfg.Output)
	add(KeyIndex, cfg.Index)
	add(KeyIndexEncoding, cfg.IndexEncoding)
	add(KeySchema, cfg.Schema)
	add(KeyReport, cfg.Report)
	add(KeyDebounce, cfg.Debounce)
	if cfg.LogJSON {
		values[KeyLogJSON] = true
	}

	if err := v.MergeConfigMap(values); err != nil {
		return "", errors.Wrapf(err, "merge config %s", path)
	}
	return path, nil
}

// Effective renders s back into a ProjectConfig, for display.
func (s *Settings) Effective() *ProjectConfig {
	return &ProjectConfig{
		Work:          s.Build.WorkDir,
		Output:        s.Build.OutputPath,
		Index:         s.Build.IndexPath,
		IndexEncoding: s.Build.IndexEncoding,
		Schema:        s.Build.SchemaPath,
		Report:        s.Build.ReportPath,
		LogJSON:       s.LogJSON,
		Debounce:      s.Debounce.String(),
	}
}
