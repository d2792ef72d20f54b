package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/lawcat/pkg/lawcat"
)

// ErrConfigNotFound is returned when no project file exists.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Project file names, in lookup order.
const (
	FileNameYAML = "lawcat.yaml"
	FileNameTOML = "lawcat.toml"
)

// ProjectConfig is the content of lawcat.yaml or lawcat.toml.
// Relative paths are resolved against the file's directory.
type ProjectConfig struct {
	Work          string `yaml:"work,omitempty" toml:"work,omitempty"`
	Output        string `yaml:"output,omitempty" toml:"output,omitempty"`
	Index         string `yaml:"index,omitempty" toml:"index,omitempty"`
	IndexEncoding string `yaml:"index_encoding,omitempty" toml:"index_encoding,omitempty"`
	Schema        string `yaml:"schema,omitempty" toml:"schema,omitempty"`
	Report        string `yaml:"report,omitempty" toml:"report,omitempty"`
	LogJSON       bool   `yaml:"log_json,omitempty" toml:"log_json,omitempty"`
	Debounce      string `yaml:"debounce,omitempty" toml:"debounce,omitempty"`
}

// Find returns the project file in dir, preferring YAML over TOML.
func Find(dir string) (string, error) {
	for _, name := range []string{FileNameYAML, FileNameTOML} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", ErrConfigNotFound
}

// Load reads the project file in dir.
func Load(dir string) (*ProjectConfig, error) {
	p, err := Find(dir)
	if err != nil {
		return nil, err
	}
	return LoadFile(p)
}

// LoadFile reads a project file. The format follows the extension
// (.yaml, .yml or .toml). Unknown keys are rejected.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrConfigNotFound, "%s", path)
		}
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	var cfg ProjectConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, invalid(path, err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, invalid(path, err)
		}
	default:
		return nil, errors.WithHint(
			errors.Wrapf(lawcat.ErrInvalidConfig, "unsupported config format %q", filepath.Ext(path)),
			"use lawcat.yaml or lawcat.toml",
		)
	}

	cfg.resolvePaths(filepath.Dir(path))
	return &cfg, nil
}

func invalid(path string, err error) error {
	return errors.Wrapf(lawcat.ErrInvalidConfig, "config %s: %v", path, err)
}

func (c *ProjectConfig) resolvePaths(base string) {
	for _, p := range []*string{&c.Work, &c.Output, &c.Index, &c.Schema, &c.Report} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

// Marshal renders c in the given format ("yaml" or "toml").
func (c *ProjectConfig) Marshal(format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(c)
	case "toml":
		return toml.Marshal(c)
	default:
		return nil, errors.Newf("unknown format %q", format)
	}
}
