// Package config loads the abook settings from an optional YAML file and
// ABOOK_* environment variables.
package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	// DefaultFile is read from the working directory when no file is given.
	DefaultFile = ".abook.yaml"
	// EnvPrefix marks the environment variables that override the file,
	// e.g. ABOOK_LOG_LEVEL=debug or ABOOK_BOOK_READONLY=true.
	EnvPrefix = "ABOOK_"
)

type Config struct {
	Book Book `json:"book" yaml:"book"`
	Log  Log  `json:"log" yaml:"log"`
}

type Book struct {
	Path     string `json:"path" yaml:"path"`
	Format   string `json:"format" yaml:"format" validate:"omitempty,oneof=json yaml yml"`
	ReadOnly bool   `json:"readOnly" yaml:"readOnly"`
	// Versioning is nil when unset; the book directory then decides.
	Versioning *bool `json:"versioning" yaml:"versioning"`
}

type Log struct {
	Level  string `json:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `json:"format" yaml:"format" validate:"oneof=text json"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Book: Book{Format: "json"},
		Log:  Log{Level: "info", Format: "text"},
	}
}

// Load reads path (or DefaultFile if it exists and path is empty), applies
// the environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read config %s failed", path)
		}
	}

	existing := k.Raw()
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, v string) (string, any) {
			return envKey(key, existing), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrap(err, "unmarshal config failed")
	}

	cfg.Book.Format = strings.ToLower(strings.TrimPrefix(cfg.Book.Format, "."))
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// envKey turns ABOOK_BOOK_READONLY into a koanf path. Segments reuse the
// casing of keys already loaded from the file (book.readOnly), so an
// override replaces the file value instead of sitting next to it.
func envKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(strings.TrimPrefix(rawKey, EnvPrefix)), "_")
	path := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}
		matched := segment
		var next map[string]any
		for key, value := range current {
			if strings.EqualFold(key, segment) {
				matched = key
				next, _ = value.(map[string]any)
				break
			}
		}
		path = append(path, matched)
		current = next
	}
	return strings.Join(path, ".")
}

// BookFile is the book used when no path is given on the command line.
func (c *Config) BookFile() string {
	if c.Book.Path != "" {
		return c.Book.Path
	}
	return "contacts." + c.Book.Format
}

// NewLogger builds the process logger. verbose forces the debug level.
func (c *Config) NewLogger(w io.Writer, verbose bool) (*slog.Logger, error) {
	level, err := ParseLogLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// ParseLogLevel converts a level name to slog.Level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.Errorf("unknown log level: %s", level)
	}
}
