// Package logging builds the zerolog loggers used by the CLI and the HTTP
// service.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel   = "SWMMOUT_LOG_LEVEL"
	EnvLogFormat  = "SWMMOUT_LOG_FORMAT"
	EnvLogNoColor = "SWMMOUT_LOG_NOCOLOR"
)

// Config selects the level and the output format
type Config struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"` // console or json
	NoColor bool   `yaml:"no_color"`
}

// DefaultConfig logs at info to the console
func DefaultConfig() Config {
	return Config{Level: "info", Format: "console"}
}

// ApplyEnv overrides cfg with any SWMMOUT_LOG_* variables that are set
func ApplyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Format = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		cfg.NoColor = v
	}
}

// ParseLevel accepts the usual level names plus a few aliases for
// disabled output. Unknown names report false.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "", "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	}
	return zerolog.InfoLevel, false
}

// New builds a logger writing to w
func New(cfg Config, w io.Writer, app string) zerolog.Logger {
	level, _ := ParseLevel(cfg.Level)

	out := w
	if !strings.EqualFold(cfg.Format, "json") {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    cfg.NoColor,
		}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Str("app", app).Logger()
}

// Init builds a stderr logger and installs it as the global zerolog logger
func Init(cfg Config, app string) zerolog.Logger {
	logger := New(cfg, os.Stderr, app)
	log.Logger = logger
	return logger
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
