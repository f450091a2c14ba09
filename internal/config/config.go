// Package config loads the archival CLI configuration from a TOML file and
// environment variables. Priority: flags (applied by the caller) > env vars >
// TOML file > defaults.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/reoring/archival"
	"github.com/reoring/archival/backend/jsonbackend"
)

// Config holds all CLI settings.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	JSON    JSONConfig    `toml:"json"`
	Inspect InspectConfig `toml:"inspect"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "console" or "json"
}

// JSONConfig configures the JSON backend.
type JSONConfig struct {
	Indent       string `toml:"indent"`
	WideIntegers bool   `toml:"wide_integers"`
	InlineName   string `toml:"inline_name"`
}

// InspectConfig configures the inspect subcommand.
type InspectConfig struct {
	Window   string   `toml:"window"`
	Frames   int      `toml:"frames"`
	Debounce Duration `toml:"debounce"`
}

// Duration is a time.Duration that can be unmarshaled from TOML strings.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrapf(err, "duration %q", text)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Duration() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

// DefaultConfig returns a Config with all default values.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "console"},
		JSON:    JSONConfig{Indent: "  ", InlineName: archival.DefaultInlineName},
		Inspect: InspectConfig{Window: "Inspector", Frames: 1, Debounce: Duration(100 * time.Millisecond)},
	}
}

// Load returns the defaults overlaid with the TOML file at path, if path is
// not empty, and then with ARCHIVAL_* environment variables. Unknown keys in
// the file are an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if err := cfg.loadTOML(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) loadTOML(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrapf(err, "load config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.Newf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("ARCHIVAL_LOG_LEVEL"); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup("ARCHIVAL_LOG_FORMAT"); ok && v != "" {
		c.Logging.Format = v
	}
	if v, ok := lookup("ARCHIVAL_JSON_INDENT"); ok {
		c.JSON.Indent = v
	}
	if v, ok := lookup("ARCHIVAL_JSON_WIDE_INTEGERS"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, "ARCHIVAL_JSON_WIDE_INTEGERS")
		}
		c.JSON.WideIntegers = b
	}
	if v, ok := lookup("ARCHIVAL_INSPECT_FRAMES"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "ARCHIVAL_INSPECT_FRAMES")
		}
		c.Inspect.Frames = n
	}
	return nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return errors.Newf("logging.format: unknown format %q", c.Logging.Format)
	}
	if c.Inspect.Frames < 1 {
		return errors.Newf("inspect.frames: must be at least 1, got %d", c.Inspect.Frames)
	}
	if c.Inspect.Window == "" {
		return errors.New("inspect.window: must not be empty")
	}
	if c.Inspect.Debounce <= 0 {
		return errors.Newf("inspect.debounce: must be positive, got %s", time.Duration(c.Inspect.Debounce))
	}
	return nil
}

// Level parses Logging.Level. "trace" is accepted as debug.
func (c *Config) Level() (zapcore.Level, error) {
	text := c.Logging.Level
	if strings.EqualFold(text, "trace") {
		text = "debug"
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(text)); err != nil {
		return level, errors.Wrapf(err, "logging.level %q", c.Logging.Level)
	}
	return level, nil
}

// NewLogger builds the process logger. It writes to stderr so command output
// on stdout stays clean.
func (c *Config) NewLogger(opts ...zap.Option) (*zap.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if c.Logging.Format == "console" {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zc.DisableStacktrace = true
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	l, err := zc.Build(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return l, nil
}

// JSONCodec returns a JSON codec for this configuration.
func (c *Config) JSONCodec(logger *zap.Logger) jsonbackend.Codec {
	opts := []jsonbackend.Option{jsonbackend.WithWideIntegers(c.JSON.WideIntegers)}
	if c.JSON.InlineName != "" {
		opts = append(opts, jsonbackend.WithInlineName(c.JSON.InlineName))
	}
	if logger != nil {
		opts = append(opts, jsonbackend.WithLogger(logger))
	}
	return jsonbackend.Codec{Indent: c.JSON.Indent, Options: opts}
}
