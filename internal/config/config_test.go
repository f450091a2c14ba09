package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archival.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 100*time.Millisecond, cfg.Inspect.Debounce.Duration())
}

func TestLoad_TOMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
[logging]
level = "debug"

[json]
wide_integers = true
inline_name = "v"

[inspect]
frames = 3
debounce = "250ms"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format, "unset keys keep defaults")
	assert.True(t, cfg.JSON.WideIntegers)
	assert.Equal(t, "v", cfg.JSON.InlineName)
	assert.Equal(t, 3, cfg.Inspect.Frames)
	assert.Equal(t, 250*time.Millisecond, cfg.Inspect.Debounce.Duration())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "[json]\nindnet = \"\\t\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json.indnet")

	_, err = Load(writeFile(t, "[inspect]\ndebounce = \"soon\"\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "[inspect]\nframes = 0\n"))
	assert.Error(t, err)

	for _, d := range []string{"0s", "-5ms"} {
		_, err = Load(writeFile(t, "[inspect]\ndebounce = \""+d+"\"\n"))
		require.Error(t, err, d)
		assert.Contains(t, err.Error(), "inspect.debounce")
	}

	_, err = Load(writeFile(t, "[logging]\nlevel = \"loud\"\n"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"ARCHIVAL_LOG_LEVEL":          "warn",
		"ARCHIVAL_JSON_INDENT":        "",
		"ARCHIVAL_JSON_WIDE_INTEGERS": "1",
		"ARCHIVAL_INSPECT_FRAMES":     "5",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := DefaultConfig()
	require.NoError(t, cfg.applyEnv(lookup))
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "", cfg.JSON.Indent, "an empty indent is a setting")
	assert.True(t, cfg.JSON.WideIntegers)
	assert.Equal(t, 5, cfg.Inspect.Frames)

	env["ARCHIVAL_INSPECT_FRAMES"] = "many"
	assert.Error(t, DefaultConfig().applyEnv(lookup))
}

func TestLevel(t *testing.T) {
	cfg := DefaultConfig()
	for text, want := range map[string]zapcore.Level{
		"trace": zapcore.DebugLevel,
		"DEBUG": zapcore.DebugLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	} {
		cfg.Logging.Level = text
		got, err := cfg.Level()
		require.NoError(t, err, text)
		assert.Equal(t, want, got, text)
	}
}

func TestNewLogger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "warn"
	for _, format := range []string{"console", "json"} {
		cfg.Logging.Format = format
		l, err := cfg.NewLogger()
		require.NoError(t, err)
		assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
	}
}

func TestJSONCodec(t *testing.T) {
	cfg := DefaultConfig()
	c := cfg.JSONCodec(nil)
	assert.Equal(t, "  ", c.Indent)
	assert.Len(t, c.Options, 2)
}
