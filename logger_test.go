package archival_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/reoring/archival"
)

func TestLogger_DefaultIsWarnLevel(t *testing.T) {
	archival.UseDefaultLogger()
	l := archival.Logger()
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestLogger_SetIgnoresNil(t *testing.T) {
	t.Cleanup(archival.UseDefaultLogger)
	nop := zap.NewNop()
	archival.SetLogger(nop)
	archival.SetLogger(nil)
	assert.Same(t, nop, archival.Logger())
}
