package archival

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	loggerMu      sync.RWMutex
	currentLogger = newDefaultLogger()
)

// SetLogger replaces the process logger used by backends that were not given
// one explicitly; nil values are ignored.
func SetLogger(l *zap.Logger) {
	if l == nil {
		return
	}
	loggerMu.Lock()
	currentLogger = l
	loggerMu.Unlock()
}

// UseDefaultLogger restores the default warn-level console logger.
func UseDefaultLogger() {
	l := newDefaultLogger()
	loggerMu.Lock()
	currentLogger = l
	loggerMu.Unlock()
}

// Logger returns the process logger.
func Logger() *zap.Logger {
	loggerMu.RLock()
	l := currentLogger
	loggerMu.RUnlock()
	return l
}

func newDefaultLogger() *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stderr), zapcore.WarnLevel)
	return zap.New(core).Named("archival")
}
