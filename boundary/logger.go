package boundary

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/pdsmelt/resource"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the boundary package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the boundary package's logger.
// This must be called before New.
func SetLogger(l *zap.Logger) {
	logger = l
}

// handleLog reports handle lifecycle events at debug level.
type handleLog struct {
	logger *zap.Logger
}

func (h handleLog) OnResourceEvent(e resource.Event) {
	h.logger.Debug("handle",
		zap.Stringer("event", e.Type),
		zap.Uint32("handle", uint32(e.Handle)),
		zap.String("kind", kindName(e.Kind)))
}
