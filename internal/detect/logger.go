package detect

import (
	"log/slog"
	"sync"

	"lfpsync/internal/logging"
)

var (
	serviceLogger *slog.Logger
	loggerOnce    sync.Once
)

// GetLogger returns the detect package logger.
func GetLogger() *slog.Logger {
	loggerOnce.Do(func() {
		serviceLogger = logging.ForService("detect")
	})
	return serviceLogger
}
