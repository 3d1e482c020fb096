package log

import "sync/atomic"

var defaultLogger atomic.Pointer[Logger]

// SetDefaultLogger replaces the process-wide default logger. The root
// command calls this once after config is loaded; components grab their
// scoped loggers from DefaultLogger afterwards.
func SetDefaultLogger(logger *Logger) {
	defaultLogger.Store(logger)
}

// DefaultLogger returns the process-wide default logger, initializing
// one with standard defaults on first use.
func DefaultLogger() *Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	l := Default()
	defaultLogger.CompareAndSwap(nil, l)
	return defaultLogger.Load()
}
