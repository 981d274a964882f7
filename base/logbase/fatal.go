package logbase

import (
	"os"
	"sync/atomic"

	"go.uber.org/zap"
)

// ExitCode is the process exit status after a fatal error.
const ExitCode = 2

var exitFn atomic.Pointer[func(int)]

func exit(code int) {
	if f := exitFn.Load(); f != nil {
		(*f)(code)
		return
	}
	os.Exit(code)
}

// SetExit replaces the function used to terminate the process and returns a
// function restoring the previous one. A nil f restores os.Exit.
func SetExit(f func(code int)) (restore func()) {
	var p *func(int)
	if f != nil {
		p = &f
	}
	prev := exitFn.Swap(p)
	return func() { exitFn.Store(prev) }
}

// Fatal logs msg at error level, attributed to the caller of the function
// that invoked Fatal, and terminates the process.
func Fatal(log *zap.Logger, msg string, fields ...zap.Field) {
	log.WithOptions(zap.AddCallerSkip(2)).Error(msg, fields...)
	_ = log.Sync()
	exit(ExitCode)
}
