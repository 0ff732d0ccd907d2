package oqs

import (
	"sync/atomic"

	"github.com/hsiuhsiu/oqs-go/pkg/oqs/logging"
)

type loggerBox struct{ l logging.Logger }

var pkgLogger atomic.Pointer[loggerBox]

func init() {
	pkgLogger.Store(&loggerBox{l: logging.New(nil)})
}

// SetLogger replaces the logger used by oqs and its subpackages. Passing nil
// restores the slog.Default() backed logger.
func SetLogger(l logging.Logger) {
	if l == nil {
		l = logging.New(nil)
	}
	pkgLogger.Store(&loggerBox{l: l})
}

// Log returns the current package logger.
func Log() logging.Logger {
	return pkgLogger.Load().l
}
