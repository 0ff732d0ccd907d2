package oqs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/hsiuhsiu/oqs-go/pkg/oqs/internal/backend"
)

var (
	initOnce    sync.Once
	initialized atomic.Bool
)

// Init initializes the native library. It is safe to call from any number of
// goroutines; the first call performs the work and every call returns only
// once it has completed. Handle constructors call Init themselves.
func Init() {
	initOnce.Do(func() {
		backend.Init()
		initialized.Store(true)
		Log().Debug(context.Background(), "oqs initialized",
			"backend", backend.Name(), "library_version", backend.Version())
	})
}

// Initialized reports whether Init has completed.
func Initialized() bool {
	return initialized.Load()
}
