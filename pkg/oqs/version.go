package oqs

import (
	"github.com/carlmjohnson/versioninfo"

	"github.com/hsiuhsiu/oqs-go/pkg/oqs/internal/backend"
)

// Version is populated at build time via
// -ldflags "-X github.com/hsiuhsiu/oqs-go/pkg/oqs.Version=v1.2.3".
var Version = ""

// WrapperVersion returns Version when set, otherwise the module version
// recorded in the build info.
func WrapperVersion() string {
	if Version != "" {
		return Version
	}
	return versioninfo.Short()
}

// LibraryVersion returns the version string of the linked registry: the
// liboqs release, or the Go toolchain version for the pure-Go registry.
func LibraryVersion() string {
	return backend.Version()
}

// BackendName returns "liboqs" or "go".
func BackendName() string {
	return backend.Name()
}
