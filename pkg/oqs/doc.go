// Package oqs is the root of oqs-go, a Go wrapper around the liboqs
// post-quantum cryptography library.
//
// The algorithm families live in subpackages: kem for key encapsulation and
// sig for signatures. This package holds what they share: one-time library
// initialization, the error taxonomy, version reporting and the package
// logger.
//
// # Backends
//
// Building with cgo and the liboqs tag links the system liboqs through
// pkg-config:
//
//	go build -tags liboqs ./...
//
// Without the tag a pure-Go registry serves the subset of algorithms that
// cloudflare/circl implements, extended with Classic McEliece from
// katzenpost/hpqc when cgo is enabled. Every other algorithm reports as
// disabled. BackendName tells the two apart at runtime.
package oqs
