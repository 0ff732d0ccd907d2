package oqs

import (
	"errors"

	"github.com/hsiuhsiu/oqs-go/pkg/oqs/internal/backend"
)

var (
	// ErrAlgorithmDisabled is returned when the linked library does not
	// provide the requested algorithm.
	ErrAlgorithmDisabled = errors.New("oqs: algorithm disabled")

	// ErrUnknownAlgorithm is returned when parsing an identifier that names
	// no known algorithm.
	ErrUnknownAlgorithm = errors.New("oqs: unknown algorithm")

	// ErrInvalidLength is returned when an input buffer does not have the
	// length the algorithm declares for it.
	ErrInvalidLength = errors.New("oqs: invalid length")

	// ErrNative is a generic failure reported by the native library. Failed
	// signature verification surfaces as ErrNative as well.
	ErrNative = errors.New("oqs: native operation failed")

	// ErrExternalOpenSSL is returned when liboqs reports an error in an
	// OpenSSL routine it depends on.
	ErrExternalOpenSSL = errors.New("oqs: external OpenSSL error")

	// ErrHandleClosed is returned by operations on a freed handle.
	ErrHandleClosed = errors.New("oqs: handle closed")
)

// RemapError converts backend errors to the public sentinels. It is exported
// for the family subpackages.
func RemapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, backend.ErrExternalOpenSSL):
		return ErrExternalOpenSSL
	case errors.Is(err, backend.ErrNative):
		return ErrNative
	default:
		return err
	}
}

// FromStatus translates a backend status into nil or a public sentinel.
func FromStatus(s backend.Status) error {
	return RemapError(s.Err())
}
