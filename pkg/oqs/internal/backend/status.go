package backend

import "errors"

// Status mirrors liboqs' OQS_STATUS.
type Status int

const (
	StatusSuccess                 Status = 0
	StatusError                   Status = -1
	StatusExternalLibErrorOpenSSL Status = 50
)

// ErrNative is returned for OQS_ERROR, and for any status value the bindings
// do not recognize.
var ErrNative = errors.New("oqs/internal/backend: native operation failed")

// ErrExternalOpenSSL is returned for OQS_EXTERNAL_LIB_ERROR_OPENSSL.
var ErrExternalOpenSSL = errors.New("oqs/internal/backend: error in external OpenSSL routine")

// Err translates the status into nil or one of the backend sentinels.
func (s Status) Err() error {
	switch s {
	case StatusSuccess:
		return nil
	case StatusExternalLibErrorOpenSSL:
		return ErrExternalOpenSSL
	default:
		return ErrNative
	}
}

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "OQS_SUCCESS"
	case StatusError:
		return "OQS_ERROR"
	case StatusExternalLibErrorOpenSSL:
		return "OQS_EXTERNAL_LIB_ERROR_OPENSSL"
	default:
		return "OQS_STATUS(unknown)"
	}
}
