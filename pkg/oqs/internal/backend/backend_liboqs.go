//go:build cgo && liboqs

package backend

/*
#cgo pkg-config: liboqs
#include <stdlib.h>
#include <oqs/oqs.h>
*/
import "C"

import (
	"unsafe"
)

// KEM is a type alias for *C.OQS_KEM.
type KEM = *C.OQS_KEM

// Sig is a type alias for *C.OQS_SIG.
type Sig = *C.OQS_SIG

// emptyInput backs zero-length inputs so liboqs never sees NULL with a
// length it might still hash.
var emptyInput C.uint8_t

// bytePtr returns a pointer to the first element of b. The pointer is only
// valid for the duration of the cgo call it is passed to.
func bytePtr(b []byte) *C.uint8_t {
	if len(b) == 0 {
		return &emptyInput
	}
	return (*C.uint8_t)(unsafe.Pointer(&b[0]))
}

// Init runs OQS_init. Callers serialize it; see oqs.Init.
func Init() {
	C.OQS_init()
}

// Version returns the version string reported by liboqs.
func Version() string {
	return C.GoString(C.OQS_version())
}

// Name identifies the linked registry.
func Name() string { return "liboqs" }

// =====================
// KEM bridging
// =====================

// KEMEnabled reports whether liboqs was built with the identified KEM.
func KEMEnabled(id string) bool {
	cid := C.CString(id)
	defer C.free(unsafe.Pointer(cid))
	return C.OQS_KEM_alg_is_enabled(cid) == 1
}

// NewKEM returns a new native instance, or nil when the algorithm is
// unavailable in this build of liboqs.
func NewKEM(id string) KEM {
	cid := C.CString(id)
	defer C.free(unsafe.Pointer(cid))
	return C.OQS_KEM_new(cid)
}

// FreeKEM releases a native instance.
func FreeKEM(k KEM) {
	if k == nil {
		return
	}
	C.OQS_KEM_free(k)
}

// DescribeKEM copies the metadata fields out of the native instance.
func DescribeKEM(k KEM) KEMDetails {
	if k == nil {
		return KEMDetails{}
	}
	return KEMDetails{
		Name:               C.GoString(k.method_name),
		Version:            C.GoString(k.alg_version),
		ClaimedNISTLevel:   uint8(k.claimed_nist_level),
		IndCCA:             bool(k.ind_cca),
		LengthPublicKey:    int(k.length_public_key),
		LengthSecretKey:    int(k.length_secret_key),
		LengthCiphertext:   int(k.length_ciphertext),
		LengthSharedSecret: int(k.length_shared_secret),
	}
}

// KEMKeypair writes a fresh keypair into pk and sk.
func KEMKeypair(k KEM, pk, sk []byte) Status {
	if k == nil {
		return StatusError
	}
	if len(pk) < int(k.length_public_key) || len(sk) < int(k.length_secret_key) {
		return StatusError
	}
	return Status(C.OQS_KEM_keypair(k, bytePtr(pk), bytePtr(sk)))
}

// KEMEncaps writes a ciphertext and shared secret for pk into ct and ss.
func KEMEncaps(k KEM, ct, ss, pk []byte) Status {
	if k == nil {
		return StatusError
	}
	if len(ct) < int(k.length_ciphertext) || len(ss) < int(k.length_shared_secret) ||
		len(pk) != int(k.length_public_key) {
		return StatusError
	}
	return Status(C.OQS_KEM_encaps(k, bytePtr(ct), bytePtr(ss), bytePtr(pk)))
}

// KEMDecaps writes the shared secret recovered from ct under sk into ss.
func KEMDecaps(k KEM, ss, ct, sk []byte) Status {
	if k == nil {
		return StatusError
	}
	if len(ss) < int(k.length_shared_secret) || len(ct) != int(k.length_ciphertext) ||
		len(sk) != int(k.length_secret_key) {
		return StatusError
	}
	return Status(C.OQS_KEM_decaps(k, bytePtr(ss), bytePtr(ct), bytePtr(sk)))
}

// =====================
// Signature bridging
// =====================

// SigEnabled reports whether liboqs was built with the identified scheme.
func SigEnabled(id string) bool {
	cid := C.CString(id)
	defer C.free(unsafe.Pointer(cid))
	return C.OQS_SIG_alg_is_enabled(cid) == 1
}

// NewSig returns a new native instance, or nil when the algorithm is
// unavailable in this build of liboqs.
func NewSig(id string) Sig {
	cid := C.CString(id)
	defer C.free(unsafe.Pointer(cid))
	return C.OQS_SIG_new(cid)
}

// FreeSig releases a native instance.
func FreeSig(s Sig) {
	if s == nil {
		return
	}
	C.OQS_SIG_free(s)
}

// DescribeSig copies the metadata fields out of the native instance.
// suf_cma requires liboqs 0.12 or newer.
func DescribeSig(s Sig) SigDetails {
	if s == nil {
		return SigDetails{}
	}
	return SigDetails{
		Name:             C.GoString(s.method_name),
		Version:          C.GoString(s.alg_version),
		ClaimedNISTLevel: uint8(s.claimed_nist_level),
		EUFCMA:           bool(s.euf_cma),
		SUFCMA:           bool(s.suf_cma),
		LengthPublicKey:  int(s.length_public_key),
		LengthSecretKey:  int(s.length_secret_key),
		LengthSignature:  int(s.length_signature),
	}
}

// SigKeypair writes a fresh keypair into pk and sk.
func SigKeypair(s Sig, pk, sk []byte) Status {
	if s == nil {
		return StatusError
	}
	if len(pk) < int(s.length_public_key) || len(sk) < int(s.length_secret_key) {
		return StatusError
	}
	return Status(C.OQS_SIG_keypair(s, bytePtr(pk), bytePtr(sk)))
}

// SigSign writes a signature over msg into sig and stores its actual length
// in sigLen.
func SigSign(s Sig, sig []byte, sigLen *int, msg, sk []byte) Status {
	if s == nil || sigLen == nil {
		return StatusError
	}
	if len(sig) < int(s.length_signature) || len(sk) != int(s.length_secret_key) {
		return StatusError
	}
	n := C.size_t(len(sig))
	rc := C.OQS_SIG_sign(s, bytePtr(sig), &n, bytePtr(msg), C.size_t(len(msg)), bytePtr(sk))
	*sigLen = int(n)
	return Status(rc)
}

// SigVerify checks sig over msg under pk.
func SigVerify(s Sig, msg, sig, pk []byte) Status {
	if s == nil {
		return StatusError
	}
	if len(pk) != int(s.length_public_key) {
		return StatusError
	}
	return Status(C.OQS_SIG_verify(s, bytePtr(msg), C.size_t(len(msg)),
		bytePtr(sig), C.size_t(len(sig)), bytePtr(pk)))
}
