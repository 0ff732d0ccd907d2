//go:build !(cgo && liboqs)

package backend

import (
	"encoding"
	"errors"
	"runtime"
)

// The pure-Go registry stands in for liboqs when the module is built without
// the liboqs tag. Identifiers are liboqs' own, so the public packages cannot
// tell the two apart beyond Name and Version.

var errOutputSize = errors.New("oqs/internal/backend: encoding size does not match declared length")

type kemImpl interface {
	keypair(pk, sk []byte) error
	encaps(ct, ss, pk []byte) error
	decaps(ss, ct, sk []byte) error
}

type sigImpl interface {
	keypair(pk, sk []byte) error
	sign(sig, msg, sk []byte) (int, error)
	verify(msg, sig, pk []byte) error
}

type kemEntry struct {
	details KEMDetails
	impl    kemImpl
}

type sigEntry struct {
	details SigDetails
	impl    sigImpl
}

var (
	kemRegistry = map[string]kemEntry{}
	sigRegistry = map[string]sigEntry{}
)

// registerKEM and registerSig are only called from init functions.
func registerKEM(e kemEntry) { kemRegistry[e.details.Name] = e }
func registerSig(e sigEntry) { sigRegistry[e.details.Name] = e }

type kemInstance struct {
	details KEMDetails
	impl    kemImpl
}

type sigInstance struct {
	details SigDetails
	impl    sigImpl
}

// KEM is an opaque registry instance.
type KEM = *kemInstance

// Sig is an opaque registry instance.
type Sig = *sigInstance

// Init has nothing to set up for the Go registry. The registry tables are
// filled by package init functions before any caller can reach it.
func Init() {}

// Version returns the registry's implementation version.
func Version() string {
	return "go-registry (" + runtime.Version() + ")"
}

// Name identifies the linked registry.
func Name() string { return "go" }

// =====================
// KEM
// =====================

// KEMEnabled reports whether the identifier has a registered implementation.
func KEMEnabled(id string) bool {
	_, ok := kemRegistry[id]
	return ok
}

// NewKEM returns a new instance, or nil when the identifier is unknown.
func NewKEM(id string) KEM {
	e, ok := kemRegistry[id]
	if !ok {
		return nil
	}
	return &kemInstance{details: e.details, impl: e.impl}
}

// FreeKEM drops the instance's implementation.
func FreeKEM(k KEM) {
	if k == nil {
		return
	}
	k.impl = nil
}

// DescribeKEM returns the instance metadata.
func DescribeKEM(k KEM) KEMDetails {
	if k == nil {
		return KEMDetails{}
	}
	return k.details
}

// KEMKeypair writes a fresh keypair into pk and sk.
func KEMKeypair(k KEM, pk, sk []byte) Status {
	if k == nil || k.impl == nil {
		return StatusError
	}
	d := k.details
	if len(pk) < d.LengthPublicKey || len(sk) < d.LengthSecretKey {
		return StatusError
	}
	return statusOf(k.impl.keypair(pk[:d.LengthPublicKey], sk[:d.LengthSecretKey]))
}

// KEMEncaps writes a ciphertext and shared secret for pk into ct and ss.
func KEMEncaps(k KEM, ct, ss, pk []byte) Status {
	if k == nil || k.impl == nil {
		return StatusError
	}
	d := k.details
	if len(ct) < d.LengthCiphertext || len(ss) < d.LengthSharedSecret || len(pk) != d.LengthPublicKey {
		return StatusError
	}
	return statusOf(k.impl.encaps(ct[:d.LengthCiphertext], ss[:d.LengthSharedSecret], pk))
}

// KEMDecaps writes the shared secret recovered from ct under sk into ss.
func KEMDecaps(k KEM, ss, ct, sk []byte) Status {
	if k == nil || k.impl == nil {
		return StatusError
	}
	d := k.details
	if len(ss) < d.LengthSharedSecret || len(ct) != d.LengthCiphertext || len(sk) != d.LengthSecretKey {
		return StatusError
	}
	return statusOf(k.impl.decaps(ss[:d.LengthSharedSecret], ct, sk))
}

// =====================
// Signatures
// =====================

// SigEnabled reports whether the identifier has a registered implementation.
func SigEnabled(id string) bool {
	_, ok := sigRegistry[id]
	return ok
}

// NewSig returns a new instance, or nil when the identifier is unknown.
func NewSig(id string) Sig {
	e, ok := sigRegistry[id]
	if !ok {
		return nil
	}
	return &sigInstance{details: e.details, impl: e.impl}
}

// FreeSig drops the instance's implementation.
func FreeSig(s Sig) {
	if s == nil {
		return
	}
	s.impl = nil
}

// DescribeSig returns the instance metadata.
func DescribeSig(s Sig) SigDetails {
	if s == nil {
		return SigDetails{}
	}
	return s.details
}

// SigKeypair writes a fresh keypair into pk and sk.
func SigKeypair(s Sig, pk, sk []byte) Status {
	if s == nil || s.impl == nil {
		return StatusError
	}
	d := s.details
	if len(pk) < d.LengthPublicKey || len(sk) < d.LengthSecretKey {
		return StatusError
	}
	return statusOf(s.impl.keypair(pk[:d.LengthPublicKey], sk[:d.LengthSecretKey]))
}

// SigSign writes a signature over msg into sig and stores its actual length
// in sigLen.
func SigSign(s Sig, sig []byte, sigLen *int, msg, sk []byte) Status {
	if s == nil || s.impl == nil || sigLen == nil {
		return StatusError
	}
	d := s.details
	if len(sig) < d.LengthSignature || len(sk) != d.LengthSecretKey {
		return StatusError
	}
	n, err := s.impl.sign(sig[:d.LengthSignature], msg, sk)
	if err != nil {
		return StatusError
	}
	*sigLen = n
	return StatusSuccess
}

// SigVerify checks sig over msg under pk.
func SigVerify(s Sig, msg, sig, pk []byte) Status {
	if s == nil || s.impl == nil {
		return StatusError
	}
	if len(pk) != s.details.LengthPublicKey {
		return StatusError
	}
	return statusOf(s.impl.verify(msg, sig, pk))
}

func statusOf(err error) Status {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}

// marshalInto copies the binary encoding of m into dst, which must be exactly
// as long as the encoding. The intermediate encoding is zeroed.
func marshalInto(dst []byte, m encoding.BinaryMarshaler) error {
	b, err := m.MarshalBinary()
	if err != nil {
		return err
	}
	defer zeroize(b)
	if len(b) != len(dst) {
		return errOutputSize
	}
	copy(dst, b)
	return nil
}

// copyExact copies src into dst, which must be exactly as long as src.
func copyExact(dst, src []byte) error {
	if len(src) != len(dst) {
		return errOutputSize
	}
	copy(dst, src)
	return nil
}

// zeroize is a local duplicate of oqs.ZeroizeBytes; the backend cannot import
// the public package.
func zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
