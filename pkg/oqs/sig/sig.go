package sig

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/hsiuhsiu/oqs-go/pkg/oqs"
	"github.com/hsiuhsiu/oqs-go/pkg/oqs/internal/backend"
	"github.com/hsiuhsiu/oqs-go/pkg/oqs/internal/buffer"
	"github.com/hsiuhsiu/oqs-go/pkg/oqs/logging"
)

// Sig is a handle to one native signature instance.
type Sig struct {
	alg     Algorithm
	details backend.SigDetails

	mu sync.RWMutex
	s  backend.Sig
}

// New creates a handle for alg. It returns oqs.ErrAlgorithmDisabled when the
// linked library does not provide the scheme.
func New(alg Algorithm) (*Sig, error) {
	oqs.Init()
	ctx := context.Background()
	if !alg.valid() {
		return nil, fmt.Errorf("sig: new %s: %w", alg, oqs.ErrAlgorithmDisabled)
	}
	s := backend.NewSig(alg.Identifier())
	if s == nil {
		oqs.Log().Debug(ctx, "sig algorithm disabled", "algorithm", alg.Identifier())
		return nil, fmt.Errorf("sig: new %s: %w", alg, oqs.ErrAlgorithmDisabled)
	}

	h := &Sig{alg: alg, details: backend.DescribeSig(s), s: s}
	runtime.SetFinalizer(h, (*Sig).Free)
	oqs.Log().Debug(ctx, "sig handle created", "algorithm", h.details.Name, "backend", backend.Name())
	return h, nil
}

// MustDefault creates a handle for DefaultAlgorithm and panics if it is
// disabled.
func MustDefault() *Sig {
	h, err := New(DefaultAlgorithm)
	if err != nil {
		panic(err)
	}
	return h
}

// Free releases the native instance. Repeated calls are no-ops.
func (h *Sig) Free() {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.s == nil {
		return
	}
	backend.FreeSig(h.s)
	h.s = nil
	runtime.SetFinalizer(h, nil)
	oqs.Log().Debug(context.Background(), "sig handle freed", "algorithm", h.details.Name)
}

// Close calls Free.
func (h *Sig) Close() error {
	h.Free()
	return nil
}

func (h *Sig) Algorithm() Algorithm { return h.alg }
func (h *Sig) Name() string { return h.details.Name }
func (h *Sig) Version() string { return h.details.Version }
func (h *Sig) ClaimedNISTLevel() uint8 { return h.details.ClaimedNISTLevel }
func (h *Sig) IsEUFCMA() bool { return h.details.EUFCMA }
func (h *Sig) IsSUFCMA() bool { return h.details.SUFCMA }
func (h *Sig) LengthPublicKey() int { return h.details.LengthPublicKey }
func (h *Sig) LengthSecretKey() int { return h.details.LengthSecretKey }

// LengthSignature is the maximum signature length. Sign may return shorter
// signatures for variable-length schemes such as Falcon.
func (h *Sig) LengthSignature() int { return h.details.LengthSignature }

// PublicKeyFromBytes borrows b as a public key if it has the declared length.
func (h *Sig) PublicKeyFromBytes(b []byte) (PublicKeyRef, bool) {
	return buffer.Exact[publicKeyKind](b, h.details.LengthPublicKey)
}

// SecretKeyFromBytes borrows b as a secret key if it has the declared length.
func (h *Sig) SecretKeyFromBytes(b []byte) (SecretKeyRef, bool) {
	return buffer.Exact[secretKeyKind](b, h.details.LengthSecretKey)
}

// SignatureFromBytes borrows b as a signature if it is no longer than the
// declared maximum.
func (h *Sig) SignatureFromBytes(b []byte) (SignatureRef, bool) {
	return buffer.AtMost[signatureKind](b, h.details.LengthSignature)
}

// Keypair generates a new keypair.
func (h *Sig) Keypair() (*PublicKey, *SecretKey, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.s == nil {
		return nil, nil, fmt.Errorf("sig: keypair: %w", oqs.ErrHandleClosed)
	}

	pk := make([]byte, h.details.LengthPublicKey)
	sk := make([]byte, h.details.LengthSecretKey)
	if st := backend.SigKeypair(h.s, pk, sk); st != backend.StatusSuccess {
		buffer.Zero(sk)
		return nil, nil, h.nativeFailure("keypair", st)
	}
	pub, sec := buffer.Wrap[publicKeyKind](pk), buffer.Wrap[secretKeyKind](sk)
	oqs.Log().Debug(context.Background(), "sig keypair generated", "algorithm", h.details.Name,
		logging.Size("public_key", pub), logging.Size("secret_key", sec))
	return pub, sec, nil
}

// Sign signs msg with sk. The message may be empty.
func (h *Sig) Sign(msg []byte, sk SecretKeyView) (*Signature, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.s == nil {
		return nil, fmt.Errorf("sig: sign: %w", oqs.ErrHandleClosed)
	}
	if sk == nil {
		return nil, fmt.Errorf("sig: sign: nil secret key: %w", oqs.ErrInvalidLength)
	}
	skb := sk.Borrow().Bytes()
	if len(skb) != h.details.LengthSecretKey {
		return nil, fmt.Errorf("sig: sign: secret key is %d bytes, want %d: %w",
			len(skb), h.details.LengthSecretKey, oqs.ErrInvalidLength)
	}

	buf := make([]byte, h.details.LengthSignature)
	var n int
	st := backend.SigSign(h.s, buf, &n, msg, skb)
	runtime.KeepAlive(sk)
	if st != backend.StatusSuccess {
		buffer.Zero(buf)
		return nil, h.nativeFailure("sign", st, logging.Size("secret_key", sk.Borrow()))
	}
	if n < 0 || n > len(buf) {
		buffer.Zero(buf)
		oqs.Log().Error(context.Background(), "sig native length out of range",
			"algorithm", h.details.Name, "length", n, "max", len(buf))
		return nil, fmt.Errorf("sig: sign: native signer reported %d bytes, max %d: %w",
			n, len(buf), oqs.ErrNative)
	}
	buffer.Zero(buf[n:])
	return buffer.Wrap[signatureKind](buf[:n:n]), nil
}

// Verify checks signature over msg under pk. It returns nil only for a valid
// signature; an invalid one is reported as oqs.ErrNative. A signature longer
// than LengthSignature is rejected with oqs.ErrInvalidLength before the
// native verifier runs, as is a public key of the wrong length.
func (h *Sig) Verify(msg []byte, signature SignatureView, pk PublicKeyView) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.s == nil {
		return fmt.Errorf("sig: verify: %w", oqs.ErrHandleClosed)
	}
	if signature == nil || pk == nil {
		return fmt.Errorf("sig: verify: nil input: %w", oqs.ErrInvalidLength)
	}
	pkb := pk.Borrow().Bytes()
	if len(pkb) != h.details.LengthPublicKey {
		return fmt.Errorf("sig: verify: public key is %d bytes, want %d: %w",
			len(pkb), h.details.LengthPublicKey, oqs.ErrInvalidLength)
	}
	sigb := signature.Borrow().Bytes()
	if len(sigb) > h.details.LengthSignature {
		return fmt.Errorf("sig: verify: signature is %d bytes, max %d: %w",
			len(sigb), h.details.LengthSignature, oqs.ErrInvalidLength)
	}

	st := backend.SigVerify(h.s, msg, sigb, pkb)
	runtime.KeepAlive(signature)
	runtime.KeepAlive(pk)
	if st != backend.StatusSuccess {
		// Rejected signatures are routine; keep them out of warn-level logs.
		oqs.Log().Debug(context.Background(), "sig verification failed",
			"algorithm", h.details.Name, "status", st.String(), logging.Size("signature", signature.Borrow()))
		return fmt.Errorf("sig: verify: %w", oqs.FromStatus(st))
	}
	return nil
}

func (h *Sig) nativeFailure(op string, st backend.Status, inputs ...any) error {
	args := append([]any{"algorithm", h.details.Name, "op", op, "status", st.String()}, inputs...)
	oqs.Log().Warn(context.Background(), "sig native failure", args...)
	return fmt.Errorf("sig: %s: %w", op, oqs.FromStatus(st))
}

func (h *Sig) String() string {
	return fmt.Sprintf("sig.Sig(%s)", h.details.Name)
}
