package kem

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

// KEM is a handle to one native KEM instance.
type KEM struct {
	alg     Algorithm
	details backend.KEMDetails

	mu sync.RWMutex
	k  backend.KEM
}

// New creates a handle for alg. It returns oqs.ErrAlgorithmDisabled when the
// linked library does not provide the algorithm.
func New(alg Algorithm) (*KEM, error) {
	oqs.Init()
	ctx := context.Background()
	if !alg.valid() {
		return nil, fmt.Errorf("kem: new %s: %w", alg, oqs.ErrAlgorithmDisabled)
	}
	k := backend.NewKEM(alg.Identifier())
	if k == nil {
		oqs.Log().Debug(ctx, "kem algorithm disabled", "algorithm", alg.Identifier())
		return nil, fmt.Errorf("kem: new %s: %w", alg, oqs.ErrAlgorithmDisabled)
	}

	h := &KEM{alg: alg, details: backend.DescribeKEM(k), k: k}
	runtime.SetFinalizer(h, (*KEM).Free)
	oqs.Log().Debug(ctx, "kem handle created", "algorithm", h.details.Name, "backend", backend.Name())
	return h, nil
}

// MustDefault creates a handle for DefaultAlgorithm and panics if it is
// disabled.
func MustDefault() *KEM {
	h, err := New(DefaultAlgorithm)
	if err != nil {
		panic(err)
	}
	return h
}

// Free releases the native instance. It is safe to call more than once and
// waits for operations already running on other goroutines.
func (h *KEM) Free() {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.k == nil {
		return
	}
	backend.FreeKEM(h.k)
	h.k = nil
	runtime.SetFinalizer(h, nil)
	oqs.Log().Debug(context.Background(), "kem handle freed", "algorithm", h.details.Name)
}

// Close calls Free. It lets a handle be used as an io.Closer.
func (h *KEM) Close() error {
	h.Free()
	return nil
}

// Algorithm returns the algorithm the handle was created for.
func (h *KEM) Algorithm() Algorithm { return h.alg }

// Name returns the method name reported by the native instance.
func (h *KEM) Name() string { return h.details.Name }

// Version returns the implementation version reported by the native
// instance.
func (h *KEM) Version() string { return h.details.Version }

// ClaimedNISTLevel returns the NIST security level, 1 through 5.
func (h *KEM) ClaimedNISTLevel() uint8 { return h.details.ClaimedNISTLevel }

// IsINDCCA reports whether the algorithm claims IND-CCA security.
func (h *KEM) IsINDCCA() bool { return h.details.IndCCA }

func (h *KEM) LengthPublicKey() int { return h.details.LengthPublicKey }
func (h *KEM) LengthSecretKey() int { return h.details.LengthSecretKey }
func (h *KEM) LengthCiphertext() int { return h.details.LengthCiphertext }
func (h *KEM) LengthSharedSecret() int { return h.details.LengthSharedSecret }

// PublicKeyFromBytes borrows b as a public key if it has the declared length.
func (h *KEM) PublicKeyFromBytes(b []byte) (PublicKeyRef, bool) {
	return buffer.Exact[publicKeyKind](b, h.details.LengthPublicKey)
}

// SecretKeyFromBytes borrows b as a secret key if it has the declared length.
func (h *KEM) SecretKeyFromBytes(b []byte) (SecretKeyRef, bool) {
	return buffer.Exact[secretKeyKind](b, h.details.LengthSecretKey)
}

// CiphertextFromBytes borrows b as a ciphertext if it has the declared length.
func (h *KEM) CiphertextFromBytes(b []byte) (CiphertextRef, bool) {
	return buffer.Exact[ciphertextKind](b, h.details.LengthCiphertext)
}

// SharedSecretFromBytes borrows b as a shared secret if it has the declared
// length.
func (h *KEM) SharedSecretFromBytes(b []byte) (SharedSecretRef, bool) {
	return buffer.Exact[sharedSecretKind](b, h.details.LengthSharedSecret)
}

// Keypair generates a new keypair.
func (h *KEM) Keypair() (*PublicKey, *SecretKey, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.k == nil {
		return nil, nil, fmt.Errorf("kem: keypair: %w", oqs.ErrHandleClosed)
	}

	pk := make([]byte, h.details.LengthPublicKey)
	sk := make([]byte, h.details.LengthSecretKey)
	if st := backend.KEMKeypair(h.k, pk, sk); st != backend.StatusSuccess {
		buffer.Zero(sk)
		return nil, nil, h.nativeFailure("keypair", st)
	}
	pub, sec := buffer.Wrap[publicKeyKind](pk), buffer.Wrap[secretKeyKind](sk)
	oqs.Log().Debug(context.Background(), "kem keypair generated", "algorithm", h.details.Name,
		logging.Size("public_key", pub), logging.Size("secret_key", sec))
	return pub, sec, nil
}

// Encapsulate derives a fresh shared secret for pk and the ciphertext that
// carries it.
func (h *KEM) Encapsulate(pk PublicKeyView) (*Ciphertext, *SharedSecret, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.k == nil {
		return nil, nil, fmt.Errorf("kem: encapsulate: %w", oqs.ErrHandleClosed)
	}
	if pk == nil {
		return nil, nil, fmt.Errorf("kem: encapsulate: nil public key: %w", oqs.ErrInvalidLength)
	}
	pkb := pk.Borrow().Bytes()
	if len(pkb) != h.details.LengthPublicKey {
		return nil, nil, fmt.Errorf("kem: encapsulate: public key is %d bytes, want %d: %w",
			len(pkb), h.details.LengthPublicKey, oqs.ErrInvalidLength)
	}

	ct := make([]byte, h.details.LengthCiphertext)
	ss := make([]byte, h.details.LengthSharedSecret)
	st := backend.KEMEncaps(h.k, ct, ss, pkb)
	runtime.KeepAlive(pk)
	if st != backend.StatusSuccess {
		buffer.Zero(ss)
		return nil, nil, h.nativeFailure("encapsulate", st, logging.Size("public_key", pk.Borrow()))
	}
	return buffer.Wrap[ciphertextKind](ct), buffer.Wrap[sharedSecretKind](ss), nil
}

// Decapsulate recovers the shared secret carried by ct. IND-CCA algorithms
// return a pseudorandom secret rather than an error for a tampered
// ciphertext.
func (h *KEM) Decapsulate(sk SecretKeyView, ct CiphertextView) (*SharedSecret, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.k == nil {
		return nil, fmt.Errorf("kem: decapsulate: %w", oqs.ErrHandleClosed)
	}
	if sk == nil || ct == nil {
		return nil, fmt.Errorf("kem: decapsulate: nil input: %w", oqs.ErrInvalidLength)
	}
	skb := sk.Borrow().Bytes()
	if len(skb) != h.details.LengthSecretKey {
		return nil, fmt.Errorf("kem: decapsulate: secret key is %d bytes, want %d: %w",
			len(skb), h.details.LengthSecretKey, oqs.ErrInvalidLength)
	}
	ctb := ct.Borrow().Bytes()
	if len(ctb) != h.details.LengthCiphertext {
		return nil, fmt.Errorf("kem: decapsulate: ciphertext is %d bytes, want %d: %w",
			len(ctb), h.details.LengthCiphertext, oqs.ErrInvalidLength)
	}

	ss := make([]byte, h.details.LengthSharedSecret)
	st := backend.KEMDecaps(h.k, ss, ctb, skb)
	runtime.KeepAlive(sk)
	runtime.KeepAlive(ct)
	if st != backend.StatusSuccess {
		buffer.Zero(ss)
		return nil, h.nativeFailure("decapsulate", st,
			logging.Size("secret_key", sk.Borrow()), logging.Size("ciphertext", ct.Borrow()))
	}
	return buffer.Wrap[sharedSecretKind](ss), nil
}

func (h *KEM) nativeFailure(op string, st backend.Status, inputs ...any) error {
	args := append([]any{"algorithm", h.details.Name, "op", op, "status", st.String()}, inputs...)
	oqs.Log().Warn(context.Background(), "kem native failure", args...)
	return fmt.Errorf("kem: %s: %w", op, oqs.FromStatus(st))
}

func (h *KEM) String() string {
	return fmt.Sprintf("kem.KEM(%s)", h.details.Name)
}
