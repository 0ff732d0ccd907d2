package kem_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/oqs-go/pkg/oqs"
	"github.com/hsiuhsiu/oqs-go/pkg/oqs/kem"
	"github.com/hsiuhsiu/oqs-go/pkg/oqs/logging"
)

func isSlow(alg kem.Algorithm) bool {
	return strings.HasPrefix(alg.Identifier(), "Classic-McEliece")
}

func newKEM(t *testing.T, alg kem.Algorithm) *kem.KEM {
	t.Helper()
	if !alg.IsEnabled() {
		t.Skipf("%s is disabled", alg)
	}
	k, err := kem.New(alg)
	require.NoError(t, err)
	t.Cleanup(k.Free)
	return k
}

func TestRoundTripAllEnabled(t *testing.T) {
	for _, alg := range kem.Algorithms() {
		t.Run(alg.Identifier(), func(t *testing.T) {
			if testing.Short() && isSlow(alg) {
				t.Skip("slow keygen")
			}
			k := newKEM(t, alg)

			pk, sk, err := k.Keypair()
			require.NoError(t, err)
			require.Equal(t, k.LengthPublicKey(), pk.Len())
			require.Equal(t, k.LengthSecretKey(), sk.Len())

			ct, ss, err := k.Encapsulate(pk)
			require.NoError(t, err)
			require.Equal(t, k.LengthCiphertext(), ct.Len())
			require.Equal(t, k.LengthSharedSecret(), ss.Len())

			ss2, err := k.Decapsulate(sk, ct)
			require.NoError(t, err)
			require.True(t, ss.Equal(ss2), "shared secrets differ")
		})
	}
}

func TestMetadata(t *testing.T) {
	k := newKEM(t, kem.MLKEM768)
	require.Equal(t, kem.MLKEM768, k.Algorithm())
	require.Equal(t, "ML-KEM-768", k.Name())
	require.NotEmpty(t, k.Version())
	require.NotEqual(t, k.Name(), k.Version())
	require.Equal(t, uint8(3), k.ClaimedNISTLevel())
	require.True(t, k.IsINDCCA())
	require.Equal(t, 1184, k.LengthPublicKey())
	require.Equal(t, 2400, k.LengthSecretKey())
	require.Equal(t, 1088, k.LengthCiphertext())
	require.Equal(t, 32, k.LengthSharedSecret())
}

func TestFromBytesLengths(t *testing.T) {
	k := newKEM(t, kem.MLKEM512)

	tests := []struct {
		name string
		n    int
		gate func([]byte) bool
	}{
		{"public key", k.LengthPublicKey(), func(b []byte) bool { _, ok := k.PublicKeyFromBytes(b); return ok }},
		{"secret key", k.LengthSecretKey(), func(b []byte) bool { _, ok := k.SecretKeyFromBytes(b); return ok }},
		{"ciphertext", k.LengthCiphertext(), func(b []byte) bool { _, ok := k.CiphertextFromBytes(b); return ok }},
		{"shared secret", k.LengthSharedSecret(), func(b []byte) bool { _, ok := k.SharedSecretFromBytes(b); return ok }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, tt.gate(make([]byte, tt.n)))
			require.False(t, tt.gate(make([]byte, tt.n-1)))
			require.False(t, tt.gate(make([]byte, tt.n+1)))
			require.False(t, tt.gate(nil))
		})
	}
}

func TestBorrowedInputs(t *testing.T) {
	k := newKEM(t, kem.MLKEM768)
	pk, sk, err := k.Keypair()
	require.NoError(t, err)

	pkRef, ok := k.PublicKeyFromBytes(pk.Bytes())
	require.True(t, ok)
	ct, ss, err := k.Encapsulate(pkRef)
	require.NoError(t, err)

	skRef, ok := k.SecretKeyFromBytes(sk.Bytes())
	require.True(t, ok)
	ctRef, ok := k.CiphertextFromBytes(ct.Bytes())
	require.True(t, ok)
	ss2, err := k.Decapsulate(skRef, ctRef)
	require.NoError(t, err)
	require.True(t, ss2.Equal(ss))
}

func TestInvalidLengthRejected(t *testing.T) {
	k := newKEM(t, kem.MLKEM768)
	other := newKEM(t, kem.MLKEM512)

	pk512, sk512, err := other.Keypair()
	require.NoError(t, err)
	ct512, _, err := other.Encapsulate(pk512)
	require.NoError(t, err)

	_, _, err = k.Encapsulate(pk512.Borrow().ToOwned())
	require.ErrorIs(t, err, oqs.ErrInvalidLength)

	_, sk, err := k.Keypair()
	require.NoError(t, err)
	_, err = k.Decapsulate(sk, ct512)
	require.ErrorIs(t, err, oqs.ErrInvalidLength)
	_, err = k.Decapsulate(sk512, ct512)
	require.ErrorIs(t, err, oqs.ErrInvalidLength)

	_, _, err = k.Encapsulate(nil)
	require.ErrorIs(t, err, oqs.ErrInvalidLength)
}

func TestTamperedCiphertext(t *testing.T) {
	k := newKEM(t, kem.MLKEM768)
	pk, sk, err := k.Keypair()
	require.NoError(t, err)
	ct, ss, err := k.Encapsulate(pk)
	require.NoError(t, err)

	raw := ct.Bytes()
	raw[0] ^= 1
	bad, ok := k.CiphertextFromBytes(raw)
	require.True(t, ok)
	ss2, err := k.Decapsulate(sk, bad)
	require.NoError(t, err, "implicit rejection returns a secret, not an error")
	require.False(t, ss.Equal(ss2))
}

func TestDisabledAlgorithm(t *testing.T) {
	_, err := kem.New(kem.Algorithm(-1))
	require.ErrorIs(t, err, oqs.ErrAlgorithmDisabled)
	_, err = kem.New(kem.Algorithm(10_000))
	require.ErrorIs(t, err, oqs.ErrAlgorithmDisabled)

	for _, alg := range kem.Algorithms() {
		if alg.IsEnabled() {
			continue
		}
		_, err := kem.New(alg)
		require.ErrorIs(t, err, oqs.ErrAlgorithmDisabled, alg.Identifier())
	}
}

func TestUseAfterFree(t *testing.T) {
	k, err := kem.New(kem.MLKEM512)
	if errors.Is(err, oqs.ErrAlgorithmDisabled) {
		t.Skip("ML-KEM-512 disabled")
	}
	require.NoError(t, err)
	pk, sk, err := k.Keypair()
	require.NoError(t, err)
	ct, _, err := k.Encapsulate(pk)
	require.NoError(t, err)

	k.Free()
	k.Free()
	require.NoError(t, k.Close())

	_, _, err = k.Keypair()
	require.ErrorIs(t, err, oqs.ErrHandleClosed)
	_, _, err = k.Encapsulate(pk)
	require.ErrorIs(t, err, oqs.ErrHandleClosed)
	_, err = k.Decapsulate(sk, ct)
	require.ErrorIs(t, err, oqs.ErrHandleClosed)

	// Metadata stays readable.
	require.Equal(t, "ML-KEM-512", k.Name())
}

func TestConcurrentUse(t *testing.T) {
	k := newKEM(t, kem.MLKEM768)
	pk, sk, err := k.Keypair()
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ct, ss, err := k.Encapsulate(pk)
			if err != nil {
				errs <- err
				return
			}
			ss2, err := k.Decapsulate(sk, ct)
			if err != nil {
				errs <- err
				return
			}
			if !ss.Equal(ss2) {
				errs <- errors.New("shared secrets differ")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestFreeZeroesSecrets(t *testing.T) {
	k := newKEM(t, kem.MLKEM512)
	_, sk, err := k.Keypair()
	require.NoError(t, err)
	view := sk.Borrow().Bytes()
	sk.Free()
	for _, b := range view {
		require.Zero(t, b)
	}
	require.Equal(t, 0, sk.Len())
}

func TestMustDefault(t *testing.T) {
	if !kem.DefaultAlgorithm.IsEnabled() {
		require.Panics(t, func() { kem.MustDefault() })
		return
	}
	k := kem.MustDefault()
	defer k.Free()
	require.Equal(t, kem.DefaultAlgorithm, k.Algorithm())
}

func TestBufferStringRedacted(t *testing.T) {
	k := newKEM(t, kem.MLKEM512)
	pk, sk, err := k.Keypair()
	require.NoError(t, err)
	require.Equal(t, "kem.PublicKey(len=800)", pk.String())
	require.Contains(t, sk.String(), "[redacted]")
}

func TestKeypairLogsLengthsOnly(t *testing.T) {
	var out bytes.Buffer
	oqs.SetLogger(logging.New(slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	t.Cleanup(func() { oqs.SetLogger(nil) })

	k := newKEM(t, kem.DefaultAlgorithm)
	_, sk, err := k.Keypair()
	require.NoError(t, err)
	defer sk.Free()

	logs := out.String()
	require.Contains(t, logs, "kem keypair generated")
	require.Contains(t, logs, fmt.Sprintf("kem.PublicKey(len=%d)", k.LengthPublicKey()))
	require.Contains(t, logs, fmt.Sprintf("kem.SecretKey([redacted], len=%d)", k.LengthSecretKey()))
}
