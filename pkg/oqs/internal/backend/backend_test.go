package backend_test

import (
	"bytes"
	"testing"

	"github.com/hsiuhsiu/oqs-go/pkg/oqs/internal/backend"
)

// Both registries ship ML-KEM-768 and ML-DSA-65.
const (
	testKEM = "ML-KEM-768"
	testSig = "ML-DSA-65"
)

func newTestKEM(t *testing.T) backend.KEM {
	t.Helper()
	backend.Init()
	if !backend.KEMEnabled(testKEM) {
		t.Skipf("%s disabled in %s registry", testKEM, backend.Name())
	}
	k := backend.NewKEM(testKEM)
	if k == nil {
		t.Fatalf("NewKEM(%q) = nil while KEMEnabled reports true", testKEM)
	}
	t.Cleanup(func() { backend.FreeKEM(k) })
	return k
}

func newTestSig(t *testing.T) backend.Sig {
	t.Helper()
	backend.Init()
	if !backend.SigEnabled(testSig) {
		t.Skipf("%s disabled in %s registry", testSig, backend.Name())
	}
	s := backend.NewSig(testSig)
	if s == nil {
		t.Fatalf("NewSig(%q) = nil while SigEnabled reports true", testSig)
	}
	t.Cleanup(func() { backend.FreeSig(s) })
	return s
}

func TestUnknownIdentifier(t *testing.T) {
	backend.Init()
	if backend.KEMEnabled("not-a-kem") {
		t.Error("unknown KEM reported enabled")
	}
	if k := backend.NewKEM("not-a-kem"); k != nil {
		t.Error("NewKEM returned an instance for an unknown identifier")
	}
	if backend.SigEnabled("not-a-sig") {
		t.Error("unknown signature scheme reported enabled")
	}
	if s := backend.NewSig("not-a-sig"); s != nil {
		t.Error("NewSig returned an instance for an unknown identifier")
	}
}

func TestKEMRoundTrip(t *testing.T) {
	k := newTestKEM(t)
	d := backend.DescribeKEM(k)
	if d.Name != testKEM {
		t.Fatalf("Name = %q, want %q", d.Name, testKEM)
	}
	if d.ClaimedNISTLevel != 3 || !d.IndCCA {
		t.Errorf("unexpected details %+v", d)
	}

	pk := make([]byte, d.LengthPublicKey)
	sk := make([]byte, d.LengthSecretKey)
	if st := backend.KEMKeypair(k, pk, sk); st != backend.StatusSuccess {
		t.Fatalf("KEMKeypair: %v", st)
	}
	ct := make([]byte, d.LengthCiphertext)
	ss := make([]byte, d.LengthSharedSecret)
	if st := backend.KEMEncaps(k, ct, ss, pk); st != backend.StatusSuccess {
		t.Fatalf("KEMEncaps: %v", st)
	}
	got := make([]byte, d.LengthSharedSecret)
	if st := backend.KEMDecaps(k, got, ct, sk); st != backend.StatusSuccess {
		t.Fatalf("KEMDecaps: %v", st)
	}
	if !bytes.Equal(ss, got) {
		t.Error("decapsulated secret differs from encapsulated secret")
	}
}

func TestKEMRejectsShortBuffers(t *testing.T) {
	k := newTestKEM(t)
	d := backend.DescribeKEM(k)

	pk := make([]byte, d.LengthPublicKey)
	sk := make([]byte, d.LengthSecretKey)
	if st := backend.KEMKeypair(k, pk[:len(pk)-1], sk); st != backend.StatusError {
		t.Errorf("KEMKeypair with short pk = %v, want %v", st, backend.StatusError)
	}
	if st := backend.KEMKeypair(k, pk, sk); st != backend.StatusSuccess {
		t.Fatalf("KEMKeypair: %v", st)
	}
	ct := make([]byte, d.LengthCiphertext)
	ss := make([]byte, d.LengthSharedSecret)
	if st := backend.KEMEncaps(k, ct, ss, pk[:1]); st != backend.StatusError {
		t.Errorf("KEMEncaps with short pk = %v, want %v", st, backend.StatusError)
	}
	if st := backend.KEMDecaps(k, ss, ct[:len(ct)-1], sk); st != backend.StatusError {
		t.Errorf("KEMDecaps with short ct = %v, want %v", st, backend.StatusError)
	}
	if st := backend.KEMKeypair(nil, pk, sk); st != backend.StatusError {
		t.Errorf("KEMKeypair(nil) = %v, want %v", st, backend.StatusError)
	}
}

func TestSigRoundTrip(t *testing.T) {
	s := newTestSig(t)
	d := backend.DescribeSig(s)
	if d.Name != testSig {
		t.Fatalf("Name = %q, want %q", d.Name, testSig)
	}
	if !d.EUFCMA {
		t.Errorf("unexpected details %+v", d)
	}

	pk := make([]byte, d.LengthPublicKey)
	sk := make([]byte, d.LengthSecretKey)
	if st := backend.SigKeypair(s, pk, sk); st != backend.StatusSuccess {
		t.Fatalf("SigKeypair: %v", st)
	}

	msg := []byte("message")
	sig := make([]byte, d.LengthSignature)
	var n int
	if st := backend.SigSign(s, sig, &n, msg, sk); st != backend.StatusSuccess {
		t.Fatalf("SigSign: %v", st)
	}
	if n <= 0 || n > d.LengthSignature {
		t.Fatalf("signature length %d outside (0, %d]", n, d.LengthSignature)
	}
	if st := backend.SigVerify(s, msg, sig[:n], pk); st != backend.StatusSuccess {
		t.Fatalf("SigVerify: %v", st)
	}
	if st := backend.SigVerify(s, []byte("other message"), sig[:n], pk); st == backend.StatusSuccess {
		t.Error("SigVerify accepted a signature over a different message")
	}
	if st := backend.SigSign(s, sig, nil, msg, sk); st != backend.StatusError {
		t.Errorf("SigSign with nil length = %v, want %v", st, backend.StatusError)
	}
}

func TestSigEmptyMessage(t *testing.T) {
	s := newTestSig(t)
	d := backend.DescribeSig(s)

	pk := make([]byte, d.LengthPublicKey)
	sk := make([]byte, d.LengthSecretKey)
	if st := backend.SigKeypair(s, pk, sk); st != backend.StatusSuccess {
		t.Fatalf("SigKeypair: %v", st)
	}
	sig := make([]byte, d.LengthSignature)
	var n int
	if st := backend.SigSign(s, sig, &n, nil, sk); st != backend.StatusSuccess {
		t.Fatalf("SigSign: %v", st)
	}
	if st := backend.SigVerify(s, nil, sig[:n], pk); st != backend.StatusSuccess {
		t.Fatalf("SigVerify: %v", st)
	}
}
