package keyfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/oqs-go/pkg/oqs/kem"
	"github.com/hsiuhsiu/oqs-go/pkg/oqs/keyfile"
	"github.com/hsiuhsiu/oqs-go/pkg/oqs/sig"
)

func TestEncodeDecode(t *testing.T) {
	in := keyfile.File{
		Family:    keyfile.FamilySig,
		Algorithm: "ML-DSA-65",
		Kind:      keyfile.KindSignature,
		Data:      []byte{1, 2, 3},
	}
	b, err := keyfile.Encode(in)
	require.NoError(t, err)

	out, err := keyfile.Decode(b)
	require.NoError(t, err)
	require.Equal(t, in, out)

	again, err := keyfile.Encode(out)
	require.NoError(t, err)
	require.Equal(t, b, again, "canonical encoding is stable")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		f    keyfile.File
		ok   bool
	}{
		{"kem ciphertext", keyfile.File{Family: keyfile.FamilyKEM, Algorithm: "ML-KEM-512", Kind: keyfile.KindCiphertext}, true},
		{"sig ciphertext", keyfile.File{Family: keyfile.FamilySig, Algorithm: "ML-DSA-44", Kind: keyfile.KindCiphertext}, false},
		{"kem signature", keyfile.File{Family: keyfile.FamilyKEM, Algorithm: "ML-KEM-512", Kind: keyfile.KindSignature}, false},
		{"unknown family", keyfile.File{Family: "dh", Algorithm: "X25519", Kind: keyfile.KindPublicKey}, false},
		{"missing algorithm", keyfile.File{Family: keyfile.FamilyKEM, Kind: keyfile.KindPublicKey}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.f.Validate()
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, keyfile.ErrMalformed)
			_, err = keyfile.Encode(tt.f)
			require.ErrorIs(t, err, keyfile.ErrMalformed)
		})
	}
}

func TestDecodeGarbage(t *testing.T) {
	_, err := keyfile.Decode([]byte{0xff, 0x00, 0x13})
	require.ErrorIs(t, err, keyfile.ErrMalformed)
	_, err = keyfile.Decode(nil)
	require.ErrorIs(t, err, keyfile.ErrMalformed)
}

func TestExpect(t *testing.T) {
	f := keyfile.File{Family: keyfile.FamilyKEM, Algorithm: "ML-KEM-768", Kind: keyfile.KindPublicKey}
	require.NoError(t, f.Expect(keyfile.FamilyKEM, keyfile.KindPublicKey))
	require.ErrorIs(t, f.Expect(keyfile.FamilyKEM, keyfile.KindSecretKey), keyfile.ErrUnexpected)
	require.ErrorIs(t, f.Expect(keyfile.FamilySig, keyfile.KindPublicKey), keyfile.ErrUnexpected)
}

func TestFilePermissions(t *testing.T) {
	dir := t.TempDir()
	secret := filepath.Join(dir, "k.sk")
	public := filepath.Join(dir, "k.pk")

	require.NoError(t, keyfile.WriteFile(secret, keyfile.File{
		Family: keyfile.FamilyKEM, Algorithm: "ML-KEM-768", Kind: keyfile.KindSecretKey, Data: []byte{9},
	}))
	require.NoError(t, keyfile.WriteFile(public, keyfile.File{
		Family: keyfile.FamilyKEM, Algorithm: "ML-KEM-768", Kind: keyfile.KindPublicKey, Data: []byte{8},
	}))

	st, err := os.Stat(secret)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), st.Mode().Perm())

	f, err := keyfile.ReadFile(secret)
	require.NoError(t, err)
	require.Equal(t, []byte{9}, f.Data)

	_, err = keyfile.ReadFile(filepath.Join(dir, "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestKEMKeyRoundTrip(t *testing.T) {
	if !kem.MLKEM768.IsEnabled() {
		t.Skip("ML-KEM-768 disabled")
	}
	k, err := kem.New(kem.MLKEM768)
	require.NoError(t, err)
	defer k.Free()

	pk, sk, err := k.Keypair()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sk")
	require.NoError(t, keyfile.WriteFile(path, keyfile.File{
		Family: keyfile.FamilyKEM, Algorithm: k.Name(), Kind: keyfile.KindSecretKey, Data: sk.Bytes(),
	}))

	f, err := keyfile.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Expect(keyfile.FamilyKEM, keyfile.KindSecretKey))
	alg, err := kem.ParseAlgorithm(f.Algorithm)
	require.NoError(t, err)
	require.Equal(t, kem.MLKEM768, alg)

	loaded, ok := k.SecretKeyFromBytes(f.Data)
	require.True(t, ok)
	ct, ss, err := k.Encapsulate(pk)
	require.NoError(t, err)
	ss2, err := k.Decapsulate(loaded, ct)
	require.NoError(t, err)
	require.True(t, ss.Equal(ss2))
}

func TestSigKeyRoundTrip(t *testing.T) {
	if !sig.MLDSA44.IsEnabled() {
		t.Skip("ML-DSA-44 disabled")
	}
	s, err := sig.New(sig.MLDSA44)
	require.NoError(t, err)
	defer s.Free()

	pk, sk, err := s.Keypair()
	require.NoError(t, err)
	b, err := keyfile.Encode(keyfile.File{Family: keyfile.FamilySig, Algorithm: s.Name(), Kind: keyfile.KindPublicKey, Data: pk.Bytes()})
	require.NoError(t, err)

	f, err := keyfile.Decode(b)
	require.NoError(t, err)
	loaded, ok := s.PublicKeyFromBytes(f.Data)
	require.True(t, ok)

	msg := []byte("persisted")
	signature, err := s.Sign(msg, sk)
	require.NoError(t, err)
	require.NoError(t, s.Verify(msg, signature, loaded))
}
