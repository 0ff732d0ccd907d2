package keyfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/hsiuhsiu/oqs-go/pkg/oqs"
)

// Family names the algorithm family an envelope belongs to.
type Family string

const (
	FamilyKEM Family = "kem"
	FamilySig Family = "sig"
)

// Kind names the buffer kind held in an envelope.
type Kind string

const (
	KindPublicKey    Kind = "public-key"
	KindSecretKey    Kind = "secret-key"
	KindCiphertext   Kind = "ciphertext"
	KindSharedSecret Kind = "shared-secret"
	KindSignature    Kind = "signature"
)

// Secret reports whether the kind holds key material.
func (k Kind) Secret() bool {
	return k == KindSecretKey || k == KindSharedSecret
}

var kinds = map[Family][]Kind{
	FamilyKEM: {KindPublicKey, KindSecretKey, KindCiphertext, KindSharedSecret},
	FamilySig: {KindPublicKey, KindSecretKey, KindSignature},
}

// ErrMalformed is returned for envelopes that do not decode or that name an
// unknown family or kind.
var ErrMalformed = errors.New("keyfile: malformed envelope")

// ErrUnexpected is returned by Expect when an envelope holds a different
// family or kind than the caller asked for.
var ErrUnexpected = errors.New("keyfile: unexpected contents")

// File is the envelope. Integer keys keep the encoding compact.
type File struct {
	Family    Family `cbor:"1,keyasint"`
	Algorithm string `cbor:"2,keyasint"`
	Kind      Kind   `cbor:"3,keyasint"`
	Data      []byte `cbor:"4,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		MaxMapPairs: 16,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Validate checks that the family and kind are known and that an algorithm
// is named.
func (f File) Validate() error {
	allowed, ok := kinds[f.Family]
	if !ok {
		return fmt.Errorf("%w: unknown family %q", ErrMalformed, f.Family)
	}
	if f.Algorithm == "" {
		return fmt.Errorf("%w: missing algorithm", ErrMalformed)
	}
	for _, k := range allowed {
		if k == f.Kind {
			return nil
		}
	}
	return fmt.Errorf("%w: kind %q is not valid for family %q", ErrMalformed, f.Kind, f.Family)
}

// Expect checks that the envelope holds the given family and kind.
func (f File) Expect(family Family, kind Kind) error {
	if f.Family != family || f.Kind != kind {
		return fmt.Errorf("%w: have %s %s, want %s %s", ErrUnexpected, f.Family, f.Kind, family, kind)
	}
	return nil
}

// Encode validates f and returns its canonical CBOR encoding.
func Encode(f File) ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return encMode.Marshal(f)
}

// Decode parses and validates an envelope.
func Decode(b []byte) (File, error) {
	var f File
	if err := decMode.Unmarshal(b, &f); err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := f.Validate(); err != nil {
		oqs.ZeroizeBytes(f.Data)
		return File{}, err
	}
	return f, nil
}

// WriteFile encodes f and writes it to path. Secret kinds are written with
// mode 0600, everything else with 0644.
func WriteFile(path string, f File) error {
	b, err := Encode(f)
	if err != nil {
		return err
	}
	defer oqs.ZeroizeBytes(b)

	perm := os.FileMode(0o644)
	if f.Kind.Secret() {
		perm = 0o600
	}
	return os.WriteFile(path, b, perm)
}

// ReadFile reads and decodes the envelope at path.
func ReadFile(path string) (File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	defer oqs.ZeroizeBytes(b)
	f, err := Decode(b)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
