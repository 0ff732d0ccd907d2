package sig

import (
	"fmt"
	"strings"

	"github.com/hsiuhsiu/oqs-go/pkg/oqs"
	"github.com/hsiuhsiu/oqs-go/pkg/oqs/internal/backend"
)

// Algorithm identifies a signature scheme by its liboqs method name.
type Algorithm int

const (
	Dilithium2 Algorithm = iota
	Dilithium3
	Dilithium5
	MLDSA44
	MLDSA65
	MLDSA87
	Falcon512
	Falcon1024
	FalconPadded512
	FalconPadded1024
	SphincsSha2128fSimple
	SphincsSha2128sSimple
	SphincsSha2192fSimple
	SphincsSha2192sSimple
	SphincsSha2256fSimple
	SphincsSha2256sSimple
	SphincsShake128fSimple
	SphincsShake128sSimple
	SphincsShake192fSimple
	SphincsShake192sSimple
	SphincsShake256fSimple
	SphincsShake256sSimple
	Mayo1
	Mayo2
	Mayo3
	Mayo5

	numAlgorithms
)

// DefaultAlgorithm is used by MustDefault and by the CLI when no algorithm is
// configured.
const DefaultAlgorithm = MLDSA65

var identifiers = [numAlgorithms]string{
	Dilithium2:             "Dilithium2",
	Dilithium3:             "Dilithium3",
	Dilithium5:             "Dilithium5",
	MLDSA44:                "ML-DSA-44",
	MLDSA65:                "ML-DSA-65",
	MLDSA87:                "ML-DSA-87",
	Falcon512:              "Falcon-512",
	Falcon1024:             "Falcon-1024",
	FalconPadded512:        "Falcon-padded-512",
	FalconPadded1024:       "Falcon-padded-1024",
	SphincsSha2128fSimple:  "SPHINCS+-SHA2-128f-simple",
	SphincsSha2128sSimple:  "SPHINCS+-SHA2-128s-simple",
	SphincsSha2192fSimple:  "SPHINCS+-SHA2-192f-simple",
	SphincsSha2192sSimple:  "SPHINCS+-SHA2-192s-simple",
	SphincsSha2256fSimple:  "SPHINCS+-SHA2-256f-simple",
	SphincsSha2256sSimple:  "SPHINCS+-SHA2-256s-simple",
	SphincsShake128fSimple: "SPHINCS+-SHAKE-128f-simple",
	SphincsShake128sSimple: "SPHINCS+-SHAKE-128s-simple",
	SphincsShake192fSimple: "SPHINCS+-SHAKE-192f-simple",
	SphincsShake192sSimple: "SPHINCS+-SHAKE-192s-simple",
	SphincsShake256fSimple: "SPHINCS+-SHAKE-256f-simple",
	SphincsShake256sSimple: "SPHINCS+-SHAKE-256s-simple",
	Mayo1:                  "MAYO-1",
	Mayo2:                  "MAYO-2",
	Mayo3:                  "MAYO-3",
	Mayo5:                  "MAYO-5",
}

func (a Algorithm) valid() bool {
	return a >= 0 && a < numAlgorithms
}

// Identifier returns the liboqs method name, or "" for an unknown value.
func (a Algorithm) Identifier() string {
	if !a.valid() {
		return ""
	}
	return identifiers[a]
}

func (a Algorithm) String() string {
	if !a.valid() {
		return fmt.Sprintf("sig.Algorithm(%d)", int(a))
	}
	return identifiers[a]
}

// IsEnabled reports whether the linked library provides the scheme.
func (a Algorithm) IsEnabled() bool {
	if !a.valid() {
		return false
	}
	oqs.Init()
	return backend.SigEnabled(identifiers[a])
}

// Algorithms returns every known scheme in declaration order.
func Algorithms() []Algorithm {
	out := make([]Algorithm, numAlgorithms)
	for i := range out {
		out[i] = Algorithm(i)
	}
	return out
}

// ParseAlgorithm looks up a scheme by its liboqs method name, ignoring case.
func ParseAlgorithm(id string) (Algorithm, error) {
	for i, name := range identifiers {
		if strings.EqualFold(name, id) {
			return Algorithm(i), nil
		}
	}
	return 0, fmt.Errorf("sig: parse %q: %w", id, oqs.ErrUnknownAlgorithm)
}

func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.valid() {
		return nil, fmt.Errorf("sig: marshal %s: %w", a, oqs.ErrUnknownAlgorithm)
	}
	return []byte(identifiers[a]), nil
}

func (a *Algorithm) UnmarshalText(text []byte) error {
	v, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
