package kem

import (
	"fmt"
	"strings"

	"github.com/hsiuhsiu/oqs-go/pkg/oqs"
	"github.com/hsiuhsiu/oqs-go/pkg/oqs/internal/backend"
)

// Algorithm identifies a KEM by its liboqs method name.
type Algorithm int

const (
	BIKEL1 Algorithm = iota
	BIKEL3
	BIKEL5
	ClassicMcEliece348864
	ClassicMcEliece348864f
	ClassicMcEliece460896
	ClassicMcEliece460896f
	ClassicMcEliece6688128
	ClassicMcEliece6688128f
	ClassicMcEliece6960119
	ClassicMcEliece6960119f
	ClassicMcEliece8192128
	ClassicMcEliece8192128f
	HQC128
	HQC192
	HQC256
	Kyber512
	Kyber768
	Kyber1024
	MLKEM512
	MLKEM768
	MLKEM1024
	NtruPrimeSntrup761
	FrodoKEM640AES
	FrodoKEM640SHAKE
	FrodoKEM976AES
	FrodoKEM976SHAKE
	FrodoKEM1344AES
	FrodoKEM1344SHAKE

	numAlgorithms
)

// DefaultAlgorithm is used by MustDefault and by the CLI when no algorithm is
// configured.
const DefaultAlgorithm = MLKEM768

var identifiers = [numAlgorithms]string{
	BIKEL1:                  "BIKE-L1",
	BIKEL3:                  "BIKE-L3",
	BIKEL5:                  "BIKE-L5",
	ClassicMcEliece348864:   "Classic-McEliece-348864",
	ClassicMcEliece348864f:  "Classic-McEliece-348864f",
	ClassicMcEliece460896:   "Classic-McEliece-460896",
	ClassicMcEliece460896f:  "Classic-McEliece-460896f",
	ClassicMcEliece6688128:  "Classic-McEliece-6688128",
	ClassicMcEliece6688128f: "Classic-McEliece-6688128f",
	ClassicMcEliece6960119:  "Classic-McEliece-6960119",
	ClassicMcEliece6960119f: "Classic-McEliece-6960119f",
	ClassicMcEliece8192128:  "Classic-McEliece-8192128",
	ClassicMcEliece8192128f: "Classic-McEliece-8192128f",
	HQC128:                  "HQC-128",
	HQC192:                  "HQC-192",
	HQC256:                  "HQC-256",
	Kyber512:                "Kyber512",
	Kyber768:                "Kyber768",
	Kyber1024:               "Kyber1024",
	MLKEM512:                "ML-KEM-512",
	MLKEM768:                "ML-KEM-768",
	MLKEM1024:               "ML-KEM-1024",
	NtruPrimeSntrup761:      "sntrup761",
	FrodoKEM640AES:          "FrodoKEM-640-AES",
	FrodoKEM640SHAKE:        "FrodoKEM-640-SHAKE",
	FrodoKEM976AES:          "FrodoKEM-976-AES",
	FrodoKEM976SHAKE:        "FrodoKEM-976-SHAKE",
	FrodoKEM1344AES:         "FrodoKEM-1344-AES",
	FrodoKEM1344SHAKE:       "FrodoKEM-1344-SHAKE",
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
		return fmt.Sprintf("kem.Algorithm(%d)", int(a))
	}
	return identifiers[a]
}

// IsEnabled reports whether the linked library provides the algorithm. The
// answer depends on how liboqs was built, so it is queried on every call.
func (a Algorithm) IsEnabled() bool {
	if !a.valid() {
		return false
	}
	oqs.Init()
	return backend.KEMEnabled(identifiers[a])
}

// Algorithms returns every known algorithm, enabled or not, in declaration
// order.
func Algorithms() []Algorithm {
	out := make([]Algorithm, numAlgorithms)
	for i := range out {
		out[i] = Algorithm(i)
	}
	return out
}

// ParseAlgorithm looks up an algorithm by its liboqs method name, ignoring
// case.
func ParseAlgorithm(id string) (Algorithm, error) {
	for i, name := range identifiers {
		if strings.EqualFold(name, id) {
			return Algorithm(i), nil
		}
	}
	return 0, fmt.Errorf("kem: parse %q: %w", id, oqs.ErrUnknownAlgorithm)
}

// MarshalText encodes the algorithm as its identifier.
func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.valid() {
		return nil, fmt.Errorf("kem: marshal %s: %w", a, oqs.ErrUnknownAlgorithm)
	}
	return []byte(identifiers[a]), nil
}

// UnmarshalText accepts any identifier ParseAlgorithm accepts.
func (a *Algorithm) UnmarshalText(text []byte) error {
	v, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
