//go:build !(cgo && liboqs)

package backend

import (
	circlkem "github.com/cloudflare/circl/kem"
	"github.com/cloudflare/circl/kem/frodo/frodo640shake"
	"github.com/cloudflare/circl/kem/kyber/kyber1024"
	"github.com/cloudflare/circl/kem/kyber/kyber512"
	"github.com/cloudflare/circl/kem/kyber/kyber768"
	"github.com/cloudflare/circl/kem/mlkem/mlkem1024"
	"github.com/cloudflare/circl/kem/mlkem/mlkem512"
	"github.com/cloudflare/circl/kem/mlkem/mlkem768"
	circlsign "github.com/cloudflare/circl/sign"
	"github.com/cloudflare/circl/sign/dilithium/mode2"
	"github.com/cloudflare/circl/sign/dilithium/mode3"
	"github.com/cloudflare/circl/sign/dilithium/mode5"
	"github.com/cloudflare/circl/sign/mldsa/mldsa44"
	"github.com/cloudflare/circl/sign/mldsa/mldsa65"
	"github.com/cloudflare/circl/sign/mldsa/mldsa87"
)

func init() {
	for _, e := range []struct {
		id      string
		version string
		level   uint8
		scheme  circlkem.Scheme
	}{
		{"ML-KEM-512", "FIPS203 (circl)", 1, mlkem512.Scheme()},
		{"ML-KEM-768", "FIPS203 (circl)", 3, mlkem768.Scheme()},
		{"ML-KEM-1024", "FIPS203 (circl)", 5, mlkem1024.Scheme()},
		{"Kyber512", "round3 (circl)", 1, kyber512.Scheme()},
		{"Kyber768", "round3 (circl)", 3, kyber768.Scheme()},
		{"Kyber1024", "round3 (circl)", 5, kyber1024.Scheme()},
		{"FrodoKEM-640-SHAKE", "round3 (circl)", 1, frodo640shake.Scheme()},
	} {
		registerKEM(kemEntryFor[circlkem.PublicKey, circlkem.PrivateKey](e.id, e.version, e.level, e.scheme))
	}

	for _, e := range []struct {
		id      string
		version string
		level   uint8
		scheme  circlsign.Scheme
	}{
		{"ML-DSA-44", "FIPS204 (circl)", 2, mldsa44.Scheme()},
		{"ML-DSA-65", "FIPS204 (circl)", 3, mldsa65.Scheme()},
		{"ML-DSA-87", "FIPS204 (circl)", 5, mldsa87.Scheme()},
		{"Dilithium2", "round3 (circl)", 2, mode2.Scheme()},
		{"Dilithium3", "round3 (circl)", 3, mode3.Scheme()},
		{"Dilithium5", "round3 (circl)", 5, mode5.Scheme()},
	} {
		registerSig(sigEntry{
			details: SigDetails{
				Name:             e.id,
				Version:          e.version,
				ClaimedNISTLevel: e.level,
				EUFCMA:           true,
				SUFCMA:           true,
				LengthPublicKey:  e.scheme.PublicKeySize(),
				LengthSecretKey:  e.scheme.PrivateKeySize(),
				LengthSignature:  e.scheme.SignatureSize(),
			},
			impl: circlSig{s: e.scheme},
		})
	}
}

type circlSig struct {
	s circlsign.Scheme
}

func (c circlSig) keypair(pk, sk []byte) error {
	pub, priv, err := c.s.GenerateKey()
	if err != nil {
		return err
	}
	if err := marshalInto(pk, pub); err != nil {
		return err
	}
	return marshalInto(sk, priv)
}

func (c circlSig) sign(sig, msg, sk []byte) (int, error) {
	priv, err := c.s.UnmarshalBinaryPrivateKey(sk)
	if err != nil {
		return 0, err
	}
	out := c.s.Sign(priv, msg, nil)
	if len(out) > len(sig) {
		return 0, errOutputSize
	}
	return copy(sig, out), nil
}

func (c circlSig) verify(msg, sig, pk []byte) error {
	pub, err := c.s.UnmarshalBinaryPublicKey(pk)
	if err != nil {
		return err
	}
	if !c.s.Verify(pub, msg, sig, nil) {
		return errVerify
	}
	return nil
}
