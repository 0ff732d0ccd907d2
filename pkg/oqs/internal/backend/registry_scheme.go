//go:build !(cgo && liboqs)

package backend

import (
	"encoding"
	"errors"
)

var errVerify = errors.New("oqs/internal/backend: signature verification failed")

// kemScheme is the method set shared by circl's and hpqc's kem.Scheme. The
// key types differ between the two libraries, hence the type parameters.
type kemScheme[PK, SK encoding.BinaryMarshaler] interface {
	GenerateKeyPair() (PK, SK, error)
	Encapsulate(pk PK) (ct, ss []byte, err error)
	Decapsulate(sk SK, ct []byte) ([]byte, error)
	UnmarshalBinaryPublicKey([]byte) (PK, error)
	UnmarshalBinaryPrivateKey([]byte) (SK, error)
	PublicKeySize() int
	PrivateKeySize() int
	CiphertextSize() int
	SharedKeySize() int
}

type schemeKEM[PK, SK encoding.BinaryMarshaler] struct {
	s kemScheme[PK, SK]
}

func (k schemeKEM[PK, SK]) keypair(pk, sk []byte) error {
	pub, priv, err := k.s.GenerateKeyPair()
	if err != nil {
		return err
	}
	if err := marshalInto(pk, pub); err != nil {
		return err
	}
	return marshalInto(sk, priv)
}

func (k schemeKEM[PK, SK]) encaps(ct, ss, pk []byte) error {
	pub, err := k.s.UnmarshalBinaryPublicKey(pk)
	if err != nil {
		return err
	}
	c, s, err := k.s.Encapsulate(pub)
	if err != nil {
		return err
	}
	defer zeroize(s)
	if err := copyExact(ct, c); err != nil {
		return err
	}
	return copyExact(ss, s)
}

func (k schemeKEM[PK, SK]) decaps(ss, ct, sk []byte) error {
	priv, err := k.s.UnmarshalBinaryPrivateKey(sk)
	if err != nil {
		return err
	}
	s, err := k.s.Decapsulate(priv, ct)
	if err != nil {
		return err
	}
	defer zeroize(s)
	return copyExact(ss, s)
}

// kemEntryFor builds a registry entry whose lengths come from the scheme
// itself. Every scheme in the registry is IND-CCA secure.
func kemEntryFor[PK, SK encoding.BinaryMarshaler](id, version string, level uint8, s kemScheme[PK, SK]) kemEntry {
	return kemEntry{
		details: KEMDetails{
			Name:               id,
			Version:            version,
			ClaimedNISTLevel:   level,
			IndCCA:             true,
			LengthPublicKey:    s.PublicKeySize(),
			LengthSecretKey:    s.PrivateKeySize(),
			LengthCiphertext:   s.CiphertextSize(),
			LengthSharedSecret: s.SharedKeySize(),
		},
		impl: schemeKEM[PK, SK]{s: s},
	}
}
