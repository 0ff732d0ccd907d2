package kem

import "github.com/hsiuhsiu/oqs-go/pkg/oqs/internal/buffer"

type publicKeyKind struct{}

func (publicKeyKind) Name() string { return "kem.PublicKey" }
func (publicKeyKind) Secret() bool { return false }

type secretKeyKind struct{}

func (secretKeyKind) Name() string { return "kem.SecretKey" }
func (secretKeyKind) Secret() bool { return true }

type ciphertextKind struct{}

func (ciphertextKind) Name() string { return "kem.Ciphertext" }
func (ciphertextKind) Secret() bool { return false }

type sharedSecretKind struct{}

func (sharedSecretKind) Name() string { return "kem.SharedSecret" }
func (sharedSecretKind) Secret() bool { return true }

// Owned buffers. Secret keys and shared secrets are zeroed by Free, or by a
// finalizer if Free is never called.
type (
	PublicKey    = buffer.Owned[publicKeyKind]
	SecretKey    = buffer.Owned[secretKeyKind]
	Ciphertext   = buffer.Owned[ciphertextKind]
	SharedSecret = buffer.Owned[sharedSecretKind]
)

// Borrowed views, as returned by the FromBytes gates.
type (
	PublicKeyRef    = buffer.Ref[publicKeyKind]
	SecretKeyRef    = buffer.Ref[secretKeyKind]
	CiphertextRef   = buffer.Ref[ciphertextKind]
	SharedSecretRef = buffer.Ref[sharedSecretKind]
)

// Views accept either the owned or the borrowed form.
type (
	PublicKeyView    = buffer.View[publicKeyKind]
	SecretKeyView    = buffer.View[secretKeyKind]
	CiphertextView   = buffer.View[ciphertextKind]
	SharedSecretView = buffer.View[sharedSecretKind]
)
