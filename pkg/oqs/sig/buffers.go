package sig

import "github.com/hsiuhsiu/oqs-go/pkg/oqs/internal/buffer"

type publicKeyKind struct{}

func (publicKeyKind) Name() string { return "sig.PublicKey" }
func (publicKeyKind) Secret() bool { return false }

type secretKeyKind struct{}

func (secretKeyKind) Name() string { return "sig.SecretKey" }
func (secretKeyKind) Secret() bool { return true }

type signatureKind struct{}

func (signatureKind) Name() string { return "sig.Signature" }
func (signatureKind) Secret() bool { return false }

type (
	PublicKey = buffer.Owned[publicKeyKind]
	SecretKey = buffer.Owned[secretKeyKind]
	Signature = buffer.Owned[signatureKind]

	PublicKeyRef = buffer.Ref[publicKeyKind]
	SecretKeyRef = buffer.Ref[secretKeyKind]
	SignatureRef = buffer.Ref[signatureKind]

	PublicKeyView = buffer.View[publicKeyKind]
	SecretKeyView = buffer.View[secretKeyKind]
	SignatureView = buffer.View[signatureKind]
)
