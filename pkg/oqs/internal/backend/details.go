package backend

// KEMDetails is the read-only metadata of a native KEM instance.
type KEMDetails struct {
	Name               string
	Version            string
	ClaimedNISTLevel   uint8
	IndCCA             bool
	LengthPublicKey    int
	LengthSecretKey    int
	LengthCiphertext   int
	LengthSharedSecret int
}

// SigDetails is the read-only metadata of a native signature instance.
type SigDetails struct {
	Name             string
	Version          string
	ClaimedNISTLevel uint8
	EUFCMA           bool
	SUFCMA           bool
	LengthPublicKey  int
	LengthSecretKey  int
	LengthSignature  int
}
