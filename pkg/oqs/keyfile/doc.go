// Package keyfile stores oqs buffers on disk in a small CBOR envelope that
// records which algorithm and which kind of buffer the bytes belong to.
//
//	f := keyfile.File{Family: keyfile.FamilyKEM, Algorithm: "ML-KEM-768", Kind: keyfile.KindSecretKey, Data: sk.Bytes()}
//	err := keyfile.WriteFile("alice.sk", f)
//
// Decoding checks the envelope only. The length of Data is validated by the
// handle's FromBytes gate for the named algorithm.
package keyfile
