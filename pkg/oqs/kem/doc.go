// Package kem wraps the key encapsulation mechanisms of liboqs.
//
// A KEM handle is created for one Algorithm and reports the fixed sizes of
// that algorithm's buffers. All buffers it returns are owned values of
// distinct types, so a ciphertext cannot be passed where a public key is
// expected:
//
//	k, err := kem.New(kem.MLKEM768)
//	if err != nil {
//		return err
//	}
//	defer k.Free()
//
//	pk, sk, err := k.Keypair()
//	ct, ss, err := k.Encapsulate(pk)
//	ss2, err := k.Decapsulate(sk, ct)
//	// ss.Equal(ss2)
//
// Bytes received from a peer go through the handle's FromBytes gates, which
// reject anything that is not exactly the declared length.
//
// A handle may be shared across goroutines. Free waits for in-flight
// operations and makes every later call return oqs.ErrHandleClosed.
package kem
