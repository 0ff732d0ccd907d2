// Package sig wraps the signature schemes of liboqs.
//
//	s, err := sig.New(sig.MLDSA65)
//	if err != nil {
//		return err
//	}
//	defer s.Free()
//
//	pk, sk, err := s.Keypair()
//	signature, err := s.Sign(msg, sk)
//	err = s.Verify(msg, signature, pk)
//
// Signatures may be shorter than LengthSignature, which is an upper bound.
// A signature that does not verify is reported as oqs.ErrNative.
package sig
