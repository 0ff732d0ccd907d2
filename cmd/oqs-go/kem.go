package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hsiuhsiu/oqs-go/pkg/oqs"
	"github.com/hsiuhsiu/oqs-go/pkg/oqs/kem"
	"github.com/hsiuhsiu/oqs-go/pkg/oqs/keyfile"
)

func newKEMCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kem",
		Short: "Key encapsulation",
	}
	cmd.AddCommand(newKEMKeygenCommand(a), newKEMEncapsCommand(), newKEMDecapsCommand())
	return cmd
}

// openKEM parses the algorithm named by a key file and opens a handle for it.
func openKEM(id string) (*kem.KEM, error) {
	alg, err := kem.ParseAlgorithm(id)
	if err != nil {
		return nil, err
	}
	return kem.New(alg)
}

func newKEMKeygenCommand(a *app) *cobra.Command {
	var (
		algorithm string
		out       string
		force     bool
	)
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a keypair as <out>.pk and <out>.sk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("algorithm") {
				algorithm = a.cfg.KEM.Algorithm
			}
			k, err := openKEM(algorithm)
			if err != nil {
				return err
			}
			defer k.Free()

			pk, sk, err := k.Keypair()
			if err != nil {
				return err
			}
			defer sk.Free()

			return writeEnvelopes(cmd.OutOrStdout(), force,
				output{out + ".pk", keyfile.File{Family: keyfile.FamilyKEM, Algorithm: k.Name(), Kind: keyfile.KindPublicKey, Data: pk.Bytes()}},
				output{out + ".sk", keyfile.File{Family: keyfile.FamilyKEM, Algorithm: k.Name(), Kind: keyfile.KindSecretKey, Data: sk.Bytes()}},
			)
		},
	}
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "KEM algorithm (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path prefix")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newKEMEncapsCommand() *cobra.Command {
	var (
		keyPath    string
		ctPath     string
		secretPath string
		force      bool
	)
	cmd := &cobra.Command{
		Use:   "encaps",
		Short: "Encapsulate a fresh shared secret to a public key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := readEnvelope(keyPath, keyfile.FamilyKEM, keyfile.KindPublicKey)
			if err != nil {
				return err
			}
			k, err := openKEM(f.Algorithm)
			if err != nil {
				return err
			}
			defer k.Free()

			pk, ok := k.PublicKeyFromBytes(f.Data)
			if !ok {
				return fmt.Errorf("%s: public key is %d bytes, %s wants %d", keyPath, len(f.Data), k.Name(), k.LengthPublicKey())
			}
			ct, ss, err := k.Encapsulate(pk)
			if err != nil {
				return err
			}
			defer ss.Free()

			return writeEnvelopes(cmd.OutOrStdout(), force,
				output{ctPath, keyfile.File{Family: keyfile.FamilyKEM, Algorithm: k.Name(), Kind: keyfile.KindCiphertext, Data: ct.Bytes()}},
				output{secretPath, keyfile.File{Family: keyfile.FamilyKEM, Algorithm: k.Name(), Kind: keyfile.KindSharedSecret, Data: ss.Bytes()}},
			)
		},
	}
	cmd.Flags().StringVarP(&keyPath, "key", "k", "", "public key file")
	cmd.Flags().StringVar(&ctPath, "out", "", "ciphertext output file")
	cmd.Flags().StringVar(&secretPath, "secret-out", "", "shared secret output file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("out")
	_ = cmd.MarkFlagRequired("secret-out")
	return cmd
}

func newKEMDecapsCommand() *cobra.Command {
	var (
		keyPath    string
		ctPath     string
		secretPath string
		force      bool
	)
	cmd := &cobra.Command{
		Use:   "decaps",
		Short: "Recover the shared secret carried by a ciphertext",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			skFile, err := readEnvelope(keyPath, keyfile.FamilyKEM, keyfile.KindSecretKey)
			if err != nil {
				return err
			}
			defer oqs.ZeroizeBytes(skFile.Data)
			ctFile, err := readEnvelope(ctPath, keyfile.FamilyKEM, keyfile.KindCiphertext)
			if err != nil {
				return err
			}
			if skFile.Algorithm != ctFile.Algorithm {
				return fmt.Errorf("secret key is %s but ciphertext is %s", skFile.Algorithm, ctFile.Algorithm)
			}
			k, err := openKEM(skFile.Algorithm)
			if err != nil {
				return err
			}
			defer k.Free()

			sk, ok := k.SecretKeyFromBytes(skFile.Data)
			if !ok {
				return fmt.Errorf("%s: secret key has the wrong length for %s", keyPath, k.Name())
			}
			ct, ok := k.CiphertextFromBytes(ctFile.Data)
			if !ok {
				return fmt.Errorf("%s: ciphertext has the wrong length for %s", ctPath, k.Name())
			}
			ss, err := k.Decapsulate(sk, ct)
			if err != nil {
				return err
			}
			defer ss.Free()

			return writeEnvelopes(cmd.OutOrStdout(), force,
				output{secretPath, keyfile.File{Family: keyfile.FamilyKEM, Algorithm: k.Name(), Kind: keyfile.KindSharedSecret, Data: ss.Bytes()}},
			)
		},
	}
	cmd.Flags().StringVarP(&keyPath, "key", "k", "", "secret key file")
	cmd.Flags().StringVar(&ctPath, "in", "", "ciphertext file")
	cmd.Flags().StringVar(&secretPath, "secret-out", "", "shared secret output file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("secret-out")
	return cmd
}
