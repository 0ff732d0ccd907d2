package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hsiuhsiu/oqs-go/pkg/oqs"
	"github.com/hsiuhsiu/oqs-go/pkg/oqs/keyfile"
	"github.com/hsiuhsiu/oqs-go/pkg/oqs/sig"
)

func newSigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sig",
		Short: "Signatures",
	}
	cmd.AddCommand(newSigKeygenCommand(a), newSigSignCommand(), newSigVerifyCommand())
	return cmd
}

func openSig(id string) (*sig.Sig, error) {
	alg, err := sig.ParseAlgorithm(id)
	if err != nil {
		return nil, err
	}
	return sig.New(alg)
}

func newSigKeygenCommand(a *app) *cobra.Command {
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
				algorithm = a.cfg.Sig.Algorithm
			}
			s, err := openSig(algorithm)
			if err != nil {
				return err
			}
			defer s.Free()

			pk, sk, err := s.Keypair()
			if err != nil {
				return err
			}
			defer sk.Free()

			return writeEnvelopes(cmd.OutOrStdout(), force,
				output{out + ".pk", keyfile.File{Family: keyfile.FamilySig, Algorithm: s.Name(), Kind: keyfile.KindPublicKey, Data: pk.Bytes()}},
				output{out + ".sk", keyfile.File{Family: keyfile.FamilySig, Algorithm: s.Name(), Kind: keyfile.KindSecretKey, Data: sk.Bytes()}},
			)
		},
	}
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "signature algorithm (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path prefix")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newSigSignCommand() *cobra.Command {
	var (
		keyPath string
		inPath  string
		sigPath string
		force   bool
	)
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := readEnvelope(keyPath, keyfile.FamilySig, keyfile.KindSecretKey)
			if err != nil {
				return err
			}
			defer oqs.ZeroizeBytes(f.Data)
			msg, err := readMessage(cmd.InOrStdin(), inPath)
			if err != nil {
				return err
			}
			s, err := openSig(f.Algorithm)
			if err != nil {
				return err
			}
			defer s.Free()

			sk, ok := s.SecretKeyFromBytes(f.Data)
			if !ok {
				return fmt.Errorf("%s: secret key has the wrong length for %s", keyPath, s.Name())
			}
			signature, err := s.Sign(msg, sk)
			if err != nil {
				return err
			}
			return writeEnvelopes(cmd.OutOrStdout(), force,
				output{sigPath, keyfile.File{Family: keyfile.FamilySig, Algorithm: s.Name(), Kind: keyfile.KindSignature, Data: signature.Bytes()}},
			)
		},
	}
	cmd.Flags().StringVarP(&keyPath, "key", "k", "", "secret key file")
	cmd.Flags().StringVar(&inPath, "in", "-", "message file, - for standard input")
	cmd.Flags().StringVar(&sigPath, "out", "", "signature output file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newSigVerifyCommand() *cobra.Command {
	var (
		keyPath string
		inPath  string
		sigPath string
	)
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a signature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pkFile, err := readEnvelope(keyPath, keyfile.FamilySig, keyfile.KindPublicKey)
			if err != nil {
				return err
			}
			sigFile, err := readEnvelope(sigPath, keyfile.FamilySig, keyfile.KindSignature)
			if err != nil {
				return err
			}
			if pkFile.Algorithm != sigFile.Algorithm {
				return fmt.Errorf("public key is %s but signature is %s", pkFile.Algorithm, sigFile.Algorithm)
			}
			msg, err := readMessage(cmd.InOrStdin(), inPath)
			if err != nil {
				return err
			}
			s, err := openSig(pkFile.Algorithm)
			if err != nil {
				return err
			}
			defer s.Free()

			pk, ok := s.PublicKeyFromBytes(pkFile.Data)
			if !ok {
				return fmt.Errorf("%s: public key has the wrong length for %s", keyPath, s.Name())
			}
			signature, ok := s.SignatureFromBytes(sigFile.Data)
			if !ok {
				return fmt.Errorf("%s: signature is longer than %s allows", sigPath, s.Name())
			}
			if err := s.Verify(msg, signature, pk); err != nil {
				return fmt.Errorf("signature rejected: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signature OK (%s)\n", s.Name())
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyPath, "key", "k", "", "public key file")
	cmd.Flags().StringVar(&inPath, "in", "-", "message file, - for standard input")
	cmd.Flags().StringVar(&sigPath, "sig", "", "signature file")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("sig")
	return cmd
}
