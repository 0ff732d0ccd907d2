// Command oqs-go exercises the oqs-go wrapper from the command line: it lists
// the algorithms the linked library provides, generates and uses KEM and
// signature keys stored as key files, and runs a self test.
package main

import (
	"context"
	"os"

	"github.com/carlmjohnson/versioninfo"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/hsiuhsiu/oqs-go/pkg/oqs"
)

// app carries the state shared by all subcommands.
type app struct {
	configFile string
	logLevel   string
	logFormat  string

	cfg *Config
}

// load reads the configuration file, applies flag overrides and installs
// the package logger.
func (a *app) load(cmd *cobra.Command) error {
	cfg := DefaultConfig()
	if a.configFile != "" {
		var err error
		if cfg, err = LoadFile(a.configFile); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Logging.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cfg.Logging.newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	oqs.SetLogger(logger)
	a.cfg = cfg
	return nil
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "oqs-go",
		Short: "Post-quantum KEMs and signatures backed by liboqs",
		Long: `oqs-go drives the KEM and signature schemes of the linked post-quantum
library. Keys, ciphertexts and signatures are stored as CBOR key files that
record the algorithm they belong to.`,
		Example: `  # Show which algorithms this build provides
  oqs-go list

  # Generate an ML-KEM-768 keypair as alice.pk / alice.sk
  oqs-go kem keygen -a ML-KEM-768 -o alice

  # Sign and verify a file with the configured signature scheme
  oqs-go -c oqs.toml sig keygen -o bob
  oqs-go sig sign --key bob.sk --in msg.txt --out msg.sig
  oqs-go sig verify --key bob.pk --in msg.txt --sig msg.sig`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "TOML configuration file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", defaultLogLevel, "logging level (debug, info, warn, error, off)")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", defaultLogFormat, "logging format (text, json)")

	cmd.AddCommand(
		newVersionCommand(),
		newListCommand(),
		newKEMCommand(a),
		newSigCommand(a),
		newSelftestCommand(),
	)
	return cmd
}

func main() {
	rootCmd := newRootCommand()
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(versioninfo.Short()),
		fang.WithErrorHandler(errorHandlerWithUsage(rootCmd)),
	); err != nil {
		os.Exit(1)
	}
}
