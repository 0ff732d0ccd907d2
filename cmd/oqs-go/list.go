package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/hsiuhsiu/oqs-go/pkg/oqs/kem"
	"github.com/hsiuhsiu/oqs-go/pkg/oqs/sig"
)

var titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)

func newListCommand() *cobra.Command {
	var enabledOnly bool

	cmd := &cobra.Command{
		Use:       "list [kem|sig]",
		Short:     "List algorithms and whether this build provides them",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"kem", "sig"},
		RunE: func(cmd *cobra.Command, args []string) error {
			family := ""
			if len(args) == 1 {
				family = args[0]
			}
			// Styles are downsampled to what the output supports, which is
			// plain text when it is not a terminal.
			w := colorprofile.NewWriter(cmd.OutOrStdout(), os.Environ())
			if family == "" || family == "kem" {
				if err := listKEMs(w, enabledOnly); err != nil {
					return err
				}
			}
			if family == "" {
				fmt.Fprintln(w)
			}
			if family == "" || family == "sig" {
				return listSigs(w, enabledOnly)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&enabledOnly, "enabled", false, "only show enabled algorithms")
	return cmd
}

func listKEMs(out io.Writer, enabledOnly bool) error {
	fmt.Fprintln(out, titleStyle.Render("Key encapsulation mechanisms"))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tENABLED\tLEVEL\tPUBLIC\tSECRET\tCIPHERTEXT\tSHARED")
	for _, alg := range kem.Algorithms() {
		if !alg.IsEnabled() {
			if !enabledOnly {
				fmt.Fprintf(w, "%s\tno\t-\t-\t-\t-\t-\n", alg)
			}
			continue
		}
		k, err := kem.New(alg)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\tyes\t%d\t%d\t%d\t%d\t%d\n", alg, k.ClaimedNISTLevel(),
			k.LengthPublicKey(), k.LengthSecretKey(), k.LengthCiphertext(), k.LengthSharedSecret())
		k.Free()
	}
	return w.Flush()
}

func listSigs(out io.Writer, enabledOnly bool) error {
	fmt.Fprintln(out, titleStyle.Render("Signature schemes"))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tENABLED\tLEVEL\tPUBLIC\tSECRET\tSIGNATURE")
	for _, alg := range sig.Algorithms() {
		if !alg.IsEnabled() {
			if !enabledOnly {
				fmt.Fprintf(w, "%s\tno\t-\t-\t-\t-\n", alg)
			}
			continue
		}
		s, err := sig.New(alg)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\tyes\t%d\t%d\t%d\t%d\n", alg, s.ClaimedNISTLevel(),
			s.LengthPublicKey(), s.LengthSecretKey(), s.LengthSignature())
		s.Free()
	}
	return w.Flush()
}
