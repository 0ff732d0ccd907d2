package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hsiuhsiu/oqs-go/pkg/oqs"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print wrapper and library versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oqs.Init()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "oqs-go:  %s\n", oqs.WrapperVersion())
			fmt.Fprintf(w, "backend: %s\n", oqs.BackendName())
			fmt.Fprintf(w, "library: %s\n", oqs.LibraryVersion())
			return nil
		},
	}
}
