package main

import (
	"fmt"

	"github.com/dekarrin/gnorm/internal/version"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the version of gnorm",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "gnorm %s (API %s)\n", version.Current, version.APICurrent)
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}
