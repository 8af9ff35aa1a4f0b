package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"basecaller/internal/backend"
)

func newInfoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "info",
		Short:   "Print the model backend alphabet and worker assignment",
		Example: "  basecaller info -c basecaller.yaml",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := buildBackend(opts.cfg)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(backend.Describe(b))
		},
	}
}
