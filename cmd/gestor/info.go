package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newInfoCmd(opts *rootOptions) *cobra.Command {
	var asJSON, asYAML bool

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the document name, location and whether it exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open(cmd)
			if err != nil {
				return err
			}
			info := b.Info(cmd.Context())
			out := cmd.OutOrStdout()

			switch {
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			case asYAML:
				enc := yaml.NewEncoder(out)
				defer enc.Close()
				return enc.Encode(info)
			default:
				fmt.Fprintf(out, "name:   %s\n", info.Name)
				fmt.Fprintf(out, "exists: %t\n", info.Exists)
				fmt.Fprintf(out, "path:   %s\n", info.Path)
				return nil
			}
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Output as YAML")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
	return cmd
}
