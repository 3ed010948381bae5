package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/gestor/pkg/core"
)

func newWriteCmd(opts *rootOptions) *cobra.Command {
	var data, fromFile string

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Replace the document",
		Long: `Replace the document with a JSON payload taken from --data, --from-file or stdin.
An empty payload stores "{}". A payload that is not JSON is rejected and nothing changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload string
			switch {
			case cmd.Flags().Changed("data"):
				payload = data
			case fromFile != "":
				raw, err := os.ReadFile(fromFile)
				if err != nil {
					return fmt.Errorf("failed to read payload: %w", err)
				}
				payload = string(raw)
			default:
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read payload: %w", err)
				}
				payload = string(raw)
			}

			b, err := opts.open(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			res := core.ResultOf(b.Info(ctx).Name, b.Write(ctx, payload))
			if !res.Success {
				return fmt.Errorf("write %s failed (%s): %s", res.Name, res.Kind, res.Error)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s saved\n", res.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "JSON payload")
	cmd.Flags().StringVar(&fromFile, "from-file", "", "Read the payload from a file")
	cmd.MarkFlagsMutuallyExclusive("data", "from-file")
	return cmd
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the document and forget the cached payload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			res := core.ResultOf(b.Info(ctx).Name, b.Reset(ctx))
			if !res.Success {
				return fmt.Errorf("reset %s failed (%s): %s", res.Name, res.Kind, res.Error)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s removed\n", res.Name)
			return nil
		},
	}
}
