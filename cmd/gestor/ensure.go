package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEnsureCmd(opts *rootOptions) *cobra.Command {
	var fresh bool

	cmd := &cobra.Command{
		Use:   "ensure",
		Short: "Create the document if it is missing",
		Long: `Create the document with the last valid payload, or "{}" when there is none. An existing document is left untouched.
With --new the document is replaced by "{}" even when it exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if fresh {
				if err := b.CreateEmpty(ctx); err != nil {
					return fmt.Errorf("failed to replace %s: %w", b.Info(ctx).Path, err)
				}
			} else if _, err := b.EnsureExists(ctx); err != nil {
				return fmt.Errorf("failed to create %s: %w", b.Info(ctx).Path, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), b.Info(ctx).Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&fresh, "new", false, `Replace an existing document with "{}"`)
	return cmd
}
