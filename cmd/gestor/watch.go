package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/gestor/pkg/adapters/lifecycle"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var (
		pattern string
		types   []string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print changes to the document until interrupted",
		Long: `Print one line per change ("CREATE", "MODIFY" or "DELETE" followed by the path).
--pattern selects other files of the data directory with a doublestar glob.
--type keeps only the listed kinds of change, e.g. --type modify,delete.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := lifecycle.ParseEventTypes(types)
			if err != nil {
				return err
			}
			b, err := opts.open(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			events, err := b.Watch(ctx, pattern)
			if err != nil {
				return err
			}
			src := lifecycle.NewSource(events, lifecycle.WithTypes(kinds...))
			if err := src.Start(ctx); err != nil {
				return err
			}
			opts.logger.Info("watching", "dir", b.Info(ctx).Path, "pattern", pattern)

			out := cmd.OutOrStdout()
			for e := range src.Events() {
				fmt.Fprintln(out, e.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "", "Doublestar glob of file names to watch (default: the document)")
	cmd.Flags().StringSliceVar(&types, "type", nil, "Kinds of change to print: create, modify, delete (default: all)")
	return cmd
}
