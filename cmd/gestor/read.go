package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newReadCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "read",
		Short: "Print the document",
		Long:  `Print the document. When the file is missing or unusable the last valid document is printed instead, which may be empty.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), b.Read(cmd.Context()))
			return nil
		},
	}
}

func newCachedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cached",
		Short: "Print the document loaded at startup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), b.Cached(cmd.Context()))
			return nil
		},
	}
}

func newDigestCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "digest",
		Short: "Print the SHA-256 of the canonical form of the document",
		Long: `Print the SHA-256 of the document in JSON Canonicalization Scheme form (RFC 8785).
Documents that differ only in key order or whitespace share a digest.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open(cmd)
			if err != nil {
				return err
			}
			digest, err := b.Fingerprint(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to canonicalize document: %w", err)
			}
			if digest == "" {
				return errors.New("no document to digest")
			}
			fmt.Fprintln(cmd.OutOrStdout(), digest)
			return nil
		},
	}
}

func newStateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Print the internal state of the bridge as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open(cmd)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(b.State())
		},
	}
}
