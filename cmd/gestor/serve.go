package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/gestor/pkg/host"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Answer host calls on stdin/stdout",
		Long: `Read one JSON request per line from stdin and write one JSON response per line to stdout.

  {"id":1,"method":"write_data_file","args":["{\"students\":[]}"]}
  {"id":1,"result":{"success":true,"name":"gestor-classes-data.json"}}

Methods: get_info, ensure_exists, read, write, reset, get_cached, and their
legacy names get_data_file_info, ensure_data_file, read_data_file,
write_data_file, reset_data_file, get_initial_data. The file-handle methods
get_saved_file_handle, save_file_handle, clear_saved_file_handle,
request_existing_data_file and request_new_data_file are also served.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open(cmd)
			if err != nil {
				return err
			}
			d := host.NewDispatcher(b)
			opts.logger.Debug("serving host calls", "methods", d.Methods())
			return host.Serve(cmd.Context(), d, cmd.InOrStdin(), cmd.OutOrStdout(), opts.logger)
		},
	}
}
