package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/gestor"
)

// rootOptions holds the persistent flags and the state built from them.
type rootOptions struct {
	configPath string
	dataDir    string
	fileName   string
	readOnly   bool
	verbose    bool

	config gestor.Config
	logger *slog.Logger
}

// newRootCmd creates the gestor command tree.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "gestor",
		Short: "Persistence bridge for the class-management document",
		Long: `gestor stores the whole class-management dataset as a single JSON document.
Reads never fail: a missing or corrupted file falls back to the last valid document.
Writes are validated and replace the file atomically.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Directory holding the document (overrides mode)")
	cmd.PersistentFlags().StringVar(&opts.fileName, "file", "", "Document file name")
	cmd.PersistentFlags().BoolVar(&opts.readOnly, "read-only", false, "Never write to disk")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(
		newInfoCmd(opts),
		newEnsureCmd(opts),
		newReadCmd(opts),
		newWriteCmd(opts),
		newResetCmd(opts),
		newCachedCmd(opts),
		newDigestCmd(opts),
		newStateCmd(opts),
		newWatchCmd(opts),
		newServeCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// setup loads the configuration, applies flag overrides and installs the logger.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := gestor.LoadConfig(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = o.dataDir
	}
	if flags.Changed("file") {
		cfg.FileName = o.fileName
	}
	if flags.Changed("read-only") {
		cfg.ReadOnly = o.readOnly
	}

	level, err := gestor.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if o.verbose {
		level = slog.LevelDebug
	}

	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(o.logger)
	o.config = cfg
	return nil
}

// open creates the bridge for the resolved configuration.
func (o *rootOptions) open(cmd *cobra.Command) (*gestor.Bridge, error) {
	return gestor.Open(cmd.Context(), o.config, o.logger)
}
