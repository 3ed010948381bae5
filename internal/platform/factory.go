package platform

import (
	"context"
	"log/slog"

	"github.com/aretw0/gestor/pkg/adapters/fs"
	"github.com/aretw0/gestor/pkg/core"
)

// New creates a Bridge over the document stored in dir.
//
//	b, err := gestor.New("./data", gestor.WithReadOnly(true))
func New(dir string, opts ...Option) (*core.Bridge, error) {
	return newBridge(context.Background(), dir, opts...)
}

// Open resolves the data directory from cfg and creates the Bridge.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*core.Bridge, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dir, err := ResolveDataDir(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("data directory resolved", "dir", dir, "mode", cfg.Mode)

	return newBridge(ctx, dir,
		WithLogger(logger),
		WithFileName(cfg.FileName),
		WithReadOnly(cfg.ReadOnly),
	)
}

func newBridge(ctx context.Context, dir string, opts ...Option) (*core.Bridge, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	repo := o.repository
	if repo == nil {
		fsRepo, err := fs.NewRepository(fs.Config{
			Dir:      dir,
			FileName: o.fileName,
			ReadOnly: o.readOnly,
			Logger:   o.logger,
		})
		if err != nil {
			return nil, err
		}
		repo = fsRepo
	}

	return core.NewBridge(ctx, repo, o.logger), nil
}
