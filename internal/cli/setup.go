package cli

import (
	"context"
	"path/filepath"

	"github.com/pyscout/pyscout/internal/config"
	"github.com/pyscout/pyscout/pkg/errors"
	"github.com/pyscout/pyscout/pkg/pipeline"
	"github.com/pyscout/pyscout/pkg/pypi"
)

// resolveRoot normalizes the positional path argument (default ".") to an
// absolute project root.
func resolveRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	if err := errors.ValidateRoot(root); err != nil {
		return "", err
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "resolving project path")
	}
	return abs, nil
}

// newStore builds the configured registry cache store.
func newStore(ctx context.Context, cfg *config.Config) (pypi.Store, error) {
	if cfg.Cache.Backend == "redis" {
		return pypi.NewRedisStore(ctx, cfg.Cache.RedisAddr)
	}

	path := cfg.Cache.Path
	if path == "" {
		var err error
		if path, err = pypi.DefaultCachePath(); err != nil {
			return nil, err
		}
	}
	return pypi.NewFileStore(path), nil
}

// newPipeline wires the registry client and pipeline from configuration.
// The context logger is threaded into every layer.
func newPipeline(ctx context.Context, cfg *config.Config) (*pipeline.Pipeline, error) {
	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client, err := pypi.NewClient(ctx, pypi.Options{
		BaseURL: cfg.Registry.BaseURL,
		Store:   store,
		Timeout: cfg.Timeout(),
		Logger:  debugf(ctx),
	})
	if err != nil {
		return nil, err
	}

	return pipeline.New(client, pipeline.Options{
		IgnoreDirs: cfg.Scan.IgnoreDirs,
		Aliases:    cfg.Aliases,
		Logger:     debugf(ctx),
	}), nil
}
