package cli

import (
	"github.com/spf13/cobra"

	"github.com/pyscout/pyscout/internal/config"
	"github.com/pyscout/pyscout/pkg/pypi"
)

// newCacheCmd creates the cache management command tree.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the registry lookup cache",
	}

	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCachePathCmd())

	return cmd
}

// newCacheClearCmd creates the "cache clear" subcommand.
func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all persisted registry lookups",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load("")
			if err != nil {
				return err
			}

			if cfg.Cache.Backend == "redis" {
				store, err := pypi.NewRedisStore(ctx, cfg.Cache.RedisAddr)
				if err != nil {
					return err
				}
				defer store.Close()
				if err := store.Clear(ctx); err != nil {
					return err
				}
				printSuccess("Cleared shared registry cache at %s", cfg.Cache.RedisAddr)
				return nil
			}

			path := cfg.Cache.Path
			if path == "" {
				if path, err = pypi.DefaultCachePath(); err != nil {
					return err
				}
			}
			if err := pypi.NewFileStore(path).Clear(); err != nil {
				return err
			}
			printSuccess("Cleared registry cache")
			printFile(path)
			return nil
		},
	}
}

// newCachePathCmd creates the "cache path" subcommand.
func newCachePathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the registry cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load("")
			if err != nil {
				return err
			}

			if cfg.Cache.Backend == "redis" {
				printInfo("redis://%s", cfg.Cache.RedisAddr)
				return nil
			}

			path := cfg.Cache.Path
			if path == "" {
				if path, err = pypi.DefaultCachePath(); err != nil {
					return err
				}
			}
			printInfo("%s", path)
			return nil
		},
	}
}
