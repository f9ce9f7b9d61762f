// Package cli implements the pyscout command-line interface.
//
// Commands:
//   - infer: scan a project, resolve its dependencies, and update pyproject.toml
//   - install: infer and then install the resolved packages
//   - cache: manage the persisted registry lookup cache
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context so every layer logs through the same
// sink.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pyscout/pyscout/pkg/buildinfo"
)

// Execute runs the pyscout CLI and returns an error if any command fails.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "pyscout",
		Short:        "pyscout infers Python project dependencies from source",
		Long:         `pyscout statically scans Python sources and notebooks for imports, verifies them against PyPI, and produces a pyproject.toml with production and development dependency lists.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newInferCmd())
	root.AddCommand(newInstallCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}
