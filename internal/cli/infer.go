package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pyscout/pyscout/internal/config"
	"github.com/pyscout/pyscout/pkg/manifest"
	"github.com/pyscout/pyscout/pkg/pipeline"
)

// newInferCmd creates the "infer" command: scan, resolve, and write the
// manifest.
func newInferCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "infer [path]",
		Short: "Infer dependencies and update pyproject.toml",
		Long:  `Scan the project's Python sources and notebooks for imports, resolve them against PyPI, and write the production and development dependency lists to pyproject.toml.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			root, err := resolveRoot(args)
			if err != nil {
				return err
			}

			cfg, err := config.Load(root)
			if err != nil {
				return err
			}

			p, err := newPipeline(ctx, cfg)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			spin := newSpinner(ctx, "Scanning and resolving dependencies...")
			spin.Start()

			report, err := p.Infer(ctx, root)
			spin.Stop()
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Resolved %d production and %d development packages from %d files",
				len(report.Production), len(report.Development), report.FilesScanned))

			printReport(report)

			if dryRun {
				printInfo("Dry run enabled, no files were modified")
				return nil
			}

			path, err := manifest.Write(root, report.Production, report.Development)
			if err != nil {
				return err
			}
			printSuccess("Updated manifest")
			printFile(path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print dependencies without modifying files")
	return cmd
}

// printReport renders the resolution outcome.
func printReport(report *pipeline.Report) {
	printNewline()
	fmt.Println(StyleTitle.Render("Project: ") + StyleValue.Render(report.Root))
	printNewline()
	printDependencies("Production", report.Production, styleProd)
	printNewline()
	if len(report.Development) > 0 {
		printDependencies("Development", report.Development, styleDev)
		printNewline()
	}
}
