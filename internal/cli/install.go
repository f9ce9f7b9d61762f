package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pyscout/pyscout/internal/config"
	"github.com/pyscout/pyscout/pkg/installer"
	"github.com/pyscout/pyscout/pkg/manifest"
)

// newInstallCmd creates the "install" command: infer, write the manifest,
// then install everything through uv or pip.
func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install [path]",
		Short: "Infer dependencies and install them",
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

			spin := newSpinner(ctx, "Scanning and resolving dependencies...")
			spin.Start()
			report, err := p.Infer(ctx, root)
			spin.Stop()
			if err != nil {
				return err
			}

			printReport(report)

			all := append([]string{}, report.Production...)
			all = append(all, report.Development...)
			if len(all) == 0 {
				printInfo("No dependencies to install")
				return nil
			}

			path, err := manifest.Write(root, report.Production, report.Development)
			if err != nil {
				return err
			}
			printSuccess("Updated manifest")
			printFile(path)
			printNewline()

			prog := newProgress(logger)
			inst := installer.New(installer.Options{Logger: debugf(ctx)})

			printInfo("Installing %d packages...", len(all))
			res, err := inst.Install(ctx, all)
			if res != nil && len(res.Rejected) > 0 {
				printWarning("Rejected %d unsafe specifier(s): %s",
					len(res.Rejected), strings.Join(res.Rejected, ", "))
			}
			if err != nil {
				return err
			}

			prog.done(fmt.Sprintf("Installed %d packages with %s", len(res.Installed), res.Tool))
			return nil
		},
	}
}
