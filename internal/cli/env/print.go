package env

import (
	envpkg "github.com/danieljhkim/homelab/internal/env"
	"github.com/spf13/cobra"
)

func newPrintCmd(pathsGetter PathsGetter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "print [target]",
		Short: "Print export statements for plain docker compose",
		Long: `Print environment variable export statements.

Output can be evaluated in your shell so that plain docker compose acts on
the selected stacks:

  eval "$(homelab env print monitoring)"
  docker compose ps

TARGET may be empty (core stack), "all", a stack or a service.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := pathsGetter()

			cat, err := loadCatalog(paths.CatalogFile())
			if err != nil {
				return err
			}

			target := ""
			if len(args) > 0 {
				target = args[0]
			}
			env, err := envpkg.Compute(paths, cat, target)
			if err != nil {
				return err
			}

			env.PrintShell(cmd.OutOrStdout())
			return nil
		},
	}

	return cmd
}
