package env

import (
	"fmt"
	"strings"

	envpkg "github.com/danieljhkim/homelab/internal/env"
	"github.com/spf13/cobra"
)

func newExecCmd(pathsGetter PathsGetter) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "exec [--target <target>] -- <command> [args...]",
		Short: "Run a command with COMPOSE_FILE set for a stack selection",
		Long: `Execute a command in the project directory with the computed environment.

Note: Use '--' to separate env exec flags from the command being executed.
Flags after the command name are passed through to it.

Examples:
  homelab env exec -- docker compose config
  homelab env exec --target all -- docker compose ps`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("target") && (target == "" || strings.HasPrefix(target, "-")) {
				return fmt.Errorf("--target requires a value")
			}
			paths := pathsGetter()

			cat, err := loadCatalog(paths.CatalogFile())
			if err != nil {
				return err
			}
			env, err := envpkg.Compute(paths, cat, target)
			if err != nil {
				return err
			}

			return envpkg.Exec(env, args, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "Target to compute COMPOSE_FILE for (default: core)")
	// Stop at the first positional so the command's own flags reach it untouched.
	cmd.Flags().SetInterspersed(false)

	return cmd
}
