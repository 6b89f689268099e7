package env

import (
	"github.com/danieljhkim/homelab/internal/catalog"
	"github.com/danieljhkim/homelab/internal/config"
	"github.com/spf13/cobra"
)

// PathsGetter is a function that returns the Paths instance
type PathsGetter func() *config.Paths

var loadCatalog = catalog.Load

// NewEnvCmd creates the env command with all subcommands
func NewEnvCmd(pathsGetter PathsGetter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Environment management commands",
		Long: `Commands for inspecting the homelab host environment.

Includes dependency checking, COMPOSE_FILE exports and running commands
against a stack selection.`,
	}

	// Add subcommands
	cmd.AddCommand(newDoctorCmd(pathsGetter))
	cmd.AddCommand(newPrintCmd(pathsGetter))
	cmd.AddCommand(newExecCmd(pathsGetter))

	return cmd
}
