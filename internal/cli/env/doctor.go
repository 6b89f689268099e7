package env

import (
	"fmt"
	"strings"

	"github.com/danieljhkim/homelab/internal/config"
	envpkg "github.com/danieljhkim/homelab/internal/env"
	"github.com/spf13/cobra"
)

var runDoctor = envpkg.RunDoctor

func newDoctorCmd(pathsGetter PathsGetter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor [target...]",
		Short: "Check required and optional dependencies",
		Long: `Check that docker and the configured Compose front-end are available.

Optional target narrows the check to one command's needs:
  - "health" : nothing required (probes only use the network)
  - "ps"     : docker required, no Compose check

Examples:
  homelab env doctor
  homelab env doctor health`,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.Join(args, " ")

			settings, err := config.NewSettingsManager(pathsGetter()).LoadOrDefault()
			if err != nil {
				return err
			}

			result := runDoctor(target, settings.ComposeCommand)
			result.Print(cmd.OutOrStdout())

			if result.ExitCode() != 0 {
				return fmt.Errorf("required dependencies missing")
			}
			return nil
		},
	}

	return cmd
}
