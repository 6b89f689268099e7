package setting

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/homelab/internal/config"
	"github.com/danieljhkim/homelab/internal/util"
	"github.com/spf13/cobra"
)

func newSetCmd(pathsGetter PathsGetter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configurable user setting",
		Long: `Set a configurable user setting.

Supported keys: ` + strings.Join(config.SettingKeys, ", ") + `.
probe-timeout takes a Go duration (e.g. 3s, 750ms); compose-command is
"docker compose" or docker-compose.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]
			paths := pathsGetter()

			sm := config.NewSettingsManager(paths)
			settings, err := sm.LoadOrDefault()
			if err != nil {
				return err
			}

			if key == "project-dir" && value != "" {
				abs, err := filepath.Abs(value)
				if err != nil {
					return err
				}
				value = abs
				switch {
				case !util.DirExists(value):
					util.Warn(cmd.ErrOrStderr(), "%s does not exist", value)
				case !util.FileExists(filepath.Join(value, "docker-compose.yml")):
					util.Warn(cmd.ErrOrStderr(), "%s has no docker-compose.yml", value)
				}
			}

			if err := settings.Set(key, value); err != nil {
				return err
			}
			if err := sm.Save(settings); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s in %s\n", key, sm.Path())
			return nil
		},
	}

	return cmd
}
