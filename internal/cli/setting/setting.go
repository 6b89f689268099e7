package setting

import (
	"github.com/danieljhkim/homelab/internal/config"
	"github.com/spf13/cobra"
)

// PathsGetter is a function that returns the Paths instance.
type PathsGetter func() *config.Paths

// NewSettingCmd creates the setting command with all subcommands.
func NewSettingCmd(pathsGetter PathsGetter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setting",
		Short: "Manage user settings",
		Long: `Manage user settings for homelab.

Settings are persisted at $BASE_DIR/settings/setting.json.
The service catalog overlay lives at $BASE_DIR/conf/catalog.yaml.`,
	}

	cmd.AddCommand(newListCmd(pathsGetter))
	cmd.AddCommand(newSetCmd(pathsGetter))
	cmd.AddCommand(newShowCmd(pathsGetter))

	return cmd
}
