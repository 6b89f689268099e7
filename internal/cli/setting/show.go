package setting

import (
	"encoding/json"
	"fmt"

	"github.com/danieljhkim/homelab/internal/catalog"
	"github.com/danieljhkim/homelab/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newShowCmd(pathsGetter PathsGetter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <settings|catalog>",
		Short: "Show effective settings or service catalog",
		Long: `Show the effective settings (JSON) or the effective service catalog (YAML).

The catalog is the built-in table merged with $BASE_DIR/conf/catalog.yaml,
in the same format the overlay file accepts.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"settings", "catalog"},
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := pathsGetter()
			out := cmd.OutOrStdout()

			switch args[0] {
			case "settings":
				settings, err := config.NewSettingsManager(paths).LoadOrDefault()
				if err != nil {
					return err
				}
				data, err := json.MarshalIndent(settings, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "# %s\n%s\n", paths.SettingsFile(), data)

			case "catalog":
				cat, err := catalog.Load(paths.CatalogFile())
				if err != nil {
					return err
				}
				data, err := yaml.Marshal(cat.Export())
				if err != nil {
					return fmt.Errorf("failed to render catalog: %w", err)
				}
				fmt.Fprintf(out, "# %s\n%s", paths.CatalogFile(), data)

			default:
				return fmt.Errorf("unknown section %q (valid: settings, catalog)", args[0])
			}
			return nil
		},
	}

	return cmd
}
