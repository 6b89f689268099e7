package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/homelab/internal/catalog"
	"github.com/danieljhkim/homelab/internal/config"
	"github.com/danieljhkim/homelab/internal/util"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// initPrompts are the settings init asks about, in order.
var initPrompts = []string{"project-dir", "host", "probe-timeout", "compose-command"}

func newInitCmd(pathsGetter func() *config.Paths) *cobra.Command {
	var (
		force        bool
		writeCatalog bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize homelab settings",
		Long: `Initialize homelab settings under $HOMELAB_HOME (default ~/.homelab).

Each setting is shown with its current value; press Enter to keep it or type a
new one. With --catalog the built-in service catalog is written to
conf/catalog.yaml so it can be edited.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := pathsGetter()
			sm := config.NewSettingsManager(paths)

			if util.FileExists(sm.Path()) && !force {
				util.Log(cmd.ErrOrStderr(), "Settings already initialized: %s", sm.Path())
				util.Log(cmd.ErrOrStderr(), "  (use: homelab init --force to overwrite)")
				return nil
			}

			settings, err := sm.LoadOrDefault()
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}
			if settings.ProjectDir == "" {
				settings.ProjectDir = paths.ProjectDir
			}

			reader := bufio.NewReader(cmd.InOrStdin())
			for _, key := range initPrompts {
				value, err := confirmInitValue(cmd.OutOrStdout(), reader, key, settings.Get(key))
				if err != nil {
					return err
				}
				if key == "project-dir" && value != "" {
					if value, err = filepath.Abs(value); err != nil {
						return fmt.Errorf("failed to resolve project-dir: %w", err)
					}
				}
				if err := settings.Set(key, value); err != nil {
					return err
				}
			}

			if settings.ProjectDir != "" && !util.FileExists(filepath.Join(settings.ProjectDir, "docker-compose.yml")) {
				util.Warn(cmd.ErrOrStderr(), "no docker-compose.yml in %s", settings.ProjectDir)
			}

			if err := util.MkdirAll(paths.StateDir(), paths.LogsDir(), paths.ConfDir()); err != nil {
				return err
			}
			if err := sm.Save(settings); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			util.Success(cmd.OutOrStdout(), "Settings file: %s", sm.Path())

			if writeCatalog {
				if err := writeCatalogFile(paths.CatalogFile(), force); err != nil {
					return err
				}
				util.Success(cmd.OutOrStdout(), "Catalog file: %s", paths.CatalogFile())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing settings")
	cmd.Flags().BoolVar(&writeCatalog, "catalog", false, "Write the built-in catalog to conf/catalog.yaml")

	return cmd
}

func writeCatalogFile(path string, force bool) error {
	if util.FileExists(path) && !force {
		return fmt.Errorf("catalog already exists: %s (use --force to overwrite)", path)
	}
	data, err := yaml.Marshal(catalog.Default().Export())
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	header := "# homelab service catalog overlay\n# Entries here replace or extend the built-in catalog by name.\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}

func confirmInitValue(out io.Writer, reader *bufio.Reader, key, current string) (string, error) {
	fmt.Fprintf(out, "confirm %s to be: %s\n", key, current)
	fmt.Fprint(out, "Press Enter to confirm, or type a new value: ")

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read %s confirmation: %w", key, err)
	}

	value := strings.TrimSpace(line)
	if value != "" {
		return value, nil
	}
	return current, nil
}
