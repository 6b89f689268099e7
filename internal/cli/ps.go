package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/danieljhkim/homelab/internal/catalog"
	"github.com/danieljhkim/homelab/internal/config"
	"github.com/danieljhkim/homelab/internal/containers"
	"github.com/danieljhkim/homelab/internal/util"
	"github.com/spf13/cobra"
)

// Seams replaced in tests.
var (
	newContainerLister = func() (containers.Lister, error) {
		return containers.NewClient()
	}
	loadCatalog = catalog.Load
)

func newPsCmd(pathsGetter func() *config.Paths) *cobra.Command {
	var (
		project string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "ps",
		Short: "List Compose containers from the Docker engine",
		Long: `List every container carrying a Compose project label, grouped by project.

Unlike "homelab status" this asks the Docker engine directly, so it also shows
containers started outside this tool. Each container is matched to a catalog
stack by its Compose file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(pathsGetter().CatalogFile())
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}

			api, err := newContainerLister()
			if err != nil {
				return fmt.Errorf("docker engine unavailable: %w", err)
			}
			if c, ok := api.(io.Closer); ok {
				defer c.Close()
			}

			groups, err := containers.List(cmd.Context(), api, project, cat)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if groups == nil {
					groups = []containers.Group{}
				}
				return enc.Encode(groups)
			}

			if len(groups) == 0 {
				fmt.Fprintln(out, "No Compose containers found")
				return nil
			}
			for i, g := range groups {
				if i > 0 {
					fmt.Fprintln(out)
				}
				util.Section(out, "%s", g.Project)
				rows := make([]util.StatusTableRow, 0, len(g.Containers))
				for _, c := range g.Containers {
					svc := c.Service
					if c.Stack != "" {
						svc = fmt.Sprintf("%s (%s)", c.Service, c.Stack)
					}
					rows = append(rows, util.StatusTableRow{
						Name:   c.Name,
						Status: c.State,
						Detail: fmt.Sprintf("%s  %s", svc, c.Status),
						Ok:     c.Running(),
					})
				}
				util.StatusTable(out, rows)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Only show this Compose project")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")

	return cmd
}
