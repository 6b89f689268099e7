// Package containers reads Compose-managed containers from the Docker Engine API.
package containers

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"

	"github.com/danieljhkim/homelab/internal/catalog"
)

// Labels Compose stamps on every container it creates.
const (
	LabelProject     = "com.docker.compose.project"
	LabelService     = "com.docker.compose.service"
	LabelConfigFiles = "com.docker.compose.project.config_files"
)

// Lister is the slice of the Docker API this package needs.
type Lister interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]types.Container, error)
}

// Container is one Compose-managed container.
type Container struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Project string `json:"project"`
	Service string `json:"service"`
	Stack   string `json:"stack,omitempty"`
	Image   string `json:"image"`
	State   string `json:"state"`
	Status  string `json:"status"`
}

// Running reports whether the engine considers the container running.
func (c Container) Running() bool {
	return c.State == "running"
}

// Group holds the containers of one Compose project.
type Group struct {
	Project    string      `json:"project"`
	Containers []Container `json:"containers"`
}

// NewClient connects to the engine configured by DOCKER_HOST and friends.
func NewClient() (*client.Client, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("docker client: %w", err)
	}
	return cli, nil
}

// List returns containers carrying a Compose project label, grouped by
// project. A non-empty project narrows the query to that project. When cat is
// set each container is matched to its stack through the config_files label.
func List(ctx context.Context, api Lister, project string, cat *catalog.Catalog) ([]Group, error) {
	label := LabelProject
	if project != "" {
		label = LabelProject + "=" + project
	}

	raw, err := api.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filters.NewArgs(filters.Arg("label", label)),
	})
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}

	byProject := make(map[string][]Container)
	for _, c := range raw {
		ct := fromAPI(c)
		if ct.Project == "" {
			continue
		}
		if cat != nil {
			ct.Stack = stackFor(cat, c.Labels[LabelConfigFiles])
		}
		byProject[ct.Project] = append(byProject[ct.Project], ct)
	}

	groups := make([]Group, 0, len(byProject))
	for name, cs := range byProject {
		sort.Slice(cs, func(i, j int) bool { return cs[i].Name < cs[j].Name })
		groups = append(groups, Group{Project: name, Containers: cs})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Project < groups[j].Project })
	return groups, nil
}

func fromAPI(c types.Container) Container {
	name := c.ID
	if len(c.Names) > 0 {
		name = strings.TrimPrefix(c.Names[0], "/")
	}
	id := c.ID
	if len(id) > 12 {
		id = id[:12]
	}
	return Container{
		ID:      id,
		Name:    name,
		Project: c.Labels[LabelProject],
		Service: c.Labels[LabelService],
		Image:   c.Image,
		State:   c.State,
		Status:  c.Status,
	}
}

// stackFor matches the comma-separated config_files label against stack files.
func stackFor(cat *catalog.Catalog, configFiles string) string {
	for _, f := range strings.Split(configFiles, ",") {
		base := filepath.Base(strings.TrimSpace(f))
		if base == "." || base == "" {
			continue
		}
		for _, st := range cat.Stacks {
			if filepath.Base(st.File) == base {
				return st.Name
			}
		}
	}
	return ""
}
