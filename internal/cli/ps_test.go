package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"

	"github.com/danieljhkim/homelab/internal/catalog"
	"github.com/danieljhkim/homelab/internal/config"
	"github.com/danieljhkim/homelab/internal/containers"
)

type fakeLister struct {
	containers []types.Container
	opts       container.ListOptions
}

func (f *fakeLister) ContainerList(_ context.Context, opts container.ListOptions) ([]types.Container, error) {
	f.opts = opts
	return f.containers, nil
}

func withLister(t *testing.T, l containers.Lister, err error) {
	t.Helper()
	origLister, origCatalog := newContainerLister, loadCatalog
	newContainerLister = func() (containers.Lister, error) { return l, err }
	loadCatalog = func(string) (*catalog.Catalog, error) { return catalog.Default(), nil }
	t.Cleanup(func() {
		newContainerLister = origLister
		loadCatalog = origCatalog
	})
}

func runPs(t *testing.T, args ...string) (string, error) {
	t.Helper()
	paths := config.NewPaths(t.TempDir(), t.TempDir())
	cmd := newPsCmd(func() *config.Paths { return paths })
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func sample() []types.Container {
	mk := func(id, name, service, file, state string) types.Container {
		return types.Container{
			ID:     id,
			Names:  []string{"/" + name},
			State:  state,
			Status: state,
			Labels: map[string]string{
				containers.LabelProject:     "homelab",
				containers.LabelService:     service,
				containers.LabelConfigFiles: "/srv/homelab/" + file,
			},
		}
	}
	return []types.Container{
		mk("1111111111111111", "homelab-jellyfin-1", "jellyfin", "docker-compose.yml", "running"),
		mk("2222222222222222", "homelab-geth-1", "geth", "docker-compose.blockchain.yml", "exited"),
	}
}

func TestPs_Table(t *testing.T) {
	withLister(t, &fakeLister{containers: sample()}, nil)

	out, err := runPs(t)
	if err != nil {
		t.Fatalf("ps returned error: %v", err)
	}
	for _, want := range []string{"==> homelab", "homelab-jellyfin-1", "jellyfin (core)", "geth (blockchain)", "exited"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPs_JSONAndProjectFilter(t *testing.T) {
	lister := &fakeLister{containers: sample()}
	withLister(t, lister, nil)

	out, err := runPs(t, "--json", "--project", "homelab")
	if err != nil {
		t.Fatalf("ps returned error: %v", err)
	}
	if got := lister.opts.Filters.Get("label"); len(got) != 1 || got[0] != containers.LabelProject+"=homelab" {
		t.Errorf("label filter = %v", got)
	}

	var groups []containers.Group
	if err := json.Unmarshal([]byte(out), &groups); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(groups) != 1 || len(groups[0].Containers) != 2 {
		t.Fatalf("groups = %+v", groups)
	}
}

func TestPs_Empty(t *testing.T) {
	withLister(t, &fakeLister{}, nil)

	out, err := runPs(t)
	if err != nil {
		t.Fatalf("ps returned error: %v", err)
	}
	if !strings.Contains(out, "No Compose containers found") {
		t.Fatalf("output:\n%s", out)
	}
}

func TestPs_DockerUnavailable(t *testing.T) {
	withLister(t, nil, errors.New("cannot connect"))

	_, err := runPs(t)
	if err == nil || !strings.Contains(err.Error(), "docker engine unavailable") {
		t.Fatalf("err = %v", err)
	}
}
