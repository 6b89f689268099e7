package env

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danieljhkim/homelab/internal/catalog"
	"github.com/danieljhkim/homelab/internal/config"
)

func TestCompute_ComposeFiles(t *testing.T) {
	paths := config.NewPaths("/srv/homelab", t.TempDir())

	env, err := Compute(paths, catalog.Default(), "monitoring")
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	want := filepath.Join("/srv/homelab", "docker-compose.monitoring.yml")
	if env.ComposeFile() != want {
		t.Errorf("ComposeFile() = %q, want %q", env.ComposeFile(), want)
	}

	all, err := Compute(paths, catalog.Default(), catalog.AllTarget)
	if err != nil {
		t.Fatalf("Compute(all) error: %v", err)
	}
	if len(all.ComposeFiles) != len(catalog.Default().Stacks) {
		t.Errorf("ComposeFiles = %v", all.ComposeFiles)
	}
	if !strings.HasPrefix(all.ComposeFile(), filepath.Join("/srv/homelab", "docker-compose.yml")+string(os.PathListSeparator)) {
		t.Errorf("core should come first: %q", all.ComposeFile())
	}

	if _, err := Compute(paths, catalog.Default(), "nope"); err == nil {
		t.Error("expected error for unknown target")
	}
}

func TestEnvironment_Export(t *testing.T) {
	env := &Environment{
		BaseDir:      "/test/base",
		ProjectDir:   "/test/project",
		Host:         "10.0.0.2",
		ComposeFiles: []string{"/test/project/docker-compose.yml"},
	}

	exported := make(map[string]string)
	for _, line := range env.Export() {
		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 {
			exported[parts[0]] = parts[1]
		}
	}

	expectedVars := map[string]string{
		"HOMELAB_HOME":        "/test/base",
		"HOMELAB_PROJECT_DIR": "/test/project",
		"HOMELAB_HOST":        "10.0.0.2",
		"COMPOSE_FILE":        "/test/project/docker-compose.yml",
	}
	for key, expectedValue := range expectedVars {
		if actualValue, ok := exported[key]; !ok {
			t.Errorf("Environment variable %s not found in exported vars", key)
		} else if actualValue != expectedValue {
			t.Errorf("Environment variable %s = %q, want %q", key, actualValue, expectedValue)
		}
	}
}

func TestEnvironment_PrintShellQuotes(t *testing.T) {
	env := &Environment{ProjectDir: "/home/me/my lab"}

	var out bytes.Buffer
	env.PrintShell(&out)
	if !strings.Contains(out.String(), "export HOMELAB_PROJECT_DIR='/home/me/my lab'") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestEnvironment_MergeWithCurrentOverrides(t *testing.T) {
	t.Setenv("COMPOSE_FILE", "stale.yml")
	env := &Environment{ComposeFiles: []string{"fresh.yml"}}

	found := false
	for _, entry := range env.MergeWithCurrent() {
		if entry == "COMPOSE_FILE=stale.yml" {
			t.Fatal("computed value should override the inherited one")
		}
		if entry == "COMPOSE_FILE=fresh.yml" {
			found = true
		}
	}
	if !found {
		t.Error("COMPOSE_FILE missing from merged environment")
	}
}
