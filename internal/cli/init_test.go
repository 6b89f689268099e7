package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danieljhkim/homelab/internal/catalog"
	"github.com/danieljhkim/homelab/internal/config"
)

func runInit(t *testing.T, paths *config.Paths, input string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newInitCmd(func() *config.Paths { return paths })
	out := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errBuf)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errBuf.String(), err
}

func TestInit_ConfirmsEachMutableSetting(t *testing.T) {
	paths := config.NewPaths("", t.TempDir())

	output, _, err := runInit(t, paths, "\n\n\n\n")
	if err != nil {
		t.Fatalf("init returned error: %v", err)
	}

	for _, key := range []string{"project-dir", "host", "probe-timeout", "compose-command"} {
		if !strings.Contains(output, "confirm "+key+" to be:") {
			t.Fatalf("missing %s confirmation prompt:\n%s", key, output)
		}
	}
	if strings.Contains(output, "log-tail") {
		t.Fatalf("log-tail should not be prompted for confirmation:\n%s", output)
	}

	settings, err := config.NewSettingsManager(paths).Load()
	if err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}
	if settings.Host != "127.0.0.1" || settings.ComposeCommand != "docker compose" {
		t.Fatalf("defaults not saved: %+v", settings)
	}
	for _, dir := range []string{paths.StateDir(), paths.LogsDir(), paths.ConfDir()} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("directory %s not created", dir)
		}
	}
}

func TestInit_ConfirmationAllowsEditingValues(t *testing.T) {
	paths := config.NewPaths("", t.TempDir())
	projectDir := t.TempDir()

	_, stderr, err := runInit(t, paths, projectDir+"\n192.168.1.10\n10s\ndocker-compose\n")
	if err != nil {
		t.Fatalf("init returned error: %v", err)
	}
	if !strings.Contains(stderr, "WARN: no docker-compose.yml") {
		t.Errorf("missing compose file warning:\n%s", stderr)
	}

	settings, err := config.NewSettingsManager(paths).Load()
	if err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}
	if settings.ProjectDir != projectDir {
		t.Errorf("ProjectDir = %q, want %q", settings.ProjectDir, projectDir)
	}
	if settings.Host != "192.168.1.10" {
		t.Errorf("Host = %q", settings.Host)
	}
	if settings.ProbeTimeout != "10s" {
		t.Errorf("ProbeTimeout = %q", settings.ProbeTimeout)
	}
	if settings.ComposeCommand != "docker-compose" {
		t.Errorf("ComposeCommand = %q", settings.ComposeCommand)
	}
}

func TestInit_UsesDiscoveredProjectDir(t *testing.T) {
	projectDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(projectDir, "docker-compose.yml"), []byte("services: {}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	paths := config.NewPaths(projectDir, t.TempDir())

	output, stderr, err := runInit(t, paths, "\n\n\n\n")
	if err != nil {
		t.Fatalf("init returned error: %v", err)
	}
	if !strings.Contains(output, "confirm project-dir to be: "+projectDir) {
		t.Fatalf("project-dir prompt missing discovered value:\n%s", output)
	}
	if strings.Contains(stderr, "WARN") {
		t.Errorf("unexpected warning:\n%s", stderr)
	}
}

func TestInit_RejectsInvalidValue(t *testing.T) {
	paths := config.NewPaths("", t.TempDir())

	_, _, err := runInit(t, paths, "\n\nforever\n\n")
	if err == nil || !strings.Contains(err.Error(), "invalid probe-timeout") {
		t.Fatalf("err = %v, want invalid probe-timeout", err)
	}
	if _, statErr := os.Stat(config.NewSettingsManager(paths).Path()); !os.IsNotExist(statErr) {
		t.Fatal("settings must not be written after a rejected value")
	}
}

func TestInit_AlreadyInitialized(t *testing.T) {
	paths := config.NewPaths("", t.TempDir())
	if _, _, err := runInit(t, paths, "\n\n\n\n"); err != nil {
		t.Fatalf("first init: %v", err)
	}

	output, stderr, err := runInit(t, paths, "")
	if err != nil {
		t.Fatalf("second init: %v", err)
	}
	if !strings.Contains(stderr, "Settings already initialized") {
		t.Fatalf("missing already-initialized notice:\n%s", stderr)
	}
	if strings.Contains(output, "confirm") {
		t.Fatalf("second init should not prompt:\n%s", output)
	}

	if _, _, err := runInit(t, paths, "\n\n5s\n\n", "--force"); err != nil {
		t.Fatalf("forced init: %v", err)
	}
	settings, _ := config.NewSettingsManager(paths).Load()
	if settings.ProbeTimeout != "5s" {
		t.Fatalf("ProbeTimeout = %q after --force", settings.ProbeTimeout)
	}
}

func TestInit_WritesCatalog(t *testing.T) {
	paths := config.NewPaths("", t.TempDir())

	output, _, err := runInit(t, paths, "\n\n\n\n", "--catalog")
	if err != nil {
		t.Fatalf("init returned error: %v", err)
	}
	if !strings.Contains(output, "Catalog file: "+paths.CatalogFile()) {
		t.Fatalf("missing catalog path:\n%s", output)
	}

	cat, err := catalog.Load(paths.CatalogFile())
	if err != nil {
		t.Fatalf("written catalog does not load: %v", err)
	}
	if len(cat.Services) != len(catalog.Default().Services) {
		t.Errorf("services = %d, want %d", len(cat.Services), len(catalog.Default().Services))
	}
}
