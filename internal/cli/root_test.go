package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danieljhkim/homelab/internal/catalog"
	"github.com/danieljhkim/homelab/internal/config"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoot_UnknownCommand(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())

	_, err := executeRoot(t, "explode")
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("err = %v, want unknown command", err)
	}
}

func TestRoot_UnknownTargetRunsNothing(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	projectDir := t.TempDir()

	out, err := executeRoot(t, "--project-dir", projectDir, "start", "nonexistent")
	if !errors.Is(err, catalog.ErrUnknownTarget) {
		t.Fatalf("err = %v, want ErrUnknownTarget", err)
	}
	if strings.Contains(out, "docker compose") {
		t.Fatalf("no compose command should be shown:\n%s", out)
	}
}

func TestRoot_EnvExecHonorsProjectDir(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	projectDir := t.TempDir()

	out, err := executeRoot(t, "--project-dir", projectDir, "env", "exec", "--", "sh", "-c", "echo PD=$HOMELAB_PROJECT_DIR")
	if err != nil {
		t.Fatalf("env exec returned error: %v", err)
	}
	if !strings.Contains(out, "PD="+projectDir) {
		t.Fatalf("project dir not exported:\n%s", out)
	}
}

func TestRoot_RegistersStackCommands(t *testing.T) {
	cmd := NewRootCmd()
	for _, st := range catalog.Default().OptionalStacks() {
		found, _, err := cmd.Find([]string{st.Name})
		if err != nil || found.Name() != st.Name {
			t.Errorf("stack command %q not registered (err %v)", st.Name, err)
		}
	}
	for _, name := range []string{"start", "stop", "restart", "status", "logs", "update", "pull", "reset", "health", "stacks", "ps", "init", "setting", "env", "dashboard"} {
		if found, _, err := cmd.Find([]string{name}); err != nil || found.Name() != name {
			t.Errorf("command %q not registered (err %v)", name, err)
		}
	}
}

func TestRoot_DryRunStartAll(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	projectDir := t.TempDir()

	out, err := executeRoot(t, "--project-dir", projectDir, "--dry-run", "start", "all")
	if err != nil {
		t.Fatalf("start all returned error: %v", err)
	}
	core := strings.Index(out, filepath.Join(projectDir, "docker-compose.yml")+" up -d")
	monitoring := strings.Index(out, filepath.Join(projectDir, "docker-compose.monitoring.yml")+" up -d")
	if core < 0 || monitoring < 0 || core > monitoring {
		t.Fatalf("expected core before monitoring:\n%s", out)
	}
}

func TestResolvePaths_FlagWins(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	flagDir := t.TempDir()

	paths := resolvePaths(flagDir)
	if paths.ProjectDir != flagDir {
		t.Errorf("ProjectDir = %q, want %q", paths.ProjectDir, flagDir)
	}
	if paths.BaseDir != home {
		t.Errorf("BaseDir = %q, want %q", paths.BaseDir, home)
	}
}

func TestResolvePaths_FromSettings(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	projectDir := t.TempDir()

	sm := config.NewSettingsManager(config.NewPaths("", home))
	settings := config.DefaultSettings(projectDir)
	if err := sm.Save(settings); err != nil {
		t.Fatal(err)
	}

	if got := resolvePaths("").ProjectDir; got != projectDir {
		t.Errorf("ProjectDir = %q, want %q", got, projectDir)
	}
}

func TestResolvePaths_Discovery(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	projectDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(projectDir, "docker-compose.yml"), []byte("services: {}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(projectDir, "scripts")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(sub); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	got := resolvePaths("").ProjectDir
	want, _ := filepath.EvalSymlinks(projectDir)
	gotResolved, _ := filepath.EvalSymlinks(got)
	if gotResolved != want {
		t.Errorf("ProjectDir = %q, want %q", got, projectDir)
	}
}
