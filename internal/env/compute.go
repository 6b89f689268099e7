package env

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/danieljhkim/homelab/internal/catalog"
	"github.com/danieljhkim/homelab/internal/config"
	"github.com/danieljhkim/homelab/internal/util"
)

// Environment holds the variables that let plain docker compose act on a homelab selection
type Environment struct {
	BaseDir      string
	ProjectDir   string
	Host         string
	ComposeFiles []string // absolute when ProjectDir is known
}

// Compute computes the environment for target ("" = core, "all", a stack or a service)
func Compute(paths *config.Paths, cat *catalog.Catalog, target string) (*Environment, error) {
	settings, err := config.NewSettingsManager(paths).LoadOrDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	sel, err := cat.Resolve(target)
	if err != nil {
		return nil, err
	}

	env := &Environment{
		BaseDir:    paths.BaseDir,
		ProjectDir: paths.ProjectDir,
		Host:       settings.Host,
	}
	for _, st := range sel.Stacks {
		file := st.File
		if env.ProjectDir != "" && !filepath.IsAbs(file) {
			file = filepath.Join(env.ProjectDir, file)
		}
		env.ComposeFiles = append(env.ComposeFiles, file)
	}

	return env, nil
}

// ComposeFile renders COMPOSE_FILE using the platform list separator
func (e *Environment) ComposeFile() string {
	return strings.Join(e.ComposeFiles, string(os.PathListSeparator))
}

// Export returns the environment as KEY=VALUE pairs
func (e *Environment) Export() []string {
	var exports []string
	add := func(name, value string) {
		if value != "" {
			exports = append(exports, name+"="+value)
		}
	}

	add(config.EnvHome, e.BaseDir)
	add("HOMELAB_PROJECT_DIR", e.ProjectDir)
	add("HOMELAB_HOST", e.Host)
	add("COMPOSE_FILE", e.ComposeFile())

	return exports
}

// PrintShell writes shell export statements to w
func (e *Environment) PrintShell(w io.Writer) {
	for _, entry := range e.Export() {
		name, value, _ := strings.Cut(entry, "=")
		fmt.Fprintf(w, "export %s=%s\n", name, util.ShellEscape(value))
	}
}

// MergeWithCurrent merges this environment with the current process environment
// Returns a complete environment suitable for exec.Cmd.Env
func (e *Environment) MergeWithCurrent() []string {
	envMap := make(map[string]string)
	for _, entry := range os.Environ() {
		if key, value, ok := strings.Cut(entry, "="); ok {
			envMap[key] = value
		}
	}

	// Override with our computed environment
	for _, entry := range e.Export() {
		if key, value, ok := strings.Cut(entry, "="); ok {
			envMap[key] = value
		}
	}

	result := make([]string, 0, len(envMap))
	for key, value := range envMap {
		result = append(result, key+"="+value)
	}
	sort.Strings(result)

	return result
}
