package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/danieljhkim/homelab/internal/cli/dashboard"
	"github.com/danieljhkim/homelab/internal/cli/env"
	"github.com/danieljhkim/homelab/internal/cli/service"
	"github.com/danieljhkim/homelab/internal/cli/setting"
	"github.com/danieljhkim/homelab/internal/config"
	"github.com/danieljhkim/homelab/internal/util"
	"github.com/spf13/cobra"
)

// composeFile marks a homelab project directory.
const composeFile = "docker-compose.yml"

// NewRootCmd builds the homelab command tree.
func NewRootCmd() *cobra.Command {
	var (
		projectDir string
		paths      *config.Paths
	)

	// getPaths resolves paths on first use, after flags are parsed.
	// This is passed to subcommands as a getter function
	getPaths := func() *config.Paths {
		if paths == nil {
			paths = resolvePaths(projectDir)
		}
		return paths
	}

	rootCmd := &cobra.Command{
		Use:   "homelab",
		Short: "Manage a Docker Compose homelab",
		Long: `homelab: manage a self-hosted Docker Compose homelab.

Starts, stops, updates and inspects the core stack and optional stacks
(monitoring, blockchain, agents, ...) and probes each service's health
endpoint. Every action is appended to $HOMELAB_HOME/logs/homelab.log.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&projectDir, "project-dir", "", "Directory holding docker-compose.yml (default: project-dir setting, then auto-detect)")
	rootCmd.PersistentFlags().Bool(service.FlagDryRun, false, "Print compose commands instead of running them")
	rootCmd.PersistentFlags().Duration(service.FlagTimeout, 0, "Per-probe timeout (default: probe-timeout setting)")

	// Add subcommands
	rootCmd.AddCommand(service.NewLifecycleCmds(getPaths)...)
	rootCmd.AddCommand(service.NewStackCmds(getPaths)...)
	rootCmd.AddCommand(service.NewStacksCmd(getPaths))
	rootCmd.AddCommand(newPsCmd(getPaths))
	rootCmd.AddCommand(newInitCmd(getPaths))
	rootCmd.AddCommand(setting.NewSettingCmd(getPaths))
	rootCmd.AddCommand(env.NewEnvCmd(getPaths))
	rootCmd.AddCommand(dashboard.NewDashboardCmd(getPaths))

	return rootCmd
}

// Execute runs the root command with ctx.
// This is called by main.main().
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// resolvePaths picks the project directory: the --project-dir flag, then the
// project-dir setting, then a docker-compose.yml found near the binary or the
// working directory.
func resolvePaths(flagDir string) *config.Paths {
	baseDir := config.DefaultBaseDir()

	dir := flagDir
	if dir == "" {
		settings, err := config.NewSettingsManager(config.NewPaths("", baseDir)).LoadOrDefault()
		if err == nil {
			dir = settings.ProjectDir
		}
	}
	if dir == "" {
		dir = getProjectDir()
	}
	if dir != "" {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
	}
	return config.NewPaths(dir, baseDir)
}

// getProjectDir determines the homelab project directory
// Looks for docker-compose.yml next to the binary or one level up, then in
// the current working directory or one level up.
// Returns empty string if not found
func getProjectDir() string {
	var candidates []string

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		candidates = append(candidates, exeDir, filepath.Dir(exeDir))
	}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, cwd, filepath.Dir(cwd))
	}

	for _, dir := range candidates {
		if util.FileExists(filepath.Join(dir, composeFile)) {
			return dir
		}
	}
	return ""
}
