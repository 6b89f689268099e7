package service

import (
	"github.com/danieljhkim/homelab/internal/dispatch"
	"github.com/spf13/cobra"
)

const targetHelp = `
TARGET may be empty (core stack), "all", a stack name or a service name.`

func newStartCmd(pathsGetter PathsGetter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start [target]",
		Short: "Start a stack or service (compose up -d)",
		Long: `Start containers with docker compose up -d.
` + targetHelp + `
With "all", stacks start in catalog order beginning with core.

Examples:
  homelab start               # Start the core stack
  homelab start monitoring    # Start the monitoring stack
  homelab start ollama        # Start one service
  homelab start all           # Start every stack`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, pathsGetter(), string(dispatch.ActionStart), argTarget(args), dispatch.Options{})
		},
	}

	return cmd
}

func newRestartCmd(pathsGetter PathsGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "restart [target]",
		Short: "Restart a stack or service",
		Long:  "Restart containers with docker compose restart.\n" + targetHelp,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, pathsGetter(), string(dispatch.ActionRestart), argTarget(args), dispatch.Options{})
		},
	}
}

func newUpdateCmd(pathsGetter PathsGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "update [target]",
		Short: "Pull newer images and recreate containers",
		Long: `Pull images and recreate containers (compose pull, then compose up -d).
` + targetHelp + `
The first failing step stops the update.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, pathsGetter(), string(dispatch.ActionUpdate), argTarget(args), dispatch.Options{})
		},
	}
}

func newPullCmd(pathsGetter PathsGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "pull [target]",
		Short: "Pull images without restarting",
		Long:  "Pull images with docker compose pull.\n" + targetHelp,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, pathsGetter(), string(dispatch.ActionPull), argTarget(args), dispatch.Options{})
		},
	}
}
