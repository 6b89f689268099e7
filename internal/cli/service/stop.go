package service

import (
	"github.com/danieljhkim/homelab/internal/dispatch"
	"github.com/spf13/cobra"
)

func newStopCmd(pathsGetter PathsGetter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop [target]",
		Short: "Stop a stack or service",
		Long: `Stop containers.

A stack is taken down with docker compose down; a single service is stopped
with docker compose stop <service>.
` + targetHelp + `
With "all", stacks stop in reverse catalog order so core goes last.

Examples:
  homelab stop                # Stop the core stack
  homelab stop geth           # Stop one service
  homelab stop all            # Stop everything`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, pathsGetter(), string(dispatch.ActionStop), argTarget(args), dispatch.Options{})
		},
	}

	return cmd
}

func newResetCmd(pathsGetter PathsGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "reset [stack]",
		Short: "Remove containers and volumes (destructive)",
		Long: `Remove containers, named volumes and orphans with docker compose down -v --remove-orphans.

Nothing runs until you type 'yes' at the prompt. Any other answer aborts.
TARGET may be empty (core stack), "all" or a stack name.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, pathsGetter(), string(dispatch.ActionReset), argTarget(args), dispatch.Options{})
		},
	}
}
