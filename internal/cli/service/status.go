package service

import (
	"github.com/danieljhkim/homelab/internal/dispatch"
	"github.com/spf13/cobra"
)

func newStatusCmd(pathsGetter PathsGetter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [target]",
		Short: "Show container state and probe services",
		Long: `Show container state (docker compose ps), then probe each selected service.

A service counts as running when anything answers on its port, whatever the
HTTP status. Services that are down are reported, never treated as errors.
` + targetHelp,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, pathsGetter(), string(dispatch.ActionStatus), argTarget(args), dispatch.Options{})
		},
	}

	return cmd
}

func newHealthCmd(pathsGetter PathsGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "health [target]",
		Short: "Probe services without touching containers",
		Long: `Probe every service in the catalog (or the given target) and print a summary.

No docker compose command is run. TARGET defaults to "all".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, pathsGetter(), string(dispatch.ActionHealth), argTarget(args), dispatch.Options{})
		},
	}
}

func newLogsCmd(pathsGetter PathsGetter) *cobra.Command {
	var opts dispatch.Options

	cmd := &cobra.Command{
		Use:   "logs [target]",
		Short: "Show container logs",
		Long: `Show container logs with docker compose logs.
` + targetHelp + `
--follow needs a single stack or service.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, pathsGetter(), string(dispatch.ActionLogs), argTarget(args), opts)
		},
	}

	addLogFlags(cmd, &opts)
	return cmd
}

func addLogFlags(cmd *cobra.Command, opts *dispatch.Options) {
	cmd.Flags().IntVar(&opts.Tail, "tail", 0, "Number of lines to show (default: log-tail setting)")
	cmd.Flags().BoolVarP(&opts.Follow, "follow", "f", false, "Follow log output")
}
