package service

import (
	"strings"

	"github.com/danieljhkim/homelab/internal/catalog"
	"github.com/danieljhkim/homelab/internal/config"
	"github.com/spf13/cobra"
)

// PathsGetter is a function that returns the Paths instance
type PathsGetter func() *config.Paths

// Global flag names, registered on the root command.
const (
	FlagDryRun  = "dry-run"
	FlagTimeout = "timeout"
)

// NewLifecycleCmds creates start, stop, restart, status, logs, update, pull, reset and health
func NewLifecycleCmds(pathsGetter PathsGetter) []*cobra.Command {
	cmds := []*cobra.Command{
		newStartCmd(pathsGetter),
		newStopCmd(pathsGetter),
		newRestartCmd(pathsGetter),
		newStatusCmd(pathsGetter),
		newLogsCmd(pathsGetter),
		newUpdateCmd(pathsGetter),
		newPullCmd(pathsGetter),
		newResetCmd(pathsGetter),
		newHealthCmd(pathsGetter),
	}
	for _, c := range cmds {
		c.ValidArgsFunction = completeTarget(pathsGetter)
	}
	return cmds
}

// completeTarget offers "all", stack names and service names for the single target argument
func completeTarget(pathsGetter PathsGetter) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		cat, err := loadCatalog(pathsGetter().CatalogFile())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		candidates := []string{catalog.AllTarget}
		for _, st := range cat.Stacks {
			candidates = append(candidates, st.Name)
		}
		candidates = append(candidates, cat.SortedServiceNames()...)

		var matches []string
		for _, c := range candidates {
			if strings.HasPrefix(c, toComplete) {
				matches = append(matches, c)
			}
		}
		return matches, cobra.ShellCompDirectiveNoFileComp
	}
}

// NewStackCmds creates one command per optional stack of the built-in catalog
func NewStackCmds(pathsGetter PathsGetter) []*cobra.Command {
	var cmds []*cobra.Command
	for _, st := range catalog.Default().OptionalStacks() {
		cmds = append(cmds, newStackCmd(pathsGetter, st))
	}
	return cmds
}

// NewStacksCmd creates the stacks listing command
func NewStacksCmd(pathsGetter PathsGetter) *cobra.Command {
	return newStacksCmd(pathsGetter)
}
