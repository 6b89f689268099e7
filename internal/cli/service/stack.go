package service

import (
	"fmt"
	"strings"

	"github.com/danieljhkim/homelab/internal/catalog"
	"github.com/danieljhkim/homelab/internal/dispatch"
	"github.com/danieljhkim/homelab/internal/util"
	"github.com/spf13/cobra"
)

func newStackCmd(pathsGetter PathsGetter, st catalog.Stack) *cobra.Command {
	var opts dispatch.Options

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s [%s] [service]", st.Name, strings.Join(dispatch.StackVerbs, "|")),
		Short: fmt.Sprintf("Manage the %s stack (%s)", st.Name, st.File),
		Long: fmt.Sprintf(`%s

Runs docker compose against %s. Without a verb the stack is brought up
(compose up -d). A service name narrows the verb to one container.

Examples:
  homelab %[3]s              # compose up -d
  homelab %[3]s logs -f      # follow the stack's logs
  homelab %[3]s down         # take the stack down`, st.Description, st.File, st.Name),
		Args:      cobra.MaximumNArgs(2),
		ValidArgs: dispatch.StackVerbs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := opts
			if len(args) > 0 {
				o.SubVerb = args[0]
			}
			target := ""
			if len(args) > 1 {
				target = args[1]
			}
			return runAction(cmd, pathsGetter(), st.Name, target, o)
		},
	}

	addLogFlags(cmd, &opts)
	return cmd
}

func newStacksCmd(pathsGetter PathsGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "stacks",
		Short: "List stacks and their services",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := pathsGetter()
			cat, err := loadCatalog(paths.CatalogFile())
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}

			out := cmd.OutOrStdout()
			for i, st := range cat.Stacks {
				if i > 0 {
					fmt.Fprintln(out)
				}
				kind := "core"
				if st.Optional {
					kind = "optional"
				}
				util.Section(out, "%s (%s, %s)", st.Name, st.File, kind)

				var rows []util.StatusTableRow
				for _, svc := range cat.ServicesIn(st.Name) {
					rows = append(rows, util.StatusTableRow{
						Name:   svc.Name,
						Status: string(svc.Method),
						Detail: fmt.Sprintf(":%d%s", svc.Port, svc.Path),
						Ok:     true,
					})
				}
				util.StatusTable(out, rows)
			}
			return nil
		},
	}
}
