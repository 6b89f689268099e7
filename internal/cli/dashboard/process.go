package dashboard

import (
	"fmt"

	dashboardpkg "github.com/danieljhkim/homelab/internal/dashboard"
	"github.com/danieljhkim/homelab/internal/util"
	"github.com/spf13/cobra"
)

func newStartCmd(pathsGetter PathsGetter) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the dashboard in the background",
		Long: `Start "homelab dashboard serve" as a detached background process.

The PID is recorded under $HOMELAB_HOME/state/dashboard/pids and output goes
to $HOMELAB_HOME/state/dashboard/logs/dashboard.log.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := pathsGetter()
			pm := processManager(paths)

			child, err := serveCommand(paths, addr)
			if err != nil {
				return fmt.Errorf("failed to build dashboard command: %w", err)
			}

			pid, err := pm.Start(processName, child)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			util.Success(out, "Dashboard started (pid %d) on http://%s", pid, addr)
			util.Log(out, "Logs: %s", pm.LogFile(processName))
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", dashboardpkg.DefaultAddr, "Listen address")
	return cmd
}

func newStopCmd(pathsGetter PathsGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the background dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := processManager(pathsGetter()).Stop(processName)
			if err != nil {
				return err
			}
			if pid == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Dashboard is not running")
				return nil
			}
			util.Success(cmd.OutOrStdout(), "Dashboard stopped (pid %d)", pid)
			return nil
		},
	}
}

func newStatusCmd(pathsGetter PathsGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the background dashboard is running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := processManager(pathsGetter()).Describe(processName)
			if err != nil {
				return err
			}

			row := util.StatusTableRow{Name: st.Name, Status: "not running", Ok: false}
			if st.Running {
				row.Status = "running"
				row.Detail = fmt.Sprintf("pid %d, log %s", st.PID, st.LogFile)
				row.Ok = true
			}
			util.StatusTable(cmd.OutOrStdout(), []util.StatusTableRow{row})
			return nil
		},
	}
}
