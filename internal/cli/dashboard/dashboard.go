package dashboard

import (
	"os"
	"os/exec"

	"github.com/danieljhkim/homelab/internal/catalog"
	"github.com/danieljhkim/homelab/internal/config"
	"github.com/danieljhkim/homelab/internal/containers"
	"github.com/danieljhkim/homelab/internal/service"
	"github.com/spf13/cobra"
)

// PathsGetter is a function that returns the Paths instance
type PathsGetter func() *config.Paths

// processName names the dashboard's PID and log files.
const processName = "dashboard"

// Seams replaced in tests.
var (
	loadCatalog = catalog.Load

	newContainerLister = func() (containers.Lister, error) {
		return containers.NewClient()
	}

	// serveCommand builds the detached `dashboard serve` child for start.
	serveCommand = func(paths *config.Paths, addr string) (*exec.Cmd, error) {
		exe, err := os.Executable()
		if err != nil {
			return nil, err
		}
		args := []string{}
		if paths.ProjectDir != "" {
			args = append(args, "--project-dir", paths.ProjectDir)
		}
		args = append(args, "dashboard", "serve", "--addr", addr)

		cmd := exec.Command(exe, args...)
		cmd.Env = append(os.Environ(), config.EnvHome+"="+paths.BaseDir)
		return cmd, nil
	}
)

func processManager(paths *config.Paths) *service.ProcessManager {
	dp := paths.DashboardPaths()
	return service.NewProcessManager(dp.PidsDir, dp.LogsDir)
}

// NewDashboardCmd creates the dashboard command with all subcommands
func NewDashboardCmd(pathsGetter PathsGetter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Read-only HTTP status API",
		Long: `Serve the service catalog and live probe results over HTTP.

Routes:
  GET /health                 liveness of the dashboard itself
  GET /api/stacks             stacks and their services
  GET /api/services[?target=] probe sweep (default: all)
  GET /api/services/{name}    probe one service
  GET /api/containers         compose containers from the Docker engine`,
	}

	cmd.AddCommand(newServeCmd(pathsGetter))
	cmd.AddCommand(newStartCmd(pathsGetter))
	cmd.AddCommand(newStopCmd(pathsGetter))
	cmd.AddCommand(newStatusCmd(pathsGetter))

	return cmd
}
