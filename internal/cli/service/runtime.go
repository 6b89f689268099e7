package service

import (
	"fmt"
	"time"

	"github.com/danieljhkim/homelab/internal/catalog"
	"github.com/danieljhkim/homelab/internal/compose"
	"github.com/danieljhkim/homelab/internal/config"
	"github.com/danieljhkim/homelab/internal/dispatch"
	"github.com/danieljhkim/homelab/internal/oplog"
	"github.com/danieljhkim/homelab/internal/probe"
	"github.com/danieljhkim/homelab/internal/util"
	"github.com/spf13/cobra"
)

// Seams replaced in tests.
var (
	loadCatalog = catalog.Load

	newRunner = func(cmd *cobra.Command, command string) compose.Runner {
		r := compose.NewExecRunner(command)
		r.Stdin = cmd.InOrStdin()
		r.Stdout = cmd.OutOrStdout()
		r.Stderr = cmd.ErrOrStderr()
		return r
	}
)

type runtime struct {
	paths    *config.Paths
	settings *config.Settings
	catalog  *catalog.Catalog
	dryRun   bool
	timeout  time.Duration
}

func loadRuntime(cmd *cobra.Command, paths *config.Paths) (*runtime, error) {
	settings, err := config.NewSettingsManager(paths).LoadOrDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	cat, err := loadCatalog(paths.CatalogFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	// Absent when a command runs outside the root command (tests).
	dryRun, _ := cmd.Flags().GetBool(FlagDryRun)
	timeout, _ := cmd.Flags().GetDuration(FlagTimeout)
	if timeout <= 0 {
		timeout = settings.Timeout()
	}

	return &runtime{
		paths:    paths,
		settings: settings,
		catalog:  cat,
		dryRun:   dryRun,
		timeout:  timeout,
	}, nil
}

func (rt *runtime) dispatcher(cmd *cobra.Command) *dispatch.Dispatcher {
	var runner compose.Runner
	if rt.dryRun {
		runner = &compose.Recorder{Out: cmd.OutOrStdout()}
	} else {
		runner = newRunner(cmd, rt.settings.ComposeCommand)
	}

	return &dispatch.Dispatcher{
		Catalog: rt.catalog,
		Runner:  runner,
		Prober:  probe.New(rt.settings.Host, rt.timeout),
		Logger:  oplog.New(rt.paths.LogFile()),
		In:      cmd.InOrStdin(),
		Out:     cmd.OutOrStdout(),
		DryRun:  rt.dryRun,
	}
}

// runAction dispatches token against target and prints the probe table when the action sweeps.
func runAction(cmd *cobra.Command, paths *config.Paths, token, target string, opts dispatch.Options) error {
	rt, err := loadRuntime(cmd, paths)
	if err != nil {
		return err
	}

	action, err := dispatch.ParseAction(rt.catalog, token)
	if err != nil {
		return err
	}

	opts.Dir = paths.ProjectDir
	if opts.Dir == "" && !rt.dryRun && action != dispatch.ActionHealth {
		return fmt.Errorf("project directory not found (use --project-dir or: homelab setting set project-dir <dir>)")
	}
	if opts.Tail == 0 {
		opts.Tail = rt.settings.LogTail
	}

	d := rt.dispatcher(cmd)
	defer func() { _ = d.Logger.Sync() }()

	out := cmd.OutOrStdout()
	heading := string(action)
	if opts.SubVerb != "" {
		heading += " " + opts.SubVerb
	}
	util.Section(out, "%s %s", heading, describeTarget(action, target))

	report, err := d.Dispatch(cmd.Context(), action, target, opts)
	if err != nil {
		return err
	}
	if action.Probes() {
		printProbes(cmd, report)
	}
	return nil
}

func describeTarget(action dispatch.Action, target string) string {
	switch {
	case target != "":
		return target
	case action == dispatch.ActionHealth:
		return catalog.AllTarget
	case !action.IsLifecycle():
		return string(action)
	default:
		return catalog.CoreStack
	}
}

func printProbes(cmd *cobra.Command, report *dispatch.Report) {
	out := cmd.OutOrStdout()
	rows := make([]util.StatusTableRow, 0, len(report.Results))
	for _, r := range report.Results {
		detail := r.Detail
		if r.Reachable {
			detail = fmt.Sprintf("%s (%dms)", r.Detail, r.LatencyMs)
		}
		rows = append(rows, util.StatusTableRow{
			Name:   r.Service,
			Status: r.State(),
			Detail: detail,
			Ok:     r.Reachable,
		})
	}

	fmt.Fprintln(out)
	util.StatusTable(out, rows)
	fmt.Fprintln(out, report.Summary().String())
}

func argTarget(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
