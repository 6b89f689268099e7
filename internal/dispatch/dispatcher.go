package dispatch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/danieljhkim/homelab/internal/catalog"
	"github.com/danieljhkim/homelab/internal/compose"
	"github.com/danieljhkim/homelab/internal/oplog"
	"github.com/danieljhkim/homelab/internal/probe"
)

// ConfirmToken must be typed to run a destructive action.
const ConfirmToken = "yes"

// Dispatcher runs plans through a Compose runner, one invocation at a time.
type Dispatcher struct {
	Catalog *catalog.Catalog
	Runner  compose.Runner
	Prober  *probe.Prober
	Logger  *zap.Logger
	In      io.Reader // confirmation input
	Out     io.Writer // confirmation prompt
	DryRun  bool
}

// Report is what a dispatch did.
type Report struct {
	Plan    *Plan
	Ran     int
	Results []probe.Result
}

// Summary tallies the probe results.
func (r *Report) Summary() probe.Summary {
	return probe.Summarize(r.Results)
}

// Dispatch plans action against target and executes it. The first failing
// invocation aborts the rest and its error is returned.
func (d *Dispatcher) Dispatch(ctx context.Context, action Action, target string, opts Options) (*Report, error) {
	log := d.logger().With(
		zap.String("action", string(action)),
		zap.String("target", target),
		zap.Bool("dry_run", d.DryRun),
	)

	plan, err := BuildPlan(d.Catalog, action, target, opts)
	if err != nil {
		log.Warn("rejected", zap.Error(err))
		return nil, err
	}
	log = log.With(zap.Strings("stacks", plan.Stacks()))
	log.Info("dispatch", zap.Int("invocations", len(plan.Invocations)))

	report := &Report{Plan: plan}

	if action.Destructive() && !d.DryRun {
		if err := d.confirm(plan); err != nil {
			log.Warn("aborted", zap.Error(err))
			return report, err
		}
	}

	for _, inv := range plan.Invocations {
		start := time.Now()
		err := d.Runner.Run(ctx, inv)
		fields := []zap.Field{
			zap.String("invocation", inv.String()),
			zap.Duration("elapsed", time.Since(start)),
		}
		if err != nil {
			log.Error("invocation failed", append(fields, zap.Error(err))...)
			return report, fmt.Errorf("%s %s: %w", action, strings.Join(plan.Stacks(), ","), err)
		}
		report.Ran++
		log.Info("invocation ok", fields...)
	}

	if targets := plan.Probes(d.Catalog); len(targets) > 0 && d.Prober != nil {
		report.Results = d.Prober.Sweep(ctx, targets)
		sum := report.Summary()
		log.Info("probe sweep", zap.Int("healthy", sum.Healthy), zap.Int("total", sum.Total))
	}

	log.Info("done", zap.Int("ran", report.Ran))
	return report, nil
}

// confirm reads one line and requires it to equal ConfirmToken after trimming.
func (d *Dispatcher) confirm(plan *Plan) error {
	if d.Out != nil {
		fmt.Fprintf(d.Out, "This removes containers AND volumes for: %s\n", strings.Join(plan.Stacks(), ", "))
		fmt.Fprintf(d.Out, "Type '%s' to continue: ", ConfirmToken)
	}
	if d.In == nil {
		return ErrNotConfirmed
	}

	line, err := bufio.NewReader(d.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("read confirmation: %w", err)
	}
	if strings.TrimSpace(line) != ConfirmToken {
		return ErrNotConfirmed
	}
	return nil
}

func (d *Dispatcher) logger() *zap.Logger {
	if d.Logger == nil {
		return oplog.Nop()
	}
	return d.Logger
}
