package compose

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/danieljhkim/homelab/internal/util"
)

// Supported compose front-ends.
const (
	CommandPlugin = "docker compose"
	CommandLegacy = "docker-compose"
)

// Invocation is one `docker compose -f <file>... <args>` call.
type Invocation struct {
	Dir   string   // Project directory; compose files are resolved against it
	Files []string // Compose files, in -f order
	Args  []string // Subcommand and its arguments
}

// Subcommand returns the compose verb (first arg), or "".
func (inv Invocation) Subcommand() string {
	if len(inv.Args) == 0 {
		return ""
	}
	return inv.Args[0]
}

// Argv renders the full command line for the given front-end.
func (inv Invocation) Argv(command string) []string {
	argv := strings.Fields(command)
	for _, f := range inv.Files {
		argv = append(argv, "-f", inv.resolve(f))
	}
	return append(argv, inv.Args...)
}

// String renders the invocation with the plugin front-end.
func (inv Invocation) String() string {
	return util.ShellJoin(inv.Argv(CommandPlugin))
}

func (inv Invocation) resolve(file string) string {
	if inv.Dir == "" || filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(inv.Dir, file)
}

// Runner executes compose invocations.
type Runner interface {
	Run(ctx context.Context, inv Invocation) error
}

// ExecRunner runs invocations as child processes with stdio attached.
type ExecRunner struct {
	Command string // "docker compose" or "docker-compose"
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// NewExecRunner creates a runner bound to the process stdio.
func NewExecRunner(command string) *ExecRunner {
	if command == "" {
		command = CommandPlugin
	}
	return &ExecRunner{
		Command: command,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Run executes inv and waits for it to exit.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) error {
	argv := inv.Argv(r.Command)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = inv.Dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", util.ShellJoin(argv), err)
	}
	return nil
}

// Recorder is a Runner that records invocations instead of executing them.
// FailOn makes Run return an error for the matching subcommand.
type Recorder struct {
	mu          sync.Mutex
	Invocations []Invocation
	FailOn      string
	Out         io.Writer // when set, each invocation is printed here
}

// Run records inv.
func (r *Recorder) Run(_ context.Context, inv Invocation) error {
	r.mu.Lock()
	r.Invocations = append(r.Invocations, inv)
	r.mu.Unlock()

	if r.Out != nil {
		fmt.Fprintln(r.Out, inv.String())
	}
	if r.FailOn != "" && inv.Subcommand() == r.FailOn {
		return fmt.Errorf("%s: exit status 1", inv.String())
	}
	return nil
}

// Calls returns a copy of the recorded invocations.
func (r *Recorder) Calls() []Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Invocation, len(r.Invocations))
	copy(out, r.Invocations)
	return out
}
