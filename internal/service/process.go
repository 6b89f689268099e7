package service

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// DefaultSettle is how long Start waits before checking the child is still alive.
const DefaultSettle = time.Second

// ProcessManager handles process lifecycle management
// Manages PID files, process start/stop, and status checking
type ProcessManager struct {
	PidDir string        // Directory for PID files
	LogDir string        // Directory for log files
	Settle time.Duration // Wait after start before the liveness check
}

// NewProcessManager creates a new process manager
func NewProcessManager(pidDir, logDir string) *ProcessManager {
	return &ProcessManager{
		PidDir: pidDir,
		LogDir: logDir,
		Settle: DefaultSettle,
	}
}

// PidFile returns the PID file path for name
func (pm *ProcessManager) PidFile(name string) string {
	return filepath.Join(pm.PidDir, name+".pid")
}

// LogFile returns the log file path for name
func (pm *ProcessManager) LogFile(name string) string {
	return filepath.Join(pm.LogDir, name+".log")
}

// Start starts a detached process and writes its PID to a file.
// It refuses to start a second copy while the recorded PID is alive.
func (pm *ProcessManager) Start(name string, cmd *exec.Cmd) (int, error) {
	if pid, _ := pm.Status(name); pid != 0 {
		return 0, fmt.Errorf("%s already running (pid %d)", name, pid)
	}

	// Ensure directories exist
	if err := os.MkdirAll(pm.PidDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create PID directory: %w", err)
	}
	if err := os.MkdirAll(pm.LogDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := pm.LogFile(name)
	logf, err := os.OpenFile(logPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}

	// Redirect stdout and stderr to log file, detach from our session
	cmd.Stdout = logf
	cmd.Stderr = logf
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		logf.Close()
		return 0, fmt.Errorf("failed to start process: %w", err)
	}

	pid := cmd.Process.Pid

	// Close log file in parent (child has its own descriptor)
	logf.Close()

	if err := os.WriteFile(pm.PidFile(name), []byte(strconv.Itoa(pid)), 0644); err != nil {
		return 0, fmt.Errorf("failed to write PID file: %w", err)
	}

	// Reap the child in the background so an early exit is visible to the check below.
	exited := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	select {
	case <-exited:
		os.Remove(pm.PidFile(name))
		return 0, fmt.Errorf("process %s failed to stay running (check logs: %s)", name, logPath)
	case <-time.After(pm.Settle):
	}

	return pid, nil
}

// Stop sends SIGTERM to the recorded process and removes its PID file.
// It returns the PID that was signalled, or 0 if nothing was running.
func (pm *ProcessManager) Stop(name string) (int, error) {
	pid, err := pm.readPID(name)
	if err != nil || pid == 0 {
		return 0, err
	}

	stopped := 0
	if isProcessRunning(pid) {
		process, err := os.FindProcess(pid)
		if err != nil {
			return 0, fmt.Errorf("failed to find process: %w", err)
		}

		if err := process.Signal(syscall.SIGTERM); err != nil && err != syscall.ESRCH && !strings.Contains(err.Error(), "process already finished") {
			return 0, fmt.Errorf("failed to send SIGTERM: %w", err)
		}
		stopped = pid
	}

	if err := os.Remove(pm.PidFile(name)); err != nil && !os.IsNotExist(err) {
		return 0, fmt.Errorf("failed to remove PID file: %w", err)
	}

	return stopped, nil
}

// Status returns the PID if the process is running, 0 otherwise.
// A stale PID file is removed.
func (pm *ProcessManager) Status(name string) (int, error) {
	pid, err := pm.readPID(name)
	if err != nil || pid == 0 {
		return 0, err
	}

	if isProcessRunning(pid) {
		return pid, nil
	}

	os.Remove(pm.PidFile(name))
	return 0, nil
}

// Describe reports name's state for display
func (pm *ProcessManager) Describe(name string) (ProcessStatus, error) {
	pid, err := pm.Status(name)
	if err != nil {
		return ProcessStatus{Name: name}, err
	}
	return ProcessStatus{
		Name:    name,
		Running: pid != 0,
		PID:     pid,
		LogFile: pm.LogFile(name),
	}, nil
}

func (pm *ProcessManager) readPID(name string) (int, error) {
	data, err := os.ReadFile(pm.PidFile(name))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read PID file: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in file: %w", err)
	}
	return pid, nil
}

// isProcessRunning checks if a process with the given PID is running
// Uses kill -0 signal to check without actually killing the process
func isProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = process.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}

	// ESRCH means process doesn't exist
	if err == syscall.ESRCH {
		return false
	}

	// os.ErrProcessDone for a child we already reaped
	if err == os.ErrProcessDone {
		return false
	}

	// Other errors (like EPERM) mean process exists but we can't signal it
	return true
}
