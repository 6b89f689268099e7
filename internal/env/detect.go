package env

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-version"
)

// ToolDetector provides generic command detection
type ToolDetector struct {
	lookPath func(string) (string, error)
}

// NewToolDetector creates a new tool detector
func NewToolDetector() *ToolDetector {
	return &ToolDetector{lookPath: exec.LookPath}
}

// IsInstalled checks if a command is available in PATH
func (t *ToolDetector) IsInstalled(command string) bool {
	_, err := t.lookPath(command)
	return err == nil
}

// ComposeDetector handles Docker Compose version detection
type ComposeDetector struct {
	Command string // "docker compose" or "docker-compose"
	run     func(name string, args ...string) ([]byte, error)
}

// NewComposeDetector creates a detector for the given compose front-end
func NewComposeDetector(command string) *ComposeDetector {
	if command == "" {
		command = "docker compose"
	}
	return &ComposeDetector{
		Command: command,
		run: func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).Output()
		},
	}
}

// Version returns the installed Compose version
// Parses output from: docker compose version --short (e.g. "2.27.0" or "v2.27.0")
func (c *ComposeDetector) Version() (*version.Version, error) {
	argv := append(strings.Fields(c.Command), "version", "--short")
	output, err := c.run(argv[0], argv[1:]...)
	if err != nil {
		return nil, fmt.Errorf("%s version: %w", c.Command, err)
	}

	raw := strings.TrimSpace(string(output))
	v, err := version.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("unrecognized %s version %q: %w", c.Command, raw, err)
	}
	return v, nil
}
