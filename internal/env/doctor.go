package env

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-version"
)

// MinComposeVersion is the oldest Compose release the CLI drives.
const MinComposeVersion = "2.0.0"

var minCompose = version.Must(version.NewVersion(MinComposeVersion))

// DoctorCheck represents a single dependency check
type DoctorCheck struct {
	Command  string // Command name
	Required bool   // true if required, false if optional
	Found    bool   // true if command is available
}

// DoctorResult holds the results of all checks
type DoctorResult struct {
	Target         string        // Target context (e.g., "start", "health")
	Checks         []DoctorCheck // All checks performed
	ComposeCommand string        // Compose front-end that was checked
	ComposeVersion string        // Detected Compose version ("" if unknown)
	ComposeError   string        // Why the version could not be detected
	ComposeOld     bool          // true if older than MinComposeVersion
	HasFailures    bool          // true if any required check failed
}

// RunDoctor performs dependency checking for target with the given compose front-end
func RunDoctor(target, composeCommand string) *DoctorResult {
	return runDoctor(target, NewToolDetector(), NewComposeDetector(composeCommand))
}

func runDoctor(target string, detector *ToolDetector, compose *ComposeDetector) *DoctorResult {
	var required, optional []string
	checkCompose := true

	switch target {
	case "health":
		// Probes only need the network
		optional = []string{"docker", "curl"}
		checkCompose = false

	case "ps":
		required = []string{"docker"}
		optional = []string{"curl"}
		checkCompose = false

	default:
		required = []string{"docker"}
		optional = []string{"curl"}
	}

	if checkCompose && compose.Command == "docker-compose" {
		required = append(required, "docker-compose")
	}

	result := &DoctorResult{
		Target:         target,
		ComposeCommand: compose.Command,
	}

	for _, cmd := range required {
		found := detector.IsInstalled(cmd)
		result.Checks = append(result.Checks, DoctorCheck{
			Command:  cmd,
			Required: true,
			Found:    found,
		})
		if !found {
			result.HasFailures = true
		}
	}

	for _, cmd := range optional {
		result.Checks = append(result.Checks, DoctorCheck{
			Command:  cmd,
			Required: false,
			Found:    detector.IsInstalled(cmd),
		})
	}

	if checkCompose && !result.HasFailures {
		v, err := compose.Version()
		if err != nil {
			result.ComposeError = err.Error()
			result.HasFailures = true
		} else {
			result.ComposeVersion = v.String()
			result.ComposeOld = v.LessThan(minCompose)
		}
	}

	return result
}

// Print writes the doctor check results to w
func (dr *DoctorResult) Print(w io.Writer) {
	targetStr := "general"
	if dr.Target != "" {
		targetStr = dr.Target
	}

	fmt.Fprintf(w, "==> Doctor (%s):\n", targetStr)

	for _, check := range dr.Checks {
		status := "OK  "
		msg := check.Command

		if !check.Found {
			if check.Required {
				status = "FAIL"
				msg = fmt.Sprintf("%s (required)", check.Command)
			} else {
				status = "WARN"
				msg = fmt.Sprintf("%s (optional)", check.Command)
			}
		}

		fmt.Fprintf(w, "  %s %s\n", status, msg)
	}

	switch {
	case dr.ComposeError != "":
		fmt.Fprintf(w, "  FAIL %s: %s\n", dr.ComposeCommand, dr.ComposeError)
		fmt.Fprintf(w, "       Fix: install the Docker Compose v2 plugin\n")
	case dr.ComposeOld:
		fmt.Fprintf(w, "  WARN %s version is %s (minimum: %s)\n", dr.ComposeCommand, dr.ComposeVersion, MinComposeVersion)
		fmt.Fprintf(w, "       Fix: upgrade Docker Compose\n")
	case dr.ComposeVersion != "":
		fmt.Fprintf(w, "  OK   %s %s\n", strings.TrimSpace(dr.ComposeCommand), dr.ComposeVersion)
	}
}

// ExitCode returns the appropriate exit code
// 0 if all required checks passed, 1 if any failed
func (dr *DoctorResult) ExitCode() int {
	if dr.HasFailures {
		return 1
	}
	return 0
}
