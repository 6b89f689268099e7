package env

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func fakeTools(installed ...string) *ToolDetector {
	set := make(map[string]bool)
	for _, name := range installed {
		set[name] = true
	}
	return &ToolDetector{lookPath: func(name string) (string, error) {
		if set[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}}
}

func fakeCompose(command, output string, err error) *ComposeDetector {
	return &ComposeDetector{
		Command: command,
		run: func(name string, args ...string) ([]byte, error) {
			return []byte(output), err
		},
	}
}

func findCheck(result *DoctorResult, command string) (DoctorCheck, bool) {
	for _, check := range result.Checks {
		if check.Command == command {
			return check, true
		}
	}
	return DoctorCheck{}, false
}

func TestRunDoctor_General(t *testing.T) {
	result := runDoctor("", fakeTools("docker", "curl"), fakeCompose("docker compose", "v2.27.0\n", nil))

	if result.Target != "" {
		t.Errorf("Target = %q, want empty string", result.Target)
	}
	check, ok := findCheck(result, "docker")
	if !ok || !check.Required || !check.Found {
		t.Errorf("docker check = %+v, found=%v", check, ok)
	}
	check, ok = findCheck(result, "curl")
	if !ok || check.Required {
		t.Errorf("curl should be optional: %+v", check)
	}
	if result.ComposeVersion != "2.27.0" {
		t.Errorf("ComposeVersion = %q", result.ComposeVersion)
	}
	if result.ComposeOld || result.HasFailures {
		t.Errorf("unexpected failure: %+v", result)
	}
}

func TestRunDoctor_MissingDocker(t *testing.T) {
	called := false
	compose := fakeCompose("docker compose", "2.27.0", nil)
	compose.run = func(string, ...string) ([]byte, error) {
		called = true
		return nil, nil
	}

	result := runDoctor("", fakeTools("curl"), compose)
	if !result.HasFailures || result.ExitCode() != 1 {
		t.Fatalf("missing docker should fail: %+v", result)
	}
	if called {
		t.Error("compose version should not run without docker")
	}
}

func TestRunDoctor_OptionalMissingIsNotFailure(t *testing.T) {
	result := runDoctor("", fakeTools("docker"), fakeCompose("docker compose", "2.1.0", nil))
	if result.HasFailures {
		t.Fatalf("missing curl must not fail: %+v", result)
	}

	var out bytes.Buffer
	result.Print(&out)
	if !strings.Contains(out.String(), "WARN curl (optional)") {
		t.Errorf("output missing optional warning:\n%s", out.String())
	}
}

func TestRunDoctor_ComposeVersion(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		err      error
		old      bool
		failures bool
	}{
		{name: "current", output: "2.24.6"},
		{name: "v prefix", output: "v2.0.0"},
		{name: "legacy v1", output: "1.29.2", old: true},
		{name: "garbage", output: "unknown flag: --short", failures: true},
		{name: "plugin missing", err: errors.New("exit status 125"), failures: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := runDoctor("start", fakeTools("docker"), fakeCompose("docker compose", tt.output, tt.err))
			if result.ComposeOld != tt.old {
				t.Errorf("ComposeOld = %v, want %v", result.ComposeOld, tt.old)
			}
			if result.HasFailures != tt.failures {
				t.Errorf("HasFailures = %v, want %v (%s)", result.HasFailures, tt.failures, result.ComposeError)
			}
		})
	}
}

func TestRunDoctor_LegacyComposeRequiresBinary(t *testing.T) {
	result := runDoctor("", fakeTools("docker"), fakeCompose("docker-compose", "1.29.2", nil))

	check, ok := findCheck(result, "docker-compose")
	if !ok || !check.Required || check.Found {
		t.Fatalf("docker-compose check = %+v, found=%v", check, ok)
	}
	if !result.HasFailures {
		t.Error("missing docker-compose should fail")
	}
}

func TestRunDoctor_HealthNeedsNothing(t *testing.T) {
	result := runDoctor("health", fakeTools(), fakeCompose("docker compose", "", errors.New("boom")))
	if result.HasFailures {
		t.Fatalf("health has no required tools: %+v", result)
	}
	if result.ComposeVersion != "" || result.ComposeError != "" {
		t.Errorf("health should skip the compose check: %+v", result)
	}
}

func TestDoctorResult_ExitCode(t *testing.T) {
	tests := []struct {
		name         string
		hasFailures  bool
		expectedCode int
	}{
		{
			name:         "no failures",
			hasFailures:  false,
			expectedCode: 0,
		},
		{
			name:         "with failures",
			hasFailures:  true,
			expectedCode: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &DoctorResult{
				HasFailures: tt.hasFailures,
			}

			code := result.ExitCode()
			if code != tt.expectedCode {
				t.Errorf("ExitCode() = %d, want %d", code, tt.expectedCode)
			}
		})
	}
}
