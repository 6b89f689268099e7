package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHost           = "127.0.0.1"
	defaultProbeTimeout   = "3s"
	defaultComposeCommand = "docker compose"
	defaultLogTail        = 100

	maxProbeTimeout = time.Minute
)

// SettingKeys lists the user-settable keys in display order.
var SettingKeys = []string{"project-dir", "host", "probe-timeout", "compose-command", "log-tail"}

// Settings holds persisted user-configurable settings.
type Settings struct {
	ProjectDir     string `json:"project-dir"`
	Host           string `json:"host"`
	ProbeTimeout   string `json:"probe-timeout"`
	ComposeCommand string `json:"compose-command"`
	LogTail        int    `json:"log-tail"`
}

// Timeout returns the parsed probe timeout.
func (s *Settings) Timeout() time.Duration {
	d, err := time.ParseDuration(s.ProbeTimeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(defaultProbeTimeout)
	}
	return d
}

// Get returns the string form of a setting, or "" for unknown keys.
func (s *Settings) Get(key string) string {
	switch key {
	case "project-dir":
		return s.ProjectDir
	case "host":
		return s.Host
	case "probe-timeout":
		return s.ProbeTimeout
	case "compose-command":
		return s.ComposeCommand
	case "log-tail":
		return strconv.Itoa(s.LogTail)
	default:
		return ""
	}
}

// Set assigns a setting from its string form. Values are validated by sanitize.
func (s *Settings) Set(key, value string) error {
	switch key {
	case "project-dir":
		s.ProjectDir = value
	case "host":
		s.Host = value
	case "probe-timeout":
		s.ProbeTimeout = value
	case "compose-command":
		s.ComposeCommand = value
	case "log-tail":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("log-tail must be an integer: %q", value)
		}
		s.LogTail = n
	default:
		return fmt.Errorf("unknown setting key %q (supported: %s)", key, strings.Join(SettingKeys, ", "))
	}
	return sanitize(s)
}

// SettingsManager handles settings persistence.
type SettingsManager struct {
	paths *Paths
}

// NewSettingsManager creates a settings manager.
func NewSettingsManager(paths *Paths) *SettingsManager {
	return &SettingsManager{paths: paths}
}

// Path returns the settings file path.
func (sm *SettingsManager) Path() string {
	return sm.paths.SettingsFile()
}

// Load reads settings from disk.
func (sm *SettingsManager) Load() (*Settings, error) {
	data, err := os.ReadFile(sm.Path())
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := sanitize(&settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// Save writes settings to disk.
func (sm *SettingsManager) Save(settings *Settings) error {
	if settings == nil {
		return fmt.Errorf("settings required")
	}
	if err := sanitize(settings); err != nil {
		return err
	}

	if err := os.MkdirAll(sm.paths.SettingsDir(), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(sm.Path(), append(data, '\n'), 0644); err != nil {
		return err
	}

	return nil
}

// LoadOrDefault reads settings if available, otherwise returns runtime defaults.
func (sm *SettingsManager) LoadOrDefault() (*Settings, error) {
	settings, err := sm.Load()
	if err == nil {
		return settings, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	return DefaultSettings(sm.paths.ProjectDir), nil
}

// DefaultSettings returns the settings used when none are persisted.
func DefaultSettings(projectDir string) *Settings {
	return &Settings{
		ProjectDir:     projectDir,
		Host:           defaultHost,
		ProbeTimeout:   defaultProbeTimeout,
		ComposeCommand: defaultComposeCommand,
		LogTail:        defaultLogTail,
	}
}

func sanitize(settings *Settings) error {
	if settings == nil {
		return fmt.Errorf("settings required")
	}
	settings.ProjectDir = strings.TrimSpace(settings.ProjectDir)

	settings.Host = strings.TrimSpace(settings.Host)
	if settings.Host == "" {
		settings.Host = defaultHost
	}

	settings.ProbeTimeout = strings.TrimSpace(settings.ProbeTimeout)
	if settings.ProbeTimeout == "" {
		settings.ProbeTimeout = defaultProbeTimeout
	}
	d, err := time.ParseDuration(settings.ProbeTimeout)
	if err != nil {
		return fmt.Errorf("invalid probe-timeout %q: %w", settings.ProbeTimeout, err)
	}
	if d <= 0 || d > maxProbeTimeout {
		return fmt.Errorf("probe-timeout %s out of range (0, %s]", d, maxProbeTimeout)
	}

	settings.ComposeCommand = strings.Join(strings.Fields(settings.ComposeCommand), " ")
	switch settings.ComposeCommand {
	case "":
		settings.ComposeCommand = defaultComposeCommand
	case "docker compose", "docker-compose":
	default:
		return fmt.Errorf("unsupported compose-command %q (supported: \"docker compose\", docker-compose)", settings.ComposeCommand)
	}

	if settings.LogTail < 0 {
		return fmt.Errorf("log-tail must be >= 0, got %d", settings.LogTail)
	}
	if settings.LogTail == 0 {
		settings.LogTail = defaultLogTail
	}
	return nil
}
