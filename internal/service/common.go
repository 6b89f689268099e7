package service

// ProcessStatus represents the status of a background process started by the CLI
type ProcessStatus struct {
	Name    string `json:"name"`    // Process name (e.g., "dashboard")
	Running bool   `json:"running"` // true if running
	PID     int    `json:"pid"`     // Process ID (0 if not running)
	LogFile string `json:"log_file"`
}
