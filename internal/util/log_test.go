package util

import (
	"bytes"
	"strings"
	"testing"
)

func TestStatusTable_AlignsColumns(t *testing.T) {
	var buf bytes.Buffer
	StatusTable(&buf, []StatusTableRow{
		{Name: "jellyfin", Status: "running", Detail: ":8096", Ok: true},
		{Name: "prometheus", Status: "not running", Detail: ":9090", Ok: false},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	// Buffers are never colorized.
	if strings.Contains(buf.String(), "\033[") {
		t.Fatalf("unexpected ANSI codes in non-TTY output: %q", buf.String())
	}
	if strings.Index(lines[0], ":8096") != strings.Index(lines[1], ":9090") {
		t.Errorf("detail columns misaligned:\n%s", buf.String())
	}
}

func TestStatusTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	StatusTable(&buf, nil)
	if buf.Len() != 0 {
		t.Errorf("StatusTable(nil) wrote %q", buf.String())
	}
}

func TestSection(t *testing.T) {
	var buf bytes.Buffer
	Section(&buf, "start %s", "core")
	if got := buf.String(); got != "==> start core\n" {
		t.Errorf("Section() = %q", got)
	}
}

func TestMessages_PlainOnBuffers(t *testing.T) {
	tests := []struct {
		name string
		fn   func(w *bytes.Buffer)
		want string
	}{
		{"log", func(w *bytes.Buffer) { Log(w, "loading %s", "catalog") }, "==> loading catalog\n"},
		{"success", func(w *bytes.Buffer) { Success(w, "started") }, "==> started\n"},
		{"warn", func(w *bytes.Buffer) { Warn(w, "no docker-compose.yml in %s", "/srv") }, "WARN: no docker-compose.yml in /srv\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.fn(&buf)
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
