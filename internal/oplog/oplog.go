// Package oplog writes the dispatcher's append-only operations log.
package oplog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// appendFile is a zapcore.WriteSyncer that opens, appends and closes the
// file on every write; no descriptor outlives a single log entry.
type appendFile struct {
	mu   sync.Mutex
	path string
}

func (f *appendFile) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return 0, fmt.Errorf("failed to create log directory: %w", err)
	}
	fh, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}
	n, werr := fh.Write(p)
	cerr := fh.Close()
	if werr != nil {
		return n, werr
	}
	return n, cerr
}

func (f *appendFile) Sync() error { return nil }

// New returns a JSON-lines logger appending to path.
func New(path string) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		&appendFile{path: path},
		zap.DebugLevel,
	)
	// Logging must never fail an operation; write errors go nowhere.
	return zap.New(core, zap.ErrorOutput(zapcore.AddSync(nopWriter{})))
}

// Console returns a human-readable logger writing to w, used by long-running
// commands whose output lands in their own log file.
func Console(w io.Writer) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.InfoLevel,
	)
	return zap.New(core)
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
