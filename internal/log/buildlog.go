package log

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// BuildLog is the per-package append-only sink described in spec §3/§9:
// every subprocess's interleaved stdout/stderr is appended to it, flushed
// on every line so operators can tail it live. It is a plain *os.File
// opened with O_APPEND, never buffered beyond the OS page cache.
type BuildLog struct {
	mu   sync.Mutex
	file *os.File
}

// OpenBuildLog opens (creating if necessary) the append-only log file at path.
func OpenBuildLog(path string) (*BuildLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open build log %s: %w", path, err)
	}
	return &BuildLog{file: f}, nil
}

// Write implements io.Writer so a BuildLog can be handed directly to
// exec.Cmd.Stdout / exec.Cmd.Stderr for interleaved subprocess capture.
func (b *BuildLog) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, err := b.file.Write(p)
	if err == nil {
		err = b.file.Sync()
	}
	return n, err
}

// Line appends a single timestamped log line, flushing immediately.
func (b *BuildLog) Line(stage, msg string) error {
	_, err := b.Write([]byte(fmt.Sprintf("[%s] %s: %s\n", time.Now().UTC().Format(time.RFC3339), stage, msg)))
	return err
}

// Close flushes and releases the underlying file. Safe to call on a nil
// receiver (no-op), matching the nil-safe pattern used elsewhere in this
// codebase for optional resources.
func (b *BuildLog) Close() error {
	if b == nil || b.file == nil {
		return nil
	}
	return b.file.Close()
}
