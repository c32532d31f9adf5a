package capture

import (
	"bufio"
	"os"
	"path/filepath"
	"sync"
)

// FileRecorder appends entries to a local file.
type FileRecorder struct {
	mu     sync.Mutex
	f      *os.File
	w      *bufio.Writer
	closed bool
}

// NewFileRecorder opens path for appending, creating parent directories.
func NewFileRecorder(path string) (*FileRecorder, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return &FileRecorder{f: f, w: bufio.NewWriter(f)}, nil
}

// Record appends one entry.
func (r *FileRecorder) Record(e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return os.ErrClosed
	}
	return encode(r.w, e)
}

// Close flushes and closes the file. Further calls are no-ops.
func (r *FileRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	if err := r.w.Flush(); err != nil {
		r.f.Close()
		return err
	}
	return r.f.Close()
}
