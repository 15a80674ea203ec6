package tape

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File appends tape lines to a text file. The file is opened and closed on
// every append so it can be rotated or removed while the program runs.
type File struct {
	mu   sync.Mutex
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Append(line string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if dir := filepath.Dir(f.path); dir != "." && dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}

	fh, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open tape %s: %w", f.path, err)
	}
	if _, err := fh.WriteString(line + "\n"); err != nil {
		_ = fh.Close()
		return fmt.Errorf("write tape %s: %w", f.path, err)
	}
	return fh.Close()
}
