// Package store resolves and opens the TODO file handed to the binary store.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/clido/internal/logging"
)

// ErrLocked is returned by Open when another process holds the TODO file.
var ErrLocked = errors.New("todo file is in use by another clido process")

// OpenOptions tune Open.
type OpenOptions struct {
	Lock   bool        // take an exclusive advisory lock for the handle's lifetime
	Logger *log.Logger // nil discards
}

// File is an open, read/write TODO file. Close releases the lock, if any,
// and the handle; it is safe to call more than once.
type File struct {
	*os.File
	locked bool
	closed bool
}

// Open opens the TODO file at path for reading and writing, creating it
// (and its parent directories) empty when it doesn't exist yet. The returned
// handle is positioned at offset 0.
func Open(path string, opt OpenOptions) (*File, error) {
	logger := opt.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if errors.Is(err, os.ErrNotExist) {
		logger.Info("todo file not found, creating a new one", "path", path, "reason", err)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create todo dir: %w", err)
		}
		f, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
		if err != nil {
			return nil, fmt.Errorf("create todo file: %w", err)
		}
		logger.Info("created a new todo file", "path", path)
	} else if err != nil {
		return nil, fmt.Errorf("open todo file: %w", err)
	}

	tf := &File{File: f}
	if opt.Lock {
		if err := lockFile(f); err != nil {
			f.Close()
			return nil, err
		}
		tf.locked = true
		logger.Debug("locked todo file", "path", path)
	}
	return tf, nil
}

func (f *File) Close() error {
	if f == nil || f.closed {
		return nil
	}
	f.closed = true
	if f.locked {
		unlockFile(f.File)
	}
	return f.File.Close()
}
