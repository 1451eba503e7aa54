package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"devlog/internal/fsutil"
)

// FileBlob stores each key as <dir>/<key>.json. Writes are atomic and keep
// the previous value as a best-effort .bak copy.
type FileBlob struct {
	dir    string
	onSave func(key string)
}

// NewFileBlob creates the data directory if needed and returns a FileBlob
// rooted there.
func NewFileBlob(dir string) (*FileBlob, error) {
	if dir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if err := os.MkdirAll(dir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileBlob{dir: dir}, nil
}

// FileName returns the file name used for key.
func FileName(key string) string {
	return key + ".json"
}

// Dir returns the data directory.
func (f *FileBlob) Dir() string {
	return f.dir
}

// Path returns the full path of the file holding key.
func (f *FileBlob) Path(key string) string {
	return filepath.Join(f.dir, FileName(key))
}

// SetOnSave registers a callback invoked after every successful Set.
func (f *FileBlob) SetOnSave(fn func(key string)) {
	f.onSave = fn
}

// Get reads the value for key.
func (f *FileBlob) Get(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	data, err := os.ReadFile(f.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("read %s: %w", FileName(key), err)
	}
	return string(data), nil
}

// Set replaces the value for key.
func (f *FileBlob) Set(key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	path := f.Path(key)
	fsutil.BestEffortBackup(path, dataFilePerm)
	if err := fsutil.WriteFileAtomic(path, []byte(value), dataFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", FileName(key), err)
	}
	if f.onSave != nil {
		f.onSave(key)
	}
	return nil
}

// Close is a no-op for FileBlob.
func (f *FileBlob) Close() error {
	return nil
}
