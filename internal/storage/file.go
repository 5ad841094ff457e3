package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// File stores the seen set as a text file, one id per line.
type File struct {
	path string
}

// NewFile returns a File store at path. The file need not exist yet.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the canonical file location.
func (f *File) Path() string {
	return f.path
}

// Load reads the seen set, ignoring blank lines.
func (f *File) Load(_ context.Context) (*SeenSet, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewSeenSet(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open seen file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var ids []string
	sc := bufio.NewScanner(file)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if id := strings.TrimSpace(sc.Text()); id != "" {
			ids = append(ids, id)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read seen file: %w", err)
	}
	return NewSeenSet(ids...), nil
}

// Persist writes the whole set to <path>.tmp and renames it over path, so
// an interrupted write never leaves a truncated seen file behind.
func (f *File) Persist(_ context.Context, s *SeenSet) error {
	tmp := f.path + ".tmp"

	file, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create tmp: %w", err)
	}

	w := bufio.NewWriter(file)
	for _, id := range s.IDs() {
		_, _ = w.WriteString(id)
		_ = w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		_ = file.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("sync tmp: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close tmp: %w", err)
	}

	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Close implements Storage.
func (f *File) Close() error {
	return nil
}
