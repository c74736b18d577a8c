// Package fileutil provides file and path utility functions.
package fileutil

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// ErrEmptyPath is returned by WriteFile for an empty destination.
var ErrEmptyPath = errors.New("path cannot be empty")

// DirPermissions is used for directories WriteFile creates.
const DirPermissions = 0o750

// WriteFile writes data to path through a temp file in the same
// directory, so readers never see a partially written file. Missing
// parent directories are created.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	if path == "" {
		return ErrEmptyPath
	}
	if err := os.MkdirAll(filepath.Dir(path), DirPermissions); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	// atomic.WriteFile keeps the temp file's 0600 mode for new files.
	if err := os.Chmod(path, perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "hive" -> false (name)
//   - "./site.yaml" -> true (relative path)
//   - "C:\configs\site.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
