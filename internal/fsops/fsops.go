package fsops

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ResolvePath canonicalizes a caller-supplied path: it is made absolute,
// symlinks are resolved, and the result must exist. Non-existent or
// inaccessible paths are errors.
func ResolvePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %q: %w", path, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize path %q: %w", path, err)
	}

	return resolved, nil
}

// ResolveDir resolves a path and requires it to denote a directory.
func ResolveDir(path string) (string, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("failed to stat %q: %w", path, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path %q is not a directory", path)
	}

	return resolved, nil
}

// ResolveFile resolves a path and requires it to denote a regular file.
func ResolveFile(path string) (string, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("failed to stat %q: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("path %q is not a file", path)
	}

	return resolved, nil
}

// ReadFileString reads a file's content as a string.
func ReadFileString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

// WriteFileString writes content to a file, creating parent directories as
// needed.
func WriteFileString(path string, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Exists reports whether a file or directory exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CheckWritable probes whether dir accepts writes by creating and removing a
// uniquely named temporary file. The returned error describes why the
// directory is not writable; the probe itself succeeding or failing is not a
// caller error.
func CheckWritable(dir string) (bool, error) {
	probe := filepath.Join(dir, ".repopatch_writetest_"+uuid.NewString())

	f, err := os.OpenFile(probe, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return false, fmt.Errorf("failed to create temporary test file (check permissions): %w", err)
	}
	f.Close()

	if err := os.Remove(probe); err != nil {
		return false, fmt.Errorf("failed to delete temporary test file: %w", err)
	}

	return true, nil
}
