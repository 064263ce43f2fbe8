// Package filex contains filesystem helpers for the local store and for
// saving decrypted files.
package filex

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// ResolveTarget picks where a file named name is written. An empty dst
// means the working directory; an existing directory receives name inside
// it; anything else is used as the file path.
func ResolveTarget(dst, name string) (string, error) {
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	if dst == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		return filepath.Join(cwd, name), nil
	}

	fi, err := os.Stat(dst)
	switch {
	case err == nil && fi.IsDir():
		return filepath.Join(dst, name), nil
	case err == nil, errors.Is(err, fs.ErrNotExist):
		return dst, nil
	default:
		return "", fmt.Errorf("stat %s: %w", dst, err)
	}
}

// SaveFile writes data for a file named name under dst (see ResolveTarget)
// and returns the path written.
func SaveFile(dst, name string, data []byte) (string, error) {
	target, err := ResolveTarget(dst, name)
	if err != nil {
		return "", err
	}
	if err := EnsureParentDir(target); err != nil {
		return "", err
	}
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", target, err)
	}
	return target, nil
}
