// Package util provides small helpers shared across the catalog toolchain.
package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// IsDir returns true if the specified directory is valid
func IsDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// FileExists checks to see if the specified file (or directory) exists
func FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}

// AtomicWriteFile writes data to a temporary file in the target directory and
// renames it into place, so partially rendered artifacts are never observed.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("AtomicWriteFile(): create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("AtomicWriteFile(): write: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return fmt.Errorf("AtomicWriteFile(): chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("AtomicWriteFile(): close: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("AtomicWriteFile(): rename: %w", err)
	}
	return nil
}
