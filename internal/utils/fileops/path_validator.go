package fileops

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/testgen/internal/errors"
)

// PathValidator provides centralized path validation and cleaning functionality
type PathValidator struct{}

// NewPathValidator creates a new PathValidator instance
func NewPathValidator() *PathValidator {
	return &PathValidator{}
}

// ValidateAndClean validates and cleans a path. It does not require the path to exist;
// callers surface missing files through the error of the operation itself.
func (pv *PathValidator) ValidateAndClean(filePath string) (string, error) {
	if filePath == "" {
		return "", errors.ErrEmptyPath
	}

	cleanPath := filepath.Clean(filePath)

	// After cleaning, ".." may only appear as a leading relative segment
	if strings.Contains(cleanPath, "..") {
		if !strings.HasPrefix(cleanPath, "..") {
			return "", errors.Errorf("path traversal not allowed in file path: %s", filePath)
		}
	}

	return cleanPath, nil
}

// Exists checks if a path exists. Paths that cannot be inspected for reasons other
// than absence are reported as existing.
func (pv *PathValidator) Exists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// IsDir checks if a path exists and is a directory
func (pv *PathValidator) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile checks if a path exists and is a regular file
func (pv *PathValidator) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// GetAbsolutePath resolves a path to its absolute form
func (pv *PathValidator) GetAbsolutePath(path string) (string, error) {
	cleanPath, err := pv.ValidateAndClean(path)
	if err != nil {
		return "", err
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return "", errors.WrapFileSystemError("resolve", cleanPath, err)
	}

	return absPath, nil
}
