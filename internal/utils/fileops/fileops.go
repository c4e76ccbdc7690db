package fileops

import (
	"os"
	"path/filepath"
)

// FileOps provides a unified interface for common file operations
// combining path validation and error handling.
// Contents are never cached: every read observes the file as it is on disk.
type FileOps struct {
	pathValidator *PathValidator
	errorWrapper  *ErrorWrapper
}

// NewFileOps creates a new FileOps instance with all components
func NewFileOps() *FileOps {
	return &FileOps{
		pathValidator: NewPathValidator(),
		errorWrapper:  NewErrorWrapper(),
	}
}

// ReadFile reads a file and returns its contents as a string
func (fo *FileOps) ReadFile(filePath string) (string, error) {
	cleanPath, err := fo.pathValidator.ValidateAndClean(filePath)
	if err != nil {
		return "", fo.errorWrapper.WrapFileReadError(filePath, err)
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", fo.errorWrapper.WrapFileReadError(cleanPath, err)
	}

	return string(content), nil
}

// WriteFile writes content to a file with path validation and error handling.
// The parent directory must already exist.
func (fo *FileOps) WriteFile(filePath string, content []byte, perm os.FileMode) error {
	cleanPath, err := fo.pathValidator.ValidateAndClean(filePath)
	if err != nil {
		return fo.errorWrapper.WrapFileWriteError(filePath, err)
	}

	if err := os.WriteFile(cleanPath, content, perm); err != nil {
		return fo.errorWrapper.WrapFileWriteError(cleanPath, err)
	}

	return nil
}

// Exists checks if a path exists using the path validator
func (fo *FileOps) Exists(path string) bool {
	return fo.pathValidator.Exists(filepath.Clean(path))
}

// IsDir checks if a path is a directory using the path validator
func (fo *FileOps) IsDir(path string) bool {
	return fo.pathValidator.IsDir(path)
}

// IsFile checks if a path is a regular file using the path validator
func (fo *FileOps) IsFile(path string) bool {
	return fo.pathValidator.IsFile(path)
}

// AbsolutePath validates path and resolves it against the working directory
func (fo *FileOps) AbsolutePath(path string) (string, error) {
	return fo.pathValidator.GetAbsolutePath(path)
}
