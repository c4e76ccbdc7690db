package generator

import (
	"os"

	"github.com/toyz/testgen/internal/models"
)

// TestGenerator defines the public generation operations
type TestGenerator interface {
	Analyze(path string) (models.ModuleAnalysis, error)
	GenerateTestFile(path string) (string, error)
	FindModulesNeedingTests() ([]string, error)
	GenerateAllMissingTests() (*models.BatchResult, error)
	GeneratePaths(paths []string) *models.BatchResult
}

// FileStore is the file system surface the generator reads and writes through
type FileStore interface {
	ReadFile(path string) (string, error)
	WriteFile(path string, content []byte, perm os.FileMode) error
	Exists(path string) bool
}
