package analyzer

import (
	"path/filepath"
	"strings"

	"github.com/toyz/testgen/internal/models")

// FileReader reads a module's full text
type FileReader interface {
	ReadFile(path string) (string, error)
}

// Analyzer classifies modules and extracts their structural facts
type Analyzer struct {
	files FileReader
}

// New creates an analyzer that reads modules through files
func New(files FileReader) *Analyzer {
	return &Analyzer{files: files}
}

// ModuleName returns the base name of path without its final extension
func ModuleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ShouldSkip reports whether the module at path is excluded from analysis by name
func ShouldSkip(path string) bool {
	name := ModuleName(path)
	for _, fragment := range skipNameFragments {
		if strings.Contains(name, fragment) {
			return true
		}
	}
	return false
}

// AnalyzeFile reads the module at path and analyzes it. It returns (nil, nil)
// for modules excluded by name. Read failures are returned as file system
// errors wrapping the underlying cause.
func (a *Analyzer) AnalyzeFile(path string) (models.ModuleAnalysis, error) {
	text, err := a.files.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if ShouldSkip(path) {
		return nil, nil
	}

	return AnalyzeContent(path, text), nil
}

// AnalyzeContent classifies text and builds the matching analysis. Every call
// produces a new value.
func AnalyzeContent(path, text string) models.ModuleAnalysis {
	name := ModuleName(path)

	if IsComponentModule(text) {
		return &models.ComponentAnalysis{
			Name:                name,
			FilePath:            path,
			HasInputParams:      HasInputParams(text),
			InputParamsTypeName: InputParamsTypeName(text),
			HasInternalState:    HasInternalState(text),
			HasLifecycleEffects: HasLifecycleEffects(text),
			ExportedNames:       ExtractExportedNames(text),
			ImportedModules:     ExtractImports(text),
		}
	}

	return &models.FunctionAnalysis{
		Name:          name,
		FilePath:      path,
		ExportedNames: ExtractExportedNames(text),
		Parameters:    []string{},
		ReturnType:    models.UnknownReturnType,
		IsAsync:       IsAsync(text),
	}
}
