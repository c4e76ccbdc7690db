package generator

import (
	"path/filepath"

	"github.com/toyz/testgen/internal/analyzer"
	"github.com/toyz/testgen/internal/errors"
	"github.com/toyz/testgen/internal/logger"
	"github.com/toyz/testgen/internal/models"
	"github.com/toyz/testgen/internal/templates"
	"github.com/toyz/testgen/internal/utils"
	"github.com/toyz/testgen/internal/utils/fileops"
)

// TestFileSuffix is appended to a module's base name to form its generated test
// path. It does not depend on the module's own extension.
const TestFileSuffix = ".test.tsx"

const testFilePerm = 0644

// Options configures the generator. Roots are fixed at construction.
type Options struct {
	SourceRoot  string   // root scanned by FindModulesNeedingTests
	TestRoot    string   // root generated tests are staged from
	Extensions  []string // recognised module extensions
	ExcludeDirs []string // directory names never scanned
}

func (o Options) withDefaults() Options {
	if o.SourceRoot == "" {
		o.SourceRoot = "src"
	}
	if o.TestRoot == "" {
		o.TestRoot = o.SourceRoot
	}
	if len(o.Extensions) == 0 {
		o.Extensions = append([]string(nil), utils.DefaultExtensions...)
	}
	if o.ExcludeDirs == nil {
		o.ExcludeDirs = append([]string(nil), utils.DefaultExcludeDirs...)
	}
	return o
}

// Generator implements the TestGenerator interface
type Generator struct {
	opts     Options
	files    FileStore
	analyzer *analyzer.Analyzer
	renderer *templates.Renderer
	walker   *utils.FileProcessor
}

// NewGenerator creates a generator that works on the local file system
func NewGenerator(opts Options) (*Generator, error) {
	return NewGeneratorWithStore(opts, fileops.NewFileOps())
}

// NewGeneratorWithStore creates a generator that reads and writes through files
func NewGeneratorWithStore(opts Options, files FileStore) (*Generator, error) {
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}

	return &Generator{
		opts:     opts.withDefaults(),
		files:    files,
		analyzer: analyzer.New(files),
		renderer: renderer,
		walker:   utils.NewFileProcessor(),
	}, nil
}

// Options returns the effective options
func (g *Generator) Options() Options {
	return g.opts
}

// TestFilePath returns the sibling test path generated for the module at path
func TestFilePath(path string) string {
	return filepath.Join(filepath.Dir(path), analyzer.ModuleName(path)+TestFileSuffix)
}

// Analyze reads and analyzes one module. It returns (nil, nil) for modules
// excluded by name.
func (g *Generator) Analyze(path string) (models.ModuleAnalysis, error) {
	return g.analyzer.AnalyzeFile(path)
}

// GenerateTestFile writes a stub test next to the module at path and returns
// the test path. An existing test file is never overwritten; its path is
// returned as is. Skipped modules yield ("", nil).
func (g *Generator) GenerateTestFile(path string) (string, error) {
	testPath, _, err := g.generate(path)
	return testPath, err
}

func (g *Generator) generate(path string) (string, models.ItemStatus, error) {
	analysis, err := g.Analyze(path)
	if err != nil {
		return "", models.StatusFailed, err
	}
	if analysis == nil {
		logger.Debugw("Skipping module", "path", path)
		return "", models.StatusSkipped, nil
	}

	testPath := TestFilePath(path)
	if g.files.Exists(testPath) {
		logger.Debugw("Test file already exists", "path", path, "test_path", testPath)
		return testPath, models.StatusExisting, nil
	}

	content, err := g.renderer.Render(analysis)
	if err != nil {
		return "", models.StatusFailed, errors.WrapGenerateError(testPath, err)
	}

	if err := g.files.WriteFile(testPath, []byte(content), testFilePerm); err != nil {
		return "", models.StatusFailed, err
	}

	logger.Infow("Generated test file",
		"path", path,
		"test_path", testPath,
		"kind", analysis.Kind().String(),
		"exports", analysis.Exports().Sorted())

	return testPath, models.StatusGenerated, nil
}

// needsTest reports whether neither the extension-matching test nor the
// generated test exists for the module at path
func (g *Generator) needsTest(path string) bool {
	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	name := analyzer.ModuleName(path)

	sameExt := filepath.Join(dir, name+".test"+ext)
	return !g.files.Exists(sameExt) && !g.files.Exists(TestFilePath(path))
}

// FindModulesNeedingTests lists every module under the source root that has no
// test file. Results are sorted.
func (g *Generator) FindModulesNeedingTests() ([]string, error) {
	modules, err := g.walker.WalkModules(g.opts.SourceRoot, g.opts.Extensions, g.opts.ExcludeDirs)
	if err != nil {
		return nil, err
	}

	var needing []string
	for _, module := range modules {
		if g.needsTest(module) {
			needing = append(needing, module)
		}
	}

	logger.Debugw("Scanned source root",
		"root", g.opts.SourceRoot,
		"modules", len(modules),
		"needing_tests", len(needing))

	return needing, nil
}

// GenerateAllMissingTests generates tests for every module lacking one. Only a
// failure to enumerate modules is returned as an error; per-module failures are
// recorded in the result.
func (g *Generator) GenerateAllMissingTests() (*models.BatchResult, error) {
	modules, err := g.FindModulesNeedingTests()
	if err != nil {
		return nil, err
	}
	return g.GeneratePaths(modules), nil
}

// GeneratePaths generates tests for each path in order, one at a time. A failure
// on one path is recorded and does not stop the batch.
func (g *Generator) GeneratePaths(paths []string) *models.BatchResult {
	result := &models.BatchResult{}

	for _, path := range paths {
		testPath, status, err := g.generate(path)
		if err != nil {
			logger.Errorw("Failed to generate test", "path", path, "error", err)
		}
		result.Add(models.ItemResult{
			Path:     path,
			TestPath: testPath,
			Status:   status,
			Err:      err,
		})
	}

	return result
}
