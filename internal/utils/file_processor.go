package utils

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/toyz/testgen/internal/errors"
)

// DefaultExtensions are the module extensions recognised when none are configured
var DefaultExtensions = []string{".ts", ".tsx", ".js", ".jsx"}

// DefaultExcludeDirs are directory names never descended into
var DefaultExcludeDirs = []string{"node_modules", ".git", "dist", "build"}

// testFilePatterns match base names of files that are themselves tests
var testFilePatterns = []string{
	"*.test.*",
	"*.spec.*",
}

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info fs.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be descended into
type DirectoryFilter func(path string, info fs.DirEntry) bool

// FileWalkOptions configures file walking behavior
type FileWalkOptions struct {
	FileFilter      FileFilter
	DirectoryFilter DirectoryFilter
	SkipErrors      bool
}

// FileProcessor provides utilities for common file processing operations
type FileProcessor struct{}

// NewFileProcessor creates a new file processor
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{}
}

// HasExtension reports whether path ends in one of the given extensions
func HasExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, candidate := range extensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

// ModuleGlob builds the base-name pattern matching any of the extensions,
// e.g. "*.{ts,tsx,js,jsx}"
func ModuleGlob(extensions []string) string {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	trimmed := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		trimmed = append(trimmed, strings.TrimPrefix(ext, "."))
	}
	if len(trimmed) == 1 {
		return "*." + trimmed[0]
	}
	return "*.{" + strings.Join(trimmed, ",") + "}"
}

// IsTestFile reports whether the file name marks it as a test (name.test.ext or name.spec.ext)
func IsTestFile(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range testFilePatterns {
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// IsModuleFile reports whether path is a source module: its base name matches
// the extension glob and it is not a test file
func IsModuleFile(path string, extensions []string) bool {
	ok, err := doublestar.Match(ModuleGlob(extensions), filepath.Base(path))
	return err == nil && ok && !IsTestFile(path)
}

// ModuleFileFilter accepts source modules with a recognised extension that are
// not test files themselves
func ModuleFileFilter(extensions []string) FileFilter {
	glob := ModuleGlob(extensions)
	return func(path string, info fs.DirEntry) bool {
		if info.IsDir() {
			return false
		}
		ok, err := doublestar.Match(glob, info.Name())
		return err == nil && ok && !IsTestFile(path)
	}
}

// ExcludeDirectoryFilter skips directories whose base name is in excludeDirs
func ExcludeDirectoryFilter(excludeDirs []string) DirectoryFilter {
	skipDirs := make(map[string]bool, len(excludeDirs))
	for _, dir := range excludeDirs {
		skipDirs[dir] = true
	}

	return func(path string, info fs.DirEntry) bool {
		if !info.IsDir() {
			return true
		}
		return !skipDirs[info.Name()]
	}
}

// WalkFiles walks through files in a directory tree with filtering.
// The root itself is never filtered out. Results are sorted.
func (fp *FileProcessor) WalkFiles(rootDir string, options FileWalkOptions) ([]string, error) {
	if rootDir == "" {
		return nil, errors.ErrEmptyPath
	}

	var matchedFiles []string

	err := filepath.WalkDir(rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if options.SkipErrors {
				if entry != nil && entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			return errors.WrapFileSystemError("walk", path, err)
		}

		if entry.IsDir() {
			if path != rootDir && options.DirectoryFilter != nil && !options.DirectoryFilter(path, entry) {
				return filepath.SkipDir
			}
			return nil
		}

		if options.FileFilter == nil || options.FileFilter(path, entry) {
			matchedFiles = append(matchedFiles, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(matchedFiles)
	return matchedFiles, nil
}

// WalkModules returns every source module under rootDir
func (fp *FileProcessor) WalkModules(rootDir string, extensions, excludeDirs []string) ([]string, error) {
	return fp.WalkFiles(rootDir, FileWalkOptions{
		FileFilter:      ModuleFileFilter(extensions),
		DirectoryFilter: ExcludeDirectoryFilter(excludeDirs),
	})
}

// ScanDirectories returns every directory under rootDir that survives the
// directory filter, rootDir included
func (fp *FileProcessor) ScanDirectories(rootDir string, excludeDirs []string) ([]string, error) {
	if rootDir == "" {
		return nil, errors.ErrEmptyPath
	}

	filter := ExcludeDirectoryFilter(excludeDirs)
	var dirs []string

	err := filepath.WalkDir(rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return errors.WrapFileSystemError("walk", path, err)
		}
		if !entry.IsDir() {
			return nil
		}
		if path != rootDir && !filter(path, entry) {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return dirs, nil
}

// IsExcludedPath reports whether any directory segment of path, relative to
// rootDir, is in excludeDirs
func IsExcludedPath(rootDir, path string, excludeDirs []string) bool {
	rel, err := filepath.Rel(rootDir, path)
	if err != nil {
		return false
	}
	segments := strings.Split(filepath.ToSlash(filepath.Dir(rel)), "/")
	for _, segment := range segments {
		for _, excluded := range excludeDirs {
			if segment == excluded {
				return true
			}
		}
	}
	return false
}
