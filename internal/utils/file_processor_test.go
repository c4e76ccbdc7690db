package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/testgen/internal/errors"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestIsTestFile(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"src/Button.tsx", false},
		{"src/Button.test.tsx", true},
		{"src/Button.spec.ts", true},
		{"src/deep/nested/util.test.js", true},
		{"Button.test.tsx", true},
		{"src/testing.ts", false},
		{"src/contest.jsx", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsTestFile(tt.path))
		})
	}
}

func TestHasExtension(t *testing.T) {
	assert.True(t, HasExtension("a/b.tsx", DefaultExtensions))
	assert.True(t, HasExtension("b.js", DefaultExtensions))
	assert.False(t, HasExtension("b.go", DefaultExtensions))
	assert.False(t, HasExtension("README", DefaultExtensions))
	assert.False(t, HasExtension("b.tsx", []string{".ts"}))
}

func TestModuleGlob(t *testing.T) {
	assert.Equal(t, "*.{ts,tsx,js,jsx}", ModuleGlob(nil))
	assert.Equal(t, "*.ts", ModuleGlob([]string{".ts"}))
	assert.Equal(t, "*.{vue,svelte}", ModuleGlob([]string{".vue", "svelte"}))
}

func TestIsModuleFile(t *testing.T) {
	assert.True(t, IsModuleFile("src/Button.tsx", nil))
	assert.True(t, IsModuleFile("/abs/path/util.js", DefaultExtensions))
	assert.False(t, IsModuleFile("src/Button.test.tsx", nil))
	assert.False(t, IsModuleFile("src/api.spec.ts", nil))
	assert.False(t, IsModuleFile("src/styles.css", nil))
	assert.False(t, IsModuleFile("src/Button.tsx", []string{".js"}))
}

func TestFileProcessor_WalkModules(t *testing.T) {
	tempDir := t.TempDir()

	// tempDir/
	//   ├── Button.tsx
	//   ├── Button.test.tsx   (test, ignored)
	//   ├── styles.css        (wrong extension)
	//   ├── utils/
	//   │   ├── format.ts
	//   │   └── format.spec.ts (test, ignored)
	//   ├── node_modules/
	//   │   └── react.js      (excluded dir)
	//   └── dist/
	//       └── bundle.js     (excluded dir)
	writeTree(t, tempDir, map[string]string{
		"Button.tsx":            "export const Button = () => <div />",
		"Button.test.tsx":       "test",
		"styles.css":            "body {}",
		"utils/format.ts":       "export function format() {}",
		"utils/format.spec.ts":  "spec",
		"node_modules/react.js": "module.exports = {}",
		"dist/bundle.js":        "bundle",
	})

	fp := NewFileProcessor()
	files, err := fp.WalkModules(tempDir, nil, DefaultExcludeDirs)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(tempDir, "Button.tsx"),
		filepath.Join(tempDir, "utils", "format.ts"),
	}, files)
}

func TestFileProcessor_WalkFiles(t *testing.T) {
	tempDir := t.TempDir()
	writeTree(t, tempDir, map[string]string{
		"a.js":       "",
		"sub/b.js":   "",
		"skip/c.js":  "",
		"sub/d.json": "",
	})

	fp := NewFileProcessor()

	t.Run("no filters returns every file", func(t *testing.T) {
		files, err := fp.WalkFiles(tempDir, FileWalkOptions{})
		require.NoError(t, err)
		assert.Len(t, files, 4)
	})

	t.Run("directory filter prunes subtree", func(t *testing.T) {
		files, err := fp.WalkFiles(tempDir, FileWalkOptions{
			FileFilter:      ModuleFileFilter([]string{".js"}),
			DirectoryFilter: ExcludeDirectoryFilter([]string{"skip"}),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(tempDir, "a.js"),
			filepath.Join(tempDir, "sub", "b.js"),
		}, files)
	})

	t.Run("root is never filtered", func(t *testing.T) {
		root := filepath.Join(tempDir, "skip")
		files, err := fp.WalkFiles(root, FileWalkOptions{
			DirectoryFilter: ExcludeDirectoryFilter([]string{"skip"}),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "c.js")}, files)
	})

	t.Run("missing root is a file system error", func(t *testing.T) {
		_, err := fp.WalkFiles(filepath.Join(tempDir, "missing"), FileWalkOptions{})
		require.Error(t, err)
		assert.True(t, errors.IsFileSystemError(err))
	})

	t.Run("empty root", func(t *testing.T) {
		_, err := fp.WalkFiles("", FileWalkOptions{})
		assert.ErrorIs(t, err, errors.ErrEmptyPath)
	})
}

func TestFileProcessor_ScanDirectories(t *testing.T) {
	tempDir := t.TempDir()
	writeTree(t, tempDir, map[string]string{
		"components/Button.tsx":  "",
		"components/ui/Card.tsx": "",
		"node_modules/pkg/a.js":  "",
		".git/HEAD":              "",
	})

	fp := NewFileProcessor()
	dirs, err := fp.ScanDirectories(tempDir, DefaultExcludeDirs)
	require.NoError(t, err)

	assert.Contains(t, dirs, tempDir)
	assert.Contains(t, dirs, filepath.Join(tempDir, "components"))
	assert.Contains(t, dirs, filepath.Join(tempDir, "components", "ui"))
	assert.NotContains(t, dirs, filepath.Join(tempDir, "node_modules"))
	assert.NotContains(t, dirs, filepath.Join(tempDir, "node_modules", "pkg"))
	assert.NotContains(t, dirs, filepath.Join(tempDir, ".git"))
}

func TestIsExcludedPath(t *testing.T) {
	root := filepath.Join("project", "src")
	exclude := []string{"node_modules", "dist"}

	assert.False(t, IsExcludedPath(root, filepath.Join(root, "Button.tsx"), exclude))
	assert.False(t, IsExcludedPath(root, filepath.Join(root, "a", "b.ts"), exclude))
	assert.True(t, IsExcludedPath(root, filepath.Join(root, "node_modules", "x", "y.js"), exclude))
	assert.True(t, IsExcludedPath(root, filepath.Join(root, "a", "dist", "y.js"), exclude))
}
