package fileops

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/testgen/internal/errors"
)

func TestFileOps_ReadWrite(t *testing.T) {
	tempDir := t.TempDir()
	fo := NewFileOps()
	path := filepath.Join(tempDir, "Button.tsx")

	require.NoError(t, fo.WriteFile(path, []byte("first"), 0644))
	content, err := fo.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", content)

	// Reads always observe the current contents
	require.NoError(t, os.WriteFile(path, []byte("second"), 0644))
	content, err = fo.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", content)
}

func TestFileOps_ReadMissing(t *testing.T) {
	fo := NewFileOps()

	_, err := fo.ReadFile(filepath.Join(t.TempDir(), "missing.ts"))
	require.Error(t, err)
	assert.True(t, errors.IsFileSystemError(err))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFileOps_WriteIntoMissingDirectory(t *testing.T) {
	fo := NewFileOps()

	err := fo.WriteFile(filepath.Join(t.TempDir(), "nope", "x.test.tsx"), []byte("x"), 0644)
	require.Error(t, err)
	assert.True(t, errors.IsFileSystemError(err))
}

func TestFileOps_Exists(t *testing.T) {
	tempDir := t.TempDir()
	fo := NewFileOps()
	path := filepath.Join(tempDir, "a.ts")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	assert.True(t, fo.Exists(path))
	assert.True(t, fo.IsFile(path))
	assert.False(t, fo.IsDir(path))
	assert.True(t, fo.IsDir(tempDir))
	assert.False(t, fo.Exists(filepath.Join(tempDir, "b.ts")))
}

func TestPathValidator_ValidateAndClean(t *testing.T) {
	pv := NewPathValidator()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain", "src/Button.tsx", "src/Button.tsx", false},
		{"redundant segments", "src/./ui//Card.tsx", "src/ui/Card.tsx", false},
		{"leading parent", "../shared/a.ts", "../shared/a.ts", false},
		{"dotted segment", "src/..hidden/a.ts", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pv.ValidateAndClean(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}

	_, err := pv.ValidateAndClean("")
	assert.ErrorIs(t, err, errors.ErrEmptyPath)
}

func TestFileOps_AbsolutePath(t *testing.T) {
	fo := NewFileOps()

	wd, err := os.Getwd()
	require.NoError(t, err)

	got, err := fo.AbsolutePath("src/./Button.tsx")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "src", "Button.tsx"), got)

	abs := filepath.Join(t.TempDir(), "a.ts")
	got, err = fo.AbsolutePath(abs)
	require.NoError(t, err)
	assert.Equal(t, abs, got)

	_, err = fo.AbsolutePath("")
	assert.ErrorIs(t, err, errors.ErrEmptyPath)
}
