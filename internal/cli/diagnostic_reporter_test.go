package cli

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/testgen/internal/errors"
	"github.com/toyz/testgen/internal/models"
	"github.com/toyz/testgen/internal/utils"
)

func newTestReporter(verbose bool) (*DiagnosticReporter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	diag := utils.NewDiagnosticSystem(utils.DiagnosticVerbose)
	diag.DisableColors()
	diag.SetOutput(&out, &errOut)

	reporter := NewDiagnosticReporter(verbose, diag)
	reporter.SetErrorOutput(&errOut)
	return reporter, &out, &errOut
}

func TestDiagnosticReporter_ReportCodedError(t *testing.T) {
	reporter, _, errOut := newTestReporter(false)

	err := errors.WrapFileSystemError("read", "src/Card.tsx", fs.ErrNotExist).
		WithSuggestions("check the path passed to generate")
	reporter.ReportError(err)

	out := errOut.String()
	assert.Contains(t, out, "ERROR: Test Generation Failed")
	assert.Contains(t, out, "Type: File System Error")
	assert.Contains(t, out, "Message: failed to read file 'src/Card.tsx': file does not exist")
	assert.Contains(t, out, "   Path: src/Card.tsx\n   Operation: read\n")
	assert.Contains(t, out, "   1. check the path passed to generate")
	assert.NotContains(t, out, "Error Chain:")
}

func TestDiagnosticReporter_ReportBasicError(t *testing.T) {
	reporter, _, errOut := newTestReporter(true)

	reporter.ReportError(errors.WithHint(stderrors.New("boom"), "try again"))

	out := errOut.String()
	assert.Contains(t, out, "Message: boom")
	assert.Contains(t, out, "   1. try again")
	assert.Contains(t, out, "Error Chain:\n    1. boom")
}

func TestDiagnosticReporter_ReportErrorNil(t *testing.T) {
	reporter, _, errOut := newTestReporter(false)
	reporter.ReportError(nil)
	assert.Empty(t, errOut.String())
}

func TestDiagnosticReporter_ReportBatch(t *testing.T) {
	reporter, out, errOut := newTestReporter(false)

	result := &models.BatchResult{}
	result.Add(models.ItemResult{Path: "src/a.ts", TestPath: "src/a.test.tsx", Status: models.StatusGenerated})
	result.Add(models.ItemResult{Path: "src/b.ts", TestPath: "src/b.test.tsx", Status: models.StatusExisting})
	result.Add(models.ItemResult{Path: "src/c.config.ts", Status: models.StatusSkipped})
	result.Add(models.ItemResult{Path: "src/d.ts", Status: models.StatusFailed, Err: stderrors.New("disk full")})

	reporter.ReportBatch("Generating tests", result)

	stdout := out.String()
	assert.Contains(t, stdout, "Generating tests:\n")
	assert.Contains(t, stdout, "\n  ✏ Writing src/a.test.tsx\n")
	assert.Contains(t, stdout, "\n  [VERBOSE] Test file already exists: src/b.test.tsx\n")
	assert.Contains(t, stdout, "\n  [VERBOSE] Skipped src/c.config.ts\n")
	assert.Contains(t, stdout, "   existing: 1\n   failed: 1\n   generated: 1\n   skipped: 1\n")
	assert.Contains(t, errOut.String(), "  [ERROR] Error generating test for src/d.ts: disk full")
}

func TestDiagnosticReporter_ReportBatchFileSystemFailure(t *testing.T) {
	reporter, _, errOut := newTestReporter(false)

	result := &models.BatchResult{}
	result.Add(models.ItemResult{Path: "src/d.ts", Status: models.StatusFailed, Err: stderrors.New("disk full")})
	reporter.ReportBatch("Generating tests", result)
	assert.NotContains(t, errOut.String(), "could not be read or written")

	result.Add(models.ItemResult{
		Path:   "src/e.ts",
		Status: models.StatusFailed,
		Err:    errors.WrapFileSystemError("read", "src/e.ts", fs.ErrPermission),
	})
	errOut.Reset()
	reporter.ReportBatch("Generating tests", result)
	assert.Contains(t, errOut.String(), "Some modules could not be read or written\n   - check that the listed paths exist and are writable\n")
}

func TestDiagnosticReporter_ReportPaths(t *testing.T) {
	reporter, out, _ := newTestReporter(false)

	reporter.ReportPaths("Modules needing tests", []string{"src/a.ts", "src/b.tsx"}, "All modules have tests")
	assert.Contains(t, out.String(), "\nModules needing tests (2):\n- src/a.ts\n- src/b.tsx\n")

	out.Reset()
	reporter.ReportPaths("Modules needing tests", nil, "All modules have tests")
	assert.Equal(t, "[SUCCESS] All modules have tests\n", out.String())
}

func TestDiagnosticReporter_ReportWarning(t *testing.T) {
	reporter, _, errOut := newTestReporter(false)

	reporter.ReportWarning("working tree has uncommitted changes", "commit first")
	assert.Contains(t, errOut.String(), "working tree has uncommitted changes\n   - commit first\n")
}

func TestDiagnosticReporter_FormatContextKey(t *testing.T) {
	reporter, _, _ := newTestReporter(false)
	assert.Equal(t, "Path", reporter.formatContextKey("path"))
	assert.Equal(t, "Setting", reporter.formatContextKey("config_type"))
	assert.Equal(t, "Test Path", reporter.formatContextKey("test_path"))
}

func TestDiagnosticReporter_Debug(t *testing.T) {
	quiet, _, quietErr := newTestReporter(false)
	quiet.Debug("Using configuration from %s", "testgen.toml")
	assert.Empty(t, quietErr.String())

	verbose, _, verboseErr := newTestReporter(true)
	verbose.Debug("Using configuration from %s", "testgen.toml")
	assert.Equal(t, "[DEBUG] Using configuration from testgen.toml\n", verboseErr.String())
}
