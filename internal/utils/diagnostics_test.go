package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBufferedDiagnostics(level DiagnosticLevel) (*DiagnosticSystem, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	diag := NewDiagnosticSystem(level)
	diag.DisableColors()
	diag.SetOutput(&out, &errOut)
	return diag, &out, &errOut
}

func TestDiagnosticSystem_Levels(t *testing.T) {
	t.Run("quiet only shows errors", func(t *testing.T) {
		diag, out, errOut := newBufferedDiagnostics(DiagnosticError)

		diag.Info("hello")
		diag.Warn("careful")
		diag.Error("broken %d", 1)

		assert.Empty(t, out.String())
		assert.Equal(t, "[ERROR] broken 1\n", errOut.String())
	})

	t.Run("info hides verbose", func(t *testing.T) {
		diag, out, _ := newBufferedDiagnostics(DiagnosticInfo)

		diag.Info("shown")
		diag.Verbose("hidden")

		assert.Equal(t, "[INFO] shown\n", out.String())
	})

	t.Run("silent shows nothing", func(t *testing.T) {
		diag, out, errOut := newBufferedDiagnostics(DiagnosticSilent)

		diag.Error("x")
		diag.PhaseItem("y")

		assert.Empty(t, out.String())
		assert.Empty(t, errOut.String())
	})
}

func TestDiagnosticSystem_Phases(t *testing.T) {
	diag, out, _ := newBufferedDiagnostics(DiagnosticInfo)

	diag.PhaseHeader("Generating")
	diag.PhaseItem("Button.tsx")
	diag.PhaseProgress("Writing Button.test.tsx")
	diag.PhaseProgress("Skipping setup.config.ts")

	assert.Equal(t, "Generating:\n✓ Button.tsx\n✏ Writing Button.test.tsx\n- Skipping setup.config.ts\n", out.String())
}

func TestDiagnosticSystem_Indent(t *testing.T) {
	diag, out, _ := newBufferedDiagnostics(DiagnosticInfo)

	diag.Indent()
	diag.Info("nested")
	diag.Unindent()
	diag.Unindent()
	diag.Info("flat")

	assert.Equal(t, "  [INFO] nested\n[INFO] flat\n", out.String())
}

func TestDiagnosticSystem_SummaryIsSorted(t *testing.T) {
	diag, out, _ := newBufferedDiagnostics(DiagnosticInfo)

	diag.Summary("Done", map[string]interface{}{"skipped": 1, "generated": 2})

	assert.Equal(t, "\nDone\n   generated: 2\n   skipped: 1\n\n", out.String())
}

func TestDiagnosticSystem_Constructors(t *testing.T) {
	assert.Equal(t, DiagnosticError, NewQuietDiagnostics().Level())
	assert.Equal(t, DiagnosticVerbose, NewVerboseDiagnostics().Level())
	assert.Equal(t, DiagnosticInfo, NewDiagnosticSystem(DiagnosticInfo).Level())
}

func TestDiagnosticSystem_IndentedPhases(t *testing.T) {
	diag, out, _ := newBufferedDiagnostics(DiagnosticInfo)

	diag.Section("Repository: /work")
	diag.PhaseHeader("Tests")
	diag.Indent()
	diag.PhaseItem("Button.test.tsx")
	diag.PhaseProgress("Writing Card.test.tsx")
	diag.List("Card.tsx")
	diag.Unindent()
	diag.List("done")

	assert.Equal(t, "Repository: /work\nTests:\n  ✓ Button.test.tsx\n  ✏ Writing Card.test.tsx\n  - Card.tsx\n- done\n", out.String())
}
