package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/testgen/internal/errors"
	"github.com/toyz/testgen/internal/models"
	"github.com/toyz/testgen/internal/utils"
)

// DiagnosticReporter provides user-friendly error reporting and batch summaries
type DiagnosticReporter struct {
	verbose bool
	diag    *utils.DiagnosticSystem
	errOut  io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter
func NewDiagnosticReporter(verbose bool, diag *utils.DiagnosticSystem) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		diag:    diag,
		errOut:  os.Stderr,
	}
}

// SetErrorOutput redirects error reports
func (r *DiagnosticReporter) SetErrorOutput(w io.Writer) {
	r.errOut = w
}

// ReportWarning provides user-friendly warning reporting
func (r *DiagnosticReporter) ReportWarning(message string, suggestions ...string) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.errOut, "! ")
	fmt.Fprintf(r.errOut, "%s\n", message)
	for _, suggestion := range suggestions {
		fmt.Fprintf(r.errOut, "   - %s\n", suggestion)
	}
}

// ReportError provides comprehensive error reporting with user-friendly output
func (r *DiagnosticReporter) ReportError(err error) {
	if err == nil {
		return
	}

	fmt.Fprintf(r.errOut, "\nERROR: Test Generation Failed\n")
	fmt.Fprintf(r.errOut, "=============================\n\n")

	var coded errors.CodedError
	if errors.As(err, &coded) {
		r.reportCodedError(err, coded)
	} else {
		r.reportBasicError(err)
	}

	fmt.Fprintf(r.errOut, "\n")
}

// reportCodedError reports a CodedError with full context and suggestions
func (r *DiagnosticReporter) reportCodedError(err error, coded errors.CodedError) {
	r.printErrorHeader(coded.ErrorCode())

	fmt.Fprintf(r.errOut, "Message: %s\n\n", err.Error())

	if context := coded.Context(); len(context) > 0 {
		r.printContext(context)
	}

	if suggestions := errors.AllSuggestions(err); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}

	if r.verbose {
		r.printErrorChain(err)
	}
}

// reportBasicError reports a basic error without rich context
func (r *DiagnosticReporter) reportBasicError(err error) {
	fmt.Fprintf(r.errOut, "Message: %s\n\n", err.Error())

	if hints := errors.GetAllHints(err); len(hints) > 0 {
		r.printSuggestions(hints)
	}

	if r.verbose {
		r.printErrorChain(err)
	}
}

// printErrorHeader prints a formatted error header based on error code
func (r *DiagnosticReporter) printErrorHeader(code errors.ErrorCode) {
	var errorTypeStr string

	switch code {
	case errors.GenerationErrorCode:
		errorTypeStr = "Test Generation Error"
	case errors.TemplateErrorCode:
		errorTypeStr = "Template Error"
	case errors.FileSystemErrorCode:
		errorTypeStr = "File System Error"
	case errors.ConfigurationErrorCode:
		errorTypeStr = "Configuration Error"
	case errors.VCSErrorCode:
		errorTypeStr = "Version Control Error"
	case errors.WatchErrorCode:
		errorTypeStr = "Watcher Error"
	default:
		errorTypeStr = "Unknown Error"
	}

	fmt.Fprintf(r.errOut, "Type: %s\n", errorTypeStr)
	fmt.Fprintf(r.errOut, "%s\n\n", strings.Repeat("-", len(errorTypeStr)+6))
}

// printContext prints context information in a readable format
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.errOut, "Context:\n")

	// Important keys first, the rest alphabetically
	importantKeys := []string{"path", "operation", "template", "config_type"}
	printed := make(map[string]bool)

	for _, key := range importantKeys {
		if value, exists := context[key]; exists {
			fmt.Fprintf(r.errOut, "   %s: %v\n", r.formatContextKey(key), value)
			printed[key] = true
		}
	}

	remaining := make([]string, 0, len(context))
	for key := range context {
		if !printed[key] {
			remaining = append(remaining, key)
		}
	}
	sort.Strings(remaining)
	for _, key := range remaining {
		fmt.Fprintf(r.errOut, "   %s: %v\n", r.formatContextKey(key), context[key])
	}

	fmt.Fprintf(r.errOut, "\n")
}

// formatContextKey formats context keys to be more readable
func (r *DiagnosticReporter) formatContextKey(key string) string {
	switch key {
	case "path":
		return "Path"
	case "config_type":
		return "Setting"
	default:
		// Convert snake_case to Title Case
		parts := strings.Split(key, "_")
		for i, part := range parts {
			if len(part) > 0 {
				parts[i] = strings.ToUpper(part[:1]) + part[1:]
			}
		}
		return strings.Join(parts, " ")
	}
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.errOut, "Suggestions:\n")

	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.errOut, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.errOut, "      %s\n", line)
			}
		}
	}

	fmt.Fprintf(r.errOut, "\n")
}

// printErrorChain prints every error in the unwrap chain
func (r *DiagnosticReporter) printErrorChain(err error) {
	fmt.Fprintf(r.errOut, "Error Chain:\n")
	level := 1
	for err != nil {
		fmt.Fprintf(r.errOut, "    %d. %s\n", level, err.Error())
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = unwrapper.Unwrap()
		level++
	}
}

// ReportBatch prints one line per item followed by a summary of the batch
func (r *DiagnosticReporter) ReportBatch(title string, result *models.BatchResult) {
	r.diag.PhaseHeader(title)
	r.diag.Indent()

	for _, item := range result.Items {
		switch item.Status {
		case models.StatusGenerated:
			r.diag.PhaseProgress(fmt.Sprintf("Writing %s", r.displayPath(item.TestPath)))
		case models.StatusExisting:
			r.diag.Verbose("Test file already exists: %s", r.displayPath(item.TestPath))
		case models.StatusSkipped:
			r.diag.Verbose("Skipped %s", r.displayPath(item.Path))
		case models.StatusFailed:
			r.diag.Error("Error generating test for %s: %v", r.displayPath(item.Path), item.Err)
		}
	}
	r.diag.Unindent()

	r.diag.Summary("Summary", map[string]interface{}{
		"generated": result.Count(models.StatusGenerated),
		"existing":  result.Count(models.StatusExisting),
		"skipped":   result.Count(models.StatusSkipped),
		"failed":    result.Count(models.StatusFailed),
	})

	for _, item := range result.Items {
		if item.Status == models.StatusFailed && errors.IsFileSystemError(item.Err) {
			r.ReportWarning("Some modules could not be read or written",
				"check that the listed paths exist and are writable")
			break
		}
	}
}

// ReportPaths prints a titled list of paths, or emptyMessage when there are none
func (r *DiagnosticReporter) ReportPaths(title string, paths []string, emptyMessage string) {
	if len(paths) == 0 {
		r.diag.Success("%s", emptyMessage)
		return
	}

	r.diag.Subsection(fmt.Sprintf("%s (%d)", title, len(paths)))
	for _, path := range paths {
		r.diag.List("%s", r.displayPath(path))
	}
}

// displayPath shortens path relative to the working directory when possible
func (r *DiagnosticReporter) displayPath(path string) string {
	if path == "" || !filepath.IsAbs(path) {
		return path
	}
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(wd, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

// Debug prints debug information when verbose mode is enabled
func (r *DiagnosticReporter) Debug(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(r.errOut, "[DEBUG] "+format+"\n", args...)
	}
}
