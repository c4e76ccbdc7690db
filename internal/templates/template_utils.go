package templates

import (
	"strings"
	"unicode"

	"github.com/toyz/testgen/internal/models"
)

// ComponentTestData is the data passed to the component test templates
type ComponentTestData struct {
	Name                string // module base name, used in the import path and describe title
	Identifier          string // JSX-safe binding for the default import
	HasInputParams      bool
	InputParamsTypeName string
	HasInternalState    bool
	HasLifecycleEffects bool
}

// UtilityTestData is the data passed to the utility test template
type UtilityTestData struct {
	Name       string
	Identifier string // namespace import binding
	IsAsync    bool
}

// TemplateUtils provides common utilities for template generation
type TemplateUtils struct{}

// NewTemplateUtils creates a new template utilities instance
func NewTemplateUtils() *TemplateUtils {
	return &TemplateUtils{}
}

// ToCamelCase converts a string to camelCase
func (tu *TemplateUtils) ToCamelCase(s string) string {
	s = tu.joinWords(s)
	return strings.ToLower(s[:1]) + s[1:]
}

// ToPascalCase converts a string to PascalCase
func (tu *TemplateUtils) ToPascalCase(s string) string {
	s = tu.joinWords(s)
	return strings.ToUpper(s[:1]) + s[1:]
}

// joinWords drops characters that cannot appear in a script identifier and
// capitalizes the letter following each dropped run, so "use-local.storage"
// becomes "useLocalStorage". A leading digit gets an underscore prefix and a
// name with no identifier characters at all becomes "module".
func (tu *TemplateUtils) joinWords(s string) string {
	var b strings.Builder
	upperNext := false

	for _, r := range s {
		if !isIdentifierRune(r) {
			upperNext = b.Len() > 0
			continue
		}
		if upperNext {
			r = unicode.ToUpper(r)
			upperNext = false
		}
		b.WriteRune(r)
	}

	out := b.String()
	if out == "" {
		return "module"
	}
	if unicode.IsDigit(rune(out[0])) {
		out = "_" + out
	}
	return out
}

func isIdentifierRune(r rune) bool {
	return r == '_' || r == '$' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}

// BuildComponentTestData converts a component analysis to template data
func (tu *TemplateUtils) BuildComponentTestData(analysis *models.ComponentAnalysis) ComponentTestData {
	return ComponentTestData{
		Name:                analysis.Name,
		Identifier:          tu.ToPascalCase(analysis.Name),
		HasInputParams:      analysis.HasInputParams,
		InputParamsTypeName: analysis.InputParamsTypeName,
		HasInternalState:    analysis.HasInternalState,
		HasLifecycleEffects: analysis.HasLifecycleEffects,
	}
}

// BuildUtilityTestData converts a function analysis to template data.
// Exported names are not rendered.
func (tu *TemplateUtils) BuildUtilityTestData(analysis *models.FunctionAnalysis) UtilityTestData {
	return UtilityTestData{
		Name:       analysis.Name,
		Identifier: tu.ToCamelCase(analysis.Name),
		IsAsync:    analysis.IsAsync,
	}
}
