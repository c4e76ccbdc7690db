package analyzer

import "regexp"

// Classification patterns. Each is matched against the whole module text.
var (
	// frameworkImportPattern matches a React default import or any import from 'react'
	frameworkImportPattern = regexp.MustCompile(`import\s+React|import.*from\s+['"]react['"]`)

	// markupReturnPattern matches a return followed, anywhere later, by a markup tag
	markupReturnPattern = regexp.MustCompile(`return\s*\([\s\S]*<|return\s*<`)

	// functionComponentPatterns are the accepted function-component shapes
	functionComponentPatterns = []*regexp.Regexp{
		regexp.MustCompile(`function\s+\w+.*\(.*\).*\{[\s\S]*return[\s\S]*<`),
		regexp.MustCompile(`const\s+\w+.*=.*\(.*\).*=>[\s\S]*<`),
		regexp.MustCompile(`export\s+default\s+function`),
	}
)

// Component feature patterns
var (
	inputParamsPattern     = regexp.MustCompile(`props\s*[:\(]|(?:interface|type)\s+\w*Props?\b`)
	inputParamsTypePattern = regexp.MustCompile(`(?:interface|type)\s+(\w*Props?)\s*=?\s*\{[^}]*\}`)
	internalStatePattern   = regexp.MustCompile(`useState|this\.state`)
	lifecycleEffectPattern = regexp.MustCompile(`useEffect|componentDidMount|componentDidUpdate`)
)

// asyncPattern matches an async function declaration or an assignment to an async arrow
var asyncPattern = regexp.MustCompile(`async\s+function|=\s*async`)

// exportPatterns capture exported identifiers. The grouped clause yields a
// comma-separated list in its first group.
var (
	namedFunctionExportPattern   = regexp.MustCompile(`export\s+function\s+(\w+)`)
	namedConstExportPattern      = regexp.MustCompile(`export\s+const\s+(\w+)\s*=`)
	groupedExportPattern         = regexp.MustCompile(`export\s+\{\s*([^}]+)\s*\}`)
	defaultFunctionExportPattern = regexp.MustCompile(`export\s+default\s+function\s+(\w+)`)
	defaultIdentExportPattern    = regexp.MustCompile(`export\s+default\s+(\w+)`)

	exportPatterns = []*regexp.Regexp{
		namedFunctionExportPattern,
		namedConstExportPattern,
		groupedExportPattern,
		defaultFunctionExportPattern,
		defaultIdentExportPattern,
	}
)

// importPattern captures the module specifier of an `import ... from '<path>'` line
var importPattern = regexp.MustCompile(`import.*from\s+['"]([^'"]+)['"]`)

// declarationKeywords can follow `export default` but never name the export
var declarationKeywords = map[string]bool{
	"function": true,
	"class":    true,
	"async":    true,
}

// skipNameFragments exclude a module from analysis when its base name contains any of them
var skipNameFragments = []string{"test", "spec", "config"}
