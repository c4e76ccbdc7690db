package analyzer

import (
	"strings"

	"github.com/toyz/testgen/internal/models"
)

// ExtractExportedNames returns the union of names found by every export shape
func ExtractExportedNames(text string) models.NameSet {
	names := models.NewNameSet()

	for _, pattern := range exportPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			captured := match[1]

			switch pattern {
			case groupedExportPattern:
				for _, entry := range strings.Split(captured, ",") {
					if entry = strings.TrimSpace(entry); entry != "" {
						names.Add(entry)
					}
				}
			case defaultIdentExportPattern:
				if !declarationKeywords[captured] {
					names.Add(captured)
				}
			default:
				names.Add(captured)
			}
		}
	}

	return names
}

// ExtractImports returns every imported module specifier in source order.
// Repeated imports are kept.
func ExtractImports(text string) []string {
	matches := importPattern.FindAllStringSubmatch(text, -1)
	imports := make([]string, 0, len(matches))
	for _, match := range matches {
		imports = append(imports, match[1])
	}
	return imports
}

// HasInputParams reports whether the text handles props or declares a Props type
func HasInputParams(text string) bool {
	return inputParamsPattern.MatchString(text)
}

// InputParamsTypeName returns the name of the first Props declaration, or ""
// when none is found. The body is only scanned up to its first closing brace,
// and declarations with an extends clause or type parameters are not matched.
func InputParamsTypeName(text string) string {
	match := inputParamsTypePattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return match[1]
}

// HasInternalState reports whether the text binds component state
func HasInternalState(text string) bool {
	return internalStatePattern.MatchString(text)
}

// HasLifecycleEffects reports whether the text registers side effects
func HasLifecycleEffects(text string) bool {
	return lifecycleEffectPattern.MatchString(text)
}

// IsAsync reports whether the text declares an async function or async arrow
func IsAsync(text string) bool {
	return asyncPattern.MatchString(text)
}
