package analyzer

// IsComponentModule reports whether text looks like a UI component module: it
// must reference the framework or return markup, and it must contain a
// function-component shape. The check is pattern based and can report false
// positives for any text with a `<` after a `return`.
func IsComponentModule(text string) bool {
	referencesFramework := frameworkImportPattern.MatchString(text) || markupReturnPattern.MatchString(text)
	if !referencesFramework {
		return false
	}
	return hasFunctionComponentShape(text)
}

func hasFunctionComponentShape(text string) bool {
	for _, pattern := range functionComponentPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}
