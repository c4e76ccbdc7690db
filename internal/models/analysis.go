package models

import "sort"

// AnalysisKind tags the variant held by a ModuleAnalysis
type AnalysisKind int

const (
	KindFunction AnalysisKind = iota + 1
	KindComponent
)

// String returns the string representation of the kind
func (k AnalysisKind) String() string {
	switch k {
	case KindComponent:
		return "component"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// ModuleAnalysis is the result of analyzing one module. It is implemented only by
// *ComponentAnalysis and *FunctionAnalysis; callers switch on Kind or on the
// concrete type.
type ModuleAnalysis interface {
	Kind() AnalysisKind
	ModuleName() string
	ModulePath() string
	Exports() NameSet

	moduleAnalysis()
}

// ComponentAnalysis describes a module classified as a UI component
type ComponentAnalysis struct {
	Name     string // base name of the file without extension
	FilePath string // path the module was read from

	HasInputParams      bool
	InputParamsTypeName string // empty when no single-level Props declaration was found
	HasInternalState    bool
	HasLifecycleEffects bool

	ExportedNames   NameSet
	ImportedModules []string // source order, duplicates kept
}

// Kind returns KindComponent
func (c *ComponentAnalysis) Kind() AnalysisKind { return KindComponent }

// ModuleName returns the module base name
func (c *ComponentAnalysis) ModuleName() string { return c.Name }

// ModulePath returns the analyzed file path
func (c *ComponentAnalysis) ModulePath() string { return c.FilePath }

// Exports returns the exported names
func (c *ComponentAnalysis) Exports() NameSet { return c.ExportedNames }

func (c *ComponentAnalysis) moduleAnalysis() {}

// FunctionAnalysis describes any module not classified as a component.
// Parameters and ReturnType are never populated by the analyzer.
type FunctionAnalysis struct {
	Name     string
	FilePath string

	ExportedNames NameSet
	Parameters    []string
	ReturnType    string
	IsAsync       bool
}

// UnknownReturnType is the ReturnType recorded for every function module
const UnknownReturnType = "unknown"

// Kind returns KindFunction
func (f *FunctionAnalysis) Kind() AnalysisKind { return KindFunction }

// ModuleName returns the module base name
func (f *FunctionAnalysis) ModuleName() string { return f.Name }

// ModulePath returns the analyzed file path
func (f *FunctionAnalysis) ModulePath() string { return f.FilePath }

// Exports returns the exported names
func (f *FunctionAnalysis) Exports() NameSet { return f.ExportedNames }

func (f *FunctionAnalysis) moduleAnalysis() {}

// NameSet is an unordered set of identifiers
type NameSet map[string]struct{}

// NewNameSet creates a set holding the given names
func NewNameSet(names ...string) NameSet {
	set := make(NameSet, len(names))
	for _, name := range names {
		set.Add(name)
	}
	return set
}

// Add inserts a name into the set
func (s NameSet) Add(name string) {
	s[name] = struct{}{}
}

// Has reports whether name is in the set
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the number of names
func (s NameSet) Len() int {
	return len(s)
}

// Sorted returns the names in lexical order
func (s NameSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
