package templates

import "sort"

// Template names
const (
	ComponentTestTemplate    = "component-test"
	InputParamsTestsTemplate = "input-params-tests"
	StateTestsTemplate       = "state-tests"
	EffectTestsTemplate      = "effect-tests"
	MockPropsTemplate        = "mock-props"
	UtilityTestTemplate      = "utility-test"
)

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerComponentTemplates()
	registry.registerUtilityTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// MustGet retrieves a template by name, panics if not found
func (tr *TemplateRegistry) MustGet(name string) string {
	template, exists := tr.Get(name)
	if !exists {
		panic("template not found: " + name)
	}
	return template
}

// Set registers or replaces a template
func (tr *TemplateRegistry) Set(name, template string) {
	tr.templates[name] = template
}

// Names returns the registered template names in lexical order
func (tr *TemplateRegistry) Names() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// registerComponentTemplates registers the UI component test templates.
// Conditional blocks are composed into component-test with {{template}}.
func (tr *TemplateRegistry) registerComponentTemplates() {
	tr.templates[ComponentTestTemplate] = `import { render, screen, fireEvent } from '@testing-library/react';
import { describe, it, expect } from 'vitest';
import {{.Identifier}} from './{{.Name}}';

describe('{{.Name}}', () => {
  it('renders without crashing', () => {
    expect(() => render(<{{.Identifier}}{{if .HasInputParams}} {...mockProps}{{end}} />)).not.toThrow();
  });
{{- if .HasInputParams}}
{{template "input-params-tests" .}}
{{- end}}
{{- if .HasInternalState}}
{{template "state-tests" .}}
{{- end}}
{{- if .HasLifecycleEffects}}
{{template "effect-tests" .}}
{{- end}}

  it('matches snapshot', () => {
    const { container } = render(<{{.Identifier}}{{if .HasInputParams}} {...mockProps}{{end}} />);
    expect(container.firstChild).toMatchSnapshot();
  });
});
{{- if .HasInputParams}}
{{template "mock-props" .}}
{{- end}}
`

	tr.templates[InputParamsTestsTemplate] = `
{{- if .InputParamsTypeName}}
  // Props interface: {{.InputParamsTypeName}}
{{- end}}
  it('renders with required props', () => {
    const props = {
      // TODO: Add required props based on {{if .InputParamsTypeName}}{{.InputParamsTypeName}}{{else}}component interface{{end}}
    };
    render(<{{.Identifier}} {...props} />);
    // TODO: Add assertions for prop rendering
  });

  it('handles optional props correctly', () => {
    const props = {
      // TODO: Add optional props
    };
    render(<{{.Identifier}} {...props} />);
    // TODO: Add assertions for optional prop handling
  });`

	tr.templates[StateTestsTemplate] = `
  it('manages state correctly', () => {
    render(<{{.Identifier}}{{if .HasInputParams}} {...mockProps}{{end}} />);
    // TODO: Add state management tests
    // Example: fireEvent.click(screen.getByRole('button'));
    // Example: expect(screen.getByText('Updated State')).toBeInTheDocument();
  });`

	tr.templates[EffectTestsTemplate] = `
  it('handles side effects properly', () => {
    render(<{{.Identifier}}{{if .HasInputParams}} {...mockProps}{{end}} />);
    // TODO: Add effect testing
    // Example: await waitFor(() => expect(mockApi).toHaveBeenCalled());
  });`

	tr.templates[MockPropsTemplate] = `
{{if .InputParamsTypeName}}// Mock props for {{.InputParamsTypeName}}{{else}}// Mock props{{end}}
const mockProps = {
  // TODO: Add mock props here
};`
}

// registerUtilityTemplates registers the function module test template
func (tr *TemplateRegistry) registerUtilityTemplates() {
	tr.templates[UtilityTestTemplate] = `import { describe, it, expect } from 'vitest';
import * as {{.Identifier}} from './{{.Name}}';

describe('{{.Name}}', () => {
  // TODO: Add tests for exported functions

  it('should be defined', () => {
    expect({{.Identifier}}).toBeDefined();
  });

  // Example test structure:
  // it('functionName should return expected value', {{if .IsAsync}}async {{end}}() => {
  //   const result = {{if .IsAsync}}await {{end}}{{.Identifier}}.functionName(input);
  //   expect(result).toBe(expectedOutput);
  // });
});
`
}

// DefaultTemplateRegistry is the registry used by NewRenderer
var DefaultTemplateRegistry = NewTemplateRegistry()
