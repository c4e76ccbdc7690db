package templates

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/toyz/testgen/internal/errors"
	"github.com/toyz/testgen/internal/models"
)

// Renderer renders stub test documents from module analyses
type Renderer struct {
	tmpl  *template.Template
	utils *TemplateUtils
}

// NewRenderer creates a renderer over DefaultTemplateRegistry
func NewRenderer() (*Renderer, error) {
	return NewRendererWithRegistry(DefaultTemplateRegistry)
}

// NewRendererWithRegistry parses every template in registry into one set so
// templates can include each other by name
func NewRendererWithRegistry(registry *TemplateRegistry) (*Renderer, error) {
	root := template.New("testgen")

	for _, name := range registry.Names() {
		if _, err := root.New(name).Parse(registry.MustGet(name)); err != nil {
			return nil, errors.WrapTemplateError(name, "parse", err)
		}
	}

	for _, required := range []string{ComponentTestTemplate, UtilityTestTemplate} {
		if root.Lookup(required) == nil {
			return nil, errors.New(errors.TemplateErrorCode, fmt.Sprintf("template not found: %s", required)).
				WithContext("template", required)
		}
	}

	return &Renderer{tmpl: root, utils: NewTemplateUtils()}, nil
}

// Render selects the template matching the analysis variant and renders it
func (r *Renderer) Render(analysis models.ModuleAnalysis) (string, error) {
	switch a := analysis.(type) {
	case *models.ComponentAnalysis:
		return r.RenderComponentTest(a)
	case *models.FunctionAnalysis:
		return r.RenderUtilityTest(a)
	case nil:
		return "", errors.New(errors.TemplateErrorCode, "cannot render a nil analysis")
	default:
		return "", errors.Newf(errors.TemplateErrorCode, "unsupported analysis type %T", analysis)
	}
}

// RenderComponentTest renders the component test document
func (r *Renderer) RenderComponentTest(analysis *models.ComponentAnalysis) (string, error) {
	return r.execute(ComponentTestTemplate, r.utils.BuildComponentTestData(analysis))
}

// RenderUtilityTest renders the utility test document
func (r *Renderer) RenderUtilityTest(analysis *models.FunctionAnalysis) (string, error) {
	return r.execute(UtilityTestTemplate, r.utils.BuildUtilityTestData(analysis))
}

// execute executes a named template with the given data
func (r *Renderer) execute(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.WrapTemplateError(name, "execute", err)
	}
	return buf.String(), nil
}
