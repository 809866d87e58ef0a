package templates

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	ferrors "git.home.luguber.info/inful/nmcr/internal/foundation/errors"
	"git.home.luguber.info/inful/nmcr/internal/model"
)

// Property describes one argument in a Schema.
type Property struct {
	Name        string `json:"-"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// Properties keeps argument declaration order when encoded as a JSON object.
type Properties []Property

func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, prop := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(prop.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(prop)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Schema is the JSON Schema of the argument object a template accepts.
type Schema struct {
	Type                 string     `json:"type"`
	Properties           Properties `json:"properties"`
	Required             []string   `json:"required,omitempty"`
	AdditionalProperties bool       `json:"additionalProperties"`
}

// SchemaFor builds the argument schema of t. Any-kind arguments carry no
// type constraint.
func SchemaFor(t model.Template) Schema {
	args := ArgsOf(t)
	s := Schema{Type: "object", Properties: Properties{}}
	for _, a := range args {
		prop := Property{Name: a.Name, Description: strings.TrimSpace(a.Description)}
		if a.Kind != model.ArgKindAny {
			prop.Type = string(a.Kind)
		}
		s.Properties = append(s.Properties, prop)
	}
	s.Required = model.RequiredArgNames(args)
	return s
}

// Issue is one schema violation.
type Issue struct {
	Location string
	Message  string
}

// SchemaValidationError carries every violation found in one input map.
type SchemaValidationError struct {
	TemplateID string
	Issues     []Issue
}

func (e *SchemaValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Location, issue.Message))
	}
	return fmt.Sprintf("arguments for %q do not match schema: %s", e.TemplateID, strings.Join(parts, "; "))
}

// Compile turns the schema into a validator.
func (s Schema) Compile() (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

// Validate checks resolved values against the argument schema of t.
func Validate(t model.Template, values map[string]any) error {
	compiled, err := SchemaFor(t).Compile()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to compile argument schema").
			WithContext("template_id", t.TemplateID()).
			Build()
	}

	doc := make(map[string]any, len(values))
	for k, v := range values {
		doc[k] = v
	}
	err = compiled.Validate(doc)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "argument validation failed").Build()
	}
	return ferrors.WrapError(&SchemaValidationError{TemplateID: t.TemplateID(), Issues: collectIssues(verr)},
		ferrors.CategoryValidation, "invalid template arguments").
		WithContext("template_id", t.TemplateID()).
		Build()
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			loc := strings.TrimSpace(node.InstanceLocation)
			if loc == "" {
				loc = "#"
			} else if !strings.HasPrefix(loc, "#") {
				loc = "#" + loc
			}
			issues = append(issues, Issue{Location: loc, Message: strings.TrimSpace(node.Message)})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
