package validation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("validation: schema invalid")
	ErrSchemaValidation = errors.New("validation: frontmatter does not match schema")
)

//go:embed schemas/page_frontmatter.json
var pageFrontmatterSchema []byte

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// FrontmatterError reports the schema violations of one page.
type FrontmatterError struct {
	Source string
	Issues []ValidationIssue
}

func (e *FrontmatterError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	detail := strings.Join(parts, "; ")
	if detail == "" {
		detail = ErrSchemaValidation.Error()
	}
	if e.Source == "" {
		return detail
	}
	return fmt.Sprintf("%s: %s", e.Source, detail)
}

func (e *FrontmatterError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var frontmatterErr *FrontmatterError
	if errors.As(err, &frontmatterErr) && frontmatterErr != nil {
		return frontmatterErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// PageValidator checks decoded frontmatter against the page metadata schema.
type PageValidator struct {
	schema *jsonschema.Schema
}

var (
	defaultValidatorOnce sync.Once
	defaultValidator     *PageValidator
	defaultValidatorErr  error
)

// DefaultPageValidator returns the shared validator for the bundled schema.
func DefaultPageValidator() (*PageValidator, error) {
	defaultValidatorOnce.Do(func() {
		defaultValidator, defaultValidatorErr = NewPageValidator(pageFrontmatterSchema)
	})
	return defaultValidator, defaultValidatorErr
}

// NewPageValidator compiles a draft 2020-12 schema document.
func NewPageValidator(schema []byte) (*PageValidator, error) {
	compiled, err := compileSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return &PageValidator{schema: compiled}, nil
}

// Validate checks meta, attributing failures to source.
func (v *PageValidator) Validate(source string, meta map[string]any) error {
	if v == nil || v.schema == nil {
		return nil
	}
	if meta == nil {
		meta = map[string]any{}
	}
	instance, err := toJSONValue(meta)
	if err != nil {
		return &FrontmatterError{Source: source, Issues: []ValidationIssue{{Message: err.Error()}}}
	}
	if err := v.schema.Validate(instance); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return &FrontmatterError{Source: source, Issues: collectValidationIssues(validationErr)}
		}
		return &FrontmatterError{Source: source, Issues: []ValidationIssue{{Message: err.Error()}}}
	}
	return nil
}

func compileSchema(schema []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(schema)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

// toJSONValue converts decoded YAML into the value shapes the validator
// expects. Nested YAML mappings may arrive keyed by interface{}.
func toJSONValue(meta map[string]any) (any, error) {
	encoded, err := json.Marshal(normalizeKeys(meta))
	if err != nil {
		return nil, err
	}
	decoder := json.NewDecoder(bytes.NewReader(encoded))
	decoder.UseNumber()
	var out any
	if err := decoder.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeKeys(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[k] = normalizeKeys(v)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[fmt.Sprint(k)] = normalizeKeys(v)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = normalizeKeys(v)
		}
		return out
	default:
		return value
	}
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
