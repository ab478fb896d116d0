package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/invopop/jsonschema"
	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

const schemaID = "https://github.com/ormasoftchile/microspec/schemas/config-v0.json"

// ValidationError represents a single validation error with location context.
type ValidationError struct {
	Path    string `json:"path"` // JSON-pointer-like location (e.g., "write_output")
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// GenerateJSONSchema produces a JSON Schema Draft 2020-12 document from the
// Config struct using invopop/jsonschema.
func GenerateJSONSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true

	s := r.Reflect(&Config{})
	s.ID = schemaID
	s.Title = "microspec configuration v0"
	s.Description = "Schema for microspec YAML configuration files"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}

// ValidateFile validates a YAML or TOML config file against the schema.
func ValidateFile(path string) []*ValidationError {
	data, err := os.ReadFile(path)
	if err != nil {
		return []*ValidationError{{Message: fmt.Sprintf("read config: %v", err)}}
	}
	if isTOML(path) {
		return ValidateTOML(data)
	}
	return Validate(data)
}

// ValidateTOML checks a TOML config document against the generated JSON Schema.
func ValidateTOML(data []byte) []*ValidationError {
	doc := map[string]any{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return []*ValidationError{{Message: fmt.Sprintf("parse toml: %v", err)}}
	}
	return validateDocument(doc)
}

// Validate checks a YAML config document against the generated JSON Schema.
// An empty result means the document is valid.
func Validate(data []byte) []*ValidationError {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return []*ValidationError{{Message: fmt.Sprintf("parse yaml: %v", err)}}
	}
	return validateDocument(doc)
}

func validateDocument(doc any) []*ValidationError {
	if doc == nil {
		doc = map[string]any{}
	}

	// Round-trip through JSON so the validator sees JSON types only.
	raw, err := json.Marshal(doc)
	if err != nil {
		return []*ValidationError{{Message: fmt.Sprintf("marshal for schema validation: %v", err)}}
	}
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return []*ValidationError{{Message: fmt.Sprintf("unmarshal document: %v", err)}}
	}

	sch, err := compileSchema()
	if err != nil {
		return []*ValidationError{{Message: err.Error()}}
	}

	if err := sch.Validate(instance); err != nil {
		ve, ok := err.(*sjsonschema.ValidationError)
		if !ok {
			return []*ValidationError{{Message: err.Error()}}
		}
		var errs []*ValidationError
		for _, cause := range flattenValidationErrors(ve) {
			errs = append(errs, &ValidationError{
				Path:    strings.Join(cause.InstanceLocation, "/"),
				Message: fmt.Sprintf("%v", cause.ErrorKind),
			})
		}
		return errs
	}
	return nil
}

func compileSchema() (*sjsonschema.Schema, error) {
	schemaJSON, err := GenerateJSONSchema()
	if err != nil {
		return nil, fmt.Errorf("generate schema: %w", err)
	}
	var schemaDoc any
	if err := json.Unmarshal(schemaJSON, &schemaDoc); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	c := sjsonschema.NewCompiler()
	if err := c.AddResource("config-v0.json", schemaDoc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	sch, err := c.Compile("config-v0.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return sch, nil
}

// flattenValidationErrors recursively collects all leaf validation errors.
func flattenValidationErrors(ve *sjsonschema.ValidationError) []*sjsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*sjsonschema.ValidationError{ve}
	}
	var flat []*sjsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flattenValidationErrors(cause)...)
	}
	return flat
}
