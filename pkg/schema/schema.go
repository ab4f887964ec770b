// Package schema validates metadata documents against the embedded
// JSON Schemas before they are projected into the index.
package schema

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Validator holds the compiled preset-meta and bundle schemas.
type Validator struct {
	preset *jsonschema.Schema
	bundle *jsonschema.Schema
}

// NewValidator compiles both embedded schemas. Compilation only fails
// if the embedded schema files themselves are broken.
func NewValidator() (*Validator, error) {
	preset, err := compile("preset-meta.schema.json")
	if err != nil {
		return nil, err
	}
	bundle, err := compile("bundle.schema.json")
	if err != nil {
		return nil, err
	}
	return &Validator{preset: preset, bundle: bundle}, nil
}

func compile(name string) (*jsonschema.Schema, error) {
	raw, err := schemaFS.ReadFile("schemas/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded schema %s: %w", name, err)
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("embedded schema %s is invalid: %w", name, err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema %s: %w", name, err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}
	return schema, nil
}

// ValidatePreset checks raw preset-meta document bytes. The path is
// only used to name the offending file in the error.
func (v *Validator) ValidatePreset(data []byte, path string) error {
	return validate(v.preset, data, path)
}

// ValidateBundle checks raw bundle document bytes.
func (v *Validator) ValidateBundle(data []byte, path string) error {
	return validate(v.bundle, data, path)
}

func validate(schema *jsonschema.Schema, data []byte, path string) error {
	var instance interface{}
	if err := json.Unmarshal(data, &instance); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("schema violation in %s: %w", path, err)
	}
	return nil
}
