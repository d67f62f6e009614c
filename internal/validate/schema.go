package validate

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/maemreyo/canonica/internal/model"
)

//go:embed schemas/document.schema.json
var schemaFS embed.FS

// compileDocumentSchema loads and compiles the embedded canonical
// document schema. Compiled once per validator.
func compileDocumentSchema() (*jsonschema.Schema, error) {
	data, err := schemaFS.ReadFile("schemas/document.schema.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("document.schema.json", bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile("document.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// validateAgainstSchema round-trips the document through JSON and
// checks shape conformance against the embedded schema
func validateAgainstSchema(schema *jsonschema.Schema, doc *model.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("document does not match schema: %w", err)
	}
	return nil
}
