package topics

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// catalogSchema is the JSON Schema every catalog document must satisfy.
var catalogSchema = map[string]any{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type":    "object",
	"properties": map[string]any{
		"keywords": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":      "string",
				"minLength": 1,
				"pattern":   `\S`,
			},
		},
		"categories": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	},
	"required":             []any{"keywords"},
	"additionalProperties": false,
}

const catalogSchemaURL = "schema://topic-catalog.json"

var (
	compileOnce     sync.Once
	compiledCatalog *jsonschema.Schema
	compileErr      error
)

// catalogFile is the on-disk shape of a catalog.
type catalogFile struct {
	Categories []string `yaml:"categories"`
	Keywords   []string `yaml:"keywords"`
}

// LoadFile reads and validates a YAML catalog from path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse validates a YAML catalog document and builds a Catalog from it.
func Parse(data []byte) (*Catalog, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := validate(doc); err != nil {
		return nil, err
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(f.Keywords, f.Categories), nil
}

// validate checks a decoded YAML document against catalogSchema.
func validate(doc any) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}

	// Round-trip through JSON so the validator sees plain JSON values
	// rather than YAML-specific Go types.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("catalog is not JSON-compatible: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("re-parse catalog: %w", err)
	}

	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	return nil
}

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		defBytes, err := json.Marshal(catalogSchema)
		if err != nil {
			compileErr = err
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = err
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(catalogSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledCatalog, compileErr = c.Compile(catalogSchemaURL)
	})
	return compiledCatalog, compileErr
}
