package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// bankSchema defines the JSON Schema for a question bank file.
var bankSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
					"domain": map[string]any{
						"type": "string",
						"enum": []any{
							string(DomainPrepareData),
							string(DomainModelData),
							string(DomainVisualize),
							string(DomainAdminister),
						},
					},
					"level": map[string]any{
						"type": "string",
						"enum": []any{
							string(LevelBeginner),
							string(LevelIntermediate),
							string(LevelAdvanced),
						},
					},
					"prompt": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
					"options": map[string]any{
						"type":     "array",
						"items":    map[string]any{"type": "string"},
						"minItems": 2,
					},
					"correct_index": map[string]any{
						"type":    "integer",
						"minimum": 0,
					},
					"explanation": map[string]any{
						"type": "string",
					},
				},
				"required": []any{"id", "domain", "level", "prompt", "options", "correct_index"},
			},
		},
	},
	"required": []any{"questions"},
}

var compileBankSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	defBytes, err := json.Marshal(bankSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal bank schema: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse bank schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	const schemaURL = "schema://question-bank.json"
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
})

// validateBank checks raw bank JSON against the bank schema.
func validateBank(raw []byte) error {
	compiled, err := compileBankSchema()
	if err != nil {
		return fmt.Errorf("compile bank schema: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("bank schema validation failed: %w", err)
	}
	return nil
}
