package script

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://promptcraft-script.json"

var stringList = map[string]any{
	"type":     "array",
	"items":    map[string]any{"type": "string", "minLength": 1},
	"minItems": 1,
}

// documentSchema describes script.json.
var documentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"intro":    stringList,
		"overview": stringList,
		"closing":  stringList,
		"steps": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":              map[string]any{"type": "string", "pattern": "^[a-z][a-z0-9_]*$"},
					"title":           map[string]any{"type": "string", "minLength": 1},
					"parameter_label": map[string]any{"type": "string", "minLength": 1},
					"pre_messages":    stringList,
					"choices": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"id":     map[string]any{"type": "string", "minLength": 1},
								"letter": map[string]any{"type": "string", "pattern": "^[A-Z]$"},
								"label":  map[string]any{"type": "string", "minLength": 1},
							},
							"required":             []any{"id", "letter", "label"},
							"additionalProperties": false,
						},
					},
					"confirmations": map[string]any{
						"type":                 "object",
						"additionalProperties": stringList,
					},
					"default_confirmation": stringList,
					"references": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"title": map[string]any{"type": "string", "minLength": 1},
								"url":   map[string]any{"type": "string", "pattern": "^https?://"},
							},
							"required":             []any{"title", "url"},
							"additionalProperties": false,
						},
					},
				},
				"required":             []any{"id", "title", "parameter_label", "pre_messages", "choices", "confirmations", "default_confirmation", "references"},
				"additionalProperties": false,
			},
		},
		"final_prompt":      map[string]any{"type": "string", "minLength": 1},
		"generation_notice": map[string]any{"type": "string", "minLength": 1},
		"preview_text":      map[string]any{"type": "string", "minLength": 1},
		"adjust_prompt":     map[string]any{"type": "string", "minLength": 1},
		"knowledge_points": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"step":   map[string]any{"type": "string", "minLength": 1},
					"points": stringList,
				},
				"required":             []any{"step", "points"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"intro", "overview", "steps", "closing", "final_prompt", "generation_notice", "preview_text", "adjust_prompt", "knowledge_points"},
	"additionalProperties": false,
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// compiledSchema compiles documentSchema once and caches the result.
func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a decoded JSON value, so round-trip the Go map.
		defBytes, err := json.Marshal(documentSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
		if err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// validateSchema checks raw script JSON against documentSchema.
func validateSchema(raw []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile script schema: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
