package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// templateSchema is the JSON Schema every incoming template document must
// satisfy before struct-level validation runs.
const templateSchema = `{
	"type": "object",
	"required": ["name", "sections"],
	"properties": {
		"id": {"type": "string"},
		"name": {"type": "string", "minLength": 3},
		"description": {"type": "string"},
		"version": {"type": "string"},
		"resource_type": {"type": "string"},
		"sections": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "title", "items"],
				"properties": {
					"id": {"type": "string"},
					"title": {"type": "string"},
					"order": {"type": "integer"},
					"items": {
						"type": "array",
						"items": {
							"type": "object",
							"required": ["id", "description", "validation_type", "validation_behavior"],
							"properties": {
								"id": {"type": "string"},
								"description": {"type": "string"},
								"long_description": {"type": "string"},
								"validation_type": {
									"type": "string",
									"enum": ["none", "yes_no", "yes_no_na", "min_max", "quantity", "good_fair_poor", "custom"]
								},
								"validation_behavior": {
									"type": "string",
									"enum": ["raises_error", "raises_warning", "no_validation"]
								},
								"required": {"type": "boolean"},
								"order": {"type": "integer"},
								"config": {
									"type": "object",
									"properties": {
										"error_values": {"type": "array", "items": {"type": "string"}},
										"min": {"type": "number"},
										"max": {"type": "number"},
										"error_outside_range": {"type": "boolean"},
										"custom_options": {"type": "array", "items": {"type": "string"}}
									}
								}
							}
						}
					}
				}
			}
		}
	}
}`

// ErrInvalidTemplateDocument indicates a template document failed schema
// validation.
var ErrInvalidTemplateDocument = errors.New("invalid template document")

// ValidateTemplateDocument checks a raw template JSON document against the
// template schema. The returned error wraps ErrInvalidTemplateDocument and
// lists every schema violation.
func ValidateTemplateDocument(document []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(templateSchema),
		gojsonschema.NewBytesLoader(document),
	)
	if err != nil {
		return fmt.Errorf("failed to validate template document: %w", err)
	}

	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}

	return fmt.Errorf("%w: %s", ErrInvalidTemplateDocument, strings.Join(violations, "; "))
}
