package validation

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// criteriaSchema guards the shape of a recommendation request: unknown keys
// are rejected outright, while value-level checks (enumerations, numeric
// ranges, min/max consistency) stay with the criteria normalizer so every
// problem can be reported field by field in one pass.
const criteriaSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"hardiness_zone": {"type": ["integer", "string", "number"]},
		"sun_exposure": {"type": "string"},
		"soil_type": {"type": "string"},
		"soil_ph": {"type": ["number", "string"]},
		"moisture_level": {"type": "string"},
		"desired_height_min": {"type": ["number", "string"]},
		"desired_height_max": {"type": ["number", "string"]},
		"desired_width_min": {"type": ["number", "string"]},
		"desired_width_max": {"type": ["number", "string"]},
		"color_preferences": {"type": "array", "items": {"type": "string"}},
		"bloom_season": {"type": "string"},
		"maintenance_level": {"type": "string"},
		"budget_range": {"type": "string"},
		"native_preference": {"type": "boolean"},
		"wildlife_friendly": {"type": "boolean"},
		"deer_resistant_required": {"type": "boolean"},
		"pollinator_friendly_required": {"type": "boolean"},
		"container_planting": {"type": "boolean"},
		"screening_purpose": {"type": "boolean"},
		"hedging_purpose": {"type": "boolean"},
		"groundcover_purpose": {"type": "boolean"},
		"slope_planting": {"type": "boolean"}
	}
}`

const feedbackSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"additionalProperties": false,
	"required": ["request_id", "rating"],
	"properties": {
		"request_id": {"type": "string", "format": "uuid"},
		"rating": {"type": "integer"},
		"feedback": {
			"type": "object",
			"additionalProperties": false,
			"properties": {
				"selected_plant_ids": {"type": "array", "items": {"type": "string", "format": "uuid"}},
				"comments": {"type": "string", "maxLength": 2000}
			}
		}
	}
}`

// SchemaValidator handles JSON schema validation for API requests
type SchemaValidator struct {
	schemas map[string]*gojsonschema.Schema
}

// NewSchemaValidator compiles the embedded request schemas.
func NewSchemaValidator() (*SchemaValidator, error) {
	sources := map[string]string{
		"criteria": criteriaSchema,
		"feedback": feedbackSchema,
	}

	sv := &SchemaValidator{schemas: make(map[string]*gojsonschema.Schema)}
	for name, source := range sources {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
		}
		sv.schemas[name] = schema
	}
	return sv, nil
}

// ValidateCriteria validates a raw criteria payload against its schema.
func (sv *SchemaValidator) ValidateCriteria(data interface{}) *ValidationResult {
	return sv.validate("criteria", data)
}

// ValidateFeedback validates a feedback submission against its schema.
func (sv *SchemaValidator) ValidateFeedback(data interface{}) *ValidationResult {
	return sv.validate("feedback", data)
}

func (sv *SchemaValidator) validate(schemaName string, data interface{}) *ValidationResult {
	schema, exists := sv.schemas[schemaName]
	if !exists {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "schema",
				Message: fmt.Sprintf("Schema '%s' not found", schemaName),
				Code:    "SCHEMA_NOT_FOUND",
			}},
		}
	}

	var documentLoader gojsonschema.JSONLoader
	switch v := data.(type) {
	case string:
		documentLoader = gojsonschema.NewStringLoader(v)
	case []byte:
		documentLoader = gojsonschema.NewBytesLoader(v)
	default:
		jsonBytes, err := json.Marshal(data)
		if err != nil {
			return &ValidationResult{
				Valid: false,
				Errors: []ValidationError{{
					Field:   "data",
					Message: fmt.Sprintf("Failed to marshal data to JSON: %v", err),
					Code:    "JSON_MARSHAL_ERROR",
				}},
			}
		}
		documentLoader = gojsonschema.NewBytesLoader(jsonBytes)
	}

	result, err := schema.Validate(documentLoader)
	if err != nil {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "validation",
				Message: fmt.Sprintf("Validation error: %v", err),
				Code:    "VALIDATION_ERROR",
			}},
		}
	}

	validationResult := &ValidationResult{
		Valid:  result.Valid(),
		Errors: make([]ValidationError, 0),
	}

	if !result.Valid() {
		for _, err := range result.Errors() {
			validationResult.Errors = append(validationResult.Errors, ValidationError{
				Field:   err.Field(),
				Message: err.Description(),
				Code:    "VALIDATION_ERROR",
				Value:   err.Value(),
			})
		}
	}

	return validationResult
}

// ValidationResult represents the result of a validation operation
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Code    string      `json:"code"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	return fmt.Sprintf("validation error in field '%s': %s", ve.Field, ve.Message)
}
