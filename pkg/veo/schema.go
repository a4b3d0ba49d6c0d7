package veo

import "github.com/google/jsonschema-go/jsonschema"

// RequestSchema returns the JSON Schema of the default predict body.
// Custom Request.Data payloads are not checked against it.
func RequestSchema() (*jsonschema.Schema, error) {
	return jsonschema.For[PredictRequest](nil)
}
