// ABOUTME: JSON Schema for the recommendation request and response contract.
// ABOUTME: Generated by reflection so the published schema tracks the Go types.
package recommend

import (
	"github.com/harperreed/smartfit/internal/models"
	"github.com/invopop/jsonschema"
)

// Contract pairs the request and response schemas.
type Contract struct {
	Request  *jsonschema.Schema `json:"request"`
	Response *jsonschema.Schema `json:"response"`
}

// GenerateSchema reflects T into an inline JSON Schema.
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

// Schemas returns the recommendation contract.
func Schemas() Contract {
	return Contract{
		Request:  GenerateSchema[models.RecommendationRequest](),
		Response: GenerateSchema[models.RecommendationResponse](),
	}
}
