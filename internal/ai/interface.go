package ai

import (
	"context"

	"freightcalc/internal/maps"
)

// LLMProvider defines the contract for interacting with AI models.
// Implementations must answer with a single JSON document.
type LLMProvider interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// PlaceResolver normalises free-text place names; *maps.Geocoder implements it.
type PlaceResolver interface {
	Resolve(ctx context.Context, query string) (maps.Place, error)
}
