package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// Place is a geocoded origin or destination.
type Place struct {
	Query       string
	Address     string
	CountryCode string
	Lat, Lng    float64
}

// Label is the most specific description available for prompts.
func (p Place) Label() string {
	if p.Address == "" {
		return p.Query
	}
	if p.CountryCode == "" {
		return p.Address
	}
	return fmt.Sprintf("%s (%s)", p.Address, p.CountryCode)
}

// Geocoder resolves free-text place names via the Google Geocoding API.
type Geocoder struct {
	client *maps.Client
}

// NewGeocoder creates a Geocoder with the given API key. Extra client options
// (e.g. maps.WithBaseURL) are passed through.
func NewGeocoder(apiKey string, opts ...maps.ClientOption) (*Geocoder, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Geocoder{client: client}, nil
}

// Resolve returns the best match for query.
func (g *Geocoder) Resolve(ctx context.Context, query string) (Place, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  query,
		Language: "en",
	})
	if err != nil {
		return Place{}, fmt.Errorf("maps api error: %w", err)
	}
	if len(results) == 0 {
		return Place{}, fmt.Errorf("no place found for %q", query)
	}

	r := results[0]
	p := Place{
		Query:   query,
		Address: r.FormattedAddress,
		Lat:     r.Geometry.Location.Lat,
		Lng:     r.Geometry.Location.Lng,
	}
	for _, c := range r.AddressComponents {
		for _, t := range c.Types {
			if t == "country" {
				p.CountryCode = strings.ToUpper(c.ShortName)
			}
		}
	}
	return p, nil
}
