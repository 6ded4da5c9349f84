// README: Freight flows served by the in-process runtime.
package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"freightcalc/internal/locale"
	"freightcalc/internal/modules/calculation"
	"freightcalc/internal/modules/quote"
)

const (
	FlowCalculateBestPrice   = "calculateBestPrice"
	FlowShippingInstructions = "generateShippingInstructions"
)

// RouteAdvisor prices one freight leg.
type RouteAdvisor interface {
	SuggestRoutes(ctx context.Context, mode calculation.Mode, leg calculation.FreightModeInput) ([]quote.BestPriceRoute, error)
}

type QuoteRecorder interface {
	Record(ctx context.Context, req calculation.CalculationRequest, routes []quote.BestPriceRoute) (quote.Quote, error)
}

type BestPriceResult struct {
	QuoteID   string                 `json:"quoteId"`
	Routes    []quote.BestPriceRoute `json:"routes"`
	CreatedAt time.Time              `json:"createdAt"`
}

type instructionsInput struct {
	Route  quote.BestPriceRoute `json:"route"`
	Locale string               `json:"locale"`
}

type InstructionsResult struct {
	Locale   string   `json:"locale"`
	Steps    []string `json:"steps"`
	CopyText string   `json:"copyText"`
}

// RegisterFreightFlows adds calculateBestPrice and generateShippingInstructions to reg.
func RegisterFreightFlows(reg *Registry, advisor RouteAdvisor, quotes QuoteRecorder, catalog *locale.Catalog) error {
	err := reg.Register(FlowCalculateBestPrice,
		"Validates a sea/rail calculation request and returns ranked best-price routes.",
		func(ctx context.Context, input json.RawMessage, _ Context) (any, error) {
			return calculateBestPrice(ctx, advisor, quotes, input)
		})
	if err != nil {
		return err
	}
	return reg.Register(FlowShippingInstructions,
		"Builds localized shipping instructions for a selected route.",
		func(_ context.Context, input json.RawMessage, _ Context) (any, error) {
			return shippingInstructions(catalog, input)
		})
}

func calculateBestPrice(ctx context.Context, advisor RouteAdvisor, quotes QuoteRecorder, input json.RawMessage) (BestPriceResult, error) {
	dec := json.NewDecoder(bytes.NewReader(input))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil || raw == nil {
		return BestPriceResult{}, fmt.Errorf("%w: calculation request must be an object", ErrInvalidInput)
	}
	req, err := calculation.Validate(raw)
	if err != nil {
		return BestPriceResult{}, err
	}

	var routes []quote.BestPriceRoute
	for _, m := range calculation.Modes() {
		got, err := advisor.SuggestRoutes(ctx, m, req.Leg(m))
		if err != nil {
			return BestPriceResult{}, fmt.Errorf("price %s leg: %w", m, err)
		}
		routes = append(routes, got...)
	}

	q, err := quotes.Record(ctx, req, routes)
	if err != nil {
		return BestPriceResult{}, fmt.Errorf("record quote: %w", err)
	}
	return BestPriceResult{QuoteID: q.ID, Routes: q.Routes, CreatedAt: q.CreatedAt}, nil
}

func shippingInstructions(catalog *locale.Catalog, input json.RawMessage) (InstructionsResult, error) {
	var in instructionsInput
	if err := json.Unmarshal(input, &in); err != nil {
		return InstructionsResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !in.Route.Mode.Valid() {
		return InstructionsResult{}, fmt.Errorf("%w: route mode %q", ErrInvalidInput, in.Route.Mode)
	}
	t := catalog.For(catalog.Match(in.Locale, ""))
	return InstructionsResult{
		Locale:   t.Language().String(),
		Steps:    quote.BuildInstructions(in.Route, t),
		CopyText: quote.FormatCopyText(in.Route, 0, t),
	}, nil
}
