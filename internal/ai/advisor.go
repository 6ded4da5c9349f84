package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"freightcalc/internal/maps"
	"freightcalc/internal/modules/calculation"
	"freightcalc/internal/modules/quote"
	"freightcalc/internal/types"
)

// MaxRoutesPerLeg caps how many options are kept per freight mode.
const MaxRoutesPerLeg = 3

var ErrNoRoutes = errors.New("model returned no usable routes")

// FreightAdvisor prices freight legs with an LLM.
type FreightAdvisor struct {
	llm    LLMProvider
	places PlaceResolver
	logger *zap.Logger
}

// NewFreightAdvisor accepts a nil places resolver; place names are then used as typed.
func NewFreightAdvisor(llm LLMProvider, places PlaceResolver, logger *zap.Logger) *FreightAdvisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FreightAdvisor{llm: llm, places: places, logger: logger}
}

func (a *FreightAdvisor) SuggestRoutes(ctx context.Context, mode calculation.Mode, leg calculation.FreightModeInput) ([]quote.BestPriceRoute, error) {
	origin := a.resolve(ctx, leg.Origin)
	destination := a.resolve(ctx, leg.Destination)

	raw, err := a.llm.GenerateJSON(ctx, buildRoutePrompt(mode, leg, origin, destination))
	if err != nil {
		return nil, err
	}

	var parsed RouteSuggestions
	if err := json.Unmarshal([]byte(cleanJSONString(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	var routes []quote.BestPriceRoute
	for _, s := range parsed.Routes {
		if s.TotalCost <= 0 || strings.TrimSpace(s.Carrier) == "" {
			continue
		}
		routes = append(routes, toRoute(mode, leg, s))
		if len(routes) == MaxRoutesPerLeg {
			break
		}
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("%s leg: %w", mode, ErrNoRoutes)
	}
	return routes, nil
}

func (a *FreightAdvisor) resolve(ctx context.Context, place string) maps.Place {
	if a.places == nil {
		return maps.Place{Query: place}
	}
	p, err := a.places.Resolve(ctx, place)
	if err != nil {
		a.logger.Debug("geocode failed, using raw place", zap.String("place", place), zap.Error(err))
		return maps.Place{Query: place}
	}
	return p
}

func toRoute(mode calculation.Mode, leg calculation.FreightModeInput, s RouteSuggestion) quote.BestPriceRoute {
	cur := strings.ToUpper(strings.TrimSpace(s.Currency))
	if cur == "" {
		cur = "USD"
	}
	r := quote.BestPriceRoute{
		ID:               uuid.NewString(),
		Mode:             mode,
		Carrier:          strings.TrimSpace(s.Carrier),
		ContainerType:    leg.ContainerType,
		Origin:           leg.Origin,
		Destination:      leg.Destination,
		CargoWeight:      leg.CargoWeight,
		Total:            types.FromMajor(s.TotalCost, cur),
		TransitDays:      s.TransitDays,
		Insurance:        leg.Insurance,
		CustomsClearance: leg.CustomsClearance,
	}
	for _, c := range s.Breakdown {
		r.Breakdown = append(r.Breakdown, quote.CostItem{Name: c.Name, Amount: types.FromMajor(c.Amount, cur)})
	}
	return r
}

func buildRoutePrompt(mode calculation.Mode, leg calculation.FreightModeInput, origin, destination maps.Place) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Quote %s freight for one %s container.\n", strings.ToUpper(string(mode)), leg.ContainerType)
	fmt.Fprintf(&b, "- Origin: %s\n", origin.Label())
	fmt.Fprintf(&b, "- Destination: %s\n", destination.Label())
	fmt.Fprintf(&b, "- Cargo weight: %g kg\n", leg.CargoWeight)
	fmt.Fprintf(&b, "- Cargo insurance: %t\n", leg.Insurance)
	fmt.Fprintf(&b, "- Customs clearance at destination: %t\n", leg.CustomsClearance)
	fmt.Fprintf(&b, `
Return up to %d options, cheapest first, as:
{
  "routes": [
    {
      "carrier": "string",
      "total_cost": number (all-in, includes insurance and customs when requested),
      "currency": "ISO 4217 code",
      "transit_days": integer,
      "breakdown": [{"name": "string", "amount": number}]
    }
  ]
}
`, MaxRoutesPerLeg)
	return b.String()
}
