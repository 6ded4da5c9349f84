package ai

// RouteSuggestions is the JSON document the model is asked to return.
type RouteSuggestions struct {
	Routes []RouteSuggestion `json:"routes"`
}

// RouteSuggestion captures one priced option for a single freight leg.
type RouteSuggestion struct {
	// Carrier is the operator name, e.g. "COSCO Shipping" or "RZD Logistics".
	Carrier string `json:"carrier"`

	// TotalCost is the all-in rate for the container in Currency.
	TotalCost float64 `json:"total_cost"`

	// Currency is an ISO 4217 code. Empty means USD.
	Currency string `json:"currency"`

	// TransitDays is the door-to-door estimate.
	TransitDays int `json:"transit_days"`

	Breakdown []CostLine `json:"breakdown"`
}

type CostLine struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}
