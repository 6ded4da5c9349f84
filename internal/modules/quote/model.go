// README: Best-price route and stored quote definitions.
package quote

import (
	"errors"
	"time"

	"freightcalc/internal/modules/calculation"
	"freightcalc/internal/types"
)

var (
	ErrNotFound        = errors.New("quote not found")
	ErrHistoryDisabled = errors.New("quote history disabled")
	ErrInvalidParams   = errors.New("invalid instructions parameters")
)

type CostItem struct {
	Name   string      `json:"name"`
	Amount types.Money `json:"amount"`
}

// BestPriceRoute is a priced shipment option as returned by the pricing flow.
type BestPriceRoute struct {
	ID               string                    `json:"id"`
	Mode             calculation.Mode          `json:"mode"`
	Carrier          string                    `json:"carrier"`
	ContainerType    calculation.ContainerType `json:"containerType"`
	Origin           string                    `json:"origin"`
	Destination      string                    `json:"destination"`
	CargoWeight      float64                   `json:"cargoWeight"`
	Total            types.Money               `json:"total"`
	Breakdown        []CostItem                `json:"breakdown,omitempty"`
	TransitDays      int                       `json:"transitDays"`
	Insurance        bool                      `json:"insurance"`
	CustomsClearance bool                      `json:"customsClearance"`
}

// Quote is one stored calculation with its ranked routes.
type Quote struct {
	ID        string                         `json:"id"`
	Request   calculation.CalculationRequest `json:"request"`
	Routes    []BestPriceRoute               `json:"routes"`
	CreatedAt time.Time                      `json:"createdAt"`
}

// Cheapest returns the first route, routes being ranked on save.
func (q Quote) Cheapest() (BestPriceRoute, bool) {
	if len(q.Routes) == 0 {
		return BestPriceRoute{}, false
	}
	return q.Routes[0], true
}
