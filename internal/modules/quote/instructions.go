// README: Shipping instruction steps derived from a selected route.
package quote

import (
	"strconv"

	"freightcalc/internal/locale"
)

// BuildInstructions returns the ordered, translated steps for shipping with route.
func BuildInstructions(route BestPriceRoute, t locale.Translator) []string {
	data := map[string]any{
		"Mode":        modeLabel(route, t),
		"Carrier":     route.Carrier,
		"Container":   string(route.ContainerType),
		"Origin":      route.Origin,
		"Destination": route.Destination,
		"Weight":      strconv.FormatFloat(route.CargoWeight, 'f', -1, 64),
		"Days":        route.TransitDays,
		"Amount":      route.Total.Format(t.Language()),
	}

	steps := []string{t.T("instructions.step.book", data)}
	if route.CargoWeight > 0 {
		steps = append(steps, t.T("instructions.step.cargo", data))
	}
	if route.Insurance {
		steps = append(steps, t.T("instructions.step.insurance", data))
	}
	if route.CustomsClearance {
		steps = append(steps, t.T("instructions.step.customs", data))
	}
	steps = append(steps,
		t.T("instructions.step.handover", data),
		t.T("instructions.step.payment", data),
	)
	return steps
}
