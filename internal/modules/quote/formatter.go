// README: Clipboard text for a best-price route, every label resolved through the translator.
package quote

import (
	"strings"

	"freightcalc/internal/locale"
)

// FormatCopyText renders route as the text placed on the clipboard. index is
// zero-based; the text shows it as a one-based option number.
func FormatCopyText(route BestPriceRoute, index int, t locale.Translator) string {
	lang := t.Language()
	lines := []string{
		t.T("quote.copy.header", map[string]any{"Option": index + 1, "Mode": modeLabel(route, t)}),
		t.T("quote.copy.rate", map[string]any{"Amount": route.Total.Format(lang)}),
	}
	for _, item := range route.Breakdown {
		lines = append(lines, t.T("quote.copy.breakdown", map[string]any{
			"Name":   item.Name,
			"Amount": item.Amount.Format(lang),
		}))
	}
	if route.Carrier != "" {
		lines = append(lines, t.T("quote.copy.carrier", map[string]any{"Carrier": route.Carrier}))
	}
	lines = append(lines,
		t.T("quote.copy.container", map[string]any{"Container": string(route.ContainerType)}),
		t.T("quote.copy.route", map[string]any{"Origin": route.Origin, "Destination": route.Destination}),
	)
	if route.TransitDays > 0 {
		lines = append(lines, t.T("quote.copy.transit", map[string]any{"Days": route.TransitDays}))
	}
	lines = append(lines, t.T("quote.copy.options", map[string]any{
		"Insurance": yesNo(route.Insurance, t),
		"Customs":   yesNo(route.CustomsClearance, t),
	}))
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func modeLabel(route BestPriceRoute, t locale.Translator) string {
	return t.T("mode."+string(route.Mode), nil)
}

func yesNo(v bool, t locale.Translator) string {
	if v {
		return t.T("common.yes", nil)
	}
	return t.T("common.no", nil)
}
