package quote

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"

	"freightcalc/internal/modules/calculation"
	"freightcalc/internal/types"
)

// echoTranslator renders "key{k=v,...}" so tests can see exactly what was asked for.
type echoTranslator struct{}

func (echoTranslator) Language() language.Tag { return language.English }

func (echoTranslator) T(key string, data map[string]any) string {
	if len(data) == 0 {
		return key
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, data[k])
	}
	return key + "{" + strings.Join(parts, ",") + "}"
}

func sampleRoute() BestPriceRoute {
	return BestPriceRoute{
		ID:            "r-1",
		Mode:          calculation.ModeRail,
		Carrier:       "RZD Logistics",
		ContainerType: calculation.Container40HC,
		Origin:        "Xi'an",
		Destination:   "Duisburg",
		CargoWeight:   18000,
		Total:         types.FromMajor(6450, "USD"),
		Breakdown: []CostItem{
			{Name: "Freight", Amount: types.FromMajor(6000, "USD")},
			{Name: "Terminal handling", Amount: types.FromMajor(450, "USD")},
		},
		TransitDays:      18,
		Insurance:        true,
		CustomsClearance: false,
	}
}
