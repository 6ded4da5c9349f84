// README: Encodes a selected route into instructions-page parameters and back.
package quote

import (
	"fmt"
	"net/url"
	"strconv"

	"freightcalc/internal/modules/calculation"
	"freightcalc/internal/types"
)

const InstructionsPath = "/instructions"

// InstructionsParams carries everything the instructions page needs so it
// does not have to fetch the quote again. The cost breakdown is not included.
func InstructionsParams(route BestPriceRoute) url.Values {
	v := url.Values{}
	v.Set("id", route.ID)
	v.Set("mode", string(route.Mode))
	v.Set("carrier", route.Carrier)
	v.Set("containerType", string(route.ContainerType))
	v.Set("origin", route.Origin)
	v.Set("destination", route.Destination)
	v.Set("cargoWeight", strconv.FormatFloat(route.CargoWeight, 'f', -1, 64))
	v.Set("total", strconv.FormatInt(route.Total.Amount, 10))
	v.Set("currency", route.Total.Currency)
	v.Set("transitDays", strconv.Itoa(route.TransitDays))
	v.Set("insurance", strconv.FormatBool(route.Insurance))
	v.Set("customsClearance", strconv.FormatBool(route.CustomsClearance))
	return v
}

// ParseInstructionsParams is the inverse of InstructionsParams.
func ParseInstructionsParams(v url.Values) (BestPriceRoute, error) {
	route := BestPriceRoute{
		ID:            v.Get("id"),
		Mode:          calculation.Mode(v.Get("mode")),
		Carrier:       v.Get("carrier"),
		ContainerType: calculation.ContainerType(v.Get("containerType")),
		Origin:        v.Get("origin"),
		Destination:   v.Get("destination"),
	}
	if !route.Mode.Valid() {
		return BestPriceRoute{}, fmt.Errorf("%w: mode %q", ErrInvalidParams, route.Mode)
	}
	if route.Origin == "" || route.Destination == "" {
		return BestPriceRoute{}, fmt.Errorf("%w: origin and destination are required", ErrInvalidParams)
	}

	var err error
	if route.CargoWeight, err = parseFloat(v, "cargoWeight"); err != nil {
		return BestPriceRoute{}, err
	}
	total, err := parseInt(v, "total")
	if err != nil {
		return BestPriceRoute{}, err
	}
	route.Total = types.Money{Amount: total, Currency: v.Get("currency")}
	days, err := parseInt(v, "transitDays")
	if err != nil {
		return BestPriceRoute{}, err
	}
	route.TransitDays = int(days)
	if route.Insurance, err = parseBool(v, "insurance"); err != nil {
		return BestPriceRoute{}, err
	}
	if route.CustomsClearance, err = parseBool(v, "customsClearance"); err != nil {
		return BestPriceRoute{}, err
	}
	return route, nil
}

func parseFloat(v url.Values, key string) (float64, error) {
	s := v.Get(key)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidParams, key)
	}
	return f, nil
}

func parseInt(v url.Values, key string) (int64, error) {
	s := v.Get(key)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidParams, key)
	}
	return n, nil
}

func parseBool(v url.Values, key string) (bool, error) {
	s := v.Get(key)
	if s == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrInvalidParams, key)
	}
	return b, nil
}
