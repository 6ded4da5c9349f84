// README: Calculation schema: coerces raw form data and validates both freight legs.
package calculation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldOrder fixes the order errors are reported in.
var fieldOrder = func() map[string]int {
	order := map[string]int{}
	i := 0
	for _, m := range Modes() {
		leg := legField(m)
		order[leg] = i
		i++
		for _, f := range []string{"containerType", "cargoWeight", "origin", "destination", "insurance", "customsClearance"} {
			order[leg+"."+f] = i
			i++
		}
	}
	return order
}()

// ValidateJSON decodes body and validates it. A body that is not a JSON object
// (or anything after it) fails with ErrMalformedInput; field problems fail with *ValidationError.
func ValidateJSON(body []byte) (CalculationRequest, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return CalculationRequest{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if raw == nil {
		return CalculationRequest{}, fmt.Errorf("%w: expected an object", ErrMalformedInput)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return CalculationRequest{}, fmt.Errorf("%w: trailing data after object", ErrMalformedInput)
	}
	return Validate(raw)
}

// Validate turns raw form data into a CalculationRequest. Either the whole
// request is valid or a *ValidationError listing every failed field is returned.
func Validate(raw map[string]any) (CalculationRequest, error) {
	var (
		req     CalculationRequest
		errs    []FieldError
		skipped = map[string]bool{}
	)

	for _, m := range Modes() {
		leg := legField(m)
		obj, ok := raw[leg].(map[string]any)
		if !ok {
			errs = append(errs, requiredError(leg))
			skipped[leg] = true
			continue
		}
		in, typeErrs := coerceLeg(leg, obj)
		for _, e := range typeErrs {
			skipped[e.Field] = true
		}
		errs = append(errs, typeErrs...)
		if m == ModeRail {
			req.RailFreight = in
		} else {
			req.SeaFreight = in
		}
	}

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return CalculationRequest{}, err
		}
		for _, fe := range verrs {
			path := fieldPath(fe.Namespace())
			leg := strings.SplitN(path, ".", 2)[0]
			if skipped[path] || skipped[leg] {
				continue
			}
			errs = append(errs, fromValidator(path, fe))
		}
	}

	if len(errs) > 0 {
		sort.SliceStable(errs, func(i, j int) bool {
			return fieldOrder[errs[i].Field] < fieldOrder[errs[j].Field]
		})
		return CalculationRequest{}, &ValidationError{Fields: errs}
	}
	return req, nil
}

func coerceLeg(leg string, obj map[string]any) (FreightModeInput, []FieldError) {
	var (
		in   FreightModeInput
		errs []FieldError
	)

	// Anything that is not a string fails the enum check as an empty value.
	if s, ok := obj["containerType"].(string); ok {
		in.ContainerType = ContainerType(s)
	}
	in.CargoWeight = coerceNumber(obj["cargoWeight"])

	for _, f := range []struct {
		name string
		dst  *string
	}{{"origin", &in.Origin}, {"destination", &in.Destination}} {
		switch v := obj[f.name].(type) {
		case nil:
		case string:
			*f.dst = v
		default:
			errs = append(errs, invalidTypeError(leg+"."+f.name, "string"))
		}
	}

	for _, f := range []struct {
		name string
		dst  *bool
	}{{"insurance", &in.Insurance}, {"customsClearance", &in.CustomsClearance}} {
		switch v := obj[f.name].(type) {
		case nil:
		case bool:
			*f.dst = v
		default:
			errs = append(errs, invalidTypeError(leg+"."+f.name, "boolean"))
		}
	}
	return in, errs
}

// coerceNumber accepts numbers and numeric strings; everything else becomes NaN
// so that the positive-number rule rejects it.
func coerceNumber(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return math.NaN()
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return math.NaN()
		}
		f = parsed
	default:
		return math.NaN()
	}
	if math.IsInf(f, 0) {
		return math.NaN()
	}
	return f
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fromValidator(path string, fe validator.FieldError) FieldError {
	switch fe.Tag() {
	case "gt":
		return positiveError(path)
	case "min":
		min, err := strconv.Atoi(fe.Param())
		if err != nil {
			min = 0
		}
		return minLengthError(path, min)
	default:
		return requiredError(path)
	}
}
