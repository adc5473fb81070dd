package device

import (
	"math"
	"strconv"
	"strings"
)

// Sanitizer converts raw request parameters into a FilterSet. It never fails:
// every output field is well-typed and in range, with per-field defaults and
// clamping standing in for rejection.
type Sanitizer struct{}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// Run sanitizes the requested fields out of the raw parameter map. Values may
// be absent, strings, or already-decoded integers/booleans (JSON bodies).
// Absence is the key missing from the map; a present zero or empty value is
// never treated as absent.
func (s *Sanitizer) Run(params map[string]any, fields []Field) FilterSet {
	fs := FilterSet{Limit: DefaultLimit, Offset: DefaultOffset}

	for _, field := range fields {
		raw, ok := params[string(field)]
		if !ok {
			raw = nil
		}

		switch field {
		case FieldManufacturer:
			fs.Manufacturer = sanitizeName(raw)
		case FieldName:
			fs.Name = sanitizeName(raw)
		case FieldLimit:
			fs.Limit = convertBounded(raw, intPtr(MinLimit), intPtr(MaxLimit), DefaultLimit)
		case FieldOffset:
			fs.Offset = convertBounded(raw, intPtr(MinOffset), nil, DefaultOffset)
		case FieldIsReleased:
			fs.IsReleased = ok && truthy(raw)
		}
	}

	return fs
}

// convertBounded parses raw as a base-10 integer and clamps it to the given
// bounds; anything unparsable falls back to def.
func convertBounded(raw any, min, max *int, def int) int {
	num, ok := convertible(raw)
	if !ok {
		return def
	}
	if min != nil && num < *min {
		return *min
	}
	if max != nil && num > *max {
		return *max
	}
	return num
}

// convertible reports whether raw is of string or integer kind and parses as a
// base-10 integer. Booleans are rejected outright: they superficially parse as
// 0/1 but must never be treated as valid numeric input.
func convertible(raw any) (int, bool) {
	switch v := raw.(type) {
	case bool:
		return 0, false
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		// JSON decoding yields float64 for every number; accept only
		// integral values
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case string:
		num, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return num, true
	default:
		return 0, false
	}
}

// sanitizeName passes a non-empty string through and maps everything else to
// "not supplied".
func sanitizeName(raw any) *string {
	if v, ok := raw.(string); ok && v != "" {
		return &v
	}
	return nil
}

// truthy mirrors the permissive semantics of the query surface: any present,
// non-empty, non-zero value counts. The string "false" is truthy on purpose.
func truthy(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}

func intPtr(v int) *int {
	return &v
}
