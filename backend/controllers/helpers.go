package controllers

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// coerceInt converts a decoded JSON value to an integer. Numeric strings
// are accepted (form-style clients send them); fractional numbers are
// rejected rather than truncated.
func coerceInt(v interface{}) (int, error) {
	switch value := v.(type) {
	case float64:
		if value != math.Trunc(value) {
			return 0, fmt.Errorf("not an integer: %v", value)
		}
		return int(value), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, fmt.Errorf("not an integer: %q", value)
		}
		return n, nil
	case int:
		return value, nil
	case nil:
		return 0, fmt.Errorf("missing value")
	default:
		return 0, fmt.Errorf("not an integer: %v", v)
	}
}

// coerceIntDefault is coerceInt with a fallback for absent values.
func coerceIntDefault(v interface{}, def int) (int, error) {
	if v == nil {
		return def, nil
	}
	return coerceInt(v)
}
