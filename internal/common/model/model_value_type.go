//nolint:all
package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// ValueType is the closed set of element value types.
type ValueType string

const (
	ValueTypeString  ValueType = "string"
	ValueTypeInteger ValueType = "integer"
	ValueTypeFloat   ValueType = "float"
	ValueTypeBoolean ValueType = "boolean"
)

// ValueTypes lists all known value types in declaration order.
var ValueTypes = []ValueType{ValueTypeString, ValueTypeInteger, ValueTypeFloat, ValueTypeBoolean}

// ParseValueType maps a wire string onto a ValueType.
func ParseValueType(s string) (ValueType, error) {
	switch ValueType(strings.ToLower(strings.TrimSpace(s))) {
	case ValueTypeString:
		return ValueTypeString, nil
	case ValueTypeInteger:
		return ValueTypeInteger, nil
	case ValueTypeFloat:
		return ValueTypeFloat, nil
	case ValueTypeBoolean:
		return ValueTypeBoolean, nil
	}
	return "", fmt.Errorf("unknown valueType %q", s)
}

var jsonNumber = jsoniter.ConfigCompatibleWithStandardLibrary

// Normalize coerces a decoded JSON value into the canonical Go
// representation for the value type: string, int64, float64 or bool.
// JSON decoding hands every number over as float64, so integer values
// arrive as floats and have to be narrowed back.
func (t ValueType) Normalize(v any) (any, error) {
	switch t {
	case ValueTypeString:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("value %v is not a string", v)
		}
		return s, nil
	case ValueTypeInteger:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int64:
			return n, nil
		case float64:
			if n != math.Trunc(n) {
				return nil, fmt.Errorf("value %v is not an integer", v)
			}
			return int64(n), nil
		case jsoniter.Number:
			return n.Int64()
		case string:
			return strconv.ParseInt(n, 10, 64)
		}
		return nil, fmt.Errorf("value %v is not an integer", v)
	case ValueTypeFloat:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case jsoniter.Number:
			return n.Float64()
		case string:
			return strconv.ParseFloat(n, 64)
		}
		return nil, fmt.Errorf("value %v is not a float", v)
	case ValueTypeBoolean:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("value %v is not a boolean", v)
		}
		return b, nil
	}
	return nil, fmt.Errorf("unknown valueType %q", string(t))
}
