// validation.go
package receiptprefs

import (
	"encoding/json"
	"fmt"
	"math"
)

var validTypes = map[string]bool{
	StringType: true,
	BoolType:   true,
	IntType:    true,
	FloatType:  true,
}

func isValidType(t string) bool {
	return validTypes[t]
}

// NormalizeValue converts value to the canonical Go type for typ: int,
// float64, bool or string. Values decoded from JSON (float64, json.Number)
// are accepted for numeric types as long as no precision is lost.
func NormalizeValue(value interface{}, typ string) (interface{}, error) {
	switch typ {
	case StringType:
		if s, ok := value.(string); ok {
			return s, nil
		}
		return nil, fmt.Errorf("%w: expected string, got %T", ErrInvalidValue, value)
	case BoolType:
		if b, ok := value.(bool); ok {
			return b, nil
		}
		return nil, fmt.Errorf("%w: expected bool, got %T", ErrInvalidValue, value)
	case IntType:
		switch v := value.(type) {
		case int:
			return v, nil
		case int8:
			return int(v), nil
		case int16:
			return int(v), nil
		case int32:
			return int(v), nil
		case int64:
			return int(v), nil
		case float32:
			return intFromFloat(float64(v))
		case float64:
			return intFromFloat(v)
		case json.Number:
			if i, err := v.Int64(); err == nil {
				return int(i), nil
			}
			f, err := v.Float64()
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, v.String())
			}
			return intFromFloat(f)
		}
		return nil, fmt.Errorf("%w: expected int, got %T", ErrInvalidValue, value)
	case FloatType:
		switch v := value.(type) {
		case float64:
			return v, nil
		case float32:
			return float64(v), nil
		case int:
			return float64(v), nil
		case int32:
			return float64(v), nil
		case int64:
			return float64(v), nil
		case json.Number:
			f, err := v.Float64()
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, v.String())
			}
			return f, nil
		}
		return nil, fmt.Errorf("%w: expected float, got %T", ErrInvalidValue, value)
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidType, typ)
}

// intFromFloat rejects 2^63 and above; float64(math.MaxInt64) rounds up to 2^63.
func intFromFloat(f float64) (interface{}, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return nil, fmt.Errorf("%w: %v is not an integer", ErrInvalidValue, f)
	}
	return int(f), nil
}

func validateValue(value interface{}, def PreferenceDefinition) (interface{}, error) {
	normalized, err := NormalizeValue(value, def.Type)
	if err != nil {
		return nil, err
	}
	if def.ValidateFunc != nil {
		if err := def.ValidateFunc(normalized); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
	}
	return normalized, nil
}

func validateDefinition(def PreferenceDefinition) (PreferenceDefinition, error) {
	if def.Key == "" {
		return def, ErrInvalidKey
	}
	if !isValidType(def.Type) {
		return def, fmt.Errorf("%w: %q", ErrInvalidType, def.Type)
	}
	if def.Sensitive && def.Type != StringType {
		return def, fmt.Errorf("%w: sensitive preference %q must be a string", ErrInvalidType, def.Key)
	}
	if def.DefaultValue != nil {
		normalized, err := NormalizeValue(def.DefaultValue, def.Type)
		if err != nil {
			return def, fmt.Errorf("default for %q: %w", def.Key, err)
		}
		def.DefaultValue = normalized
	}
	return def, nil
}
