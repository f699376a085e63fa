package types

import "encoding/json"

// ToFloat64 converts a numeric interface{} to float64.
// Supports int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
// float32, float64 and json.Number. The second result is false for anything else.
func ToFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int16:
		return float64(n), true
	case int8:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint8:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// IsNumber reports whether v is one of the numeric types ToFloat64 accepts.
func IsNumber(v interface{}) bool {
	_, ok := ToFloat64(v)
	return ok
}
