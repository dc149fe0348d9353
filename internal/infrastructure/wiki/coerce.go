package wiki

import (
	"encoding/json"
	"math"

	"github.com/guregu/null/v6"
)

// The upstream API is loosely typed. Every field is coerced here, once, into
// either a usable value or null; nothing past this package sees raw JSON.

type fields map[string]json.RawMessage

func decodeFields(raw json.RawMessage) fields {
	var f fields
	if err := json.Unmarshal(raw, &f); err != nil {
		return fields{}
	}
	return f
}

func (f fields) float(keys ...string) null.Float {
	for _, key := range keys {
		if v := coerceFloat(f[key]); v.Valid {
			return v
		}
	}
	return null.Float{}
}

func (f fields) int(keys ...string) null.Int {
	for _, key := range keys {
		if v := coerceInt(f[key]); v.Valid {
			return v
		}
	}
	return null.Int{}
}

func (f fields) string(key string) null.String {
	return coerceString(f[key])
}

func (f fields) truthy(key string) bool {
	return coerceTruthy(f[key])
}

func coerceFloat(raw json.RawMessage) null.Float {
	if len(raw) == 0 {
		return null.Float{}
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return null.Float{}
	}
	n, ok := v.(float64)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return null.Float{}
	}
	return null.FloatFrom(n)
}

func coerceInt(raw json.RawMessage) null.Int {
	f := coerceFloat(raw)
	if !f.Valid || f.Float64 != math.Trunc(f.Float64) {
		return null.Int{}
	}
	if f.Float64 >= math.MaxInt64 || f.Float64 <= math.MinInt64 {
		return null.Int{}
	}
	return null.IntFrom(int64(f.Float64))
}

func coerceString(raw json.RawMessage) null.String {
	if len(raw) == 0 {
		return null.String{}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return null.String{}
	}
	return null.StringFrom(s)
}

// coerceTruthy follows the upstream's own loose flag encoding: true, non-zero
// numbers and non-empty strings are set.
func coerceTruthy(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return false
	}
}
