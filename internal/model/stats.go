package model

import (
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// StatsRecord is a flat, read-only record of measurements. Values are numbers
// or strings; anything else is treated as absent.
type StatsRecord map[string]any

// ParameterSet holds named numeric constants usable as [PARAM:key].
type ParameterSet map[string]float64

// ManualDataSet holds externally precomputed values usable as [MANUAL:key].
type ManualDataSet map[string]float64

// Number returns the numeric value of key. Numeric strings are accepted.
func (r StatsRecord) Number(key string) (float64, bool) {
	v, ok := r[key]
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// Text returns the string value of key. Numbers are rendered without
// trailing zeros.
func (r StatsRecord) Text(key string) (string, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	default:
		if f, ok := toFloat(t); ok {
			return strconv.FormatFloat(f, 'f', -1, 64), true
		}
	}
	return "", false
}

func (r StatsRecord) Has(key string) bool {
	_, ok := r[key]
	return ok
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int8:
		f = float64(t)
	case int16:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint8:
		f = float64(t)
	case uint16:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
