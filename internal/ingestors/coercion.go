package ingestors

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// maxEpochMillis is the largest distance from the Unix epoch, in milliseconds, that a
// timestamp may have (100,000,000 days).
const maxEpochMillis = 8.64e15

// timestampLayouts are tried in order; layouts without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// toNumber coerces an untyped field value to a number.
// Missing fields, objects, arrays and unparseable strings are NaN; null and blank strings are 0;
// booleans are 1 or 0.
func toNumber(v any, present bool) float64 {
	if !present {
		return math.NaN()
	}
	switch val := v.(type) {
	case nil:
		return 0
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0
		}
		v = s
	case map[string]any, []any:
		return math.NaN()
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return math.NaN()
	}
	return f
}

// toSize is toNumber with NaN replaced by 0.
func toSize(v any, present bool) float64 {
	f := toNumber(v, present)
	if math.IsNaN(f) {
		return 0
	}
	return f
}

// toText stringifies a present, truthy value, otherwise returns fallback.
func toText(v any, present bool, fallback string) string {
	if !present || !isTruthy(v) {
		return fallback
	}
	if n, ok := v.(json.Number); ok {
		if f, err := n.Float64(); err == nil {
			v = f
		}
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

func isTruthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0 && !math.IsNaN(val)
	case json.Number:
		// out-of-range literals parse to ±Inf, which is truthy
		f, _ := val.Float64()
		return f != 0
	default:
		return true
	}
}

// toTimestamp parses strings in the accepted layouts and numbers as Unix epoch milliseconds
// within ±maxEpochMillis.
func toTimestamp(v any, present bool) (time.Time, bool) {
	if !present {
		return time.Time{}, false
	}
	switch val := v.(type) {
	case string:
		s := strings.TrimSpace(val)
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), true
			}
		}
	case float64, json.Number:
		ms := toNumber(val, true)
		if isFinite(ms) && math.Abs(ms) <= maxEpochMillis {
			return time.UnixMilli(int64(ms)).UTC(), true
		}
	}
	return time.Time{}, false
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
