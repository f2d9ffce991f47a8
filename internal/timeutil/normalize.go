// Package timeutil normalizes the timestamp shapes that arrive from the
// document store into plain RFC 3339 strings.
package timeutil

import (
	"encoding/json"
	"time"
)

// NowRFC3339 returns the current UTC time formatted as RFC 3339.
func NowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// NormalizeValue converts structured timestamp values into RFC 3339 strings
// and recurses into maps and slices. Store clients return timestamps either
// as objects carrying epoch seconds or as time.Time values; downstream code
// only ever sees strings. Values that are already strings, or anything else
// that does not look like a timestamp, pass through unchanged, so applying
// the normalization twice is a no-op.
func NormalizeValue(v any) any {
	switch val := v.(type) {
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	case map[string]any:
		if ts, ok := timestampFromMap(val); ok {
			return ts
		}
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = NormalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = NormalizeValue(item)
		}
		return out
	default:
		return v
	}
}

// NormalizeFields normalizes every value of a document's field map in place
// semantics-wise, returning a new map.
func NormalizeFields(fields map[string]any) map[string]any {
	normalized := NormalizeValue(fields)
	if m, ok := normalized.(map[string]any); ok {
		return m
	}
	return fields
}

// timestampFromMap detects the {seconds, nanoseconds} object shape some
// store clients use for timestamps; the nanoseconds key is also spelled
// "nanos" by some of them. Both float64 (JSON decoding) and integer forms
// are accepted.
func timestampFromMap(m map[string]any) (string, bool) {
	secs, ok := numericField(m, "seconds")
	if !ok {
		return "", false
	}

	nanos, ok := numericField(m, "nanoseconds")
	if !ok {
		nanos, _ = numericField(m, "nanos")
	}

	// A timestamp object carries nothing besides seconds and nanoseconds.
	for k := range m {
		if k != "seconds" && k != "nanoseconds" && k != "nanos" {
			return "", false
		}
	}

	return time.Unix(secs, nanos).UTC().Format(time.RFC3339), true
}

func numericField(m map[string]any, key string) (int64, bool) {
	raw, ok := m[key]
	if !ok {
		return 0, false
	}
	switch n := raw.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
