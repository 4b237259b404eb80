package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// CanonicalKey converts a code that may arrive as a JSON number or a string
// into one comparable representation. Numbers are written in their shortest
// decimal form, so 7, 7.0 and "7" are equal. Strings are kept verbatim apart
// from surrounding space: "007", "1.50" and "Nan" stay distinct text.
// The second return value is false when the value cannot be keyed.
func CanonicalKey(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case bool:
		return strconv.FormatBool(t), true
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return "", false
		}
		return formatKeyNumber(f)
	}

	f, err := cast.ToFloat64E(v)
	if err == nil {
		return formatKeyNumber(f)
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// MustKey is CanonicalKey without the ok flag; unkeyable values become "".
func MustKey(v any) string {
	k, _ := CanonicalKey(v)
	return k
}

// KeySet builds a lookup set of canonical keys.
func KeySet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if k, ok := CanonicalKey(v); ok {
			set[k] = struct{}{}
		}
	}
	return set
}

func formatKeyNumber(f float64) (string, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}
