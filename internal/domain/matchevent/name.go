package matchevent

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// NameOf extracts a display name from a value that is either a plain scalar or a
// nested object. For objects the precedence is: the "name" field, then other
// "*_name" fields, then the first string field, then the formatted object. Map
// keys are visited in sorted order so the result does not depend on decode order.
func NameOf(v any) (string, bool) {
	switch typed := v.(type) {
	case nil:
		return "", false
	case string:
		value := strings.TrimSpace(typed)
		return value, value != ""
	case map[string]any:
		return nameOfObject(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case int:
		return strconv.Itoa(typed), true
	case int64:
		return strconv.FormatInt(typed, 10), true
	default:
		value := strings.TrimSpace(fmt.Sprint(typed))
		return value, value != ""
	}
}

func nameOfObject(obj map[string]any) (string, bool) {
	if len(obj) == 0 {
		return "", false
	}
	if value, ok := obj["name"].(string); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value), true
	}

	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !strings.HasSuffix(key, "_name") {
			continue
		}
		if value, ok := obj[key].(string); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value), true
		}
	}
	for _, key := range keys {
		if value, ok := obj[key].(string); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value), true
		}
	}

	return fmt.Sprint(obj), true
}

func firstPresent(src Raw, keys ...string) (any, bool) {
	for _, key := range keys {
		if value, ok := src[key]; ok && value != nil {
			return value, true
		}
	}
	return nil, false
}

func firstName(src Raw, keys ...string) string {
	for _, key := range keys {
		if name, ok := NameOf(src[key]); ok {
			return name
		}
	}
	return ""
}

func asFloat64(raw any) (float64, bool) {
	var out float64
	switch typed := raw.(type) {
	case float64:
		out = typed
	case float32:
		out = float64(typed)
	case int:
		out = float64(typed)
	case int64:
		out = float64(typed)
	case int32:
		out = float64(typed)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, false
		}
		out = parsed
	default:
		return 0, false
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, false
	}
	return out, true
}

func asInt64(raw any) (int64, bool) {
	switch typed := raw.(type) {
	case int64:
		return typed, true
	case int:
		return int64(typed), true
	case int32:
		return int64(typed), true
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(typed), 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	value, ok := asFloat64(raw)
	if !ok || value != math.Trunc(value) {
		return 0, false
	}
	return int64(value), true
}
