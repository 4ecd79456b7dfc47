package validator

import (
	"encoding/json"
	"reflect"
)

// Kind is the JSON type of a decoded value.
type Kind string

const (
	KindNull    Kind = "null"
	KindBool    Kind = "boolean"
	KindNumber  Kind = "number"
	KindString  Kind = "string"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	KindUnknown Kind = "unknown"
)

// KindOf classifies a value produced by encoding/json (map[string]any, []any,
// float64, string, bool, nil). Go integer and float types, json.Number and
// other slices or string-keyed maps are accepted too, so callers may build
// candidates by hand.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return KindArray
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return KindObject
		}
	case reflect.Pointer:
		if rv.IsNil() {
			return KindNull
		}
		return KindOf(rv.Elem().Interface())
	}
	return KindUnknown
}

// asNumber returns the numeric value of v.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// asObject returns v as a field lookup function.
func asObject(v any) (func(name string) (any, bool), bool) {
	if m, ok := v.(map[string]any); ok {
		return func(name string) (any, bool) {
			val, ok := m[name]
			return val, ok
		}, true
	}
	if KindOf(v) != KindObject {
		return nil, false
	}

	rv := reflect.Indirect(reflect.ValueOf(v))
	return func(name string) (any, bool) {
		val := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !val.IsValid() {
			return nil, false
		}
		return val.Interface(), true
	}, true
}

// asArray returns the elements of v.
func asArray(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	if KindOf(v) != KindArray {
		return nil, false
	}

	rv := reflect.Indirect(reflect.ValueOf(v))
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
