package toml

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Unmarshal parses TOML data and stores the result in the value pointed to by v
func Unmarshal(data []byte, v any) error {
	tree, err := Parse(data)
	if err != nil {
		return err
	}
	return Decode(tree, v)
}

// Decode maps a parsed document onto v using reflection
// Struct fields match by `toml` tag, falling back to the field name; unknown keys are ignored
func Decode(data any, v any) error {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer || val.IsNil() {
		return fmt.Errorf("target must be a non-nil pointer, got %T: %w", v, ErrDecode)
	}
	return decodeValue(data, val.Elem(), "")
}

func decodeValue(data any, val reflect.Value, path string) error {
	if data == nil {
		return nil
	}

	switch val.Kind() {
	case reflect.Pointer:
		elem := reflect.New(val.Type().Elem())
		if err := decodeValue(data, elem.Elem(), path); err != nil {
			return err
		}
		val.Set(elem)

	case reflect.Struct:
		table, ok := data.(map[string]any)
		if !ok {
			return mismatch(path, data, "table")
		}
		return decodeStruct(table, val, path)

	case reflect.Slice:
		items, err := asList(data)
		if err != nil {
			return mismatch(path, data, "array")
		}
		out := reflect.MakeSlice(val.Type(), len(items), len(items))
		for i, item := range items {
			if err := decodeValue(item, out.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		val.Set(out)

	case reflect.Map:
		if val.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("%s: map key must be string: %w", path, ErrDecode)
		}
		table, ok := data.(map[string]any)
		if !ok {
			return mismatch(path, data, "table")
		}
		out := reflect.MakeMapWithSize(val.Type(), len(table))
		for k, item := range table {
			elem := reflect.New(val.Type().Elem()).Elem()
			if err := decodeValue(item, elem, join(path, k)); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(k).Convert(val.Type().Key()), elem)
		}
		val.Set(out)

	case reflect.Interface:
		val.Set(reflect.ValueOf(data))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := toInt64(data)
		if !ok || val.OverflowInt(i) {
			return mismatch(path, data, val.Kind().String())
		}
		val.SetInt(i)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, ok := toUint64(data)
		if !ok || val.OverflowUint(u) {
			return mismatch(path, data, val.Kind().String())
		}
		val.SetUint(u)

	case reflect.Float32, reflect.Float64:
		f, ok := toFloat64(data)
		if !ok {
			return mismatch(path, data, "float")
		}
		val.SetFloat(f)

	case reflect.String:
		s, ok := data.(string)
		if !ok {
			return mismatch(path, data, "string")
		}
		val.SetString(s)

	case reflect.Bool:
		b, ok := data.(bool)
		if !ok {
			return mismatch(path, data, "bool")
		}
		val.SetBool(b)

	default:
		return fmt.Errorf("%s: unsupported kind %s: %w", path, val.Kind(), ErrDecode)
	}
	return nil
}

func decodeStruct(table map[string]any, val reflect.Value, path string) error {
	typ := val.Type()
	for i := range val.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		key := fieldKey(field)
		if key == "-" {
			continue
		}
		if item, ok := table[key]; ok {
			if err := decodeValue(item, val.Field(i), join(path, key)); err != nil {
				return err
			}
		}
	}
	return nil
}

// fieldKey returns the tag name or the field name
func fieldKey(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("toml"), ",")
	if name == "" {
		return field.Name
	}
	return name
}

func asList(data any) ([]any, error) {
	switch v := data.(type) {
	case []any:
		return v, nil
	case []map[string]any:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = m
		}
		return out, nil
	}
	return nil, ErrDecode
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > 1<<53 {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

func toUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case int64:
		return uint64(n), n >= 0
	case int:
		return uint64(n), n >= 0
	case float64:
		if n < 0 || n != math.Trunc(n) || n > 1<<53 {
			return 0, false
		}
		return uint64(n), true
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func mismatch(path string, data any, want string) error {
	if path == "" {
		path = "document"
	}
	return fmt.Errorf("%s: cannot store %T (%v) as %s: %w", path, data, data, want, ErrDecode)
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
