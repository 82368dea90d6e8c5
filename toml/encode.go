package toml

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Marshal returns the TOML encoding of v
//
// The root must be a struct or a pointer to one:
//   - scalar fields and arrays of scalars are written first, in field order
//   - struct fields become [table] sections, slices of structs become [[table]] sections
//   - nested tables below the first level are rejected
//   - fields tagged `toml:"-"` are skipped, `omitempty` skips zero values
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encoder writes TOML documents to a stream
type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes v as one document
func (e *Encoder) Encode(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return fmt.Errorf("nil pointer: %w", ErrEncode)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("root must be a struct, got %s: %w", rv.Kind(), ErrEncode)
	}

	var buf bytes.Buffer
	if err := encodeTable(&buf, rv, "", true); err != nil {
		return err
	}
	_, err := e.w.Write(buf.Bytes())
	return err
}

// encodeTable writes scalars first, then sub-tables, so keys precede their sections
func encodeTable(buf *bytes.Buffer, rv reflect.Value, path string, root bool) error {
	typ := rv.Type()
	var tables []int

	for i := range rv.NumField() {
		field := typ.Field(i)
		key, skip := encodedKey(field, rv.Field(i))
		if skip {
			continue
		}
		fv := indirect(rv.Field(i))
		if !fv.IsValid() {
			continue
		}
		if isTable(fv) {
			if !root {
				return fmt.Errorf("%s.%s: nested tables: %w", path, key, ErrEncode)
			}
			tables = append(tables, i)
			continue
		}
		writeKey(buf, key)
		buf.WriteString(" = ")
		if err := encodeValue(buf, fv); err != nil {
			return fmt.Errorf("%s: %w", join(path, key), err)
		}
		buf.WriteByte('\n')
	}

	for _, i := range tables {
		key, _ := encodedKey(typ.Field(i), rv.Field(i))
		fv := indirect(rv.Field(i))
		if fv.Kind() == reflect.Struct {
			buf.WriteString("\n[" + quoteKey(key) + "]\n")
			if err := encodeTable(buf, fv, key, false); err != nil {
				return err
			}
			continue
		}
		for j := range fv.Len() {
			elem := indirect(fv.Index(j))
			if !elem.IsValid() {
				continue
			}
			buf.WriteString("\n[[" + quoteKey(key) + "]]\n")
			if err := encodeTable(buf, elem, fmt.Sprintf("%s[%d]", key, j), false); err != nil {
				return err
			}
		}
	}
	return nil
}

func encodeValue(buf *bytes.Buffer, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Bool:
		buf.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.String:
		writeString(buf, v.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		buf.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		buf.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("non-finite float %v: %w", f, ErrEncode)
		}
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		buf.WriteString(s)
	case reflect.Slice, reflect.Array:
		buf.WriteByte('[')
		for i := range v.Len() {
			if i > 0 {
				buf.WriteString(", ")
			}
			if err := encodeValue(buf, indirect(v.Index(i))); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return fmt.Errorf("unsupported kind %s: %w", v.Kind(), ErrEncode)
	}
	return nil
}

// encodedKey resolves the key name and whether the field is omitted
func encodedKey(field reflect.StructField, v reflect.Value) (string, bool) {
	if !field.IsExported() {
		return "", true
	}
	tag := field.Tag.Get("toml")
	if tag == "-" {
		return "", true
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	if strings.Contains(opts, "omitempty") && v.IsZero() {
		return name, true
	}
	return name, false
}

func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// isTable reports structs and non-empty slices of structs
func isTable(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Struct:
		return true
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return false
		}
		return indirect(v.Index(0)).Kind() == reflect.Struct
	}
	return false
}

func writeKey(buf *bytes.Buffer, key string) {
	buf.WriteString(quoteKey(key))
}

// quoteKey quotes keys the lexer would not read back as a bare identifier
func quoteKey(key string) string {
	if isBareKey(key) {
		return key
	}
	var b bytes.Buffer
	writeString(&b, key)
	return b.String()
}

func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
}

func isBareKey(s string) bool {
	if s == "" || s == "true" || s == "false" {
		return false
	}
	for _, r := range s {
		if !isAlpha(r) && !isDigit(r) && r != '_' && r != '-' {
			return false
		}
	}
	// Keys starting like a number lex as numbers
	return isAlpha(rune(s[0])) || s[0] == '_'
}
