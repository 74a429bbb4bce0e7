// Package schema declares the expected shape of loaded content and checks raw
// values against it.
//
// A Schema parses an unvalidated value (as produced by a loader: maps, slices,
// strings, numbers, timestamps) into a normalized value of the same general
// form. Failures are reported as *errors.ValidationError for the first
// mismatching field in declaration order, with a dotted path such as
// "date[1]" or "libs[0].name". Decode converts a validated value into a
// typed Go struct.
package schema

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	rerrors "github.com/elmarvr/resume-v2/internal/errors"
)

// Schema parses a raw value or reports why it does not match.
type Schema interface {
	Parse(raw any) (any, error)
}

// pathParser is implemented by the built-in schemas so nested failures carry
// the full field path.
type pathParser interface {
	parseAt(raw any, path string) (any, error)
}

// Validate parses raw with s. A nil schema passes raw through unchanged.
func Validate(s Schema, raw any) (any, error) {
	if s == nil {
		return raw, nil
	}
	return parseChild(s, raw, "")
}

func parseChild(s Schema, raw any, path string) (any, error) {
	if pp, ok := s.(pathParser); ok {
		return pp.parseAt(raw, path)
	}

	v, err := s.Parse(raw)
	if err == nil {
		return v, nil
	}

	if ve, ok := err.(*rerrors.ValidationError); ok && path != "" {
		prefixed := *ve
		prefixed.Path = joinPath(path, ve.Path)
		return nil, &prefixed
	}

	return nil, &rerrors.ValidationError{Path: path, Message: err.Error(), Actual: describe(raw)}
}

func joinPath(parent, child string) string {
	switch {
	case parent == "":
		return child
	case child == "":
		return parent
	case strings.HasPrefix(child, "["):
		return parent + child
	default:
		return parent + "." + child
	}
}

func mismatch(path string, expected fmt.Stringer, raw any) error {
	return rerrors.NewValidationError(path, expected.String(), describe(raw))
}

// describe names the dynamic type of a raw value for error messages.
func describe(raw any) string {
	switch v := raw.(type) {
	case nil:
		return "null"
	case string:
		return "string " + strconv.Quote(v)
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprintf("number %v", v)
	case time.Time:
		return "date"
	case []any:
		return fmt.Sprintf("array(%d)", len(v))
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", raw)
	}
}

type stringSchema struct{}

// String accepts text values.
func String() Schema { return stringSchema{} }

func (s stringSchema) String() string             { return "string" }
func (s stringSchema) Parse(raw any) (any, error) { return s.parseAt(raw, "") }

func (s stringSchema) parseAt(raw any, path string) (any, error) {
	v, ok := raw.(string)
	if !ok {
		return nil, mismatch(path, s, raw)
	}
	return v, nil
}

type boolSchema struct{}

// Bool accepts true or false.
func Bool() Schema { return boolSchema{} }

func (s boolSchema) String() string             { return "boolean" }
func (s boolSchema) Parse(raw any) (any, error) { return s.parseAt(raw, "") }

func (s boolSchema) parseAt(raw any, path string) (any, error) {
	v, ok := raw.(bool)
	if !ok {
		return nil, mismatch(path, s, raw)
	}
	return v, nil
}

type numberSchema struct{ integer bool }

// Number accepts any numeric value and normalizes it to float64.
func Number() Schema { return numberSchema{} }

// Int accepts integral numeric values and normalizes them to int.
func Int() Schema { return numberSchema{integer: true} }

func (s numberSchema) String() string {
	if s.integer {
		return "integer"
	}
	return "number"
}

func (s numberSchema) Parse(raw any) (any, error) { return s.parseAt(raw, "") }

func (s numberSchema) parseAt(raw any, path string) (any, error) {
	if s.integer {
		if rv := reflect.ValueOf(raw); rv.CanInt() {
			return int(rv.Int()), nil
		}
	}

	f, ok := toFloat(raw)
	if !ok {
		return nil, mismatch(path, s, raw)
	}
	if !s.integer {
		return f, nil
	}
	// -MinInt is 2^63 as a float; MaxInt is not representable.
	if f != math.Trunc(f) || f < math.MinInt || f >= -float64(math.MinInt) {
		return nil, mismatch(path, s, raw)
	}
	return int(f), nil
}

func toFloat(raw any) (float64, bool) {
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// dateLayouts are tried in order for textual dates.
var dateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01"}

type dateSchema struct{}

// Date accepts timestamps and textual dates (RFC 3339, "2006-01-02" or
// "2006-01") and normalizes them to time.Time.
func Date() Schema { return dateSchema{} }

func (s dateSchema) String() string             { return "date" }
func (s dateSchema) Parse(raw any) (any, error) { return s.parseAt(raw, "") }

func (s dateSchema) parseAt(raw any, path string) (any, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case interface{ AsTime(*time.Location) time.Time }:
		// TOML local dates and datetimes.
		return v.AsTime(time.UTC), nil
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, strings.TrimSpace(v)); err == nil {
				return t, nil
			}
		}
	}
	return nil, mismatch(path, s, raw)
}

type anySchema struct{}

// Any accepts every value, including null.
func Any() Schema { return anySchema{} }

func (s anySchema) String() string                         { return "any" }
func (s anySchema) Parse(raw any) (any, error)             { return raw, nil }
func (s anySchema) parseAt(raw any, _ string) (any, error) { return raw, nil }

type optionalSchema struct {
	inner Schema
	def   any
}

// Optional accepts a missing or null value, substituting def. Present values
// are parsed by s. A nil def leaves the field absent from the result.
func Optional(s Schema, def any) Schema {
	return optionalSchema{inner: s, def: def}
}

func (s optionalSchema) String() string {
	return fmt.Sprintf("%v?", s.inner)
}

func (s optionalSchema) Parse(raw any) (any, error) { return s.parseAt(raw, "") }

func (s optionalSchema) parseAt(raw any, path string) (any, error) {
	if raw == nil {
		return s.def, nil
	}
	return parseChild(s.inner, raw, path)
}

// FieldSchema binds an object key to the schema of its value.
type FieldSchema struct {
	Name   string
	Schema Schema
}

// Field declares an object key.
func Field(name string, s Schema) FieldSchema {
	return FieldSchema{Name: name, Schema: s}
}

type objectSchema struct {
	fields []FieldSchema
}

// Object accepts a record with the declared fields, checked in declaration
// order. Keys that are not declared are dropped from the result.
func Object(fields ...FieldSchema) Schema {
	return objectSchema{fields: append([]FieldSchema(nil), fields...)}
}

func (s objectSchema) String() string { return "object" }

func (s objectSchema) Parse(raw any) (any, error) { return s.parseAt(raw, "") }

func (s objectSchema) parseAt(raw any, path string) (any, error) {
	m, ok := asMap(raw)
	if !ok {
		return nil, mismatch(path, s, raw)
	}

	out := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		fieldPath := joinPath(path, f.Name)
		value, present := m[f.Name]

		if _, optional := f.Schema.(optionalSchema); !optional && (!present || value == nil) {
			return nil, &rerrors.ValidationError{
				Path:     fieldPath,
				Expected: fmt.Sprint(f.Schema),
				Actual:   "missing",
				Message:  "required field",
			}
		}

		parsed, err := parseChild(f.Schema, value, fieldPath)
		if err != nil {
			return nil, err
		}
		if parsed != nil {
			out[f.Name] = parsed
		}
	}

	return out, nil
}

func asMap(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

type arraySchema struct{ elem Schema }

// Array accepts a list whose every element matches s.
func Array(s Schema) Schema { return arraySchema{elem: s} }

func (s arraySchema) String() string { return fmt.Sprintf("array<%v>", s.elem) }

func (s arraySchema) Parse(raw any) (any, error) { return s.parseAt(raw, "") }

func (s arraySchema) parseAt(raw any, path string) (any, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, mismatch(path, s, raw)
	}

	out := make([]any, len(items))
	for i, item := range items {
		parsed, err := parseChild(s.elem, item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out[i] = parsed
	}
	return out, nil
}

type tupleSchema struct{ elems []Schema }

// Tuple accepts a list of exactly len(elems) items, each matched by the
// schema in the same position. A start and end date pair is
// Tuple(Date(), Date()).
func Tuple(elems ...Schema) Schema {
	return tupleSchema{elems: append([]Schema(nil), elems...)}
}

func (s tupleSchema) String() string {
	names := make([]string, len(s.elems))
	for i, e := range s.elems {
		names[i] = fmt.Sprint(e)
	}
	return "[" + strings.Join(names, ", ") + "]"
}

func (s tupleSchema) Parse(raw any) (any, error) { return s.parseAt(raw, "") }

func (s tupleSchema) parseAt(raw any, path string) (any, error) {
	items, ok := raw.([]any)
	if !ok || len(items) != len(s.elems) {
		return nil, mismatch(path, s, raw)
	}

	out := make([]any, len(items))
	for i, elem := range s.elems {
		parsed, err := parseChild(elem, items[i], fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out[i] = parsed
	}
	return out, nil
}

type mapSchema struct{ value Schema }

// Map accepts a record with arbitrary keys whose values all match s. Keys are
// checked in sorted order.
func Map(s Schema) Schema { return mapSchema{value: s} }

func (s mapSchema) String() string { return fmt.Sprintf("map<%v>", s.value) }

func (s mapSchema) Parse(raw any) (any, error) { return s.parseAt(raw, "") }

func (s mapSchema) parseAt(raw any, path string) (any, error) {
	m, ok := asMap(raw)
	if !ok {
		return nil, mismatch(path, s, raw)
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(m))
	for _, k := range keys {
		parsed, err := parseChild(s.value, m[k], joinPath(path, k))
		if err != nil {
			return nil, err
		}
		out[k] = parsed
	}
	return out, nil
}

// Func adapts a plain function into a Schema. name is used as the expected
// type in error messages.
func Func(name string, fn func(raw any) (any, error)) Schema {
	return funcSchema{name: name, fn: fn}
}

type funcSchema struct {
	name string
	fn   func(any) (any, error)
}

func (s funcSchema) String() string             { return s.name }
func (s funcSchema) Parse(raw any) (any, error) { return s.fn(raw) }
