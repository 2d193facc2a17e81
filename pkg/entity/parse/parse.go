// Package parse converts the speaker's dict-shaped payloads into the
// typed values entities expose. Parsers are small stateless objects
// injected into entities; payload shapes are defined by the device and
// parsers tolerate missing or oddly-typed fields.
package parse

import "github.com/spf13/cast"

// Nested walks a chain of map keys, returning nil when any hop is
// missing or not a mapping.
func Nested(body map[string]any, keys ...string) any {
	var cur any = body
	for _, key := range keys {
		m, err := cast.ToStringMapE(cur)
		if err != nil {
			return nil
		}
		cur = m[key]
	}
	return cur
}

// NestedMap is Nested with the result coerced to a mapping.
func NestedMap(body map[string]any, keys ...string) map[string]any {
	m, err := cast.ToStringMapE(Nested(body, keys...))
	if err != nil {
		return nil
	}
	return m
}

// NestedString is Nested with the result coerced to a string.
func NestedString(body map[string]any, keys ...string) string {
	return cast.ToString(Nested(body, keys...))
}

// MapSlice coerces a payload field into a slice of mappings.
func MapSlice(v any) []map[string]any {
	items, err := cast.ToSliceE(v)
	if err != nil {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, err := cast.ToStringMapE(item); err == nil {
			out = append(out, m)
		}
	}
	return out
}
