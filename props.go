package hywire

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the value type a prop helper coerces to.
type Kind string

// Prop helper kinds. These are the five helper names recognized by the
// declaration parser.
const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
)

// PropSpec pairs a default value with a coercion rule for one component
// prop. Specs are created once at definition time and are immutable.
//
// Parse never fails: a missing attribute yields the default, and a
// malformed value degrades per the rules of its kind. Defaults are returned
// as-is with no cloning, so callers must not mutate returned array or
// object defaults.
type PropSpec struct {
	Kind    Kind
	Default any
	coerce  func(raw string) any
}

// Parse resolves the prop value from a raw attribute map. The key is looked
// up first as written, then in its kebab-case form so camelCase prop names
// match HTML attribute conventions (maxItems -> max-items).
func (s PropSpec) Parse(attrs map[string]string, key string) any {
	raw, ok := attrs[key]
	if !ok {
		raw, ok = attrs[kebabCase(key)]
	}
	if !ok {
		return s.Default
	}
	return s.coerce(raw)
}

// String returns a spec for a string prop. Present values are used verbatim.
func String(def string) PropSpec {
	return PropSpec{
		Kind:    KindString,
		Default: def,
		coerce:  func(raw string) any { return raw },
	}
}

// Number returns a spec for a numeric prop. An empty value falls back to
// the default. A non-empty value that does not parse yields NaN rather than
// the default, so authoring mistakes stay visible instead of being masked.
func Number(def float64) PropSpec {
	return PropSpec{
		Kind:    KindNumber,
		Default: def,
		coerce: func(raw string) any {
			if raw == "" {
				return def
			}
			n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return math.NaN()
			}
			return n
		},
	}
}

// Boolean returns a spec for a boolean prop. Attribute presence with an
// empty value or "true" means true, "false" means false, and any other
// present value is treated as truthy presence.
func Boolean(def bool) PropSpec {
	return PropSpec{
		Kind:    KindBoolean,
		Default: def,
		coerce: func(raw string) any {
			return raw != "false"
		},
	}
}

// Array returns a spec for an array prop parsed from a JSON attribute
// value. Unparsable values fall back to the default.
func Array(def []any) PropSpec {
	return PropSpec{
		Kind:    KindArray,
		Default: def,
		coerce: func(raw string) any {
			var v []any
			if err := json.Unmarshal([]byte(raw), &v); err != nil {
				return def
			}
			return v
		},
	}
}

// Object returns a spec for an object prop parsed from a JSON attribute
// value. Unparsable values fall back to the default.
func Object(def map[string]any) PropSpec {
	return PropSpec{
		Kind:    KindObject,
		Default: def,
		coerce: func(raw string) any {
			var v map[string]any
			if err := json.Unmarshal([]byte(raw), &v); err != nil {
				return def
			}
			return v
		},
	}
}

// kebabCase converts camelCase to kebab-case (maxItems -> max-items).
func kebabCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
