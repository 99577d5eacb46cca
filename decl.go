package hywire

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/hywire/hywire/lib/literal"
)

// ParseDecl derives a prop Schema from a compact declaration string written
// in destructuring style, where each entry binds a prop name to a typed
// helper call carrying its default:
//
//	schema := hywire.ParseDecl(`{
//	    title = string("untitled"),
//	    count = number(0),
//	    done  = boolean(false),
//	    tags  = array([]),
//	    meta  = object({}),
//	}`)
//
// The declaration may be wrapped in parentheses (a full parameter list is
// accepted); only the first balanced brace block is inspected. Entries that
// do not match the name = helper(default) pattern, and helper names outside
// the five primitives, are skipped with a logged warning so partial prop
// inference never blocks component definition.
//
// ParseDecl returns nil when no brace block or no helper-call defaults are
// found. Callers must then supply an explicit transformer.
func ParseDecl(src string) *Schema {
	return parseDecl(src, log.Default())
}

func parseDecl(src string, logger *log.Logger) *Schema {
	block, _, err := literal.Balanced(src, '{', '}')
	if err != nil {
		if strings.Contains(src, "{") {
			logger.Warn("prop declaration has an unbalanced brace block, skipping prop derivation", "err", err)
		}
		return nil
	}

	schema := NewSchema()
	for _, entry := range literal.SplitTop(block) {
		name, spec, ok := parseDeclEntry(entry, logger)
		if !ok {
			continue
		}
		schema.Add(name, spec)
	}

	if schema.Len() == 0 {
		return nil
	}
	return schema
}

// parseDeclEntry parses one "name = helper(args)" entry.
func parseDeclEntry(entry string, logger *log.Logger) (string, PropSpec, bool) {
	eq := strings.IndexByte(entry, '=')
	if eq < 0 {
		// A bare identifier is valid destructuring but carries no helper
		// default, so it contributes nothing to the schema.
		logger.Debug("prop entry has no helper default, skipping", "entry", entry)
		return "", PropSpec{}, false
	}

	name := strings.TrimSpace(entry[:eq])
	if !isIdentifier(name) {
		logger.Warn("malformed prop name, skipping", "entry", entry)
		return "", PropSpec{}, false
	}

	rhs := strings.TrimSpace(entry[eq+1:])
	paren := strings.IndexByte(rhs, '(')
	if paren < 0 || !strings.HasSuffix(rhs, ")") {
		logger.Warn("prop default is not a helper call, skipping", "prop", name)
		return "", PropSpec{}, false
	}

	helper := strings.TrimSpace(rhs[:paren])
	argSrc, _, err := literal.Balanced(rhs[paren:], '(', ')')
	if err != nil {
		logger.Warn("unbalanced helper arguments, skipping", "prop", name, "err", err)
		return "", PropSpec{}, false
	}

	var def any
	if args := literal.SplitTop(argSrc); len(args) > 0 {
		def, err = literal.Parse(args[0])
		if err != nil {
			logger.Warn("unreadable helper default, using zero value", "prop", name, "helper", helper, "err", err)
			def = nil
		}
	}

	spec, ok := specForHelper(Kind(helper), def, logger.With("prop", name))
	if !ok {
		logger.Warn("unrecognized prop helper, skipping", "prop", name, "helper", helper)
		return "", PropSpec{}, false
	}
	return name, spec, true
}

// specForHelper builds the concrete spec for a helper name, coercing the
// parsed default to the helper's kind. A default of the wrong type degrades
// to the kind's zero value with a warning.
func specForHelper(kind Kind, def any, logger *log.Logger) (PropSpec, bool) {
	switch kind {
	case KindString:
		s, ok := def.(string)
		if def != nil && !ok {
			logger.Warn("string helper default is not a string, using empty string")
		}
		return String(s), true
	case KindNumber:
		n, ok := def.(float64)
		if def != nil && !ok {
			logger.Warn("number helper default is not numeric, using zero")
		}
		return Number(n), true
	case KindBoolean:
		b, ok := def.(bool)
		if def != nil && !ok {
			logger.Warn("boolean helper default is not a boolean, using false")
		}
		return Boolean(b), true
	case KindArray:
		a, ok := def.([]any)
		if def != nil && !ok {
			logger.Warn("array helper default is not an array, using empty array")
		}
		if a == nil {
			a = []any{}
		}
		return Array(a), true
	case KindObject:
		m, ok := def.(map[string]any)
		if def != nil && !ok {
			logger.Warn("object helper default is not an object, using empty object")
		}
		if m == nil {
			m = map[string]any{}
		}
		return Object(m), true
	}
	return PropSpec{}, false
}

// isIdentifier reports whether s is a plausible prop name.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
