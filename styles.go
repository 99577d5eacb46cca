package hywire

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// Styles is the dual-shape style authoring format. Each logical name maps to
// either a flat CSS block string or a nested Decl:
//
//	hywire.Styles{
//	    "button": `{ padding: 0.5rem 1rem; cursor: pointer; }`,
//	    "card": hywire.Decl{
//	        "color":        "red",
//	        "borderRadius": "4px",
//	        "&:hover":      hywire.Decl{"color": "blue"},
//	        "@media (max-width: 600px)": hywire.Decl{"display": "none"},
//	    },
//	}
//
// Flat string bodies are emitted verbatim as the block content, so embedded
// at-rule blocks (keyframes and the like) pass through untouched.
type Styles map[string]any

// Decl is a nested style declaration. Plain keys are CSS properties in
// camelCase or kebab-case; keys beginning with "&" declare pseudo or
// compound selectors scoped to the generated class; keys beginning with "@"
// declare at-rule wrappers (media queries) around the scoped rule.
type Decl map[string]any

// ClassMap maps logical style names to generated class names.
type ClassMap map[string]string

// StyleSheet accumulates compiled style rules across component definitions.
// Class names are content-addressed: identical normalized rule bodies yield
// the same class, and each rule is emitted into the combined CSS exactly
// once, in first-seen order.
type StyleSheet struct {
	emitted map[string]bool
	rules   []string
	logger  *log.Logger
}

// NewStyleSheet creates an empty stylesheet accumulator.
func NewStyleSheet() *StyleSheet {
	return &StyleSheet{
		emitted: make(map[string]bool),
		logger:  log.Default(),
	}
}

// SetLogger routes authoring warnings to the given logger.
func (ss *StyleSheet) SetLogger(logger *log.Logger) {
	ss.logger = logger
}

// Compile normalizes one component's styles into a class map, folding the
// generated rules into the sheet. It returns the class map and the CSS text
// of this component's own rules; rules whose class was already emitted by
// an earlier compilation are included in the returned text but not
// re-emitted into the combined sheet. Names within a single call are
// processed in sorted order so output does not depend on map iteration.
//
// Unsupported value shapes are skipped with a warning; compilation never
// fails outright.
func (ss *StyleSheet) Compile(styles Styles) (ClassMap, string) {
	classes := make(ClassMap, len(styles))
	var own []string
	seen := make(map[string]bool, len(styles))

	names := make([]string, 0, len(styles))
	for name := range styles {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		body, rules, ok := normalizeStyle(styles[name])
		if !ok {
			ss.logger.Warn("style must be a CSS block string or a nested declaration, skipping",
				"style", name, "got", fmt.Sprintf("%T", styles[name]))
			continue
		}
		class := classNameFor(body)
		classes[name] = class
		if !seen[class] {
			seen[class] = true
			for _, rule := range rules {
				own = append(own, expandClass(rule, class))
			}
		}
		if !ss.emitted[class] {
			ss.emitted[class] = true
			for _, rule := range rules {
				ss.rules = append(ss.rules, expandClass(rule, class))
			}
		}
	}
	return classes, strings.Join(own, "\n")
}

// CSS returns the combined stylesheet: every generated rule once, in
// first-seen order.
func (ss *StyleSheet) CSS() string {
	return strings.Join(ss.rules, "\n")
}

// classPlaceholder stands in for the generated class name inside normalized
// rule text, so the text can be hashed before the name exists.
const classPlaceholder = "\x00class\x00"

// classNameFor derives the content-addressed class name for a normalized
// rule body.
func classNameFor(body string) string {
	sum := sha256.Sum256([]byte(body))
	return "hw-" + hex.EncodeToString(sum[:4])
}

// expandClass substitutes the generated class name into an emitted rule.
func expandClass(rule, class string) string {
	return strings.ReplaceAll(rule, classPlaceholder, class)
}

// normalizeStyle produces the canonical body text (hash input) and the
// emitted rules (with the class name still a placeholder) for one style
// value. ok is false when the value is neither shape.
func normalizeStyle(v any) (body string, rules []string, ok bool) {
	switch s := v.(type) {
	case string:
		body = strings.TrimSpace(s)
		// Verbatim block: embedded at-rules inside the body pass through
		// without re-scoping.
		return body, []string{"." + classPlaceholder + " " + body}, true
	case Decl:
		return normalizeDecl(map[string]any(s))
	case map[string]any:
		return normalizeDecl(s)
	}
	return "", nil, false
}

// normalizeDecl flattens a nested declaration into a canonical body string
// and the rules it emits. Property keys are converted to kebab-case and
// sorted so authoring order never changes the content address.
func normalizeDecl(decl map[string]any) (string, []string, bool) {
	var props, pseudos, atRules []string

	keys := make([]string, 0, len(decl))
	for k := range decl {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch {
		case strings.HasPrefix(k, "&"):
			sub, ok := declBlock(decl[k])
			if !ok {
				continue
			}
			sel := "." + classPlaceholder + k[1:]
			pseudos = append(pseudos, sel+" { "+sub+" }")
		case strings.HasPrefix(k, "@"):
			sub, ok := declBlock(decl[k])
			if !ok {
				continue
			}
			atRules = append(atRules, k+" { ."+classPlaceholder+" { "+sub+" } }")
		default:
			props = append(props, kebabCase(k)+": "+styleValue(decl[k])+";")
		}
	}

	rules := []string{"." + classPlaceholder + " { " + strings.Join(props, " ") + " }"}
	rules = append(rules, pseudos...)
	rules = append(rules, atRules...)

	// The canonical body is the full emitted text, so a declaration that
	// differs only in a pseudo or media sub-rule still gets its own class.
	return strings.Join(rules, "\n"), rules, true
}

// declBlock renders the property list of a nested sub-declaration.
func declBlock(v any) (string, bool) {
	var m map[string]any
	switch d := v.(type) {
	case Decl:
		m = map[string]any(d)
	case map[string]any:
		m = d
	case string:
		return strings.TrimSpace(strings.Trim(strings.TrimSpace(d), "{}")), true
	default:
		return "", false
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, kebabCase(k)+": "+styleValue(m[k])+";")
	}
	return strings.Join(parts, " "), true
}

// styleValue renders a declaration value as CSS text.
func styleValue(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case float64:
		// Trim the ".0" that %v would leave on whole numbers.
		if n == float64(int64(n)) {
			return fmt.Sprintf("%d", int64(n))
		}
		return fmt.Sprintf("%g", n)
	default:
		return fmt.Sprintf("%v", v)
	}
}
