package hywire

import (
	"html"
	"sort"
	"strings"
)

// ComponentAttr is the identity stamp: the attribute naming the component
// that produced a markup root, used for downstream DOM targeting.
const ComponentAttr = "data-hw-component"

// stampIdentity inserts the identity attribute into the first opening tag
// of markup. Stamping is idempotent: if the attribute is already present on
// the root tag (from a previous stamp or set by the author), the markup is
// returned unchanged. Markup with no element tag is also returned unchanged.
func stampIdentity(markup, name string) string {
	return mergeRootAttrs(markup, map[string]string{ComponentAttr: name})
}

// mergeRootAttrs inserts attributes into the first opening tag of markup.
// Attributes the root tag already carries are never clobbered. Keys are
// inserted in sorted order so output is deterministic.
func mergeRootAttrs(markup string, attrs map[string]string) string {
	start, end, ok := firstOpeningTag(markup)
	if !ok {
		return markup
	}
	tag := markup[start:end]

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		if !tagHasAttr(tag, k) {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return markup
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(attrs[k]))
		b.WriteByte('"')
	}

	// Keep self-closing tags self-closing: insert before the "/".
	insertAt := end
	if strings.HasSuffix(strings.TrimRight(tag, " \t\n"), "/") {
		insertAt = start + strings.LastIndexByte(tag, '/')
	}
	return markup[:insertAt] + b.String() + markup[insertAt:]
}

// firstOpeningTag locates the first element opening tag in markup, skipping
// leading text, comments, doctype, and processing instructions. It returns
// the index just past the tag name ('<' + name) and the index of the
// closing '>', so [start:end] is the tag's attribute region.
func firstOpeningTag(markup string) (start, end int, ok bool) {
	i := 0
	for i < len(markup) {
		lt := strings.IndexByte(markup[i:], '<')
		if lt < 0 {
			return 0, 0, false
		}
		i += lt
		switch {
		case strings.HasPrefix(markup[i:], "<!--"):
			close := strings.Index(markup[i:], "-->")
			if close < 0 {
				return 0, 0, false
			}
			i += close + 3
		case strings.HasPrefix(markup[i:], "<!") || strings.HasPrefix(markup[i:], "<?"):
			close := strings.IndexByte(markup[i:], '>')
			if close < 0 {
				return 0, 0, false
			}
			i += close + 1
		case i+1 < len(markup) && isTagNameStart(markup[i+1]):
			nameEnd := i + 1
			for nameEnd < len(markup) && isTagNameByte(markup[nameEnd]) {
				nameEnd++
			}
			tagEnd, found := findTagEnd(markup, nameEnd)
			if !found {
				return 0, 0, false
			}
			return nameEnd, tagEnd, true
		default:
			// Closing tag or stray "<": skip past it.
			i++
		}
	}
	return 0, 0, false
}

// findTagEnd scans from i for the tag's closing '>', honoring quoted
// attribute values.
func findTagEnd(markup string, i int) (int, bool) {
	for i < len(markup) {
		switch markup[i] {
		case '"', '\'':
			quote := markup[i]
			j := strings.IndexByte(markup[i+1:], quote)
			if j < 0 {
				return 0, false
			}
			i += j + 2
		case '>':
			return i, true
		default:
			i++
		}
	}
	return 0, false
}

// tagHasAttr reports whether the tag's attribute region declares the named
// attribute. The region is scanned attribute by attribute so names that are
// prefixes of other names do not false-positive.
func tagHasAttr(tag, name string) bool {
	i := 0
	for i < len(tag) {
		c := tag[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '/':
			i++
		case c == '"' || c == '\'':
			j := strings.IndexByte(tag[i+1:], c)
			if j < 0 {
				return false
			}
			i += j + 2
		default:
			j := i
			for j < len(tag) && !isAttrBoundary(tag[j]) {
				j++
			}
			if strings.EqualFold(tag[i:j], name) {
				return true
			}
			// Skip a "=value" if present so unquoted values are not
			// mistaken for attribute names.
			if j < len(tag) && tag[j] == '=' {
				j++
				if j < len(tag) && (tag[j] == '"' || tag[j] == '\'') {
					quote := tag[j]
					k := strings.IndexByte(tag[j+1:], quote)
					if k < 0 {
						return false
					}
					j += k + 2
				} else {
					for j < len(tag) && !isAttrBoundary(tag[j]) {
						j++
					}
				}
			}
			i = j
		}
	}
	return false
}

func isAttrBoundary(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '=' || c == '/' || c == '>'
}

func isTagNameStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isTagNameByte(c byte) bool {
	return isTagNameStart(c) || (c >= '0' && c <= '9') || c == '-'
}
