package hywire

// Props is the typed prop object handed to a component's render function.
// Keys are the camelCase prop names as declared.
type Props map[string]any

// PropsTransformer converts a raw string attribute map into typed props.
// Transformers are pure: the output key set always equals the declared prop
// names, and identical inputs yield deep-equal outputs.
type PropsTransformer func(attrs map[string]string) Props

// Schema is an ordered mapping from prop name to PropSpec. Build one with
// the fluent methods or via ParseDecl, then derive a transformer:
//
//	schema := hywire.NewSchema().
//	    String("title", "untitled").
//	    Number("count", 0).
//	    Boolean("done", false)
//	transform := schema.Transformer()
type Schema struct {
	names []string
	specs map[string]PropSpec
}

// NewSchema creates an empty prop schema.
func NewSchema() *Schema {
	return &Schema{specs: make(map[string]PropSpec)}
}

// Add declares a prop with an explicit spec. Re-declaring a name replaces
// the spec but keeps the original position.
func (s *Schema) Add(name string, spec PropSpec) *Schema {
	if _, exists := s.specs[name]; !exists {
		s.names = append(s.names, name)
	}
	s.specs[name] = spec
	return s
}

// String declares a string prop.
func (s *Schema) String(name, def string) *Schema {
	return s.Add(name, String(def))
}

// Number declares a numeric prop.
func (s *Schema) Number(name string, def float64) *Schema {
	return s.Add(name, Number(def))
}

// Boolean declares a boolean prop.
func (s *Schema) Boolean(name string, def bool) *Schema {
	return s.Add(name, Boolean(def))
}

// Array declares an array prop.
func (s *Schema) Array(name string, def []any) *Schema {
	return s.Add(name, Array(def))
}

// Object declares an object prop.
func (s *Schema) Object(name string, def map[string]any) *Schema {
	return s.Add(name, Object(def))
}

// Names returns the declared prop names in declaration order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of declared props.
func (s *Schema) Len() int {
	return len(s.names)
}

// Spec returns the spec for a declared prop name.
func (s *Schema) Spec(name string) (PropSpec, bool) {
	spec, ok := s.specs[name]
	return spec, ok
}

// Transformer folds the schema into a single attrs-to-props function.
// Each prop resolves through its spec's Parse, so missing attributes
// produce defaults and malformed values degrade per kind.
func (s *Schema) Transformer() PropsTransformer {
	names := s.Names()
	specs := make(map[string]PropSpec, len(names))
	for _, n := range names {
		specs[n] = s.specs[n]
	}
	return func(attrs map[string]string) Props {
		props := make(Props, len(names))
		for _, n := range names {
			props[n] = specs[n].Parse(attrs, n)
		}
		return props
	}
}
