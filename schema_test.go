package hywire

import (
	"reflect"
	"testing"
)

func testSchema() *Schema {
	return NewSchema().
		String("title", "untitled").
		Number("count", 0).
		Boolean("done", false)
}

func TestSchemaOrder(t *testing.T) {
	s := testSchema()

	want := []string{"title", "count", "done"}
	if got := s.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	// Re-declaring keeps the original position.
	s.String("count", "oops")
	if got := s.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() after redeclare = %v, want %v", got, want)
	}
}

func TestTransformerKeySetIsStable(t *testing.T) {
	transform := testSchema().Transformer()

	inputs := []map[string]string{
		{},
		{"title": "Milk"},
		{"title": "Milk", "count": "2", "done": "true", "extra": "ignored"},
	}

	for _, attrs := range inputs {
		props := transform(attrs)
		if len(props) != 3 {
			t.Fatalf("transform(%v) has %d keys, want 3", attrs, len(props))
		}
		for _, name := range []string{"title", "count", "done"} {
			if _, ok := props[name]; !ok {
				t.Errorf("transform(%v) missing key %q", attrs, name)
			}
		}
		// Undeclared attributes never leak into props.
		if _, ok := props["extra"]; ok {
			t.Errorf("transform(%v) leaked undeclared key", attrs)
		}
	}
}

func TestTransformerIsIdempotent(t *testing.T) {
	transform := testSchema().Transformer()
	attrs := map[string]string{"title": "Milk", "count": "2"}

	first := transform(attrs)
	second := transform(attrs)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated transform differs: %v vs %v", first, second)
	}
}

func TestTransformerValues(t *testing.T) {
	transform := testSchema().Transformer()

	props := transform(map[string]string{"title": "Milk", "count": "2", "done": "true"})

	if props["title"] != "Milk" {
		t.Errorf("title = %v, want Milk", props["title"])
	}
	if props["count"] != float64(2) {
		t.Errorf("count = %v, want 2", props["count"])
	}
	if props["done"] != true {
		t.Errorf("done = %v, want true", props["done"])
	}
}
