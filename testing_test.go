package hywire

import (
	"fmt"
	"net/http"
	"testing"
)

func TestTestRender(t *testing.T) {
	reg := quietRegistry()
	reg.MustDefine("greeting", Definition{
		Props: NewSchema().String("name", "world"),
		Render: htmlFunc(func(props Props, _ Actions, _ ClassMap) string {
			return fmt.Sprintf("<p>hello %s</p>", props["name"])
		}),
	})

	result, err := TestRender(reg, "greeting", map[string]string{"name": "go"})
	if err != nil {
		t.Fatalf("TestRender() error: %v", err)
	}
	if !result.IsOK() {
		t.Errorf("status = %d, want 2xx", result.StatusCode)
	}
	if !result.HTMLContains("hello go") {
		t.Errorf("HTML = %q, want greeting", result.HTML)
	}

	if _, err := TestRender(reg, "missing", nil); !IsUnknownComponent(err) {
		t.Errorf("TestRender(missing) = %v, want ErrUnknownComponent", err)
	}
}

func TestTestAction(t *testing.T) {
	reg := quietRegistry()
	reg.MustDefine("item", Definition{
		Render: htmlFunc(func(Props, Actions, ClassMap) string { return "<li>x</li>" }),
		API: API{
			"save": {
				Method: http.MethodPost,
				Path:   "/items",
				Handler: func(w http.ResponseWriter, r *http.Request) {
					fmt.Fprintf(w, "saved %s", r.FormValue("title"))
				},
			},
		},
	})

	result, err := TestAction(reg, http.MethodPost, "/items", map[string]string{"title": "Milk"})
	if err != nil {
		t.Fatalf("TestAction() error: %v", err)
	}
	if !result.IsOK() {
		t.Errorf("status = %d, want 2xx", result.StatusCode)
	}
	if !result.HTMLContains("saved Milk") {
		t.Errorf("HTML = %q, want form value echoed", result.HTML)
	}

	result, err = TestGet(reg, "/nope")
	if err != nil {
		t.Fatalf("TestGet() error: %v", err)
	}
	if result.IsOK() {
		t.Errorf("status = %d for unknown route, want failure", result.StatusCode)
	}
}
