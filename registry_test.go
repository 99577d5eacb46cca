package hywire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/charmbracelet/log"
)

// htmlFunc wraps a plain markup producer as a render function.
func htmlFunc(produce func(props Props, actions Actions, classes ClassMap) string) RenderFunc {
	return func(props Props, actions Actions, classes ClassMap, children templ.Component) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, produce(props, actions, classes))
			return err
		})
	}
}

func quietRegistry(opts ...RegistryOption) *Registry {
	opts = append([]RegistryOption{WithLogger(log.New(io.Discard))}, opts...)
	return NewRegistry(opts...)
}

func TestDefineNilRender(t *testing.T) {
	reg := quietRegistry()
	_, err := reg.Define("broken", Definition{})
	if !IsNilRender(err) {
		t.Errorf("Define(nil render) = %v, want ErrNilRender", err)
	}
}

func TestRenderUnknownComponent(t *testing.T) {
	reg := quietRegistry()
	_, err := reg.Render(context.Background(), "nope", nil, nil)
	if !IsUnknownComponent(err) {
		t.Errorf("Render(unknown) = %v, want ErrUnknownComponent", err)
	}
}

func TestRenderPipeline(t *testing.T) {
	reg := quietRegistry()
	reg.MustDefine("greeting", Definition{
		Props: NewSchema().String("name", "world"),
		Styles: Styles{
			"root": Decl{"color": "teal"},
		},
		Render: htmlFunc(func(props Props, _ Actions, classes ClassMap) string {
			return fmt.Sprintf(`<p class=%q>hello %s</p>`, classes["root"], props["name"])
		}),
	})

	t.Run("default props", func(t *testing.T) {
		markup, err := reg.Render(context.Background(), "greeting", nil, nil)
		if err != nil {
			t.Fatalf("Render() error: %v", err)
		}
		if !strings.Contains(markup, "hello world") {
			t.Errorf("markup = %q, want default name", markup)
		}
		if !strings.Contains(markup, `data-hw-component="greeting"`) {
			t.Errorf("markup = %q, want identity stamp", markup)
		}
		if !strings.Contains(markup, `class="hw-`) {
			t.Errorf("markup = %q, want generated class", markup)
		}
	})

	t.Run("attribute props", func(t *testing.T) {
		markup, err := reg.Render(context.Background(), "greeting", map[string]string{"name": "go"}, nil)
		if err != nil {
			t.Fatalf("Render() error: %v", err)
		}
		if !strings.Contains(markup, "hello go") {
			t.Errorf("markup = %q, want attribute name", markup)
		}
	})
}

func TestRenderWithDecl(t *testing.T) {
	reg := quietRegistry()
	reg.MustDefine("counter", Definition{
		Decl: `{ label = string("count"), value = number(0) }`,
		Render: htmlFunc(func(props Props, _ Actions, _ ClassMap) string {
			return fmt.Sprintf(`<span>%s: %v</span>`, props["label"], props["value"])
		}),
	})

	markup, err := reg.Render(context.Background(), "counter", map[string]string{"value": "3"}, nil)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(markup, "count: 3") {
		t.Errorf("markup = %q, want declared defaults and coerced value", markup)
	}
}

func TestRenderChildren(t *testing.T) {
	reg := quietRegistry()
	reg.MustDefine("card", Definition{
		Render: func(_ Props, _ Actions, _ ClassMap, children templ.Component) templ.Component {
			return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
				if _, err := io.WriteString(w, "<div>"); err != nil {
					return err
				}
				if children != nil {
					if err := children.Render(ctx, w); err != nil {
						return err
					}
				}
				_, err := io.WriteString(w, "</div>")
				return err
			})
		},
	})

	children := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<em>inner</em>")
		return err
	})
	markup, err := reg.Render(context.Background(), "card", nil, children)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	want := `<div data-hw-component="card"><em>inner</em></div>`
	if markup != want {
		t.Errorf("markup = %q, want %q", markup, want)
	}
}

func TestRenderErrorPropagates(t *testing.T) {
	reg := quietRegistry()
	reg.MustDefine("boom", Definition{
		Render: func(_ Props, _ Actions, _ ClassMap, _ templ.Component) templ.Component {
			return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
				return errors.New("render exploded")
			})
		},
	})

	_, err := reg.Render(context.Background(), "boom", nil, nil)
	if !errors.Is(err, ErrRenderFailed) {
		t.Errorf("Render() = %v, want ErrRenderFailed", err)
	}
}

func TestDefineOverwrite(t *testing.T) {
	reg := quietRegistry()
	static := func(markup string) RenderFunc {
		return htmlFunc(func(Props, Actions, ClassMap) string { return markup })
	}

	reg.MustDefine("widget", Definition{
		Render: static("<p>first</p>"),
		API: API{
			"load": {Method: http.MethodGet, Path: "/first", Handler: func(w http.ResponseWriter, r *http.Request) {}},
		},
	})
	reg.MustDefine("widget", Definition{
		Render: static("<p>second</p>"),
		API: API{
			"load": {Method: http.MethodGet, Path: "/second", Handler: func(w http.ResponseWriter, r *http.Request) {}},
		},
	})

	markup, err := reg.Render(context.Background(), "widget", nil, nil)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(markup, "second") {
		t.Errorf("markup = %q, want the replacement definition", markup)
	}

	routes := reg.Routes()
	if len(routes) != 1 {
		t.Fatalf("Routes() returned %d bindings, want 1", len(routes))
	}
	if routes[0].Path != "/second" {
		t.Errorf("route path = %q, want the replacement route", routes[0].Path)
	}

	// The first definition's route must be gone from the handler too.
	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/first", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /first = %d, want 404 after redefinition", rec.Code)
	}
}

func TestRegistryCSSDedup(t *testing.T) {
	reg := quietRegistry()
	shared := Decl{"color": "teal"}
	static := htmlFunc(func(Props, Actions, ClassMap) string { return "<p>x</p>" })

	reg.MustDefine("one", Definition{Render: static, Styles: Styles{"root": shared}})
	reg.MustDefine("two", Definition{Render: static, Styles: Styles{"root": shared}})

	css := reg.CSS()
	if got := strings.Count(css, "color: teal"); got != 1 {
		t.Errorf("shared rule emitted %d times, want 1:\n%s", got, css)
	}
}

func TestRegistryRoutesAndHandler(t *testing.T) {
	reg := quietRegistry()
	reg.MustDefine("item", Definition{
		Render: htmlFunc(func(Props, Actions, ClassMap) string { return "<li>x</li>" }),
		API: API{
			"load": {
				Method: http.MethodGet,
				Path:   "/items/:id",
				Handler: func(w http.ResponseWriter, r *http.Request) {
					fmt.Fprintf(w, "item %s", PathParam(r, "id"))
				},
			},
			"remove": {
				Method: http.MethodDelete,
				Path:   "/items/:id",
				Handler: func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusNoContent)
				},
			},
			"draft": {Method: http.MethodPost, Path: "/items"}, // no handler: warned, not served
		},
	})

	routes := reg.Routes()
	if len(routes) != 2 {
		t.Fatalf("Routes() returned %d bindings, want 2 (handler-less route skipped)", len(routes))
	}

	t.Run("path params reach handlers", func(t *testing.T) {
		rec := httptest.NewRecorder()
		reg.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))
		if rec.Code != http.StatusOK || rec.Body.String() != "item 42" {
			t.Errorf("GET /items/42 = %d %q", rec.Code, rec.Body.String())
		}
	})

	t.Run("mutations require the HTMX header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		reg.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/items/42", nil))
		if rec.Code != http.StatusForbidden {
			t.Errorf("DELETE without HX-Request = %d, want 403", rec.Code)
		}

		req := httptest.NewRequest(http.MethodDelete, "/items/42", nil)
		req.Header.Set("HX-Request", "true")
		rec = httptest.NewRecorder()
		reg.Handler().ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("DELETE with HX-Request = %d, want 204", rec.Code)
		}
	})
}

func TestRenderActionsAvailable(t *testing.T) {
	reg := quietRegistry()
	reg.MustDefine("todo", Definition{
		API: API{
			"toggle": {Method: http.MethodPatch, Path: "/todos/:id", Handler: func(w http.ResponseWriter, r *http.Request) {}},
		},
		Render: htmlFunc(func(_ Props, actions Actions, _ ClassMap) string {
			attrs := actions["toggle"]("7")
			return fmt.Sprintf(`<button hx-patch="%s">done</button>`, attrs["hx-patch"])
		}),
	})

	markup, err := reg.Render(context.Background(), "todo", nil, nil)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(markup, `hx-patch="/todos/7"`) {
		t.Errorf("markup = %q, want substituted action URL", markup)
	}
}

func TestReactiveStateRoundTrip(t *testing.T) {
	reg := quietRegistry(WithKey([]byte("0123456789abcdef0123456789abcdef")))
	reg.MustDefine("clock", Definition{
		Reactive: true,
		Props:    NewSchema().String("zone", "UTC"),
		Render: htmlFunc(func(props Props, _ Actions, _ ClassMap) string {
			return fmt.Sprintf("<time>%s</time>", props["zone"])
		}),
	})

	markup, err := reg.Render(context.Background(), "clock", map[string]string{"zone": "CET"}, nil)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(markup, `hx-ext="hywire"`) {
		t.Errorf("markup = %q, want binding extension attribute", markup)
	}

	const marker = `data-hw-state="`
	i := strings.Index(markup, marker)
	if i < 0 {
		t.Fatalf("markup = %q, want state attribute", markup)
	}
	state := markup[i+len(marker):]
	state = state[:strings.IndexByte(state, '"')]

	props, err := DecodeState(reg.Encoder(), state)
	if err != nil {
		t.Fatalf("DecodeState() error: %v", err)
	}
	if props["zone"] != "CET" {
		t.Errorf("decoded zone = %v, want CET", props["zone"])
	}
}

func TestComponentEmbedding(t *testing.T) {
	reg := quietRegistry()
	reg.MustDefine("badge", Definition{
		Props: NewSchema().String("text", ""),
		Render: htmlFunc(func(props Props, _ Actions, _ ClassMap) string {
			return fmt.Sprintf("<span>%s</span>", props["text"])
		}),
	})

	var buf strings.Builder
	c := reg.Component("badge", map[string]string{"text": "new"}, nil)
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(buf.String(), "<span") || !strings.Contains(buf.String(), "new") {
		t.Errorf("embedded render = %q", buf.String())
	}
}
