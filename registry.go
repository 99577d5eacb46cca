package hywire

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"sync"

	"github.com/a-h/templ"
	"github.com/charmbracelet/log"

	"github.com/hywire/hywire/lib/encoding"
)

// RenderFunc produces a component's markup from its typed props, generated
// client actions, and class map. children carries nested content and may be
// nil.
type RenderFunc func(props Props, actions Actions, classes ClassMap, children templ.Component) templ.Component

// Definition declares one component. Render is required; everything else
// is optional.
//
// Props are derived with the following precedence: an explicit Transform
// wins outright; otherwise a Schema is used; otherwise Decl is parsed; with
// none of the three the transformer produces empty props.
type Definition struct {
	// Render produces the component markup. A definition without one is
	// rejected with ErrNilRender.
	Render RenderFunc

	// Transform, when set, replaces prop auto-derivation entirely.
	Transform PropsTransformer

	// Props declares the prop schema explicitly.
	Props *Schema

	// Decl declares props in compact destructuring form, e.g.
	// `{ title = string("untitled"), count = number(0) }`.
	Decl string

	// Styles is the component's flat-or-nested style block.
	Styles Styles

	// API maps action names to route descriptors.
	API API

	// Defaults is the component-level option layer applied to every
	// generated client action before route and per-call options.
	Defaults Options

	// Reactive stamps the rendered root with signed component state
	// (data-hw-state) for the client-side binding extension.
	Reactive bool
}

// RouteBinding is one server route produced by a component definition,
// exposed for registration with an external router.
type RouteBinding struct {
	Component string
	Action    string
	Method    string
	Path      string
	Handler   http.HandlerFunc
}

// Entry is the fully compiled, render-ready representation of one
// component. Entries are built whole by Define and never partially updated.
type Entry struct {
	Name      string
	Transform PropsTransformer
	Classes   ClassMap
	CSS       string
	Actions   Actions
	Bindings  []RouteBinding

	render   RenderFunc
	reactive bool
	encoder  *encoding.Encoder
	logger   *log.Logger
}

// Registry compiles and stores component definitions. One registry is
// created at the application's composition root and passed by reference;
// there is no implicit process-wide state.
//
// Definition happens at startup; render-time access is read-only and safe
// for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	logger     *log.Logger
	encoder    *encoding.Encoder
	sheet      *StyleSheet
	mux        *http.ServeMux
	components map[string]*Entry
	order      []string
}

// RegistryOption configures NewRegistry.
type RegistryOption func(*Registry)

// WithLogger routes authoring warnings to the given logger.
func WithLogger(logger *log.Logger) RegistryOption {
	return func(reg *Registry) { reg.logger = logger }
}

// WithKey sets the key used to sign reactive state attributes. Without it a
// random key is generated, which is fine until state must survive restarts.
func WithKey(key []byte) RegistryOption {
	return func(reg *Registry) {
		enc, err := encoding.NewEncoder(key)
		if err != nil {
			panic(fmt.Sprintf("hywire: failed to create encoder: %v", err))
		}
		reg.encoder = enc
	}
}

// NewRegistry creates an empty component registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	reg := &Registry{
		logger:     log.NewWithOptions(os.Stderr, log.Options{Prefix: "hywire"}),
		sheet:      NewStyleSheet(),
		mux:        http.NewServeMux(),
		components: make(map[string]*Entry),
	}
	for _, opt := range opts {
		opt(reg)
	}
	reg.sheet.SetLogger(reg.logger)
	if reg.encoder == nil {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(fmt.Sprintf("hywire: failed to generate key: %v", err))
		}
		enc, err := encoding.NewEncoder(key)
		if err != nil {
			panic(fmt.Sprintf("hywire: failed to create encoder: %v", err))
		}
		reg.encoder = enc
	}
	return reg
}

// Define compiles a component definition and stores it under name.
// Redefining an existing name overwrites the previous entry with a logged
// warning; the last definition wins.
func (reg *Registry) Define(name string, def Definition) (*Entry, error) {
	if def.Render == nil {
		return nil, fmt.Errorf("%w: %q", ErrNilRender, name)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	logger := reg.logger.With("component", name)

	entry := &Entry{
		Name:      name,
		Transform: reg.buildTransform(name, def, logger),
		render:    def.Render,
		reactive:  def.Reactive,
		encoder:   reg.encoder,
		logger:    logger,
	}
	entry.Classes, entry.CSS = reg.sheet.Compile(def.Styles)
	entry.Actions, entry.Bindings = reg.buildActions(name, def, logger)

	if _, exists := reg.components[name]; exists {
		logger.Warn("component redefined, previous definition replaced")
	} else {
		reg.order = append(reg.order, name)
	}
	reg.components[name] = entry
	reg.rebuildMux()

	return entry, nil
}

// MustDefine is Define that panics on structural errors. Intended for the
// application composition root, where a missing render function is a
// programming error.
func (reg *Registry) MustDefine(name string, def Definition) *Entry {
	entry, err := reg.Define(name, def)
	if err != nil {
		panic(err)
	}
	return entry
}

// buildTransform resolves the props transformer per the Definition
// precedence rules.
func (reg *Registry) buildTransform(name string, def Definition, logger *log.Logger) PropsTransformer {
	if def.Transform != nil {
		return def.Transform
	}
	schema := def.Props
	if schema == nil && def.Decl != "" {
		schema = parseDecl(def.Decl, logger)
		if schema == nil {
			logger.Warn("prop declaration yielded no props; supply an explicit Transform if props are expected")
		}
	}
	if schema == nil {
		return func(map[string]string) Props { return Props{} }
	}
	return schema.Transformer()
}

// buildActions compiles the API map into client actions and route bindings.
// Routes without handlers still get client actions but are not served;
// that is a recoverable authoring error, logged and skipped.
func (reg *Registry) buildActions(name string, def Definition, logger *log.Logger) (Actions, []RouteBinding) {
	if len(def.API) == 0 {
		return Actions{}, nil
	}

	actionNames := make([]string, 0, len(def.API))
	for n := range def.API {
		actionNames = append(actionNames, n)
	}
	sort.Strings(actionNames)

	actions := make(Actions, len(actionNames))
	var bindings []RouteBinding
	for _, actionName := range actionNames {
		route := def.API[actionName]
		actions[actionName] = newClientAction(name, actionName, route, def.Defaults, logger)
		if route.Handler == nil {
			logger.Warn("route declared without a handler, not registered", "action", actionName, "path", route.Path)
			continue
		}
		method := route.Method
		if method == "" {
			method = http.MethodGet
		}
		bindings = append(bindings, RouteBinding{
			Component: name,
			Action:    actionName,
			Method:    method,
			Path:      route.Path,
			Handler:   route.Handler,
		})
	}
	return actions, bindings
}

// rebuildMux replays every stored component's bindings into a fresh mux.
// Rebuilding keeps redefinition simple: the old component's routes vanish
// with its entry. Pattern conflicts between components are an authoring
// error; they are logged and the conflicting route is skipped.
// Caller must hold reg.mu.
func (reg *Registry) rebuildMux() {
	mux := http.NewServeMux()
	for _, name := range reg.order {
		entry := reg.components[name]
		for _, b := range entry.Bindings {
			pattern := b.Method + " " + muxPattern(b.Path)
			register(mux, pattern, b.Handler, reg.logger.With("component", b.Component, "action", b.Action))
		}
	}
	reg.mux = mux
}

// register guards mux registration against pattern conflicts, which
// http.ServeMux reports by panicking.
func register(mux *http.ServeMux, pattern string, handler http.HandlerFunc, logger *log.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("route conflicts with an existing pattern, skipped", "pattern", pattern, "err", r)
		}
	}()
	mux.HandleFunc(pattern, handler)
}

// Encoder returns the registry's state encoder, for decoding data-hw-state
// values in route handlers.
func (reg *Registry) Encoder() *encoding.Encoder {
	return reg.encoder
}

// Lookup returns the compiled entry for a component name.
func (reg *Registry) Lookup(name string) (*Entry, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	entry, ok := reg.components[name]
	return entry, ok
}

// Render renders a defined component from raw string attributes and returns
// the stamped markup.
func (reg *Registry) Render(ctx context.Context, name string, attrs map[string]string, children templ.Component) (string, error) {
	entry, ok := reg.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownComponent, name)
	}
	return entry.Render(ctx, attrs, children)
}

// Component returns a templ component that renders the named entry, for
// embedding inside other templates. Render errors propagate through templ.
func (reg *Registry) Component(name string, attrs map[string]string, children templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		markup, err := reg.Render(ctx, name, attrs, children)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, markup)
		return err
	})
}

// Routes returns every server route produced by the stored definitions, for
// registration with an external router. The internal Handler covers the
// same routes for applications without one.
func (reg *Registry) Routes() []RouteBinding {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	var out []RouteBinding
	for _, name := range reg.order {
		out = append(out, reg.components[name].Bindings...)
	}
	return out
}

// CSS returns the combined stylesheet for every defined component, each
// deduplicated rule exactly once in first-seen order.
func (reg *Registry) CSS() string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.sheet.CSS()
}

// Handler returns an HTTP handler serving the component routes. Mutating
// methods require the HX-Request header that HTMX sends, which blocks
// plain cross-origin form posts without extra tokens.
func (reg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			if r.Header.Get("HX-Request") != "true" {
				http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
				return
			}
		}
		reg.mu.RLock()
		mux := reg.mux
		reg.mu.RUnlock()
		mux.ServeHTTP(w, r)
	})
}

// Render renders the entry: raw attributes flow through the props
// transformer, into the render function, and the resulting markup is
// stamped with the component identity attribute. Reactive entries
// additionally carry signed state on the root element.
func (e *Entry) Render(ctx context.Context, attrs map[string]string, children templ.Component) (string, error) {
	props := e.Transform(attrs)

	component := e.render(props, e.Actions, e.Classes, children)
	if component == nil {
		return "", fmt.Errorf("%w: %q returned no component", ErrRenderFailed, e.Name)
	}

	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrRenderFailed, e.Name, err)
	}

	markup := stampIdentity(buf.String(), e.Name)

	if e.reactive {
		state, err := e.encoder.Encode(map[string]any(props), false)
		if err != nil {
			// State augmentation is best-effort: the component still
			// renders, the binding extension just has nothing to attach to.
			e.logger.Warn("reactive state encoding failed, root left unaugmented", "err", err)
			return markup, nil
		}
		markup = mergeRootAttrs(markup, map[string]string{
			"data-hw-state": state,
			"hx-ext":        "hywire",
		})
	}

	return markup, nil
}
