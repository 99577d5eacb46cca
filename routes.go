package hywire

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/charmbracelet/log"
)

// Route declares one server endpoint for a component action. Path segments
// beginning with ":" are parameter placeholders filled by the generated
// client action's positional arguments, in order.
//
// Target, Swap, and Headers are route-level defaults for the generated
// client action; per-call Options override them.
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc

	Target  string
	Swap    SwapMode
	Headers map[string]string
}

// API maps action names to route descriptors in a component definition.
type API map[string]Route

// ClientAction generates the hypermedia attributes that trigger its route.
// Arguments are consumed in order:
//
//   - leading positional arguments fill the path's ":param" placeholders;
//   - one remaining argument becomes the JSON payload (hx-vals);
//   - trailing Options values merge last, overriding route and component
//     defaults (header maps merge rather than replace).
//
// For non-GET routes the attributes default to swapping the triggering
// element itself (hx-target="this"), so a mutation never replaces the whole
// page by accident.
//
//	action("42", map[string]any{"done": true}, hywire.Opt().Target("#item-42"))
type ClientAction func(args ...any) templ.Attributes

// Actions maps action names to their generated client actions. It is the
// second argument passed to every render function.
type Actions map[string]ClientAction

// Options carries per-call overrides for a client action. The zero value
// overrides nothing; build one fluently:
//
//	hywire.Opt().Target("#list").Swap(hywire.SwapBeforeEnd).Header("X-Reason", "undo")
//
// Options is a value type so partially applied option sets can be shared and
// extended without aliasing.
type Options struct {
	target  string
	swap    SwapMode
	headers map[string]string
	confirm string
	trigger string
	pushURL bool
}

// Opt returns an empty option set.
func Opt() Options {
	return Options{}
}

// Target overrides the hx-target selector.
func (o Options) Target(selector string) Options {
	o.target = selector
	return o
}

// Swap overrides the hx-swap mode.
func (o Options) Swap(mode SwapMode) Options {
	o.swap = mode
	return o
}

// Header adds a request header. Headers accumulate across option layers and
// calls; they never replace an entire header set.
func (o Options) Header(key, value string) Options {
	merged := make(map[string]string, len(o.headers)+1)
	for k, v := range o.headers {
		merged[k] = v
	}
	merged[key] = value
	o.headers = merged
	return o
}

// Confirm asks for confirmation before the request is issued.
func (o Options) Confirm(message string) Options {
	o.confirm = message
	return o
}

// Trigger overrides the hx-trigger expression.
func (o Options) Trigger(expr string) Options {
	o.trigger = expr
	return o
}

// PushURL pushes the action URL into browser history.
func (o Options) PushURL() Options {
	o.pushURL = true
	return o
}

// apply folds the option layer onto an action builder.
func (o Options) apply(a *Action) {
	if o.target != "" {
		a.Target(o.target)
	}
	if o.swap != "" {
		a.Swap(o.swap)
	}
	for k, v := range o.headers {
		a.Header(k, v)
	}
	if o.confirm != "" {
		a.Confirm(o.confirm)
	}
	if o.trigger != "" {
		a.Trigger(o.trigger)
	}
	if o.pushURL {
		a.PushURL()
	}
}

// isSet reports whether any field of the option layer is populated.
func (o Options) isSet() bool {
	return o.target != "" || o.swap != "" || len(o.headers) > 0 ||
		o.confirm != "" || o.trigger != "" || o.pushURL
}

// newClientAction compiles one route descriptor into a client action.
// component and name identify the action in warning logs; defaults is the
// component-level option layer.
func newClientAction(component, name string, route Route, defaults Options, logger *log.Logger) ClientAction {
	method := strings.ToUpper(route.Method)
	if method == "" {
		method = http.MethodGet
	}
	params := pathParams(route.Path)

	routeOpts := Opt()
	if route.Target != "" {
		routeOpts = routeOpts.Target(route.Target)
	}
	if route.Swap != "" {
		routeOpts = routeOpts.Swap(route.Swap)
	}
	for k, v := range route.Headers {
		routeOpts = routeOpts.Header(k, v)
	}

	return func(args ...any) templ.Attributes {
		var (
			positional []any
			payload    any
			hasPayload bool
			callOpts   []Options
		)
		for _, arg := range args {
			switch v := arg.(type) {
			case Options:
				callOpts = append(callOpts, v)
			case *Options:
				if v != nil {
					callOpts = append(callOpts, *v)
				}
			default:
				if len(positional) < len(params) {
					positional = append(positional, arg)
				} else if !hasPayload {
					payload = arg
					hasPayload = true
				} else {
					logger.Warn("client action received extra argument, ignoring",
						"component", component, "action", name, "arg", fmt.Sprint(arg))
				}
			}
		}

		path, unfilled := substitutePath(route.Path, params, positional)
		if unfilled > 0 {
			// Unmatched placeholders stay in the emitted URL. This mirrors
			// the behavior the markup would show during manual testing
			// rather than failing the render.
			logger.Warn("client action missing path arguments, placeholders left unsubstituted",
				"component", component, "action", name,
				"path", route.Path, "missing", unfilled)
		}

		a := NewAction(path, method)
		defaults.apply(a)
		routeOpts.apply(a)
		for _, o := range callOpts {
			o.apply(a)
		}
		if hasPayload {
			a.Vals(payload)
		}
		// Mutations default to replacing the triggering element, never the
		// page, unless a target was set by any layer.
		if method != http.MethodGet && a.target == "" {
			a.TargetThis()
		}
		return a.Attrs()
	}
}

// pathParams extracts the ordered ":param" names from a path template.
func pathParams(template string) []string {
	var params []string
	for _, seg := range strings.Split(template, "/") {
		if strings.HasPrefix(seg, ":") && len(seg) > 1 {
			params = append(params, seg[1:])
		}
	}
	return params
}

// substitutePath fills path placeholders from positional arguments in
// order. It returns the built path and the count of placeholders that had
// no argument and were left as-is.
func substitutePath(template string, params []string, args []any) (string, int) {
	segs := strings.Split(template, "/")
	next := 0
	for i, seg := range segs {
		if !strings.HasPrefix(seg, ":") || len(seg) == 1 {
			continue
		}
		if next < len(args) {
			segs[i] = fmt.Sprint(args[next])
			next++
		}
	}
	return strings.Join(segs, "/"), len(params) - next
}

// muxPattern converts a ":param" path template into a Go 1.22 http.ServeMux
// pattern ("/items/:id" -> "/items/{id}").
func muxPattern(template string) string {
	segs := strings.Split(template, "/")
	for i, seg := range segs {
		if strings.HasPrefix(seg, ":") && len(seg) > 1 {
			segs[i] = "{" + seg[1:] + "}"
		}
	}
	return strings.Join(segs, "/")
}
