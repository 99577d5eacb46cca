package hywire

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
)

// Action is a fluent builder for the hypermedia attributes that trigger a
// server route from rendered markup. Client actions produce one per call;
// components can also construct them directly for ad-hoc wiring:
//
//	hywire.NewAction("/items/42", http.MethodDelete).
//	    Target("#item-42").
//	    Confirm("Delete this item?").
//	    Attrs()
//
// Attrs produces a flat templ.Attributes map with the method verb, target,
// swap, trigger, payload, and header attributes.
type Action struct {
	url     string
	method  string
	target  string
	swap    SwapMode
	trigger string
	confirm string
	indicat string
	pushURL bool
	vals    any
	headers map[string]string
}

// NewAction creates an action for the given URL and HTTP method.
// An empty method defaults to GET; the default swap mode is SwapOuter.
func NewAction(url, method string) *Action {
	if method == "" {
		method = http.MethodGet
	}
	return &Action{url: url, method: method, swap: SwapOuter}
}

// URL returns the action's URL with path parameters already substituted.
func (a *Action) URL() string {
	return a.url
}

// Method returns the action's HTTP method.
func (a *Action) Method() string {
	return a.method
}

// Target sets the hx-target selector.
func (a *Action) Target(selector string) *Action {
	a.target = selector
	return a
}

// TargetThis targets the triggering element itself.
func (a *Action) TargetThis() *Action {
	return a.Target("this")
}

// TargetClosest targets the closest ancestor matching the selector.
func (a *Action) TargetClosest(selector string) *Action {
	return a.Target("closest " + selector)
}

// TargetFind targets the first descendant matching the selector.
func (a *Action) TargetFind(selector string) *Action {
	return a.Target("find " + selector)
}

// TargetNext targets the next sibling matching the selector.
func (a *Action) TargetNext(selector string) *Action {
	return a.Target("next " + selector)
}

// TargetPrevious targets the previous sibling matching the selector.
func (a *Action) TargetPrevious(selector string) *Action {
	return a.Target("previous " + selector)
}

// Swap sets the hx-swap mode.
func (a *Action) Swap(mode SwapMode) *Action {
	a.swap = mode
	return a
}

// SwapOuter swaps the entire target element.
func (a *Action) SwapOuter() *Action { return a.Swap(SwapOuter) }

// SwapInner swaps the target's contents.
func (a *Action) SwapInner() *Action { return a.Swap(SwapInner) }

// SwapBeforeEnd appends inside the target.
func (a *Action) SwapBeforeEnd() *Action { return a.Swap(SwapBeforeEnd) }

// SwapAfterEnd inserts after the target.
func (a *Action) SwapAfterEnd() *Action { return a.Swap(SwapAfterEnd) }

// SwapBeforeBegin inserts before the target.
func (a *Action) SwapBeforeBegin() *Action { return a.Swap(SwapBeforeBegin) }

// SwapAfterBegin prepends inside the target.
func (a *Action) SwapAfterBegin() *Action { return a.Swap(SwapAfterBegin) }

// SwapDelete removes the target.
func (a *Action) SwapDelete() *Action { return a.Swap(SwapDelete) }

// SwapNone discards the response.
func (a *Action) SwapNone() *Action { return a.Swap(SwapNone) }

// Trigger sets a raw hx-trigger expression. Prefer the named trigger
// helpers below for the common cases.
func (a *Action) Trigger(expr string) *Action {
	a.trigger = expr
	return a
}

// Every triggers the action on a polling interval.
func (a *Action) Every(interval time.Duration) *Action {
	a.trigger = "every " + interval.String()
	return a
}

// OnEvent triggers the action when the named event fires anywhere on the
// page (from:body), enabling loose coupling between components.
func (a *Action) OnEvent(event string) *Action {
	a.trigger = event + " from:body"
	return a
}

// OnLoad triggers the action once after page load.
func (a *Action) OnLoad() *Action {
	a.trigger = "load"
	return a
}

// OnIntersect triggers the action once when the element scrolls into view.
func (a *Action) OnIntersect() *Action {
	a.trigger = "intersect once"
	return a
}

// OnRevealed triggers the action when the element is revealed.
func (a *Action) OnRevealed() *Action {
	a.trigger = "revealed"
	return a
}

// Confirm asks the user for confirmation before issuing the request.
func (a *Action) Confirm(message string) *Action {
	a.confirm = message
	return a
}

// Indicator sets the hx-indicator selector shown while the request runs.
func (a *Action) Indicator(selector string) *Action {
	a.indicat = selector
	return a
}

// PushURL pushes the action URL into browser history.
func (a *Action) PushURL() *Action {
	a.pushURL = true
	return a
}

// Vals attaches a payload serialized as JSON in hx-vals.
func (a *Action) Vals(payload any) *Action {
	a.vals = payload
	return a
}

// Header adds a request header, serialized into hx-headers. Headers merge:
// repeated calls with different keys accumulate rather than replace.
func (a *Action) Header(key, value string) *Action {
	if a.headers == nil {
		a.headers = make(map[string]string)
	}
	a.headers[key] = value
	return a
}

// Attrs renders the action as a flat hypermedia attribute map.
func (a *Action) Attrs() templ.Attributes {
	attrs := templ.Attributes{}

	switch a.method {
	case http.MethodGet:
		attrs["hx-get"] = a.url
	case http.MethodPost:
		attrs["hx-post"] = a.url
	case http.MethodPut:
		attrs["hx-put"] = a.url
	case http.MethodPatch:
		attrs["hx-patch"] = a.url
	case http.MethodDelete:
		attrs["hx-delete"] = a.url
	default:
		attrs["hx-get"] = a.url
	}

	attrs["hx-swap"] = string(a.swap)

	if a.target != "" {
		attrs["hx-target"] = a.target
	}
	if a.trigger != "" {
		attrs["hx-trigger"] = a.trigger
	}
	if a.confirm != "" {
		attrs["hx-confirm"] = a.confirm
	}
	if a.indicat != "" {
		attrs["hx-indicator"] = a.indicat
	}
	if a.pushURL {
		attrs["hx-push-url"] = "true"
	}
	if a.vals != nil {
		data, err := json.Marshal(a.vals)
		if err != nil {
			// Unserializable payloads degrade to their Go representation so
			// the mistake is visible in the markup during development.
			data = []byte(fmt.Sprintf("%q", fmt.Sprint(a.vals)))
		}
		attrs["hx-vals"] = string(data)
	}
	if len(a.headers) > 0 {
		data, _ := json.Marshal(a.headers)
		attrs["hx-headers"] = string(data)
	}

	return attrs
}

// AsLink renders the action as a plain href attribute with no hypermedia
// wiring, for full-page navigation and downloads.
func (a *Action) AsLink() templ.Attributes {
	return templ.Attributes{"href": a.url}
}
