package hywire

import (
	"net/http"

	"github.com/a-h/templ"
)

// Render writes a templ component to the HTTP response with an HTML
// content type. Route handlers typically render the owning component's
// entry through this after mutating state:
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    hywire.Render(w, r, reg.Component("todo-item", attrs, nil))
//	}
func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// IsHTMX returns true if the request originated from HTMX, which sends
// HX-Request: true on all requests. Use it to choose between a partial
// and a full page:
//
//	if hywire.IsHTMX(r) {
//	    return partialView()
//	}
//	return fullPageView()
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// IsBoosted returns true if the request is a boosted navigation (hx-boost).
func IsBoosted(r *http.Request) bool {
	return r.Header.Get("HX-Boosted") == "true"
}

// TargetID returns the id of the element that will receive the response
// (from the HX-Target header), empty if not an HTMX request.
func TargetID(r *http.Request) string {
	return r.Header.Get("HX-Target")
}

// TriggerName returns the name attribute of the element that triggered the
// request, empty if not present. Useful for form handlers that need to know
// which submit button was clicked.
func TriggerName(r *http.Request) string {
	return r.Header.Get("HX-Trigger-Name")
}

// PathParam returns a path parameter captured by the registry's internal
// handler. Route templates use ":name" placeholders; the internal mux
// serves them as Go 1.22 wildcard patterns, so this is a thin wrapper over
// Request.PathValue.
func PathParam(r *http.Request, name string) string {
	return r.PathValue(name)
}
