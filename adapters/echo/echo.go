// Package hywireecho provides Echo framework integration for hywire
// component routes.
//
// Mount a registry's routes onto an Echo instance or group:
//
//	e := echo.New()
//	reg := hywire.NewRegistry()
//	// ... define components ...
//	hywireecho.Mount(e, reg)
//
// Echo's ":param" route syntax matches hywire path templates directly, so
// each RouteBinding is registered as a native Echo route and benefits from
// group middleware, not as one opaque catch-all handler.
package hywireecho

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/hywire/hywire"
)

// Router is the subset of echo.Echo and echo.Group used for registration.
type Router interface {
	Add(method, path string, handler echo.HandlerFunc, middleware ...echo.MiddlewareFunc) *echo.Route
}

// Mount registers every route of the registry on the router. Mutating
// methods keep the HTMX-origin requirement enforced by the registry's own
// handler.
func Mount(r Router, reg *hywire.Registry) {
	for _, binding := range reg.Routes() {
		handler := binding.Handler
		r.Add(binding.Method, binding.Path, func(c echo.Context) error {
			if requiresHTMX(c.Request()) && !hywire.IsHTMX(c.Request()) {
				return echo.NewHTTPError(http.StatusForbidden, "HTMX request required")
			}
			req := c.Request()
			// Handlers read path parameters via Request.PathValue; bridge
			// Echo's captured params across.
			for _, name := range c.ParamNames() {
				req.SetPathValue(name, c.Param(name))
			}
			handler(c.Response(), req)
			return nil
		})
	}
}

// Render writes a templ component to the Echo response.
//
//	func handler(c echo.Context) error {
//	    return hywireecho.Render(c, reg.Component("todo-item", attrs, nil))
//	}
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(c.Request().Context(), c.Response())
}

func requiresHTMX(r *http.Request) bool {
	return r.Method != http.MethodGet && r.Method != http.MethodHead
}
