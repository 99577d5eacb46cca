// Package hywire compiles declarative component definitions into
// server-rendered, HTMX-wired building blocks: typed prop parsing, a
// deterministic scoped class-name system, and hypermedia attribute
// generators derived from route descriptors.
//
// # Defining components
//
// A component is one Definition handed to a Registry:
//
//	reg := hywire.NewRegistry()
//	reg.MustDefine("todo-item", hywire.Definition{
//	    Decl: `{ id = number(0), title = string(""), done = boolean(false) }`,
//	    Styles: hywire.Styles{
//	        "item": hywire.Decl{
//	            "display": "flex",
//	            "&:hover": hywire.Decl{"background": "#f5f5f5"},
//	        },
//	    },
//	    API: hywire.API{
//	        "toggle": {Method: "PATCH", Path: "/items/:id", Handler: toggleHandler},
//	    },
//	    Render: renderTodoItem,
//	})
//
// # Props
//
// Prop parsing is declared, not inferred from code: either a compact
// declaration string (Decl, parsed by ParseDecl), a fluent Schema, or a
// hand-written PropsTransformer. Each of the five helpers (string, number,
// boolean, array, object) pairs a default with a coercion rule applied
// to raw string attributes. Attribute lookup accepts both the declared
// camelCase name and its kebab-case form. Missing attributes produce
// defaults; malformed values degrade per kind instead of failing a render.
//
// # Styles
//
// Styles come in two shapes, flat CSS block strings and nested
// declarations with &-pseudo and @-at-rule keys, and normalize into one
// class map plus combined CSS. Class names are content-addressed: the same
// rule body always produces the same class, across components, so repeated
// authoring never bloats the stylesheet. Registry.CSS() returns every rule
// once, in first-seen order.
//
// # Actions
//
// Each API route yields a ClientAction: a function producing the flat
// hypermedia attribute map (method verb, target, swap, payload, headers)
// that triggers the route from markup. Positional arguments fill :param
// path placeholders; a further argument becomes the JSON payload; trailing
// Options override component- and route-level defaults, with header maps
// merging across layers. Non-GET actions target the triggering element by
// default so a mutation never swaps the whole page by accident.
//
// # Rendering
//
// At render time raw attributes flow through the props transformer into
// render(props, actions, classes, children); the resulting markup is
// stamped with an identity attribute (data-hw-component) on its root tag,
// and reactive components additionally carry HMAC-signed state
// (data-hw-state) for the client-side binding extension.
//
// # Failure policy
//
// Authoring mistakes (unrecognized prop helpers, malformed style shapes,
// routes without handlers, missing path arguments) are logged warnings,
// and the pipeline continues with partial results. Only a definition with
// no render function is rejected outright. Coercion failures degrade per
// kind: most fall back to the declared default, a present-but-unparsable
// number yields NaN. No failure ever surfaces as text in rendered HTML.
package hywire
