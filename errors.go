package hywire

import "errors"

// Sentinel errors for component definition and rendering.
var (
	// ErrNilRender is returned by Define when a definition carries no
	// render function. No render path can ever succeed without one, so
	// this is a hard failure rather than a warning.
	ErrNilRender = errors.New("hywire: definition has no render function")

	// ErrUnknownComponent is returned when rendering a name that was
	// never defined.
	ErrUnknownComponent = errors.New("hywire: unknown component")

	// ErrRenderFailed wraps errors produced while rendering a component's
	// markup.
	ErrRenderFailed = errors.New("hywire: render failed")

	// ErrStateEncoding wraps failures while encoding reactive state for
	// the root element.
	ErrStateEncoding = errors.New("hywire: state encoding failed")
)

// IsUnknownComponent checks if err means a component name was not defined.
func IsUnknownComponent(err error) bool {
	return errors.Is(err, ErrUnknownComponent)
}

// IsNilRender checks if err is a definition-without-render error.
func IsNilRender(err error) bool {
	return errors.Is(err, ErrNilRender)
}
