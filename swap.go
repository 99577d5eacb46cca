package hywire

// SwapMode defines how response HTML replaces the target element.
// Each mode corresponds to an hx-swap value; the default is SwapOuter.
//
// See https://htmx.org/attributes/hx-swap/ for visual examples.
type SwapMode string

const (
	// SwapOuter replaces the entire element including its tag (outerHTML).
	// This is the default swap mode.
	SwapOuter SwapMode = "outerHTML"

	// SwapInner replaces only the element's contents (innerHTML).
	SwapInner SwapMode = "innerHTML"

	// SwapBeforeEnd appends the response inside the target, before its
	// closing tag. Useful for adding items to lists.
	SwapBeforeEnd SwapMode = "beforeend"

	// SwapAfterEnd inserts the response after the target element.
	SwapAfterEnd SwapMode = "afterend"

	// SwapBeforeBegin inserts the response before the target element.
	SwapBeforeBegin SwapMode = "beforebegin"

	// SwapAfterBegin prepends the response inside the target, after its
	// opening tag.
	SwapAfterBegin SwapMode = "afterbegin"

	// SwapDelete removes the target element; response content is ignored.
	SwapDelete SwapMode = "delete"

	// SwapNone performs no swap; the response is discarded.
	SwapNone SwapMode = "none"
)
