package htmx

// SwapStrategy defines how HTMX swaps the response into the target.
type SwapStrategy string

const (
	SwapInnerHTML SwapStrategy = "innerHTML"
	SwapOuterHTML SwapStrategy = "outerHTML"
	SwapNone      SwapStrategy = "none"
)
