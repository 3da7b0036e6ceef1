package htmx

// Response headers.
const (
	HeaderHXReswap           = "HX-Reswap"
	HeaderHXRetarget         = "HX-Retarget"
	HeaderHXTrigger          = "HX-Trigger"
	HeaderHXTriggerAfterSwap = "HX-Trigger-After-Swap"
)

// Request headers.
const (
	HeaderHXRequest = "HX-Request"
	HeaderHXBoosted = "HX-Boosted"
	HeaderHXTarget  = "HX-Target"
)
