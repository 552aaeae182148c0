package filter

// Header names emitted by the filters.
const (
	// HeaderRoutedBy marks requests that passed through the routing filter.
	HeaderRoutedBy = "X-Routed-By"

	// HeaderRouteReason carries the matched rule name, or "default".
	HeaderRouteReason = "X-Route-Reason"

	// HeaderScrubActive marks responses that passed through the scrub filter.
	HeaderScrubActive = "X-WASM-Active"

	// HeaderScrubVerdict carries the scrub verdict for the response.
	HeaderScrubVerdict = "X-WASM-Scrub"

	// HeaderRedacted is set when the body scan masked at least one match.
	HeaderRedacted = "X-PII-Redacted"

	// HeaderRedactionCount carries the number of masked matches.
	HeaderRedactionCount = "X-Redaction-Count"
)

// RoutedByValue is the value emitted under HeaderRoutedBy.
const RoutedByValue = "meridian"

// DefaultRouteReason is the HeaderRouteReason value for default decisions.
const DefaultRouteReason = "default"

// HeaderMutations describes header changes for the host to apply.
// Set entries replace any existing value; Remove entries are deleted.
type HeaderMutations struct {
	Set    map[string]string
	Remove []string
}

// NewHeaderMutations returns an empty mutation set.
func NewHeaderMutations() HeaderMutations {
	return HeaderMutations{Set: make(map[string]string)}
}

// Empty reports whether the mutations change nothing.
func (m HeaderMutations) Empty() bool {
	return len(m.Set) == 0 && len(m.Remove) == 0
}
