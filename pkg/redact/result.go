package redact

// ScrubVerdict explains whether a response body will be scanned, and if not,
// why it was bypassed. The verdict is surfaced to clients verbatim in the
// X-WASM-Scrub response header.
type ScrubVerdict string

const (
	// VerdictWillScrub means the body qualifies for scanning.
	VerdictWillScrub ScrubVerdict = "will-scrub"

	// VerdictBypassed means the request path matched a configured bypass path.
	VerdictBypassed ScrubVerdict = "bypassed"

	// VerdictNonText means the response content type is neither text nor JSON.
	VerdictNonText ScrubVerdict = "non-text"

	// VerdictTooLarge means the body exceeds the configured size cap.
	VerdictTooLarge ScrubVerdict = "too-large"
)

// Result is the outcome of scanning one body against the pattern table.
type Result struct {
	// Redacted is true if at least one pattern matched.
	Redacted bool

	// MatchCount is the total number of matches across all patterns.
	MatchCount int

	// MatchedPatterns lists the names of patterns that matched at least
	// once, in table order.
	MatchedPatterns []string

	// Content is the masked body. If nothing matched (or the input could
	// not be scanned) it is the input unchanged.
	Content []byte
}

// passthrough returns a Result that leaves the input untouched.
func passthrough(content []byte) Result {
	return Result{Content: content}
}
