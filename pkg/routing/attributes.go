package routing

import "strings"

// AttributeSource provides read access to the request attributes a
// condition can inspect. Implementations must be side-effect free with
// respect to the request itself; the host proxy's accessors satisfy this.
type AttributeSource interface {
	// Header returns a request header value. Lookup is case-insensitive.
	Header(key string) (string, bool)

	// Cookie returns a cookie value by exact (case-sensitive) name.
	Cookie(name string) (string, bool)

	// Path returns the request path without the query string.
	Path() string

	// Query returns a query parameter value by exact (case-sensitive) key.
	Query(key string) (string, bool)
}

// RequestAttributes is the standard AttributeSource over a captured header
// map, path and raw query string.
//
// Cookies and query parameters are parsed lazily on first access, so
// requests evaluated only against header or path conditions never pay the
// parsing cost. A RequestAttributes is request-scoped and not safe for
// concurrent use.
type RequestAttributes struct {
	headers  map[string]string
	path     string
	rawQuery string

	cookies       map[string]string
	cookiesParsed bool

	query       map[string]string
	queryParsed bool
}

// NewRequestAttributes builds an attribute source from a header map, the
// request path and the raw query string. Header keys are normalized to
// lower case at construction; when a header key repeats in the input map
// with different casing, one value wins nondeterministically, matching map
// iteration. Hosts deliver headers pre-merged in practice.
func NewRequestAttributes(headers map[string]string, path, rawQuery string) *RequestAttributes {
	normalized := make(map[string]string, len(headers))
	for k, v := range headers {
		normalized[strings.ToLower(k)] = v
	}
	return &RequestAttributes{
		headers:  normalized,
		path:     path,
		rawQuery: rawQuery,
	}
}

// Header implements AttributeSource.
func (a *RequestAttributes) Header(key string) (string, bool) {
	v, ok := a.headers[strings.ToLower(key)]
	return v, ok
}

// Cookie implements AttributeSource. The Cookie header is parsed on first
// call and cached for the remainder of the request.
func (a *RequestAttributes) Cookie(name string) (string, bool) {
	if !a.cookiesParsed {
		raw := a.headers["cookie"]
		a.cookies = ParseCookies(raw)
		a.cookiesParsed = true
	}
	v, ok := a.cookies[name]
	return v, ok
}

// Path implements AttributeSource.
func (a *RequestAttributes) Path() string {
	return a.path
}

// Query implements AttributeSource. The query string is parsed on first
// call with the same literal conventions as cookies: split on '&', first
// '=' separates key from value, first occurrence of a key wins, no
// percent-decoding.
func (a *RequestAttributes) Query(key string) (string, bool) {
	if !a.queryParsed {
		a.query = parseQuery(a.rawQuery)
		a.queryParsed = true
	}
	v, ok := a.query[key]
	return v, ok
}

func parseQuery(raw string) map[string]string {
	params := make(map[string]string)
	if raw == "" {
		return params
	}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		if _, seen := params[key]; seen {
			continue
		}
		params[key] = value
	}
	return params
}
