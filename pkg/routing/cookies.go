package routing

import "strings"

// ParseCookies parses a raw Cookie header into a name→value map.
//
// The header is split on ';', each pair is trimmed of surrounding
// whitespace, and split on the first '='. Pairs without an '=' are skipped.
// When a cookie name repeats, the first occurrence wins. Values are passed
// through literally without URL decoding, so percent-encoded cookie values
// compare byte-for-byte against condition values.
//
// net/http's cookie parser unescapes values and drops pairs it considers
// malformed, both of which would make condition matching diverge from what
// is actually on the wire, so it is not used here.
func ParseCookies(raw string) map[string]string {
	cookies := make(map[string]string)
	if raw == "" {
		return cookies
	}

	for _, pair := range strings.Split(raw, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		if _, seen := cookies[name]; seen {
			continue
		}
		cookies[name] = value
	}

	return cookies
}
