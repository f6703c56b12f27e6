package goGate

import (
	"net/url"
	"strings"
)

// redirectTarget assembles the redirect destination for an unauthenticated
// request. base may already carry a query string; when originParam is set,
// the original path+query is appended last as one percent-encoded parameter
// so that existing parameters keep their order.
//
// url.QueryEscape encodes '?', '/', '&' and '=', so the origin value
// round-trips to the exact original path+query through QueryUnescape.
func redirectTarget(base, originParam, origin string) string {
	if originParam == "" {
		return base
	}

	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}

	return base + sep + originParam + "=" + url.QueryEscape(origin)
}
