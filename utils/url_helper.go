package utils

import (
	"net/url"
	"strings"
)

// AbsoluteURL resolves ref against base, e.g. "/dp/B0123" on "https://www.amazon.com/s?k=x"
// becomes "https://www.amazon.com/dp/B0123". Unparseable input is returned trimmed but unchanged.
func AbsoluteURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || base == "" {
		return ref
	}

	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if refURL.IsAbs() {
		return ref
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}
