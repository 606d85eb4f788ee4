package analyzer

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// RootDomain reduces a URL to its registrable domain so two URLs can be
// compared as "same site" (e.g. https://www.example.com/page -> example.com).
// It uses the public suffix list, so multi-label suffixes like co.uk resolve
// correctly. Relative or unparseable URLs return the empty string and must be
// excluded from both internal and external link counts.
func RootDomain(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}

	host := strings.ToLower(strings.TrimSuffix(u.Hostname(), "."))
	if host == "" {
		return ""
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		// Hosts the suffix list cannot split (localhost, bare TLDs,
		// IP addresses) compare as themselves.
		return host
	}
	return domain
}

// NormalizeKeyword lower-cases the input and drops every character outside
// [a-z0-9]. It makes the URL/keyword containment check resilient to hyphens,
// slashes, and case.
func NormalizeKeyword(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
