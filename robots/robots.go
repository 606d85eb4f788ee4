// Package robots implements a deliberately simple robots.txt exclusion check:
// every Disallow line in the document is treated as a global path-prefix rule,
// regardless of which User-agent block it appears in. Allow directives,
// wildcards, and comments are not interpreted. Callers rely on these flat
// semantics and on the ordered rules list; do not replace this with a
// per-user-agent parser.
package robots

import (
	"regexp"
	"strings"
)

var disallowPattern = regexp.MustCompile(`(?i)^disallow:\s*(.*)`)

// CheckResult is the outcome of matching one URL path against a robots.txt
// document.
type CheckResult struct {
	Present bool     `json:"robots_txt_present"`
	Blocked bool     `json:"blocked"`
	Rules   []string `json:"rules"`
}

// Parse scans robots.txt text line by line, collects every Disallow rule in
// document order (duplicates preserved), and reports whether targetPath is
// blocked. An empty Disallow value is recorded as "/" and blocks every path.
func Parse(robotsTxt, targetPath string) CheckResult {
	result := CheckResult{
		Present: true,
		Rules:   []string{},
	}

	for _, line := range strings.Split(robotsTxt, "\n") {
		m := disallowPattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		rule := strings.TrimSpace(m[1])
		if rule == "" {
			rule = "/"
		}
		result.Rules = append(result.Rules, rule)
		if strings.HasPrefix(targetPath, rule) {
			result.Blocked = true
		}
	}

	return result
}
