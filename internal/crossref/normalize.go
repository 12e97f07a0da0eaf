// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package crossref

import (
	"regexp"
	"strings"
)

// doiPattern matches bare DOIs: "10.1145/1234567.1234568".
var doiPattern = regexp.MustCompile(`^10\.\d{4,9}/[^\s]+$`)

// resolverPrefixes are the non-identifier prefixes stripped during
// canonicalization, longest match first.
var resolverPrefixes = []string{
	"https://doi.org/",
	"http://doi.org/",
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"doi:",
}

// Canonical returns the canonical form of a DOI-like string: surrounding
// whitespace and resolver-URL or "doi:" prefixes stripped, then lowercased.
// DOIs are case-insensitive, so the lowercase form is the visited-set key;
// skipping this normalization lets the same work enter the frontier twice.
// Canonical does not validate; use IsDOI for that.
func Canonical(raw string) string {
	s := strings.TrimSpace(raw)
	for _, prefix := range resolverPrefixes {
		if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
			s = s[len(prefix):]
			break
		}
	}
	return strings.ToLower(s)
}

// IsDOI reports whether s looks like a bare DOI.
func IsDOI(s string) bool {
	return doiPattern.MatchString(s)
}
