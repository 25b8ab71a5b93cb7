// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package detect finds standard article identifiers (DOI, PMID) in a page's
// metadata descriptors.
package detect

import (
	"strings"

	"github.com/pdiddy/paperclip/internal/page"
	"github.com/pdiddy/paperclip/pkg/types"
)

// DOIKeys are the descriptor keys checked for a DOI, highest priority first.
var DOIKeys = []page.Key{
	page.Name("citation_doi"),
	page.Name("dc.identifier"),
	page.Property("citation_doi"),
}

// PMIDKeys are the descriptor keys checked for a PubMed identifier.
var PMIDKeys = []page.Key{
	page.Name("citation_pmid"),
	page.Name("ncbi_pmid"),
}

// doiPrefixes are resolver and scheme prefixes publishers sometimes leave on
// the DOI value. Compared case-insensitively.
var doiPrefixes = []string{
	"https://doi.org/",
	"http://doi.org/",
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"doi:",
}

// Detect scans descriptors for a DOI and a PMID. The scans are independent;
// either, both, or neither may be found.
func Detect(descs []page.Descriptor) types.Identifiers {
	var ids types.Identifiers
	if v, ok := firstOf(descs, DOIKeys); ok {
		ids.DOI = NormalizeDOI(v)
	}
	if v, ok := firstOf(descs, PMIDKeys); ok {
		ids.PMID = strings.TrimSpace(v)
	}
	return ids
}

// NormalizeDOI trims s and removes a leading resolver URL or "doi:" label.
func NormalizeDOI(s string) string {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	for _, p := range doiPrefixes {
		if strings.HasPrefix(lower, p) {
			return strings.TrimSpace(s[len(p):])
		}
	}
	return s
}

func firstOf(descs []page.Descriptor, keys []page.Key) (string, bool) {
	for _, k := range keys {
		if v, ok := page.First(descs, k); ok {
			return v, true
		}
	}
	return "", false
}
