// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"regexp"
	"strings"
)

// space matches any character strings.Fields treats as whitespace.
const space = `\s\x{0B}\x{85}\p{Z}`

var (
	// labelPattern matches a leading section label such as "Abstract:" or
	// "SUMMARY -".
	labelPattern = regexp.MustCompile(`(?i)^[` + space + `]*(?:abstract|background|introduction|summary)\b[` + space + `:.\-–—]*`)

	// lineBreaks also treats a tab as a break, since rendered table cells
	// are tab-separated.
	lineBreaks     = regexp.MustCompile(`[ \t]*(?:\r\n|[\r\n\t])[ \t]*`)
	repeatedCommas = regexp.MustCompile(`,(?:[` + space + `]*,)+`)
)

// CleanText strips leading section labels, collapses whitespace runs to a
// single space, and trims the result.
func CleanText(s string) string {
	for {
		loc := labelPattern.FindStringIndex(s)
		if loc == nil {
			break
		}
		s = s[loc[1]:]
	}
	return strings.Join(strings.Fields(s), " ")
}

// CleanAuthorText normalises the text of an author container into a
// comma-separated list: line breaks and tabs become separators, empty entries
// collapse, and the result is passed through CleanText.
func CleanAuthorText(s string) string {
	s = lineBreaks.ReplaceAllString(s, ", ")
	s = repeatedCommas.ReplaceAllString(s, ",")
	s = trimCommas(s)
	return trimCommas(CleanText(s))
}

// SplitAuthors splits cleaned author text on commas, dropping empty names.
func SplitAuthors(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func trimCommas(s string) string {
	return strings.Trim(s, ", \t\r\n")
}
