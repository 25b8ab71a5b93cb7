// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"html"
	"regexp"
	"strings"
)

// tagPattern matches a markup tag: a '<' and everything up to the next '>'.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripTags removes every markup tag from s. Entities are left untouched, so
// StripTags(StripTags(s)) == StripTags(s).
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// xmlText turns raw inner XML into plain text: tags are stripped, entities
// decoded, and the result trimmed.
func xmlText(inner string) string {
	return strings.TrimSpace(html.UnescapeString(StripTags(inner)))
}
