// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package page

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pdiddy/paperclip/internal/httputil"
)

// maxPageBytes caps how much of a fetched page is parsed.
const maxPageBytes = 8 << 20

// Document is an Accessor over a parsed, static HTML page.
type Document struct {
	doc *goquery.Document
	url string
}

// Compile-time check that Document implements Accessor.
var _ Accessor = (*Document)(nil)

// FromHTML parses r as an HTML page located at pageURL.
func FromHTML(r io.Reader, pageURL string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return &Document{doc: doc, url: pageURL}, nil
}

// Fetch downloads pageURL with client and parses the response body.
func Fetch(ctx context.Context, client httputil.Doer, pageURL, userAgent string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: HTTP %d", pageURL, resp.StatusCode)
	}
	return FromHTML(io.LimitReader(resp.Body, maxPageBytes), pageURL)
}

// URL returns the page location the document was loaded from.
func (d *Document) URL() string { return d.url }

// Descriptors returns every <meta> tag carrying a name or property attribute
// and a content attribute.
func (d *Document) Descriptors(_ context.Context) ([]Descriptor, error) {
	var descs []Descriptor
	d.doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		content, ok := s.Attr("content")
		if !ok {
			return
		}
		if name, ok := s.Attr("name"); ok && name != "" {
			descs = append(descs, Descriptor{Attr: "name", Key: name, Content: content})
			return
		}
		if prop, ok := s.Attr("property"); ok && prop != "" {
			descs = append(descs, Descriptor{Attr: "property", Key: prop, Content: content})
		}
	})
	return descs, nil
}

// Text renders the first element matching selector. An invalid selector is
// an error.
func (d *Document) Text(_ context.Context, selector string) (string, bool, error) {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return "", false, fmt.Errorf("compiling selector %q: %w", selector, err)
	}
	sel := d.doc.FindMatcher(m).First()
	if sel.Length() == 0 {
		return "", false, nil
	}
	return InnerText(sel.Nodes[0]), true, nil
}

// blockElements produce line breaks around their content when rendered.
var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true, atom.Figcaption: true,
	atom.Figure: true, atom.Footer: true, atom.Form: true, atom.H1: true, atom.H2: true,
	atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true, atom.Header: true,
	atom.Hr: true, atom.Li: true, atom.Main: true, atom.Nav: true, atom.Ol: true,
	atom.P: true, atom.Pre: true, atom.Section: true, atom.Table: true, atom.Tr: true,
	atom.Ul: true,
}

// skipElements never contribute rendered text.
var skipElements = map[atom.Atom]bool{
	atom.Script: true, atom.Style: true, atom.Noscript: true, atom.Template: true,
	atom.Head: true,
}

// InnerText approximates the browser's innerText for n: <br> and block-level
// elements become line breaks, adjacent table cells are separated by a tab,
// and non-rendered elements are skipped. Whitespace is otherwise left for the
// caller to normalise.
func InnerText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			if skipElements[n.DataAtom] {
				return
			}
			if n.DataAtom == atom.Br {
				b.WriteByte('\n')
				return
			}
			if isCell(n) && precededByCell(n) {
				b.WriteByte('\t')
			}
		}
		block := n.Type == html.ElementNode && blockElements[n.DataAtom]
		if block {
			b.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			b.WriteByte('\n')
		}
	}
	walk(n)
	return b.String()
}

func isCell(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.DataAtom == atom.Td || n.DataAtom == atom.Th)
}

// precededByCell reports whether an earlier element sibling of n is a cell.
func precededByCell(n *html.Node) bool {
	for p := n.PrevSibling; p != nil; p = p.PrevSibling {
		if p.Type == html.ElementNode {
			return isCell(p)
		}
	}
	return false
}
