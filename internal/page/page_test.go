// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package page

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<!DOCTYPE html>
<html><head>
<title>ignored</title>
<meta name="citation_doi" content="10.1/xyz">
<meta name="Citation_Author" content="Ada Lovelace">
<meta property="og:title" content="Social Title">
<meta name="empty" content="">
<meta charset="utf-8">
<script>var x = "not text";</script>
</head><body>
<h1 class="article-title">Paper
  Title</h1>
<div class="authors"><span>Ada Lovelace</span><br><span>Charles Babbage</span></div>
<section id="abstract"><h2>Abstract</h2><p>First paragraph.</p><p>Second.</p></section>
</body></html>`

func mustDocument(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := FromHTML(strings.NewReader(src), "https://example.org/article")
	require.NoError(t, err)
	return doc
}

func TestDocument_Descriptors(t *testing.T) {
	doc := mustDocument(t, articleHTML)

	descs, err := doc.Descriptors(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []Descriptor{
		{Attr: "name", Key: "citation_doi", Content: "10.1/xyz"},
		{Attr: "name", Key: "Citation_Author", Content: "Ada Lovelace"},
		{Attr: "property", Key: "og:title", Content: "Social Title"},
		{Attr: "name", Key: "empty", Content: ""},
	}, descs)
	assert.Equal(t, "https://example.org/article", doc.URL())
}

func TestDocument_Text(t *testing.T) {
	doc := mustDocument(t, articleHTML)
	ctx := context.Background()

	text, ok, err := doc.Text(ctx, `h1[class*="title"]`)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "\nPaper\n  Title\n", text)

	text, ok, err = doc.Text(ctx, ".authors")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "\nAda Lovelace\nCharles Babbage\n", text)

	_, ok, err = doc.Text(ctx, ".missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDocument_TextInvalidSelector(t *testing.T) {
	doc := mustDocument(t, articleHTML)
	_, _, err := doc.Text(context.Background(), "h1[")
	assert.Error(t, err)
}

func TestInnerText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div id="x">a<b>b</b><br>c<p>d</p><script>nope</script><style>.x{}</style>e</div>`))
	require.NoError(t, err)

	got := InnerText(doc.Find("#x").Nodes[0])
	assert.Equal(t, "\nab\nc\nd\ne\n", got)
}

func TestInnerText_TableCells(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<table id="t"><tr><th>A</th><td>B</td> <td>C</td></tr><tr><td>D</td></tr></table>`))
	require.NoError(t, err)

	got := InnerText(doc.Find("#t").Nodes[0])
	assert.Equal(t, "\n\nA\tB \tC\n\nD\n\n", got)
}

func TestDocument_TextTableCells(t *testing.T) {
	doc := mustDocument(t, `<table class="authors"><tr><td>Ada Lovelace</td><td>Charles Babbage</td></tr></table>`)

	text, ok, err := doc.Text(context.Background(), ".authors")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "\n\nAda Lovelace\tCharles Babbage\n\n", text)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "paperclip-test", r.Header.Get("User-Agent"))
		if r.URL.Path == "/gone" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	doc, err := Fetch(context.Background(), srv.Client(), srv.URL+"/article", "paperclip-test")
	require.NoError(t, err)
	v, ok := First(mustDescriptors(t, doc), Name("citation_doi"))
	assert.True(t, ok)
	assert.Equal(t, "10.1/xyz", v)

	_, err = Fetch(context.Background(), srv.Client(), srv.URL+"/gone", "paperclip-test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func mustDescriptors(t *testing.T, a Accessor) []Descriptor {
	t.Helper()
	descs, err := a.Descriptors(context.Background())
	require.NoError(t, err)
	return descs
}

func TestFirst(t *testing.T) {
	descs := []Descriptor{
		{Attr: "name", Key: "dc.identifier", Content: "  "},
		{Attr: "property", Key: "citation_doi", Content: "10.9/prop"},
		{Attr: "name", Key: "DC.Identifier", Content: "10.2/dc"},
	}

	v, ok := First(descs, Name("dc.identifier"))
	assert.True(t, ok, "blank content is skipped, later match wins")
	assert.Equal(t, "10.2/dc", v)

	_, ok = First(descs, Name("citation_doi"))
	assert.False(t, ok, "attribute must match")

	v, ok = First(descs, Property("citation_doi"))
	assert.True(t, ok)
	assert.Equal(t, "10.9/prop", v)
}

func TestAll(t *testing.T) {
	descs := []Descriptor{
		{Attr: "name", Key: "citation_author", Content: "A"},
		{Attr: "name", Key: "description", Content: "ignored"},
		{Attr: "name", Key: "dc.creator", Content: "B"},
		{Attr: "name", Key: "citation_author", Content: ""},
		{Attr: "name", Key: "citation_author", Content: "C"},
	}
	got := All(descs, Name("citation_author"), Name("dc.creator"))
	assert.Equal(t, []string{"A", "B", "C"}, got)
	assert.Empty(t, All(descs, Name("author")))
}
