// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrape recovers article metadata directly from page structure when
// the registries leave fields empty. Each field has an ordered list of
// candidate locations: metadata descriptors first, then structural
// selectors. The first acceptable candidate wins.
package scrape

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paperclip/internal/page"
	"github.com/pdiddy/paperclip/pkg/types"
)

// SourceName identifies the scraper in logs, metrics, and Result.Sources.
const SourceName = "scraper"

// Acceptance thresholds, counted in runes.
const (
	MinAuthorLength   = 10
	MinAbstractLength = 100
)

// Title candidates.
var (
	TitleKeys = []page.Key{
		page.Name("citation_title"),
		page.Property("og:title"),
		page.Name("dc.title"),
		page.Name("twitter:title"),
	}
	TitleSelectors = []string{
		"h1.citation__title",
		"h1.c-article-title",
		"h1.article-title",
		`h1[class*="title"]`,
		`h2[class*="title"]`,
		"h1",
	}
)

// Author candidates.
var (
	AuthorKeys = []page.Key{
		page.Name("citation_author"),
		page.Name("dc.creator"),
		page.Name("author"),
	}
	AuthorSelectors = []string{
		".authors-list",
		".author-list",
		".authors",
		".contrib-group",
		`[class*="author"]`,
	}
)

// Abstract candidates.
var (
	AbstractKeys = []page.Key{
		page.Name("citation_abstract"),
		page.Name("dc.description"),
		page.Name("description"),
		page.Property("og:description"),
		page.Name("twitter:description"),
	}
	AbstractSelectors = []string{
		"#abstract",
		"#Abs1-content",
		"#abstracts",
		".abstract",
		".abstract-content",
		`section[class*="abstract"]`,
		`div[class*="abstract"]`,
	}
)

// Scraper extracts fields from a page accessor. It makes no network calls
// of its own.
type Scraper struct {
	logger zerolog.Logger
}

// New creates a Scraper that logs candidate decisions to logger.
func New(logger zerolog.Logger) *Scraper {
	return &Scraper{logger: logger}
}

// Scrape fills the requested fields from acc. Fields not listed in missing
// are left empty. Failing lookups are logged and treated as no match.
func (s *Scraper) Scrape(ctx context.Context, acc page.Accessor, missing []types.Field) types.PartialRecord {
	var rec types.PartialRecord
	if len(missing) == 0 {
		return rec
	}

	descs, err := acc.Descriptors(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("reading descriptors for scrape")
		descs = nil
	}

	for _, f := range missing {
		switch f {
		case types.FieldTitle:
			rec.Title = s.title(ctx, acc, descs)
		case types.FieldAuthors:
			rec.Authors = s.authors(ctx, acc, descs)
		case types.FieldAbstract:
			rec.Abstract = s.abstract(ctx, acc, descs)
		}
	}
	return rec
}

func (s *Scraper) title(ctx context.Context, acc page.Accessor, descs []page.Descriptor) string {
	for _, k := range TitleKeys {
		if v, ok := page.First(descs, k); ok {
			if title := CleanText(v); title != "" {
				s.matched(types.FieldTitle, "meta:"+k.Name)
				return title
			}
		}
	}
	for _, sel := range TitleSelectors {
		if title := CleanText(s.text(ctx, acc, sel)); title != "" {
			s.matched(types.FieldTitle, sel)
			return title
		}
	}
	return ""
}

func (s *Scraper) authors(ctx context.Context, acc page.Accessor, descs []page.Descriptor) []string {
	var authors []string
	seen := make(map[string]bool)
	for _, v := range page.All(descs, AuthorKeys...) {
		name := strings.Join(strings.Fields(v), " ")
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		authors = append(authors, name)
	}
	if len(authors) > 0 {
		s.matched(types.FieldAuthors, "meta")
		return authors
	}

	for _, sel := range AuthorSelectors {
		cleaned := CleanAuthorText(s.text(ctx, acc, sel))
		if utf8.RuneCountInString(cleaned) > MinAuthorLength {
			s.matched(types.FieldAuthors, sel)
			return SplitAuthors(cleaned)
		}
	}
	return nil
}

func (s *Scraper) abstract(ctx context.Context, acc page.Accessor, descs []page.Descriptor) string {
	for _, k := range AbstractKeys {
		v, ok := page.First(descs, k)
		if !ok || utf8.RuneCountInString(v) <= MinAbstractLength {
			continue
		}
		if abstract := CleanText(v); abstract != "" {
			s.matched(types.FieldAbstract, "meta:"+k.Name)
			return abstract
		}
	}
	for _, sel := range AbstractSelectors {
		cleaned := CleanText(s.text(ctx, acc, sel))
		if utf8.RuneCountInString(cleaned) > MinAbstractLength {
			s.matched(types.FieldAbstract, sel)
			return cleaned
		}
	}
	return ""
}

// text queries acc, treating errors as no match.
func (s *Scraper) text(ctx context.Context, acc page.Accessor, selector string) string {
	text, ok, err := acc.Text(ctx, selector)
	if err != nil {
		s.logger.Debug().Err(err).Str("selector", selector).Msg("scrape candidate failed")
		return ""
	}
	if !ok {
		return ""
	}
	return text
}

func (s *Scraper) matched(f types.Field, candidate string) {
	s.logger.Debug().Str("field", string(f)).Str("candidate", candidate).Msg("scrape candidate accepted")
}
