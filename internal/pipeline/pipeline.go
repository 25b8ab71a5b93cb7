// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one metadata extraction: identifier detection, the
// DOI and PMID registry lookups, and the heuristic scrape, merged by
// priority into a single record.
//
// Stages run sequentially because each stage's trigger depends on the
// previous stage's result:
//
//	descriptors -> detect -> crossref (DOI) -> pubmed (PMID, if incomplete)
//	            -> scraper (if still incomplete) -> merge
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paperclip/internal/detect"
	"github.com/pdiddy/paperclip/internal/observability"
	"github.com/pdiddy/paperclip/internal/page"
	"github.com/pdiddy/paperclip/internal/resolve"
	"github.com/pdiddy/paperclip/internal/scrape"
	"github.com/pdiddy/paperclip/pkg/types"
)

// Scraper fills missing fields from page structure.
type Scraper interface {
	Scrape(ctx context.Context, acc page.Accessor, missing []types.Field) types.PartialRecord
}

// Result is the outcome of one run.
type Result struct {
	Identifiers  types.Identifiers      `json:"identifiers" yaml:"identifiers"`
	Record       types.Record           `json:"record" yaml:"record"`
	Completeness types.Completeness     `json:"completeness" yaml:"completeness"`
	Sources      map[types.Field]string `json:"sources,omitempty" yaml:"sources,omitempty"`
	Status       string                 `json:"status" yaml:"status"`

	// Fatal is set when the page itself could not be read.
	Fatal bool `json:"fatal,omitempty" yaml:"fatal,omitempty"`
}

// Options configures a Pipeline. A nil resolver or scraper disables that
// stage.
type Options struct {
	Crossref resolve.Resolver
	PubMed   resolve.Resolver
	Scraper  Scraper
	Logger   zerolog.Logger
	Metrics  *observability.Metrics
}

// Pipeline orchestrates extraction runs. It holds no per-run state and may
// be shared.
type Pipeline struct {
	crossref resolve.Resolver
	pubmed   resolve.Resolver
	scraper  Scraper
	logger   zerolog.Logger
	metrics  *observability.Metrics
}

// New creates a Pipeline from opts.
func New(opts Options) *Pipeline {
	return &Pipeline{
		crossref: opts.Crossref,
		pubmed:   opts.PubMed,
		scraper:  opts.Scraper,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
	}
}

// Run extracts metadata from acc. Registry and scrape failures are absorbed
// into empty partial records; only a failure to read the page is returned,
// together with a Result carrying the fatal status.
func (p *Pipeline) Run(ctx context.Context, acc page.Accessor) (Result, error) {
	start := time.Now()

	descs, err := acc.Descriptors(ctx)
	if err != nil {
		res := Result{Completeness: types.Failed, Fatal: true}
		res.Status = StatusMessage(res)
		p.logger.Error().Err(err).Msg("reading page descriptors")
		p.metrics.ObserveExtraction("fatal", time.Since(start))
		return res, fmt.Errorf("reading page descriptors: %w", err)
	}

	ids := detect.Detect(descs)
	p.logger.Debug().Str("doi", ids.DOI).Str("pmid", ids.PMID).Msg("identifiers detected")

	var fromCrossref, fromPubMed, fromScraper types.PartialRecord

	if ids.DOI != "" && p.crossref != nil {
		fromCrossref = p.crossref.Resolve(ctx, ids.DOI)
		p.observe(resolve.SourceCrossref, fromCrossref)
	} else {
		p.skip(resolve.SourceCrossref)
	}

	if ids.PMID != "" && p.pubmed != nil && !fromCrossref.Complete() {
		fromPubMed = p.pubmed.Resolve(ctx, ids.PMID)
		p.observe(resolve.SourcePubMed, fromPubMed)
	} else {
		p.skip(resolve.SourcePubMed)
	}

	missing := Merge(fromCrossref, fromPubMed).Missing()
	if len(missing) > 0 && p.scraper != nil {
		p.logger.Debug().Strs("missing", fieldNames(missing)).Msg("scraping page")
		fromScraper = p.scraper.Scrape(ctx, acc, missing)
		p.observe(scrape.SourceName, fromScraper)
	} else {
		p.skip(scrape.SourceName)
	}

	record, sources := mergeSources(
		[]types.PartialRecord{fromCrossref, fromPubMed, fromScraper},
		[]string{resolve.SourceCrossref, resolve.SourcePubMed, scrape.SourceName},
	)
	res := Result{
		Identifiers:  ids,
		Record:       record,
		Completeness: Classify(record),
		Sources:      sources,
	}
	res.Status = StatusMessage(res)

	p.metrics.ObserveExtraction(string(res.Completeness), time.Since(start))
	p.logger.Info().
		Str("completeness", string(res.Completeness)).
		Dur("elapsed", time.Since(start)).
		Msg("extraction finished")
	return res, nil
}

func (p *Pipeline) observe(source string, rec types.PartialRecord) {
	outcome := observability.OutcomeFilled
	if rec.IsEmpty() {
		outcome = observability.OutcomeEmpty
	}
	p.metrics.ObserveSource(source, outcome)
}

func (p *Pipeline) skip(source string) {
	p.metrics.ObserveSource(source, observability.OutcomeSkipped)
}

func fieldNames(fields []types.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}
