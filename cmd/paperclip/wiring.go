package main

import (
	"net/http"

	"github.com/pdiddy/paperclip/internal/httputil"
	"github.com/pdiddy/paperclip/internal/library"
	"github.com/pdiddy/paperclip/internal/observability"
	"github.com/pdiddy/paperclip/internal/pipeline"
	"github.com/pdiddy/paperclip/internal/resolve"
	"github.com/pdiddy/paperclip/internal/scrape"
	"github.com/pdiddy/paperclip/pkg/types"
)

// newPipeline wires the resolvers and scraper from cfg.
func newPipeline(cfg types.Config, client *http.Client, metrics *observability.Metrics) *pipeline.Pipeline {
	ua := cfg.HTTP.UserAgent
	return pipeline.New(pipeline.Options{
		Crossref: resolve.NewCrossref(client, cfg.Crossref, ua, observability.Component(logger, resolve.SourceCrossref)),
		PubMed:   resolve.NewPubMed(client, cfg.PubMed, ua, observability.Component(logger, resolve.SourcePubMed)),
		Scraper:  scrape.New(observability.Component(logger, scrape.SourceName)),
		Logger:   observability.Component(logger, "pipeline"),
		Metrics:  metrics,
	})
}

func newLibraryClient(cfg types.Config, client *http.Client) *library.Client {
	return library.NewClient(client, cfg.Library, cfg.HTTP.UserAgent)
}

func newHTTPClient(cfg types.Config) *http.Client {
	return httputil.NewClient(cfg.HTTP)
}
