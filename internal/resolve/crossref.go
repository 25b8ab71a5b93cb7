// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paperclip/internal/httputil"
	"github.com/pdiddy/paperclip/pkg/types"
)

// Crossref API JSON structures. Only the fields the record needs are decoded.
type crossrefResponse struct {
	Message crossrefWork `json:"message"`
}

type crossrefWork struct {
	Title    []string         `json:"title"`
	Abstract string           `json:"abstract"`
	Author   []crossrefAuthor `json:"author"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

// Crossref resolves DOIs against the Crossref REST API (GET /works/{doi}).
type Crossref struct {
	client    httputil.Doer
	baseURL   string
	userAgent string
	logger    zerolog.Logger
}

// Compile-time check that Crossref implements Resolver.
var _ Resolver = (*Crossref)(nil)

// NewCrossref creates a Crossref resolver. When cfg.Mailto is set it is added
// to the User-Agent so requests are routed to Crossref's polite pool.
func NewCrossref(client httputil.Doer, cfg types.CrossrefConfig, userAgent string, logger zerolog.Logger) *Crossref {
	base := cfg.BaseURL
	if base == "" {
		base = types.DefaultCrossrefBaseURL
	}
	if cfg.Mailto != "" {
		userAgent = fmt.Sprintf("%s (mailto:%s)", userAgent, cfg.Mailto)
	}
	return &Crossref{
		client:    client,
		baseURL:   strings.TrimRight(base, "/"),
		userAgent: userAgent,
		logger:    logger,
	}
}

// Name returns "crossref".
func (c *Crossref) Name() string { return SourceCrossref }

// Resolve fetches the work registered under doi.
func (c *Crossref) Resolve(ctx context.Context, doi string) types.PartialRecord {
	if strings.TrimSpace(doi) == "" {
		return types.PartialRecord{}
	}
	work, err := c.fetch(ctx, doi)
	if err != nil {
		return unavailable(c.logger, SourceCrossref, doi, err)
	}
	rec := crossrefRecord(work)
	c.logger.Debug().Str("source", SourceCrossref).Str("id", doi).
		Strs("missing", fieldNames(rec.Missing())).Msg("registry lookup done")
	return rec
}

func (c *Crossref) fetch(ctx context.Context, doi string) (*crossrefWork, error) {
	apiURL, err := url.JoinPath(c.baseURL, "works", doi)
	if err != nil {
		return nil, fmt.Errorf("building Crossref URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Crossref API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Crossref API returned HTTP %d", resp.StatusCode)
	}

	var cr crossrefResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&cr); err != nil {
		return nil, fmt.Errorf("parsing Crossref response: %w", err)
	}
	return &cr.Message, nil
}

// crossrefRecord maps a work onto a record. Absent fields stay empty.
func crossrefRecord(w *crossrefWork) types.PartialRecord {
	var rec types.PartialRecord
	if len(w.Title) > 0 {
		rec.Title = strings.TrimSpace(w.Title[0])
	}
	for _, a := range w.Author {
		name := strings.TrimSpace(strings.TrimSpace(a.Given) + " " + strings.TrimSpace(a.Family))
		if name == "" {
			continue
		}
		rec.Authors = append(rec.Authors, name)
	}
	rec.Abstract = strings.TrimSpace(StripTags(w.Abstract))
	return rec
}

func fieldNames(fields []types.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}
