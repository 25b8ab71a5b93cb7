// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paperclip/internal/httputil"
	"github.com/pdiddy/paperclip/pkg/types"
)

// efetch XML structures. Title and abstract segments keep their inner XML
// because PubMed allows inline markup (<i>, <sup>, ...) inside them.
type pubmedArticleSet struct {
	XMLName  xml.Name        `xml:"PubmedArticleSet"`
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Article pubmedArticleBody `xml:"MedlineCitation>Article"`
}

type pubmedArticleBody struct {
	ArticleTitle innerXML       `xml:"ArticleTitle"`
	Abstract     []abstractText `xml:"Abstract>AbstractText"`
	Authors      []pubmedAuthor `xml:"AuthorList>Author"`
}

type innerXML struct {
	Inner string `xml:",innerxml"`
}

type abstractText struct {
	Label string `xml:"Label,attr"`
	Inner string `xml:",innerxml"`
}

type pubmedAuthor struct {
	LastName string `xml:"LastName"`
	ForeName string `xml:"ForeName"`
	Initials string `xml:"Initials"`
}

// PubMed resolves PMIDs with the NCBI E-utilities efetch endpoint. Requests
// are throttled to the configured rate.
type PubMed struct {
	client    httputil.Doer
	baseURL   string
	apiKey    string
	userAgent string
	logger    zerolog.Logger
}

// Compile-time check that PubMed implements Resolver.
var _ Resolver = (*PubMed)(nil)

// NewPubMed creates a PubMed resolver. client is wrapped in a limiter using
// cfg.RateLimit and cfg.Burst.
func NewPubMed(client httputil.Doer, cfg types.PubMedConfig, userAgent string, logger zerolog.Logger) *PubMed {
	base := cfg.BaseURL
	if base == "" {
		base = types.DefaultPubMedBaseURL
	}
	return &PubMed{
		client:    httputil.NewLimited(client, cfg.RateLimit, cfg.Burst),
		baseURL:   strings.TrimRight(base, "/"),
		apiKey:    cfg.APIKey,
		userAgent: userAgent,
		logger:    logger,
	}
}

// Name returns "pubmed".
func (p *PubMed) Name() string { return SourcePubMed }

// Resolve fetches the citation for pmid.
func (p *PubMed) Resolve(ctx context.Context, pmid string) types.PartialRecord {
	pmid = strings.TrimSpace(pmid)
	if pmid == "" {
		return types.PartialRecord{}
	}
	set, err := p.efetch(ctx, pmid)
	if err != nil {
		return unavailable(p.logger, SourcePubMed, pmid, err)
	}
	if len(set.Articles) == 0 {
		return unavailable(p.logger, SourcePubMed, pmid, fmt.Errorf("no article in efetch response"))
	}
	rec := pubmedRecord(set.Articles[0].Article)
	p.logger.Debug().Str("source", SourcePubMed).Str("id", pmid).
		Strs("missing", fieldNames(rec.Missing())).Msg("registry lookup done")
	return rec
}

func (p *PubMed) efetch(ctx context.Context, pmid string) (*pubmedArticleSet, error) {
	u, err := url.Parse(p.baseURL + "/efetch.fcgi")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("db", "pubmed")
	q.Set("id", pmid)
	q.Set("retmode", "xml")
	if p.apiKey != "" {
		q.Set("api_key", p.apiKey)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("PubMed efetch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("PubMed efetch returned HTTP %d", resp.StatusCode)
	}

	var set pubmedArticleSet
	if err := xml.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing PubMed XML: %w", err)
	}
	return &set, nil
}

// pubmedRecord maps an efetch article onto a record.
func pubmedRecord(a pubmedArticleBody) types.PartialRecord {
	rec := types.PartialRecord{
		Title:    xmlText(a.ArticleTitle.Inner),
		Abstract: pubmedAbstract(a.Abstract),
	}
	for _, au := range a.Authors {
		if name := pubmedAuthorName(au); name != "" {
			rec.Authors = append(rec.Authors, name)
		}
	}
	return rec
}

// pubmedAuthorName renders "ForeName LastName", falling back to
// "Initials LastName". Authors without a last name (collectives) are dropped.
func pubmedAuthorName(a pubmedAuthor) string {
	last := strings.TrimSpace(a.LastName)
	if last == "" {
		return ""
	}
	first := strings.TrimSpace(a.ForeName)
	if first == "" {
		first = strings.TrimSpace(a.Initials)
	}
	if first == "" {
		return last
	}
	return first + " " + last
}

// pubmedAbstract joins the abstract segments with a blank line, prefixing
// labelled segments with "Label: ".
func pubmedAbstract(segments []abstractText) string {
	var parts []string
	for _, seg := range segments {
		text := xmlText(seg.Inner)
		if text == "" {
			continue
		}
		if label := strings.TrimSpace(seg.Label); label != "" {
			text = label + ": " + text
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n\n")
}
