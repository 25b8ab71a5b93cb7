// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pdiddy/paperclip/internal/library"
	"github.com/pdiddy/paperclip/internal/page"
	"github.com/pdiddy/paperclip/internal/pipeline"
	"github.com/pdiddy/paperclip/pkg/types"
)

type extractRequest struct {
	URL  string `json:"url"`
	HTML string `json:"html,omitempty"`
}

type extractResponse struct {
	Identifiers    types.Identifiers      `json:"identifiers"`
	Record         types.Record           `json:"record"`
	AuthorsDisplay string                 `json:"authors_display"`
	Completeness   types.Completeness     `json:"completeness"`
	Sources        map[types.Field]string `json:"sources,omitempty"`
	Status         string                 `json:"status"`
	Error          string                 `json:"error,omitempty"`
}

// extractHandler runs the pipeline on inline HTML or a fetched URL. A page
// that cannot be read is still a 200: the caller shows the fatal status and
// an empty form.
func (s *Server) extractHandler(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" && req.HTML == "" {
		writeError(w, http.StatusBadRequest, "url or html is required")
		return
	}

	ctx := r.Context()
	var (
		acc page.Accessor
		err error
	)
	if req.HTML != "" {
		acc, err = page.FromHTML(strings.NewReader(req.HTML), req.URL)
	} else {
		acc, err = page.Fetch(ctx, s.deps.Fetcher, req.URL, s.cfg.HTTP.UserAgent)
	}

	var res pipeline.Result
	if err == nil {
		res, err = s.deps.Extractor.Run(ctx, acc)
	} else {
		res = pipeline.Result{Completeness: types.Failed, Fatal: true}
		res.Status = pipeline.StatusMessage(res)
	}

	resp := extractResponse{
		Identifiers:    res.Identifiers,
		Record:         res.Record,
		AuthorsDisplay: res.Record.AuthorsDisplay(),
		Completeness:   res.Completeness,
		Sources:        res.Sources,
		Status:         res.Status,
	}
	if resp.Record.Authors == nil {
		resp.Record.Authors = []string{}
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("url", req.URL).Msg("extraction failed")
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

type submitRequest struct {
	Title          string `json:"title"`
	Abstract       string `json:"abstract"`
	Authors        string `json:"authors"`
	ArticleLink    string `json:"article_link"`
	SubmissionType string `json:"submission_type,omitempty"`
	CommunityName  string `json:"community_name,omitempty"`
}

// submitHandler forwards the reviewed fields to the library with the
// caller's bearer token.
func (s *Server) submitHandler(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	sub := types.Submission{
		Title:          req.Title,
		Abstract:       req.Abstract,
		Authors:        library.AuthorEntries(req.Authors),
		ArticleLink:    req.ArticleLink,
		SubmissionType: firstNonEmpty(req.SubmissionType, s.cfg.Library.SubmissionType),
		CommunityName:  firstNonEmpty(req.CommunityName, s.cfg.Library.CommunityName),
	}

	articleURL, err := s.deps.Submitter.Submit(r.Context(), bearerToken(r), sub)
	if err == nil {
		s.deps.Metrics.ObserveSubmission("ok")
		writeJSON(w, http.StatusOK, map[string]string{"url": articleURL, "message": library.Message(nil)})
		return
	}

	var statusErr *library.StatusError
	code, outcome := http.StatusBadGateway, "error"
	switch {
	case errors.Is(err, library.ErrMissingToken):
		code, outcome = http.StatusBadRequest, "missing_token"
	case errors.Is(err, library.ErrUnauthorized):
		code, outcome = http.StatusUnauthorized, "unauthorized"
	case errors.As(err, &statusErr):
		code, outcome = http.StatusBadGateway, "rejected"
	case errors.Is(err, library.ErrNetwork):
		code, outcome = http.StatusServiceUnavailable, "network"
	}
	s.deps.Metrics.ObserveSubmission(outcome)
	s.logger.Warn().Err(err).Str("outcome", outcome).Msg("submission failed")

	body := map[string]any{"error": err.Error(), "message": library.Message(err)}
	if statusErr != nil {
		body["upstream_status"] = statusErr.Code
	}
	writeJSON(w, code, body)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// bearerToken returns the token from an "Authorization: Bearer" header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "bearer "
	if len(h) < len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
