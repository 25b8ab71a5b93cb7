// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library submits reviewed article metadata to the library service.
// The service accepts a multipart form with one "details" field holding the
// JSON payload and answers with the slug of the created article.
package library

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/pdiddy/paperclip/internal/httputil"
	"github.com/pdiddy/paperclip/pkg/types"
)

// Submission errors.
var (
	ErrMissingToken = errors.New("missing auth token")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNetwork      = errors.New("network error")
)

// MessageSaved is shown after a successful submission.
const MessageSaved = "Saved! Opening Library..."

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 4 << 10

// StatusError reports a non-success response other than 401.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("library returned HTTP %d", e.Code)
}

// Client posts submissions to the library service.
type Client struct {
	client      httputil.Doer
	endpoint    string
	frontendURL string
	userAgent   string
}

// NewClient creates a Client for cfg.
func NewClient(client httputil.Doer, cfg types.LibraryConfig, userAgent string) *Client {
	return &Client{
		client:      client,
		endpoint:    cfg.Endpoint,
		frontendURL: strings.TrimRight(cfg.FrontendURL, "/"),
		userAgent:   userAgent,
	}
}

// AuthorEntries splits a comma-separated author string into payload
// entries, trimming names and dropping empty ones.
func AuthorEntries(display string) []types.AuthorEntry {
	entries := []types.AuthorEntry{}
	for _, part := range strings.Split(display, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		entries = append(entries, types.AuthorEntry{Label: name, Value: name})
	}
	return entries
}

type envelope struct {
	Payload types.Submission `json:"payload"`
}

type createdArticle struct {
	Slug string `json:"slug"`
}

// Submit posts sub with token as the bearer credential and returns the
// library URL of the created article.
func (c *Client) Submit(ctx context.Context, token string, sub types.Submission) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingToken
	}
	if sub.Authors == nil {
		sub.Authors = []types.AuthorEntry{}
	}

	body, contentType, err := detailsForm(sub)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return "", ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	var created createdArticle
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("parsing library response: %w", err)
	}
	if created.Slug == "" {
		return "", fmt.Errorf("library response has no slug")
	}
	return c.frontendURL + "/articles/" + created.Slug, nil
}

// detailsForm encodes sub as a multipart form with a single "details" field.
func detailsForm(sub types.Submission) (io.Reader, string, error) {
	payload, err := json.Marshal(envelope{Payload: sub})
	if err != nil {
		return nil, "", fmt.Errorf("encoding submission: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("details", string(payload)); err != nil {
		return nil, "", fmt.Errorf("writing details field: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// Message maps a Submit error to the text shown to the user.
func Message(err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return MessageSaved
	case errors.Is(err, ErrMissingToken):
		return "Please enter an Auth Token."
	case errors.Is(err, ErrUnauthorized):
		return "Unauthorized."
	case errors.As(err, &statusErr):
		return fmt.Sprintf("Error: %d", statusErr.Code)
	case errors.Is(err, ErrNetwork):
		return "Network Error."
	default:
		return "Error: " + err.Error()
	}
}
