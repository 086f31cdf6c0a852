// Copyright (c) 2025 Shelfscan Authors
// SPDX-License-Identifier: MIT

// Package bookdata is the HTTP client for the external book metadata and
// summarization service. Cover recognition, OCR, and summarization all happen
// server-side; this client only uploads images and decodes the results.
// Every response field is optional: missing fields decode to zero values.
package bookdata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// BookResult is the service's answer to a cover scan or ISBN lookup.
type BookResult struct {
	Title     string   `json:"title"`
	Image     string   `json:"image"`
	Authors   []string `json:"authors"`
	Summary   string   `json:"summary"`
	Rating    float64  `json:"rating"`
	PageCount int      `json:"pageCount"`
}

// SimilarBook is one entry of a similar-books search, ordered best-first by
// the service.
type SimilarBook struct {
	Title      string   `json:"title"`
	Authors    []string `json:"authors"`
	Image      string   `json:"image"`
	Rating     float64  `json:"rating"`
	Categories []string `json:"categories"`
	MatchType  string   `json:"match_type"` // same_category | related_category
}

// Client talks to the metadata service. Requests carry a context so stale
// lookups can be canceled, and the HTTP client enforces a hard timeout.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ExtractAndSummarize uploads a cover image and returns the recognized book.
func (c *Client) ExtractAndSummarize(ctx context.Context, filename string, image io.Reader) (*BookResult, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("copy image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract_and_summarize", body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result BookResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchByISBN looks a book up by ISBN.
func (c *Client) SearchByISBN(ctx context.Context, isbn string) (*BookResult, error) {
	isbn = NormalizeISBN(isbn)
	if isbn == "" {
		return nil, fmt.Errorf("invalid ISBN")
	}

	u := fmt.Sprintf("%s/search_by_isbn?isbn=%s", c.baseURL, url.QueryEscape(isbn))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	var result BookResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SimilarBooks returns books related to the given title and authors, ordered
// best match first.
func (c *Client) SimilarBooks(ctx context.Context, title string, authors []string) ([]SimilarBook, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}

	payload, err := json.Marshal(map[string]any{
		"title":   title,
		"authors": authors,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search_book", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var results []SimilarBook
	if err := c.do(req, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("query service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// NormalizeISBN strips separators and validates length; returns "" when the
// input cannot be an ISBN-10 or ISBN-13.
func NormalizeISBN(isbn string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(isbn) {
		if r >= '0' && r <= '9' || r == 'X' || r == 'x' {
			b.WriteRune(r)
		}
	}
	normalized := strings.ToUpper(b.String())
	if len(normalized) != 10 && len(normalized) != 13 {
		return ""
	}
	return normalized
}
