// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/prospect-engine/pkg/types"
)

// tavilyAPIBase is a package-level var so tests can point the provider at
// an httptest server.
var tavilyAPIBase = "https://api.tavily.com/search"

const maxContentLen = 1000

// Tavily queries the Tavily web search API. Retry is the gateway's job;
// the provider performs exactly one HTTP call per Search.
type Tavily struct {
	apiKey    string
	userAgent string
	client    *http.Client
}

// NewTavily constructs a Tavily provider. cfg supplies the API key, HTTP
// timeout, and user agent.
func NewTavily(cfg types.SearchConfig) *Tavily {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Tavily{
		apiKey:    cfg.APIKey,
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// Name identifies the provider in warnings and CLI output.
func (t *Tavily) Name() string { return "tavily" }

type tavilyRequest struct {
	APIKey            string `json:"api_key"`
	Query             string `json:"query"`
	MaxResults        int    `json:"max_results"`
	SearchDepth       string `json:"search_depth"`
	IncludeAnswer     bool   `json:"include_answer"`
	IncludeRawContent bool   `json:"include_raw_content"`
}

type tavilyResponse struct {
	Results []tavilyResult `json:"results"`
}

type tavilyResult struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Content    string  `json:"content"`
	RawContent string  `json:"raw_content"`
	Score      float64 `json:"score"`
}

// Search posts the query to Tavily and maps the response. Result content
// comes from the raw page content truncated to maxContentLen characters;
// a missing title becomes "No Title" (R1.4).
func (t *Tavily) Search(ctx context.Context, query string, maxResults int) ([]types.SearchResult, error) {
	if t.apiKey == "" {
		return nil, errors.New("tavily: API key is missing")
	}

	body, err := json.Marshal(tavilyRequest{
		APIKey:            t.apiKey,
		Query:             query,
		MaxResults:        maxResults,
		SearchDepth:       "basic",
		IncludeAnswer:     true,
		IncludeRawContent: true,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding tavily request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tavilyAPIBase, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building tavily request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling tavily: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("tavily http %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}

	var payload tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding tavily response: %w", err)
	}

	results := make([]types.SearchResult, 0, len(payload.Results))
	for _, r := range payload.Results {
		results = append(results, types.SearchResult{
			Title:          orDefault(r.Title, "No Title"),
			URL:            r.URL,
			Content:        truncateContent(r.RawContent),
			RelevanceScore: r.Score,
		})
	}
	return results, nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// truncateContent caps raw page content at maxContentLen characters,
// marking the cut with an ellipsis.
func truncateContent(s string) string {
	if len(s) <= maxContentLen {
		return s
	}
	return s[:maxContentLen] + "..."
}
