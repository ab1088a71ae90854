// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package websearch executes cached, retried web searches for the research
// pipeline.
// Implements: prd002-websearch (R1-R5);
//
//	docs/ARCHITECTURE.md § Search gateway.
package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/pdiddy/prospect-engine/internal/cache"
	"github.com/pdiddy/prospect-engine/internal/httputil"
	"github.com/pdiddy/prospect-engine/pkg/types"
)

// Provider executes a raw web search against a single search API. Each
// provider (Tavily today) implements this interface per the Strategy
// pattern (R1.2).
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, maxResults int) ([]types.SearchResult, error)
}

// Gateway wraps a Provider with result caching, retry, and failure
// sentinels. Search never returns an error: provider failures surface as
// in-band sentinel results so a pipeline stage always has something to
// work with (R4.1).
type Gateway struct {
	provider   Provider
	retry      httputil.Policy
	defaultMax int
	warn       io.Writer

	mu      sync.Mutex // guards results during Batch fan-out
	results *cache.Cache
}

// New builds a gateway around provider using cfg for the cache bounds,
// retry attempts, and default result count. Warnings about failed
// provider calls go to w; pass nil to discard them.
func New(provider Provider, cfg types.SearchConfig, w io.Writer) *Gateway {
	if w == nil {
		w = io.Discard
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}
	return &Gateway{
		provider:   provider,
		results:    cache.New(cfg.CacheCapacity, cfg.CacheTTL),
		retry:      httputil.Policy{MaxAttempts: cfg.MaxRetries},
		defaultMax: maxResults,
		warn:       w,
	}
}

// Search returns up to maxResults results for query, consulting the cache
// first. On a miss the provider is called under the retry policy. An
// empty provider response yields a "No results found" sentinel; exhausted
// retries yield a "Search Error" sentinel carrying the final error.
// Sentinels are never cached, so the next identical query tries the
// provider again (R4.2, R4.3).
func (g *Gateway) Search(ctx context.Context, query string, maxResults int) []types.SearchResult {
	if maxResults <= 0 {
		maxResults = g.defaultMax
	}
	key := cache.Key(query, maxResults)

	g.mu.Lock()
	if cached, ok := g.results.Get(key); ok {
		g.mu.Unlock()
		return cached
	}
	g.mu.Unlock()

	var found []types.SearchResult
	err := g.retry.Do(ctx, func() error {
		results, err := g.provider.Search(ctx, query, maxResults)
		if err != nil {
			return err
		}
		found = results
		return nil
	})
	if err != nil {
		fmt.Fprintf(g.warn, "warning: %s search %q failed: %v\n", g.provider.Name(), query, err)
		return []types.SearchResult{{
			Title:   "Search Error",
			Content: fmt.Sprintf("Web search failed %v", err),
		}}
	}

	if len(found) == 0 {
		return []types.SearchResult{{Title: "No results found"}}
	}

	g.mu.Lock()
	g.results.Put(key, found)
	g.mu.Unlock()

	return found
}

// Batch runs all queries concurrently through Search and pools every
// result into one slice. Pooling order across queries is not
// deterministic (R5.1, R5.2).
func (g *Gateway) Batch(ctx context.Context, queries []string, maxResults int) []types.SearchResult {
	ch := make(chan []types.SearchResult, len(queries))
	var wg sync.WaitGroup

	for _, q := range queries {
		wg.Add(1)
		go func(q string) {
			defer wg.Done()
			ch <- g.Search(ctx, q, maxResults)
		}(q)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	var all []types.SearchResult
	for results := range ch {
		all = append(all, results...)
	}
	return all
}

// CachedQueries reports how many query results are currently cached.
func (g *Gateway) CachedQueries() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.results.Len()
}

// TopByScore returns the n highest-scoring results. The sort is stable:
// ties keep their pooled order.
func TopByScore(results []types.SearchResult, n int) []types.SearchResult {
	ranked := make([]types.SearchResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(results []types.SearchResult, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-6s  %s\n", "Rank", "Title", "Score", "URL")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, r := range results {
		title := r.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-6.2f  %s\n", i+1, title, r.RelevanceScore, r.URL)
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(results []types.SearchResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
