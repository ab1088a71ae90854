// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research runs the staged company research pipeline: industry
// analysis, use case generation, strategic recommendations, resource
// collection, competitor analysis, implementation planning, and
// cost-benefit analysis.
// Implements: prd001-pipeline (R1-R5);
//
//	docs/ARCHITECTURE.md § Pipeline.
package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/prospect-engine/pkg/types"
)

// Searcher is the slice of the search gateway the stages consume. Search
// and Batch never fail; provider trouble surfaces as sentinel results.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) []types.SearchResult
	Batch(ctx context.Context, queries []string, maxResults int) []types.SearchResult
}

// Generator produces one completion for a system/user prompt pair.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// Stage is one step of the pipeline. Run receives the record by value
// and returns the updated record; a failing stage appends to
// Record.Errors and leaves its outputs at their documented defaults, so
// the chain always continues (R4.1, R4.2).
type Stage struct {
	Name  string
	Step  int
	Start string
	Done  string
	Run   func(ctx context.Context, rec types.Record) types.Record
}

// joinTitleContent renders results as "Title: ...\nContent: ..." blocks
// for prompt context.
func joinTitleContent(results []types.SearchResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, fmt.Sprintf("Title: %s\nContent: %s", r.Title, r.Content))
	}
	return strings.Join(parts, "\n\n")
}

// joinTitleURLContent renders results as "Title/URL/Content" blocks for
// prompt context.
func joinTitleURLContent(results []types.SearchResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, fmt.Sprintf("Title: %s\nURL: %s\nContent: %s", r.Title, r.URL, r.Content))
	}
	return strings.Join(parts, "\n\n")
}

// firstN returns at most the first n items.
func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

// head returns at most the first n runes of s.
func head(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
