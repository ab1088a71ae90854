// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the prospect-engine pipeline.
// Implements: prd002-websearch (SearchResult, R1.1, R1.4);
//
//	prd001-pipeline (Record, R2.1-R2.7);
//	prd005-report-render (report sections).
//
// See docs/ARCHITECTURE.md § Pipeline Interface, § Data Structures.
package types

// SearchResult represents a single web search hit returned by the gateway.
// Per prd002-websearch R1.1, each result carries a title, URL, a content
// excerpt truncated to 1000 characters, and a relevance score in [0, 1].
type SearchResult struct {
	// Title is the page title as returned by the provider.
	Title string `json:"title" yaml:"title"`

	// URL is the page address. Empty for sentinel results.
	URL string `json:"url" yaml:"url"`

	// Content is a truncated excerpt of the page content.
	Content string `json:"content" yaml:"content"`

	// RelevanceScore is a value between 0.0 and 1.0 indicating relevance
	// to the query. Sentinel and placeholder results carry 0.
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`
}
