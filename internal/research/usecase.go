// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/prospect-engine/internal/websearch"
	"github.com/pdiddy/prospect-engine/pkg/types"
)

// runUseCaseGeneration turns the best search results and market trends
// into structured AI/ML use cases (R2.2). Every URL the model mentions
// seeds the record's resource links.
func (e *Engine) runUseCaseGeneration(ctx context.Context, rec types.Record) types.Record {
	top := websearch.TopByScore(rec.SearchResults, 5)
	parts := make([]string, 0, len(top))
	for _, r := range top {
		title := r.Title
		if title == "" {
			title = "No Title"
		}
		url := r.URL
		if url == "" {
			url = "#"
		}
		parts = append(parts, fmt.Sprintf("Source: %s\nURL: %s\nInsight: %s...", title, url, head(r.Content, 300)))
	}

	offerings := strings.Join(rec.Offerings, ", ")
	if offerings == "" {
		offerings = "Products, Services"
	}
	trends := strings.Join(rec.Trends, ", ")
	if trends == "" {
		trends = "Industry growth, Digital transformation"
	}

	data := useCasePromptData{
		Company:   rec.Company,
		Industry:  rec.Industry,
		Offerings: offerings,
		Context:   strings.Join(parts, "\n\n"),
		Trends:    trends,
	}
	system, err := renderPrompt(useCaseSystemTmpl, data)
	if err != nil {
		return useCaseGenerationFailed(rec, err)
	}
	prompt, err := renderPrompt(useCasePromptTmpl, data)
	if err != nil {
		return useCaseGenerationFailed(rec, err)
	}

	response, err := e.llm.Generate(ctx, system, prompt)
	if err != nil {
		return useCaseGenerationFailed(rec, err)
	}

	rec.UseCases = parseUseCases(response)
	rec.ResourceLinks = extractURLs(response)
	return rec
}

func useCaseGenerationFailed(rec types.Record, err error) types.Record {
	rec.Errors = append(rec.Errors, fmt.Sprintf("Use case generation error: %v", err))
	rec.UseCases = nil
	return rec
}
