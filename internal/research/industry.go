// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/prospect-engine/internal/websearch"
	"github.com/pdiddy/prospect-engine/pkg/types"
)

// runIndustryResearch discovers the company's key offerings, fans out
// trend queries, and asks the model for a market analysis (R2.1). The
// ten highest scoring search results are kept on the record for the
// later stages.
func (e *Engine) runIndustryResearch(ctx context.Context, rec types.Record) types.Record {
	rec.Offerings = e.discoverOfferings(ctx, rec.Company, rec.Industry)

	queries := []string{
		fmt.Sprintf("Latest AI and technology trends in %s industry", rec.Industry),
		fmt.Sprintf("Top technological innovations for %s %s", rec.Company, rec.Industry),
		fmt.Sprintf("AI and machine learning applications in %s", rec.Industry),
	}
	for _, offering := range firstN(rec.Offerings, 2) {
		queries = append(queries, fmt.Sprintf("AI technology trends %s in %s", offering, rec.Industry))
	}

	pooled := e.search.Batch(ctx, queries, 5)
	rec.SearchResults = websearch.TopByScore(pooled, 10)

	prompt, err := renderPrompt(industryAnalysisPromptTmpl, industryAnalysisPromptData{
		Company:   rec.Company,
		Industry:  rec.Industry,
		Offerings: strings.Join(rec.Offerings, ", "),
		Context:   joinTitleURLContent(rec.SearchResults),
	})
	if err != nil {
		return industryAnalysisFailed(rec, err)
	}
	analysis, err := e.llm.Generate(ctx, "", prompt)
	if err != nil {
		return industryAnalysisFailed(rec, err)
	}

	rec.Trends = extractTrends(analysis)
	rec.Insights = analysis
	return rec
}

func industryAnalysisFailed(rec types.Record, err error) types.Record {
	rec.Errors = append(rec.Errors, fmt.Sprintf("Analysis error: %v", err))
	rec.Trends = nil
	rec.Insights = fmt.Sprintf("Error during analysis: %v", err)
	return rec
}

// discoverOfferings asks the model to list the company's main products
// and services based on a quick web search. Failures read as no
// offerings.
func (e *Engine) discoverOfferings(ctx context.Context, company, industry string) []string {
	results := e.search.Search(ctx, fmt.Sprintf("%s main products services offerings %s", company, industry), 5)

	prompt, err := renderPrompt(offeringsPromptTmpl, offeringsPromptData{
		Company:  company,
		Industry: industry,
		Context:  joinTitleContent(results),
	})
	if err != nil {
		return nil
	}
	response, err := e.llm.Generate(ctx, "", prompt)
	if err != nil {
		return nil
	}
	offerings, err := parseStringList(response)
	if err != nil {
		return nil
	}
	return offerings
}
