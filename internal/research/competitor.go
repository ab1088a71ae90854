// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/prospect-engine/pkg/types"
)

// runCompetitorAnalysis identifies direct competitors and then scores
// the company's competitive positioning against them (R2.5). Model
// failures append to Record.Errors; malformed responses read as empty
// findings.
func (e *Engine) runCompetitorAnalysis(ctx context.Context, rec types.Record) types.Record {
	competitors, err := e.identifyCompetitors(ctx, rec.Company, rec.Industry)
	if err != nil {
		rec.Errors = append(rec.Errors, fmt.Sprintf("Competitor analysis error: %v", err))
		rec.Competitors = nil
		rec.Positioning = types.Positioning{}
		return rec
	}
	rec.Competitors = competitors

	positioning, err := e.analyzePositioning(ctx, rec.Company, rec.Industry, competitors, rec.Offerings)
	if err != nil {
		rec.Errors = append(rec.Errors, fmt.Sprintf("Competitor analysis error: %v", err))
		rec.Positioning = types.Positioning{}
		return rec
	}
	rec.Positioning = positioning
	return rec
}

func (e *Engine) identifyCompetitors(ctx context.Context, company, industry string) ([]types.Competitor, error) {
	results := e.search.Search(ctx, fmt.Sprintf("top competitors of %s in %s industry", company, industry), 5)

	prompt, err := renderPrompt(competitorsPromptTmpl, competitorsPromptData{
		Company:  company,
		Industry: industry,
		Context:  joinTitleContent(results),
	})
	if err != nil {
		return nil, err
	}
	response, err := e.llm.Generate(ctx, "", prompt)
	if err != nil {
		return nil, err
	}

	competitors, err := parseCompetitors(response)
	if err != nil {
		// a malformed response reads as no competitors found
		return nil, nil
	}
	return competitors, nil
}

func (e *Engine) analyzePositioning(ctx context.Context, company, industry string, competitors []types.Competitor, offerings []string) (types.Positioning, error) {
	lines := make([]string, 0, len(competitors))
	for _, c := range competitors {
		lines = append(lines, fmt.Sprintf("- %s: %s\n  AI Initiatives: %s", c.Name, c.Description, strings.Join(c.AIInitiatives, ", ")))
	}

	results := e.search.Search(ctx, fmt.Sprintf("%s competitive advantage AI ML %s compared to competitors", company, industry), 3)

	prompt, err := renderPrompt(positioningPromptTmpl, positioningPromptData{
		Company:     company,
		Industry:    industry,
		Competitors: strings.Join(lines, "\n"),
		Offerings:   strings.Join(offerings, ", "),
		Context:     joinTitleContent(results),
	})
	if err != nil {
		return types.Positioning{}, err
	}
	response, err := e.llm.Generate(ctx, "", prompt)
	if err != nil {
		return types.Positioning{}, err
	}

	positioning, err := parsePositioning(response)
	if err != nil {
		return types.Positioning{}, nil
	}
	return positioning, nil
}
