// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/prospect-engine/pkg/types"
)

// runRecommendation asks the strategy-consultant prompt for an AI
// adoption plan. The response is kept as raw markdown (R2.3).
func (e *Engine) runRecommendation(ctx context.Context, rec types.Record) types.Record {
	prompt, err := renderPrompt(recommendationPromptTmpl, recommendationPromptData{
		Company:   rec.Company,
		Industry:  rec.Industry,
		Offerings: strings.Join(rec.Offerings, ", "),
		Trends:    strings.Join(rec.Trends, ", "),
	})
	if err != nil {
		return recommendationFailed(rec, err)
	}
	response, err := e.llm.Generate(ctx, recommendationSystemPrompt, prompt)
	if err != nil {
		return recommendationFailed(rec, err)
	}
	rec.Recommendation = response
	return rec
}

func recommendationFailed(rec types.Record, err error) types.Record {
	rec.Errors = append(rec.Errors, fmt.Sprintf("AI recommendation error: %v", err))
	rec.Recommendation = ""
	return rec
}
