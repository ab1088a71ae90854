// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"fmt"

	"github.com/pdiddy/prospect-engine/pkg/types"
)

// runCostBenefitAnalysis estimates costs, benefits, and ROI for each
// use case that received an implementation plan (R2.7). Cost and ROI
// figures stay opaque strings; the model's ranges are reported, never
// arithmetically combined.
func (e *Engine) runCostBenefitAnalysis(ctx context.Context, rec types.Record) types.Record {
	entries := make([]types.CostBenefitEntry, 0, len(rec.UseCases))
	for i, uc := range rec.UseCases {
		if i >= len(rec.Plans) {
			break
		}
		analysis, err := e.analyzeCostBenefit(ctx, uc, rec.Industry)
		if err != nil {
			rec.Errors = append(rec.Errors, fmt.Sprintf("Cost-benefit analysis error: %v", err))
			analysis = types.CostBenefit{}
		}
		entries = append(entries, types.CostBenefitEntry{UseCase: uc.Case, Analysis: analysis})
	}
	rec.CostBenefits = entries
	return rec
}

func (e *Engine) analyzeCostBenefit(ctx context.Context, uc types.UseCase, industry string) (types.CostBenefit, error) {
	prompt, err := renderPrompt(costBenefitPromptTmpl, useCasePlanPromptData{
		Industry: industry,
		Context:  useCaseContext(uc),
	})
	if err != nil {
		return types.CostBenefit{}, err
	}
	response, err := e.llm.Generate(ctx, "", prompt)
	if err != nil {
		return types.CostBenefit{}, err
	}

	analysis, err := parseCostBenefit(response)
	if err != nil {
		return types.CostBenefit{}, nil
	}
	return analysis, nil
}
