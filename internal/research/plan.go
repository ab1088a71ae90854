// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"fmt"

	"github.com/pdiddy/prospect-engine/pkg/types"
)

// runImplementationPlanning builds a phased roadmap for every use case,
// one model call each (R2.6). A failed call yields an empty plan for
// that use case and the loop continues.
func (e *Engine) runImplementationPlanning(ctx context.Context, rec types.Record) types.Record {
	plans := make([]types.PlanEntry, 0, len(rec.UseCases))
	for _, uc := range rec.UseCases {
		plan, err := e.planUseCase(ctx, uc, rec.Industry)
		if err != nil {
			rec.Errors = append(rec.Errors, fmt.Sprintf("Implementation planning error: %v", err))
			plan = types.ImplementationPlan{}
		}
		plans = append(plans, types.PlanEntry{UseCase: uc.Case, Plan: plan})
	}
	rec.Plans = plans
	return rec
}

func (e *Engine) planUseCase(ctx context.Context, uc types.UseCase, industry string) (types.ImplementationPlan, error) {
	prompt, err := renderPrompt(planningPromptTmpl, useCasePlanPromptData{
		Industry: industry,
		Context:  useCaseContext(uc),
	})
	if err != nil {
		return types.ImplementationPlan{}, err
	}
	response, err := e.llm.Generate(ctx, "", prompt)
	if err != nil {
		return types.ImplementationPlan{}, err
	}

	plan, err := parsePlan(response)
	if err != nil {
		return types.ImplementationPlan{}, nil
	}
	return plan, nil
}
