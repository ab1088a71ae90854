// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/prospect-engine/pkg/types"
)

// totalSteps is the step denominator reported to observers. Step 2 was
// retired along with the SWOT stage; the numbering of the surviving
// stages is unchanged.
const totalSteps = 8

// ReportCache is the slice of the report store the engine uses. Get
// returns only reports fresh enough to reuse.
type ReportCache interface {
	Get(ctx context.Context, company, industry string) (types.Record, bool, error)
	Put(ctx context.Context, rec types.Record) error
}

// Engine drives the research pipeline end to end.
type Engine struct {
	search   Searcher
	llm      Generator
	reports  ReportCache
	observer Observer
}

// New assembles an engine. reports may be nil to disable report reuse;
// observer may be nil to discard progress.
func New(search Searcher, llm Generator, reports ReportCache, observer Observer) *Engine {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Engine{search: search, llm: llm, reports: reports, observer: observer}
}

// Research produces a full report for the company. A fresh stored
// report short-circuits the pipeline (R1.4); otherwise every stage runs
// in order, each appending its findings to the record, and the finished
// record is stored for reuse. Stage failures never abort the run; they
// accumulate in Record.Errors (R4.1). Report store failures degrade the
// same way: a failed read counts as a miss and a failed write is
// recorded on the record (R4.3).
func (e *Engine) Research(ctx context.Context, company, industry string) (types.Record, error) {
	company = strings.TrimSpace(company)
	industry = strings.TrimSpace(industry)
	if company == "" || industry == "" {
		return types.Record{}, errors.New("company and industry are required")
	}

	var storeReadErr error
	if e.reports != nil {
		cached, ok, err := e.reports.Get(ctx, company, industry)
		if err != nil {
			storeReadErr = err
		} else if ok {
			e.observer.Progress("Found cached result", totalSteps, totalSteps)
			return cached, nil
		}
	}

	e.observer.Progress("Starting research workflow...", 0, totalSteps)

	rec := types.Record{Company: company, Industry: industry}
	if storeReadErr != nil {
		rec.Errors = append(rec.Errors, fmt.Sprintf("Report store read error: %v", storeReadErr))
	}
	for _, stage := range e.stages() {
		if err := ctx.Err(); err != nil {
			return rec, err
		}
		e.observer.Progress(stage.Start, stage.Step, totalSteps)
		rec = stage.Run(ctx, rec)
		e.observer.Progress(stage.Done, stage.Step, totalSteps)
	}
	rec.GeneratedAt = time.Now()

	if e.reports != nil {
		if err := e.reports.Put(ctx, rec); err != nil {
			rec.Errors = append(rec.Errors, fmt.Sprintf("Report store write error: %v", err))
		}
	}

	e.observer.Progress("Research completed!", totalSteps, totalSteps)
	return rec, nil
}

func (e *Engine) stages() []Stage {
	return []Stage{
		{
			Name:  "industry_research",
			Step:  1,
			Start: "Researching industry trends and company info...",
			Done:  "Industry research completed",
			Run:   e.runIndustryResearch,
		},
		{
			Name:  "use_case_generation",
			Step:  3,
			Start: "Generating AI use cases...",
			Done:  "Use cases generated",
			Run:   e.runUseCaseGeneration,
		},
		{
			Name:  "ai_recommendation",
			Step:  4,
			Start: "Creating AI recommendations...",
			Done:  "AI recommendations completed",
			Run:   e.runRecommendation,
		},
		{
			Name:  "resource_collection",
			Step:  5,
			Start: "Collecting relevant resources...",
			Done:  "Resources collected",
			Run:   e.runResourceCollection,
		},
		{
			Name:  "competitor_analysis",
			Step:  6,
			Start: "Analyzing competitors...",
			Done:  "Competitor analysis completed",
			Run:   e.runCompetitorAnalysis,
		},
		{
			Name:  "implementation_planning",
			Step:  7,
			Start: "Creating implementation plans...",
			Done:  "Implementation plans created",
			Run:   e.runImplementationPlanning,
		},
		{
			Name:  "cost_benefit_analysis",
			Step:  8,
			Start: "Calculating cost-benefit analysis...",
			Done:  "Cost-benefit analysis completed",
			Run:   e.runCostBenefitAnalysis,
		},
	}
}
