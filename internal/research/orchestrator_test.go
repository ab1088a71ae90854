// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/pdiddy/prospect-engine/pkg/types"
)

type progressRecorder struct {
	events []string
}

func (r *progressRecorder) Progress(message string, step, total int) {
	r.events = append(r.events, fmt.Sprintf("%d/%d %s", step, total, message))
}

type fakeReportCache struct {
	records map[string]types.Record
	getErr  error
	putErr  error
	puts    int
}

func (f *fakeReportCache) Get(_ context.Context, company, industry string) (types.Record, bool, error) {
	if f.getErr != nil {
		return types.Record{}, false, f.getErr
	}
	rec, ok := f.records[company+"|"+industry]
	return rec, ok, nil
}

func (f *fakeReportCache) Put(_ context.Context, rec types.Record) error {
	if f.putErr != nil {
		return f.putErr
	}
	if f.records == nil {
		f.records = make(map[string]types.Record)
	}
	f.records[rec.Company+"|"+rec.Industry] = rec
	f.puts++
	return nil
}

const pipelineUseCaseResponse = `Use Case 1: Predictive Quality Control
Objective/Use Case: Cut defect rates in half within a year.
AI Application: Computer vision on the line.
Cross-Functional Benefits:
- Operations: Fewer reworks
Articles: https://example.com/quality, https://example.com/vision

Use Case 2: Demand Forecasting
Objective/Use Case: Improve forecast accuracy for seasonal demand.
AI Application: Gradient boosted trees.
Cross-Functional Benefits:
- Supply Chain: Better inventory positioning
Articles: https://example.com/forecast`

func pipelineGenerator() *stubGenerator {
	return &stubGenerator{responses: map[string]string{
		"list their main products":   `["Cloud Platform", "Analytics Suite"]`,
		"comprehensive analysis":     "1. Trend one is growing fast\n2. Trend two is emerging now",
		"innovative AI/ML use cases": pipelineUseCaseResponse,
		"strategic AI adoption plan": "## Recommendations\n- Deploy forecasting models",
		"direct competitors":         `[{"name": "Rival Corp", "description": "Incumbent.", "ai_initiatives": ["Chatbots"]}]`,
		"competitive positioning of": `{"strengths": ["Agility"], "ai_maturity_score": 6, "competitive_positioning": "Challenger."}`,
		"implementation roadmap":     planResponse,
		"cost-benefit analysis":      `{"roi_analysis": {"payback_period": "18 months", "first_year_roi": "20%", "three_year_roi": "150%", "non_financial_benefits": ["Reputation"]}}`,
	}}
}

func pipelineSearcher() *stubSearcher {
	return &stubSearcher{fallback: []types.SearchResult{
		{Title: "Industry Report", URL: "https://kaggle.com/datasets/industry", Content: "numbers", RelevanceScore: 0.9},
		{Title: "Tech News", URL: "https://github.com/org/repo", Content: "details", RelevanceScore: 0.7},
	}}
}

var wantPipelineEvents = []string{
	"0/8 Starting research workflow...",
	"1/8 Researching industry trends and company info...",
	"1/8 Industry research completed",
	"3/8 Generating AI use cases...",
	"3/8 Use cases generated",
	"4/8 Creating AI recommendations...",
	"4/8 AI recommendations completed",
	"5/8 Collecting relevant resources...",
	"5/8 Resources collected",
	"6/8 Analyzing competitors...",
	"6/8 Competitor analysis completed",
	"7/8 Creating implementation plans...",
	"7/8 Implementation plans created",
	"8/8 Calculating cost-benefit analysis...",
	"8/8 Cost-benefit analysis completed",
	"8/8 Research completed!",
}

func TestResearchFullPipeline(t *testing.T) {
	gen := pipelineGenerator()
	store := &fakeReportCache{}
	recorder := &progressRecorder{}
	eng := New(pipelineSearcher(), gen, store, recorder)

	rec, err := eng.Research(context.Background(), "Acme", "Manufacturing")
	if err != nil {
		t.Fatalf("Research: %v", err)
	}

	if !reflect.DeepEqual(rec.Offerings, []string{"Cloud Platform", "Analytics Suite"}) {
		t.Errorf("offerings = %v", rec.Offerings)
	}
	if !reflect.DeepEqual(rec.Trends, []string{"Trend one is growing fast", "Trend two is emerging now"}) {
		t.Errorf("trends = %v", rec.Trends)
	}
	if len(rec.UseCases) != 2 {
		t.Errorf("use cases = %d, want 2", len(rec.UseCases))
	}
	if rec.Recommendation != "## Recommendations\n- Deploy forecasting models" {
		t.Errorf("recommendation = %q", rec.Recommendation)
	}
	wantLinks := []string{
		"https://example.com/quality",
		"https://example.com/vision",
		"https://example.com/forecast",
		"https://kaggle.com/datasets/industry",
		"https://github.com/org/repo",
	}
	if !reflect.DeepEqual(rec.ResourceLinks, wantLinks) {
		t.Errorf("resource links = %v, want %v", rec.ResourceLinks, wantLinks)
	}
	if len(rec.Competitors) != 1 || rec.Competitors[0].Name != "Rival Corp" {
		t.Errorf("competitors = %v", rec.Competitors)
	}
	if rec.Positioning.AIMaturityScore != 6 {
		t.Errorf("positioning = %+v", rec.Positioning)
	}
	if len(rec.Plans) != 2 || rec.Plans[0].UseCase != "Predictive Quality Control" {
		t.Errorf("plans = %+v", rec.Plans)
	}
	if len(rec.CostBenefits) != 2 || rec.CostBenefits[0].Analysis.ROIAnalysis.PaybackPeriod != "18 months" {
		t.Errorf("cost benefits = %+v", rec.CostBenefits)
	}
	if len(rec.Errors) != 0 {
		t.Errorf("errors = %v", rec.Errors)
	}
	if rec.GeneratedAt.IsZero() {
		t.Error("generated-at not set")
	}
	if store.puts != 1 {
		t.Errorf("stored %d reports, want 1", store.puts)
	}
	if !reflect.DeepEqual(recorder.events, wantPipelineEvents) {
		t.Errorf("progress events = %v, want %v", recorder.events, wantPipelineEvents)
	}
}

func TestResearchReturnsStoredReport(t *testing.T) {
	gen := pipelineGenerator()
	store := &fakeReportCache{}
	recorder := &progressRecorder{}
	eng := New(pipelineSearcher(), gen, store, recorder)

	first, err := eng.Research(context.Background(), "Acme", "Manufacturing")
	if err != nil {
		t.Fatalf("first Research: %v", err)
	}
	callsAfterFirst := len(gen.calls)

	recorder.events = nil
	second, err := eng.Research(context.Background(), "Acme", "Manufacturing")
	if err != nil {
		t.Fatalf("second Research: %v", err)
	}

	if !reflect.DeepEqual(second, first) {
		t.Error("stored report does not match the original")
	}
	if len(gen.calls) != callsAfterFirst {
		t.Errorf("second run made %d extra model calls", len(gen.calls)-callsAfterFirst)
	}
	if !reflect.DeepEqual(recorder.events, []string{"8/8 Found cached result"}) {
		t.Errorf("progress events = %v", recorder.events)
	}
}

func TestResearchContinuesPastStageFailure(t *testing.T) {
	gen := pipelineGenerator()
	gen.errs = map[string]error{"strategic AI adoption plan": errors.New("quota hit")}
	recorder := &progressRecorder{}
	eng := New(pipelineSearcher(), gen, &fakeReportCache{}, recorder)

	rec, err := eng.Research(context.Background(), "Acme", "Manufacturing")
	if err != nil {
		t.Fatalf("Research: %v", err)
	}

	if !reflect.DeepEqual(rec.Errors, []string{"AI recommendation error: quota hit"}) {
		t.Errorf("errors = %v", rec.Errors)
	}
	if rec.Recommendation != "" {
		t.Errorf("recommendation = %q, want empty", rec.Recommendation)
	}
	if len(rec.Plans) != 2 {
		t.Errorf("later stages skipped: plans = %v", rec.Plans)
	}
	if !reflect.DeepEqual(recorder.events, wantPipelineEvents) {
		t.Errorf("progress events = %v", recorder.events)
	}
}

func TestResearchRequiresCompanyAndIndustry(t *testing.T) {
	recorder := &progressRecorder{}
	eng := New(pipelineSearcher(), pipelineGenerator(), nil, recorder)

	if _, err := eng.Research(context.Background(), "   ", "Retail"); err == nil {
		t.Error("blank company accepted")
	}
	if _, err := eng.Research(context.Background(), "Acme", ""); err == nil {
		t.Error("blank industry accepted")
	}
	if len(recorder.events) != 0 {
		t.Errorf("progress events = %v, want none", recorder.events)
	}
}

func TestResearchStopsOnCancelledContext(t *testing.T) {
	recorder := &progressRecorder{}
	eng := New(pipelineSearcher(), pipelineGenerator(), nil, recorder)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.Research(ctx, "Acme", "Retail")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if !reflect.DeepEqual(recorder.events, []string{"0/8 Starting research workflow..."}) {
		t.Errorf("progress events = %v", recorder.events)
	}
}

func TestResearchDegradesOnStoreErrors(t *testing.T) {
	t.Run("failed read is a miss", func(t *testing.T) {
		store := &fakeReportCache{getErr: errors.New("disk broken")}
		eng := New(pipelineSearcher(), pipelineGenerator(), store, nil)
		rec, err := eng.Research(context.Background(), "Acme", "Retail")
		if err != nil {
			t.Fatalf("Research: %v", err)
		}
		if len(rec.UseCases) == 0 {
			t.Error("pipeline did not run after the failed read")
		}
		if !reflect.DeepEqual(rec.Errors, []string{"Report store read error: disk broken"}) {
			t.Errorf("errors = %v", rec.Errors)
		}
		if store.puts != 1 {
			t.Errorf("stored %d records, want 1", store.puts)
		}
	})

	t.Run("failed write is recorded", func(t *testing.T) {
		eng := New(pipelineSearcher(), pipelineGenerator(), &fakeReportCache{putErr: errors.New("disk full")}, nil)
		rec, err := eng.Research(context.Background(), "Acme", "Retail")
		if err != nil {
			t.Fatalf("Research: %v", err)
		}
		if !reflect.DeepEqual(rec.Errors, []string{"Report store write error: disk full"}) {
			t.Errorf("errors = %v", rec.Errors)
		}
		if len(rec.UseCases) == 0 {
			t.Error("record missing pipeline output")
		}
	})
}

func TestWriterObserver(t *testing.T) {
	var buf bytes.Buffer
	WriterObserver{W: &buf}.Progress("Generating AI use cases...", 3, 8)
	if got := buf.String(); got != "Step 3/8: Generating AI use cases...\n" {
		t.Errorf("output = %q", got)
	}
}
