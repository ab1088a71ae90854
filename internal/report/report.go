// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders research records to markdown and exports them
// to files. Section order follows the research pipeline: offerings and
// trends first, then use cases, plans, costs, and the competitive
// landscape.
// Implements: prd005-report-render (R1-R3);
//
//	docs/ARCHITECTURE.md § Report Rendering.
package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/prospect-engine/pkg/types"
)

// DefaultExportWorkers bounds concurrent renders during a bulk export.
const DefaultExportWorkers = 4

var reportFuncs = template.FuncMap{
	"join": strings.Join,
	"inc":  func(i int) int { return i + 1 },
}

// reportTmpl lays out the full markdown document. Sections for fields a
// failed stage left empty are omitted, so a degraded run still renders
// cleanly (R1.2). Cost and ROI figures are provider-formatted strings
// and pass through verbatim (R1.3).
var reportTmpl = template.Must(template.New("report").Funcs(reportFuncs).Parse(`# Research Report: {{.Company}}

Industry: {{.Industry}}
Generated on {{.Generated}}
{{if .Offerings}}
## Key Offerings

{{range .Offerings}}- {{.}}
{{end}}{{end}}{{if .Trends}}
## Market Trends

{{range .Trends}}- {{.}}
{{end}}{{end}}{{if .Insights}}
## Industry Insights

{{.Insights}}
{{end}}{{if .Recommendation}}
## AI Recommendations

{{.Recommendation}}
{{end}}{{if .UseCases}}
## Use Cases
{{range .UseCases}}
### {{.Case}}

**Objective:** {{.Objective}}

**AI Application:** {{.AIApplication}}

**Cross-Functional Benefits:** {{join .Benefits ", "}}
{{if .Articles}}
**Articles:** {{join .Articles ", "}}
{{end}}{{end}}{{end}}{{if .Plans}}
## Implementation Plan
{{range .Plans}}
### Use Case: {{.UseCase}}
{{range $i, $phase := .Plan.Phases}}
#### Phase {{inc $i}}: {{$phase.Name}}

**Duration:** {{$phase.Duration}}

**Activities:** {{join $phase.Activities ", "}}

**Deliverables:** {{join $phase.Deliverables ", "}}

**Resources Needed:** {{join $phase.ResourcesNeeded ", "}}

**Key Stakeholders:** {{join $phase.KeyStakeholders ", "}}

**Risks:** {{join $phase.Risks ", "}}

**Success Metrics:** {{join $phase.SuccessMetrics ", "}}
{{end}}
#### Overall Implementation Plan Details

**Estimated Timeline:** {{.Plan.EstimatedTimeline}}

**Key Dependencies:** {{join .Plan.KeyDependencies ", "}}

**Implementation Challenges:** {{join .Plan.ImplementationChallenges ", "}}

**Success Criteria:** {{join .Plan.SuccessCriteria ", "}}
{{end}}{{end}}{{if .CostBenefits}}
## Cost-Benefit Analysis
{{range $i, $entry := .CostBenefits}}
### Use Case {{inc $i}}: {{$entry.UseCase}}
{{with $entry.Analysis}}
#### Implementation Costs

**Technology Costs**

- Hardware: {{.ImplementationCosts.Technology.Hardware}}
- Software: {{.ImplementationCosts.Technology.Software}}
- Infrastructure: {{.ImplementationCosts.Technology.Infrastructure}}
- Total Tech Costs: {{.ImplementationCosts.Technology.TotalTechCosts}}

**Human Resources Costs**

- Internal Team: {{.ImplementationCosts.HumanResources.InternalTeam}}
- Contractors: {{.ImplementationCosts.HumanResources.Contractors}}
- Training: {{.ImplementationCosts.HumanResources.Training}}
- Total HR Costs: {{.ImplementationCosts.HumanResources.TotalHRCosts}}

**Other Costs:** {{join .ImplementationCosts.OtherCosts ", "}}

**Total Cost Range:** {{.ImplementationCosts.TotalCostRange}}

#### Expected Benefits

**Quantitative Benefits**

{{range .ExpectedBenefits.Quantitative}}- **{{.Benefit}}**: {{.EstimatedValue}} (_{{.Timeframe}}_)
{{end}}
**Qualitative Benefits**

{{range .ExpectedBenefits.Qualitative}}- {{.}}
{{end}}
#### ROI Analysis

- Payback Period: {{.ROIAnalysis.PaybackPeriod}}
- First Year ROI: {{.ROIAnalysis.FirstYearROI}}
- 3-Year ROI: {{.ROIAnalysis.ThreeYearROI}}

**Non-Financial Benefits**

{{range .ROIAnalysis.NonFinancialBenefits}}- {{.}}
{{end}}
#### Risk Factors

{{range .RiskFactors}}- {{.}}
{{end}}{{end}}{{end}}{{end}}{{if not .Positioning.IsZero}}
## Competitor Analysis
{{with .Positioning}}
### AI Maturity Overview

**AI Maturity Score:** {{.AIMaturityScore}}/10

{{.AIMaturityExplanation}}

### Competitive Positioning

{{.CompetitivePositioning}}

### SWOT Analysis

**Strengths**

{{range .Strengths}}- {{.}}
{{end}}
**Weaknesses**

{{range .Weaknesses}}- {{.}}
{{end}}
**Opportunities**

{{range .Opportunities}}- {{.}}
{{end}}
**Threats**

{{range .Threats}}- {{.}}
{{end}}{{end}}{{end}}{{if .Competitors}}
## Competitors
{{range .Competitors}}
### {{.Name}}

**Description:** {{.Description}}

**AI Initiatives:**

{{range .AIInitiatives}}- {{.}}
{{end}}{{end}}{{end}}{{if .ResourceLinks}}
## Resources

{{range .ResourceLinks}}- [{{.}}]({{.}})
{{end}}{{end}}`))

type reportData struct {
	types.Record
	Generated string
}

// Render produces the markdown report for one research record (R1.1).
func Render(rec types.Record) (string, error) {
	data := reportData{
		Record:    rec,
		Generated: rec.GeneratedAt.Format("2006-01-02 15:04"),
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}

	return buf.String(), nil
}

// Filename returns the export file name for a report. The industry is
// part of the name because reports are stored per company and industry
// pair (R2.2).
func Filename(company, industry string) string {
	return sanitize(company) + "_" + sanitize(industry) + "_research_report.md"
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.' {
			return r
		}
		return '_'
	}, s)
}

// Export renders rec and writes it under dir, returning the written
// path (R2.1).
func Export(rec types.Record, dir string) (string, error) {
	content, err := Render(rec)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(dir, Filename(rec.Company, rec.Industry))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing report file: %w", err)
	}

	return path, nil
}

// ExportAll renders and writes every record concurrently, bounded by
// the worker limit, and returns the written paths in input order
// (R3.1, R3.2). The first failure cancels the remaining work.
func ExportAll(ctx context.Context, recs []types.Record, dir string, workers int) ([]string, error) {
	if workers <= 0 {
		workers = DefaultExportWorkers
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}

	paths := make([]string, len(recs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, rec := range recs {
		i, rec := i, rec
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path, err := Export(rec, dir)
			if err != nil {
				return fmt.Errorf("exporting %s: %w", rec.Company, err)
			}
			paths[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return paths, nil
}
