// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Record accumulates the research output for one company across all
// pipeline stages. Each stage receives the prior record by value and
// returns a new record with its own fields populated; stages never
// modify fields owned by other stages (prd001-pipeline R2.1, R2.2).
type Record struct {
	// Company is the company name under research.
	Company string `json:"company" yaml:"company"`

	// Industry is the industry the company operates in.
	Industry string `json:"industry" yaml:"industry"`

	// Offerings lists the company's main products and services,
	// discovered during industry research.
	Offerings []string `json:"key_offerings" yaml:"key_offerings"`

	// Trends lists market trends extracted from the industry analysis.
	Trends []string `json:"market_trends" yaml:"market_trends"`

	// Insights is the full industry analysis text.
	Insights string `json:"industry_insights" yaml:"industry_insights"`

	// SearchResults holds the top-ranked web results from industry
	// research, kept for downstream stages and the rendered report.
	SearchResults []SearchResult `json:"search_results" yaml:"search_results"`

	// UseCases lists the generated AI/ML use cases.
	UseCases []UseCase `json:"use_cases" yaml:"use_cases"`

	// Recommendation is the strategic AI adoption plan in markdown.
	Recommendation string `json:"recommendation" yaml:"recommendation"`

	// ResourceLinks lists dataset and implementation resource URLs.
	ResourceLinks []string `json:"resource_links" yaml:"resource_links"`

	// Competitors lists identified direct competitors.
	Competitors []Competitor `json:"competitors" yaml:"competitors"`

	// Positioning is the competitive positioning analysis.
	Positioning Positioning `json:"positioning" yaml:"positioning"`

	// Plans pairs each use case with its implementation plan.
	Plans []PlanEntry `json:"implementation_plans" yaml:"implementation_plans"`

	// CostBenefits pairs each planned use case with its cost-benefit analysis.
	CostBenefits []CostBenefitEntry `json:"cost_benefit_analyses" yaml:"cost_benefit_analyses"`

	// Errors accumulates stage failure messages. A non-empty list means
	// some fields hold their documented defaults (prd001-pipeline R4.2).
	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`

	// GeneratedAt is when the pipeline finished producing this record.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
}

// UseCase is one AI/ML use case proposed for the company.
type UseCase struct {
	// Case is the use case title.
	Case string `json:"case" yaml:"case"`

	// Objective is the business objective the use case addresses.
	Objective string `json:"objective" yaml:"objective"`

	// AIApplication describes how AI/ML is applied.
	AIApplication string `json:"ai_application" yaml:"ai_application"`

	// Benefits lists cross-functional benefits across departments.
	Benefits []string `json:"cross_functional_benefit" yaml:"cross_functional_benefit"`

	// Articles lists reference article URLs.
	Articles []string `json:"articles" yaml:"articles"`
}

// Competitor is a direct competitor identified during competitor analysis.
// Field tags follow the generation API's JSON schema.
type Competitor struct {
	Name          string   `json:"name" yaml:"name"`
	Description   string   `json:"description" yaml:"description"`
	AIInitiatives []string `json:"ai_initiatives" yaml:"ai_initiatives"`
}

// Positioning is the competitive positioning analysis: SWOT lists plus an
// AI maturity assessment. Field tags follow the generation API's JSON schema.
type Positioning struct {
	Strengths              []string `json:"strengths" yaml:"strengths"`
	Weaknesses             []string `json:"weaknesses" yaml:"weaknesses"`
	Opportunities          []string `json:"opportunities" yaml:"opportunities"`
	Threats                []string `json:"threats" yaml:"threats"`
	AIMaturityScore        float64  `json:"ai_maturity_score" yaml:"ai_maturity_score"`
	AIMaturityExplanation  string   `json:"ai_maturity_explanation" yaml:"ai_maturity_explanation"`
	CompetitivePositioning string   `json:"competitive_positioning" yaml:"competitive_positioning"`
}

// IsZero reports whether the positioning analysis is empty (parse failure
// or stage default).
func (p Positioning) IsZero() bool {
	return len(p.Strengths) == 0 && len(p.Weaknesses) == 0 &&
		len(p.Opportunities) == 0 && len(p.Threats) == 0 &&
		p.AIMaturityScore == 0 && p.AIMaturityExplanation == "" &&
		p.CompetitivePositioning == ""
}

// Phase is one phase of an implementation plan.
type Phase struct {
	Name            string   `json:"name" yaml:"name"`
	Duration        string   `json:"duration" yaml:"duration"`
	Activities      []string `json:"activities" yaml:"activities"`
	Deliverables    []string `json:"deliverables" yaml:"deliverables"`
	ResourcesNeeded []string `json:"resources_needed" yaml:"resources_needed"`
	KeyStakeholders []string `json:"key_stakeholders" yaml:"key_stakeholders"`
	Risks           []string `json:"risks" yaml:"risks"`
	SuccessMetrics  []string `json:"success_metrics" yaml:"success_metrics"`
}

// ImplementationPlan is the phased roadmap for one use case.
type ImplementationPlan struct {
	Phases                   []Phase  `json:"phases" yaml:"phases"`
	EstimatedTimeline        string   `json:"estimated_timeline" yaml:"estimated_timeline"`
	KeyDependencies          []string `json:"key_dependencies" yaml:"key_dependencies"`
	ImplementationChallenges []string `json:"implementation_challenges" yaml:"implementation_challenges"`
	SuccessCriteria          []string `json:"success_criteria" yaml:"success_criteria"`
}

// PlanEntry pairs a use case title with its implementation plan.
type PlanEntry struct {
	UseCase string             `json:"use_case" yaml:"use_case"`
	Plan    ImplementationPlan `json:"plan" yaml:"plan"`
}

// TechnologyCosts holds estimated technology cost ranges. All values are
// provider-formatted strings (e.g. "$50,000-$100,000") rendered verbatim.
type TechnologyCosts struct {
	Hardware       string `json:"hardware" yaml:"hardware"`
	Software       string `json:"software" yaml:"software"`
	Infrastructure string `json:"infrastructure" yaml:"infrastructure"`
	TotalTechCosts string `json:"total_tech_costs" yaml:"total_tech_costs"`
}

// HumanResourceCosts holds estimated staffing cost ranges.
type HumanResourceCosts struct {
	InternalTeam string `json:"internal_team" yaml:"internal_team"`
	Contractors  string `json:"contractors" yaml:"contractors"`
	Training     string `json:"training" yaml:"training"`
	TotalHRCosts string `json:"total_hr_costs" yaml:"total_hr_costs"`
}

// ImplementationCosts groups all cost estimates for one use case.
type ImplementationCosts struct {
	Technology     TechnologyCosts    `json:"technology" yaml:"technology"`
	HumanResources HumanResourceCosts `json:"human_resources" yaml:"human_resources"`
	OtherCosts     []string           `json:"other_costs" yaml:"other_costs"`
	TotalCostRange string             `json:"total_cost_range" yaml:"total_cost_range"`
}

// QuantitativeBenefit is one measurable expected benefit.
type QuantitativeBenefit struct {
	Benefit        string `json:"benefit" yaml:"benefit"`
	EstimatedValue string `json:"estimated_value" yaml:"estimated_value"`
	Timeframe      string `json:"timeframe" yaml:"timeframe"`
}

// ExpectedBenefits groups quantitative and qualitative benefits.
type ExpectedBenefits struct {
	Quantitative []QuantitativeBenefit `json:"quantitative" yaml:"quantitative"`
	Qualitative  []string              `json:"qualitative" yaml:"qualitative"`
}

// ROIAnalysis holds return-on-investment estimates. Values are free-form
// ranges ("6-9 months", "20-30%") and are never parsed numerically.
type ROIAnalysis struct {
	PaybackPeriod        string   `json:"payback_period" yaml:"payback_period"`
	FirstYearROI         string   `json:"first_year_roi" yaml:"first_year_roi"`
	ThreeYearROI         string   `json:"three_year_roi" yaml:"three_year_roi"`
	NonFinancialBenefits []string `json:"non_financial_benefits" yaml:"non_financial_benefits"`
}

// CostBenefit is the full cost-benefit analysis for one use case.
// Field tags follow the generation API's JSON schema.
type CostBenefit struct {
	ImplementationCosts ImplementationCosts `json:"implementation_costs" yaml:"implementation_costs"`
	ExpectedBenefits    ExpectedBenefits    `json:"expected_benefits" yaml:"expected_benefits"`
	ROIAnalysis         ROIAnalysis         `json:"roi_analysis" yaml:"roi_analysis"`
	RiskFactors         []string            `json:"risk_factors" yaml:"risk_factors"`
}

// CostBenefitEntry pairs a use case title with its cost-benefit analysis.
type CostBenefitEntry struct {
	UseCase  string      `json:"use_case" yaml:"use_case"`
	Analysis CostBenefit `json:"analysis" yaml:"analysis"`
}
