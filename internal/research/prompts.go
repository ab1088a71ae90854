// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/prospect-engine/pkg/types"
)

// Prompt templates for every model call the pipeline makes. List-valued
// record fields are joined with ", " before rendering; search context
// blocks are prebuilt by the stage and passed in as Context.

var offeringsPromptTmpl = template.Must(template.New("offerings").Parse(`Based on the following information about {{.Company}} in the {{.Industry}} industry,
list their main products, services, and key offerings.

Information:
{{.Context}}

Extract and list the key offerings in a JSON array format. Include only the main,
verified offerings (typically 3-7 items). Example format:
["Product 1", "Service 1", "Technology 1"]

Focus on current, active offerings only.`))

type offeringsPromptData struct {
	Company  string
	Industry string
	Context  string
}

var industryAnalysisPromptTmpl = template.Must(template.New("industry-analysis").Parse(`Analyze the following information for {{.Company}} in the {{.Industry}} industry.

Company Key Offerings: {{.Offerings}}

Web Search Results:
{{.Context}}

Provide a comprehensive analysis including:
1. Detailed market trends (list format)
2. Technological landscape overview, especially relating to their key offerings:
   {{.Offerings}}
3. Potential AI/ML opportunities specific to their offerings
4. Competitive insights
5. Emerging technologies relevant to their market position

Format the market trends as a clear, numbered list.`))

type industryAnalysisPromptData struct {
	Company   string
	Industry  string
	Offerings string
	Context   string
}

var useCaseSystemTmpl = template.Must(template.New("use-case-system").Parse(`You are an AI/ML solution architect specializing in the {{.Industry}} industry.
Your expertise is creating specific, high-value AI/ML use cases for businesses based on their market context.

Focus on practical, implementable use cases with clear business impact. Be specific about AI techniques.
Your use cases should be innovative but achievable with current technology.

For {{.Company}}, tailor your recommendations to their specific offerings and industry position.
Format your response exactly as specified in the prompt.`))

var useCasePromptTmpl = template.Must(template.New("use-case").Parse(`Generate 3-5 innovative AI/ML use cases for {{.Company}} in the {{.Industry}} industry.

Company Information:
- Company: {{.Company}}
- Industry: {{.Industry}}
- Key Offerings: {{.Offerings}}

Market Context:
{{.Context}}

Market Trends:
{{.Trends}}

For each use case:
1. Create a clear, specific title for the use case.
2. Provide a concrete business objective that the use case addresses.
3. Describe precisely how AI/ML will be applied (specific techniques and implementation approach).
4. List 3-5 cross-functional benefits across different departments.
5. Include reference links to articles (using URLs).

Format each use case like this example:

Use Case 1: Predictive Maintenance System
Objective/Use Case: Reduce equipment downtime by 40% by implementing predictive maintenance for manufacturing equipment.
AI Application: Deploy an ensemble of LSTM neural networks and random forests to analyze sensor data streams, detect anomalies, and predict potential failures 2-3 weeks before they occur.
Cross-Functional Benefits:
- Operations: Reduce unplanned downtime by 40% and extend equipment lifespan by 25%
- Finance: Decrease maintenance costs by 30% and improve capital expense planning
- Supply Chain: Optimize inventory of spare parts based on predictive insights
- Quality: Reduce defects from degrading equipment by 15%
Articles: https://example.com/article1, https://example.com/article2`))

type useCasePromptData struct {
	Company   string
	Industry  string
	Offerings string
	Context   string
	Trends    string
}

const recommendationSystemPrompt = `You are an AI strategy consultant specialized in helping businesses identify the most beneficial AI technologies for their specific needs. Your expertise includes:

1. Deep understanding of the current AI technology landscape across various industries
2. Ability to match business requirements with appropriate AI capabilities
3. Knowledge of implementation challenges, costs, and ROI considerations
4. Awareness of emerging AI trends and their potential business applications

When recommending AI tools, you should:
- Prioritize solutions that address critical business needs rather than trending technologies without clear applications
- Consider the company's scale, technical capabilities, and industry context
- Provide specific product names or model types (not just general categories)
- Explain concrete benefits and potential use cases for each recommendation
- Address potential implementation challenges and resource requirements
- Include both established solutions and emerging technologies when appropriate

Your recommendations should be actionable, practical, and tailored to the specific business context provided.`

var recommendationPromptTmpl = template.Must(template.New("recommendation").Parse(`As an AI strategy consultant, evaluate {{.Company}}'s potential for AI integration based on the following information:

### Company Information
- Company Name: {{.Company}}
- Industry: {{.Industry}}


### Business Profile
- Key Offerings: {{.Offerings}}


### Market Context
- Industry Trends: {{.Trends}}

## Deliverable
Provide a strategic AI adoption plan including:

1. Top 5 Recommended AI Technologies
For each recommendation, include:
   - Specific technology/model name
   - Primary business application
   - Expected benefits (quantitative where possible)
   - Implementation complexity (Low/Medium/High)
   - Estimated timeline for implementation
   - Potential ROI indicators

Give the output in Structured markdown format. Use bullet points for clarity and ensure the response is concise and actionable. Avoid generic recommendations and focus on technologies that are relevant to the company's specific needs and industry trends.
Focus your recommendations on technologies that align with both the company's specific needs and relevant industry trends. Include a mix of established AI solutions and emerging technologies where appropriate.`))

type recommendationPromptData struct {
	Company   string
	Industry  string
	Offerings string
	Trends    string
}

var competitorsPromptTmpl = template.Must(template.New("competitors").Parse(`Based on the following information about {{.Company}} in the {{.Industry}} industry,
identify their top 3-5 direct competitors.

Information:
{{.Context}}

For each competitor, provide:
1. Company name
2. Brief description (1-2 sentences)
3. Key AI/ML initiatives they're known for (if any)

Format as JSON, without any explanations or additional text and without JSON backticks:
[
    {
        "name": "Competitor Name",
        "description": "Brief description",
        "ai_initiatives": ["Initiative 1", "Initiative 2"]
    }
]

Focus on direct competitors with similar offerings or target markets.`))

type competitorsPromptData struct {
	Company  string
	Industry string
	Context  string
}

var positioningPromptTmpl = template.Must(template.New("positioning").Parse(`Analyze the competitive positioning of {{.Company}} in the {{.Industry}} industry compared to these competitors:

{{.Competitors}}

{{.Company}}'s key offerings: {{.Offerings}}

Additional context:
{{.Context}}

Provide a comprehensive competitive analysis in JSON format, without JSON backticks:
{
    "strengths": ["Strength 1", "Strength 2"],
    "weaknesses": ["Weakness 1", "Weakness 2"],
    "opportunities": ["Opportunity 1", "Opportunity 2"],
    "threats": ["Threat 1", "Threat 2"],
    "ai_maturity_score": 0-10,
    "ai_maturity_explanation": "Brief explanation of the AI maturity score",
    "competitive_positioning": "Summary of competitive positioning (3-4 sentences)"
}`))

type positioningPromptData struct {
	Company     string
	Industry    string
	Competitors string
	Offerings   string
	Context     string
}

var planningPromptTmpl = template.Must(template.New("planning").Parse(`Create a detailed implementation roadmap for the following AI use case in the {{.Industry}} industry:

{{.Context}}

Provide a comprehensive implementation plan in JSON format, without JSON backticks:
{
    "phases": [
        {
            "name": "Phase name",
            "duration": "Expected duration (e.g., 2-3 months)",
            "activities": ["Activity 1", "Activity 2"],
            "deliverables": ["Deliverable 1", "Deliverable 2"],
            "resources_needed": ["Resource 1", "Resource 2"],
            "key_stakeholders": ["Stakeholder 1", "Stakeholder 2"],
            "risks": ["Risk 1", "Risk 2"],
            "success_metrics": ["Metric 1", "Metric 2"]
        }
    ],
    "estimated_timeline": "Overall timeline (e.g., 9-12 months)",
    "key_dependencies": ["Dependency 1", "Dependency 2"],
    "implementation_challenges": ["Challenge 1", "Challenge 2"],
    "success_criteria": ["Criterion 1", "Criterion 2"]
}

Include 3-4 phases (e.g., Planning, Development, Testing, Deployment), with realistic timelines and resource requirements.`))

var costBenefitPromptTmpl = template.Must(template.New("cost-benefit").Parse(`Provide a detailed cost-benefit analysis for implementing the following AI use case in the {{.Industry}} industry:

{{.Context}}

Create a comprehensive analysis in JSON format, withhout any explanations or additional text and without JSON backticks:
{
    "implementation_costs": {
        "technology": {
            "hardware": "Estimated cost range",
            "software": "Estimated cost range",
            "infrastructure": "Estimated cost range",
            "total_tech_costs": "Estimated total technology costs"
        },
        "human_resources": {
            "internal_team": "Estimated cost range",
            "contractors": "Estimated cost range",
            "training": "Estimated cost range",
            "total_hr_costs": "Estimated total HR costs"
        },
        "other_costs": ["Other cost 1", "Other cost 2"],
        "total_cost_range": "Estimated total cost range"
    },
    "expected_benefits": {
        "quantitative": [
            {
                "benefit": "Benefit description",
                "estimated_value": "Estimated value range",
                "timeframe": "Expected timeframe"
            }
        ],
        "qualitative": ["Qualitative benefit 1", "Qualitative benefit 2"]
    },
    "roi_analysis": {
        "payback_period": "Estimated payback period",
        "first_year_roi": "Estimated first year ROI percentage",
        "three_year_roi": "Estimated three year ROI percentage",
        "non_financial_benefits": ["Benefit 1", "Benefit 2"]
    },
    "risk_factors": ["Risk 1", "Risk 2"]
}

Use realistic industry-standard cost ranges and ROI estimations based on similar AI implementations.`))

type useCasePlanPromptData struct {
	Industry string
	Context  string
}

// renderPrompt executes a prompt template against its data struct.
func renderPrompt(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

// useCaseContext renders the shared use-case block embedded in the
// planning and cost-benefit prompts.
func useCaseContext(uc types.UseCase) string {
	return fmt.Sprintf("Use Case: %s\nObjective: %s\nAI Application: %s\nCross-Functional Benefits: %s",
		uc.Case, uc.Objective, uc.AIApplication, strings.Join(uc.Benefits, ", "))
}
