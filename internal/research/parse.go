package research

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/prospect-engine/pkg/types"
)

var (
	useCaseHeaderRe = regexp.MustCompile(`Use Case \d+:`)
	caseTitleRe     = regexp.MustCompile(`Use Case \d+:\s*(.*)`)
	objectiveRe     = regexp.MustCompile(`Objective/Use Case:\s*(.*)`)
	aiAppRe         = regexp.MustCompile(`AI Application:\s*(.*)`)
	benefitsBlockRe = regexp.MustCompile(`(?s)Cross-Functional Benefits:(.*?)(?:Articles:|$)`)
	benefitLineRe   = regexp.MustCompile(`-\s*(.*)`)
	articlesLineRe  = regexp.MustCompile(`Articles:\s*(.*)`)
	articleURLRe    = regexp.MustCompile(`https?://[^\s,]+`)
	urlRe           = regexp.MustCompile(`https?://[^\s,)]+`)
)

// jsonSpan cuts text from the first open delimiter to the last close
// delimiter. Models wrap JSON payloads in prose and code fences; the
// span scan recovers the payload without trusting the framing. The
// second return is false when no complete span exists.
func jsonSpan(text string, openDelim, closeDelim byte) (string, bool) {
	start := strings.IndexByte(text, openDelim)
	end := strings.LastIndexByte(text, closeDelim)
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// parseStringList decodes a JSON array of strings from a model
// response. Non-string elements are stringified rather than rejected
// (R3.2).
func parseStringList(text string) ([]string, error) {
	span, ok := jsonSpan(text, '[', ']')
	if !ok {
		return nil, errors.New("no JSON array in response")
	}
	var raw []any
	if err := json.Unmarshal([]byte(span), &raw); err != nil {
		return nil, fmt.Errorf("parsing JSON array: %w", err)
	}
	items := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			items = append(items, s)
			continue
		}
		items = append(items, fmt.Sprint(v))
	}
	return items, nil
}

func parseCompetitors(text string) ([]types.Competitor, error) {
	span, ok := jsonSpan(text, '[', ']')
	if !ok {
		return nil, errors.New("no JSON array in response")
	}
	var competitors []types.Competitor
	if err := json.Unmarshal([]byte(span), &competitors); err != nil {
		return nil, fmt.Errorf("parsing competitor JSON: %w", err)
	}
	return competitors, nil
}

func parsePositioning(text string) (types.Positioning, error) {
	span, ok := jsonSpan(text, '{', '}')
	if !ok {
		return types.Positioning{}, errors.New("no JSON object in response")
	}
	var positioning types.Positioning
	if err := json.Unmarshal([]byte(span), &positioning); err != nil {
		return types.Positioning{}, fmt.Errorf("parsing positioning JSON: %w", err)
	}
	return positioning, nil
}

func parsePlan(text string) (types.ImplementationPlan, error) {
	span, ok := jsonSpan(text, '{', '}')
	if !ok {
		return types.ImplementationPlan{}, errors.New("no JSON object in response")
	}
	var plan types.ImplementationPlan
	if err := json.Unmarshal([]byte(span), &plan); err != nil {
		return types.ImplementationPlan{}, fmt.Errorf("parsing plan JSON: %w", err)
	}
	return plan, nil
}

func parseCostBenefit(text string) (types.CostBenefit, error) {
	span, ok := jsonSpan(text, '{', '}')
	if !ok {
		return types.CostBenefit{}, errors.New("no JSON object in response")
	}
	var analysis types.CostBenefit
	if err := json.Unmarshal([]byte(span), &analysis); err != nil {
		return types.CostBenefit{}, fmt.Errorf("parsing cost-benefit JSON: %w", err)
	}
	return analysis, nil
}

// extractTrends pulls market trends out of an analysis response.
// Numbered list lines win; bulleted lines are the fallback when the
// model ignored the numbering instruction. At most five trends are
// kept (R3.3).
func extractTrends(content string) []string {
	lines := strings.Split(content, "\n")

	var trends []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) > 10 && line[0] >= '0' && line[0] <= '9' {
			trend := line
			if _, after, found := strings.Cut(line, ". "); found {
				trend = after
			}
			trends = append(trends, trend)
		}
	}

	if len(trends) == 0 {
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if len(line) <= 10 {
				continue
			}
			if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "• ") || strings.HasPrefix(line, "* ") {
				trends = append(trends, line)
			}
		}
	}

	if len(trends) > 5 {
		trends = trends[:5]
	}
	return trends
}

// splitUseCaseSections slices the response into one section per
// "Use Case N:" heading, each running to the next heading or the end
// of the text.
func splitUseCaseSections(content string) []string {
	locs := useCaseHeaderRe.FindAllStringIndex(content, -1)
	sections := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(content)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		sections = append(sections, content[loc[0]:end])
	}
	return sections
}

// parseUseCases extracts structured use cases from a model response.
// Missing fields fall back to generic defaults so a sloppy response
// still yields usable entries; a response with no recognizable
// sections yields a single default use case (R3.4).
func parseUseCases(content string) []types.UseCase {
	sections := splitUseCaseSections(content)

	useCases := make([]types.UseCase, 0, len(sections))
	for _, section := range sections {
		uc := types.UseCase{
			Case:          "Use Case " + strconv.Itoa(len(useCases)+1),
			Objective:     "Improve business processes",
			AIApplication: "Apply machine learning techniques",
		}
		if m := caseTitleRe.FindStringSubmatch(section); m != nil {
			uc.Case = strings.TrimSpace(m[1])
		}
		if m := objectiveRe.FindStringSubmatch(section); m != nil {
			uc.Objective = strings.TrimSpace(m[1])
		}
		if m := aiAppRe.FindStringSubmatch(section); m != nil {
			uc.AIApplication = strings.TrimSpace(m[1])
		}

		if m := benefitsBlockRe.FindStringSubmatch(section); m != nil {
			for _, lineMatch := range benefitLineRe.FindAllStringSubmatch(m[1], -1) {
				if benefit := strings.TrimSpace(lineMatch[1]); benefit != "" {
					uc.Benefits = append(uc.Benefits, benefit)
				}
			}
		}
		if len(uc.Benefits) == 0 {
			uc.Benefits = []string{"Improved efficiency"}
		}

		if m := articlesLineRe.FindStringSubmatch(section); m != nil {
			uc.Articles = articleURLRe.FindAllString(m[1], -1)
		}

		useCases = append(useCases, uc)
	}

	if len(useCases) == 0 {
		useCases = []types.UseCase{{
			Case:          "AI-Powered Process Optimization",
			Objective:     fmt.Sprintf("Improve operational efficiency for %s...", head(content, 50)),
			AIApplication: "Machine learning algorithms for process optimization",
			Benefits:      []string{"Improved efficiency", "Cost reduction"},
		}}
	}
	return useCases
}

// extractURLs returns every URL in content, deduplicated in first-seen
// order.
func extractURLs(content string) []string {
	return dedupeStrings(urlRe.FindAllString(content, -1))
}

func dedupeStrings(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
