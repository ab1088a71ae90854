// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/prospect-engine/pkg/types"
)

// resourceDomains ranks dataset and code hosts. Earlier entries win
// when a URL matches more than one; URLs matching none are dropped.
var resourceDomains = []struct {
	domain string
	weight float64
}{
	{"kaggle.com", 10},
	{"github.com", 9},
	{"huggingface.co", 8},
	{"paperswithcode.com", 7},
	{"tensorflow.org", 6},
	{"pytorch.org", 6},
	{"scikit-learn.org", 5},
	{"openml.org", 5},
	{"data.gov", 4},
	{"google.com/dataset", 4},
}

func domainWeight(url string) float64 {
	lowered := strings.ToLower(url)
	for _, d := range resourceDomains {
		if strings.Contains(lowered, d.domain) {
			return d.weight
		}
	}
	return 0
}

// runResourceCollection fans out dataset and repository queries, scores
// the pooled results by relevance times domain weight, and appends the
// top links to the record (R2.4). No model call is involved, so the
// stage cannot fail.
func (e *Engine) runResourceCollection(ctx context.Context, rec types.Record) types.Record {
	queries := []string{
		fmt.Sprintf("AI ML datasets resources %s industry", rec.Industry),
		fmt.Sprintf("GitHub repositories %s machine learning", rec.Industry),
		fmt.Sprintf("Kaggle datasets %s analysis", rec.Industry),
	}
	useCases := rec.UseCases
	if len(useCases) > 3 {
		useCases = useCases[:3]
	}
	for _, uc := range useCases {
		if uc.Objective != "" {
			queries = append(queries, fmt.Sprintf("Datasets and resources for %s in %s", uc.Objective, rec.Industry))
		}
	}
	for _, offering := range firstN(rec.Offerings, 2) {
		queries = append(queries, fmt.Sprintf("AI ML datasets for %s in %s", offering, rec.Industry))
	}

	pooled := e.search.Batch(ctx, queries, 3)

	type scoredLink struct {
		url   string
		score float64
	}
	scored := make([]scoredLink, 0, len(pooled))
	seen := make(map[string]bool, len(pooled))
	for _, r := range pooled {
		if r.URL == "" || seen[r.URL] {
			continue
		}
		weight := domainWeight(r.URL)
		if weight == 0 {
			continue
		}
		seen[r.URL] = true
		scored = append(scored, scoredLink{url: r.URL, score: r.RelevanceScore * 5 * weight})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	if len(scored) > 15 {
		scored = scored[:15]
	}

	existing := make(map[string]bool, len(rec.ResourceLinks))
	for _, link := range rec.ResourceLinks {
		existing[link] = true
	}
	for _, s := range scored {
		if !existing[s.url] {
			rec.ResourceLinks = append(rec.ResourceLinks, s.url)
		}
	}
	return rec
}
