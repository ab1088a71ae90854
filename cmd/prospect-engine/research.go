package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/prospect-engine/internal/llm"
	"github.com/pdiddy/prospect-engine/internal/report"
	"github.com/pdiddy/prospect-engine/internal/research"
	"github.com/pdiddy/prospect-engine/internal/store"
	"github.com/pdiddy/prospect-engine/internal/websearch"
	"github.com/pdiddy/prospect-engine/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research [company]",
	Short: "Research a company and produce an AI adoption report",
	Long: `Research runs the staged pipeline for one company: industry trends,
AI/ML use cases, a strategic recommendation, implementation plans with
cost-benefit analyses, and the competitive landscape. The finished report
is stored locally; a fresh stored report is served without re-running the
pipeline.

With --batch, targets are read from a YAML file (a list of company and
industry pairs) and researched one after another. Progress goes to stderr;
the rendered report goes to stdout.`,
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().String("industry", "", "industry the company operates in")
	researchCmd.Flags().String("batch", "", "YAML file with a list of {company, industry} targets")
	researchCmd.Flags().Bool("json", false, "print the report record as JSON instead of markdown")

	rootCmd.AddCommand(researchCmd)
}

// target is one batch research entry.
type target struct {
	Company  string `yaml:"company"`
	Industry string `yaml:"industry"`
}

func runResearch(cmd *cobra.Command, args []string) error {
	batchFile, _ := cmd.Flags().GetString("batch")
	industry, _ := cmd.Flags().GetString("industry")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	var targets []target
	switch {
	case batchFile != "":
		var err error
		targets, err = loadTargets(batchFile)
		if err != nil {
			return err
		}
	case len(args) > 0:
		if industry == "" {
			return fmt.Errorf("--industry is required")
		}
		targets = []target{{Company: strings.Join(args, " "), Industry: industry}}
	default:
		return fmt.Errorf("provide a company name or a --batch file")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Search.APIKey == "" {
		return fmt.Errorf("tavily API key missing: add .secrets/tavily-api-key or set TAVILY_API_KEY")
	}
	if cfg.AI.APIKey == "" {
		return fmt.Errorf("generation API key missing: add .secrets/openrouter-api-key (or gemini-api-key) or set the matching environment variable")
	}

	eng, st, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	for _, tgt := range targets {
		if len(targets) > 1 {
			fmt.Fprintf(os.Stderr, "--- %s (%s)\n", tgt.Company, tgt.Industry)
		}

		rec, err := eng.Research(ctx, tgt.Company, tgt.Industry)
		if err != nil {
			return fmt.Errorf("researching %s: %w", tgt.Company, err)
		}

		if len(targets) == 1 {
			return printRecord(rec, jsonOutput)
		}
		fmt.Printf("%s (%s): %d use cases, %d competitors, %d stage errors\n",
			rec.Company, rec.Industry, len(rec.UseCases), len(rec.Competitors), len(rec.Errors))
	}

	return nil
}

func printRecord(rec types.Record, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	md, err := report.Render(rec)
	if err != nil {
		return err
	}
	fmt.Print(md)
	return nil
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}

	var targets []target
	if err := yaml.Unmarshal(data, &targets); err != nil {
		return nil, fmt.Errorf("parsing batch file: %w", err)
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("batch file %s lists no targets", path)
	}
	for i, tgt := range targets {
		if strings.TrimSpace(tgt.Company) == "" || strings.TrimSpace(tgt.Industry) == "" {
			return nil, fmt.Errorf("batch entry %d: company and industry are required", i+1)
		}
	}

	return targets, nil
}

// buildEngine wires the search gateway, generation client, and report
// store into a research engine. Progress goes to stderr so stdout stays
// clean for rendered reports.
func buildEngine(cfg types.Config) (*research.Engine, *store.Store, error) {
	gateway, err := newGateway(cfg.Search)
	if err != nil {
		return nil, nil, err
	}

	client, err := llm.New(cfg.AI)
	if err != nil {
		return nil, nil, err
	}

	st, err := store.New(cfg.Report)
	if err != nil {
		return nil, nil, err
	}

	eng := research.New(gateway, client, st, &research.WriterObserver{W: os.Stderr})
	return eng, st, nil
}

func newGateway(cfg types.SearchConfig) (*websearch.Gateway, error) {
	var warn io.Writer
	if verbose {
		warn = os.Stderr
	}

	switch strings.ToLower(cfg.Provider) {
	case "", "tavily":
		return websearch.New(websearch.NewTavily(cfg), cfg, warn), nil
	default:
		return nil, fmt.Errorf("unknown search provider %q (expected tavily)", cfg.Provider)
	}
}
