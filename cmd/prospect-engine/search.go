package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/prospect-engine/internal/websearch"
)

// --- search subcommand ---

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run a web search through the configured provider",
	Long: `Search sends a single query through the search gateway and prints the
results. Useful for checking the provider credentials and seeing what the
research pipeline would work from.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a search query")
	}
	query := strings.Join(args, " ")

	maxResults, _ := cmd.Flags().GetInt("max-results")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Search.APIKey == "" {
		return fmt.Errorf("tavily API key missing: add .secrets/tavily-api-key or set TAVILY_API_KEY")
	}

	gateway, err := newGateway(cfg.Search)
	if err != nil {
		return err
	}

	results := gateway.Search(context.Background(), query, maxResults)

	if jsonOutput {
		return websearch.FormatJSON(results, os.Stdout)
	}
	websearch.FormatTable(results, os.Stdout)
	return nil
}

func init() {
	searchCmd.Flags().Int("max-results", 5, "maximum number of results to return")
	searchCmd.Flags().Bool("json", false, "print results as JSON")

	rootCmd.AddCommand(searchCmd)
}
