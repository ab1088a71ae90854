// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the prospect-engine CLI.
// Implements: prd001-pipeline, prd002-websearch, prd003-llm,
//             prd004-report-store, prd005-report-render (CLI surface).
// See docs/ARCHITECTURE.md § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/prospect-engine/internal/secrets"
	"github.com/pdiddy/prospect-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// verbose enables per-request diagnostics such as search gateway warnings.
var verbose bool

// loadedSecrets holds API keys loaded from the secrets directory at startup.
var loadedSecrets map[string]string

// secretEnvNames maps secret file names to the environment variables the
// configuration falls back to.
var secretEnvNames = map[string]string{
	"tavily-api-key":     "TAVILY_API_KEY",
	"openrouter-api-key": "OPENROUTER_API_KEY",
	"gemini-api-key":     "GEMINI_API_KEY",
}

// rootCmd is the base command for the prospect-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "prospect-engine",
	Short: "AI adoption research reports for prospect companies",
	Long: `prospect-engine researches how a company can adopt AI in its industry and
produces a structured report: market trends, AI/ML use cases, implementation
plans, cost-benefit analyses, and the competitive landscape.

The research pipeline drives web search and language-model calls through a
cached gateway; finished reports land in a local store and are served from
it while fresh. Use the research, search, and report subcommands.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(viper.GetString("secrets_dir"))
		if err != nil {
			return err
		}
		loadedSecrets = s

		// Export file-based secrets into the environment so config
		// resolution sees one source, without clobbering real env vars.
		for name, env := range secretEnvNames {
			if v, ok := s[name]; ok && os.Getenv(env) == "" {
				os.Setenv(env, v)
			}
		}

		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./prospect-engine.yaml or ~/.config/prospect-engine/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "print search gateway warnings and other per-request detail")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("prospect-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "prospect-engine"))
		}
	}

	viper.SetDefault("secrets_dir", ".secrets/")
	viper.SetDefault("search.provider", "tavily")
	viper.SetDefault("search.user_agent", "prospect-engine/0.1")
	viper.SetDefault("report.data_dir", "data")

	viper.SetEnvPrefix("PROSPECT_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig materializes the full configuration from the config file and
// environment. API keys fall back to the provider's environment variable,
// which PersistentPreRunE populates from the secrets directory.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("parsing configuration: %w", err)
	}

	if cfg.Search.APIKey == "" {
		cfg.Search.APIKey = os.Getenv("TAVILY_API_KEY")
	}
	if cfg.AI.APIKey == "" {
		switch strings.ToLower(cfg.AI.Provider) {
		case "gemini":
			cfg.AI.APIKey = os.Getenv("GEMINI_API_KEY")
		default:
			cfg.AI.APIKey = os.Getenv("OPENROUTER_API_KEY")
		}
	}

	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
