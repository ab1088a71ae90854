// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/prospect-engine/internal/report"
	"github.com/pdiddy/prospect-engine/internal/store"
	"github.com/pdiddy/prospect-engine/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Manage stored research reports (list, show, export, clear)",
	Long: `Report manages the local report store. Use subcommands to list stored
reports, print one, export them as markdown files, or remove them.

Stored reports are served regardless of age here; freshness only gates
whether the research command re-runs the pipeline.`,
}

// --- list subcommand ---

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored reports, newest first",
	RunE:  runReportList,
}

func runReportList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	summaries, err := st.List(context.Background())
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		fmt.Println("No reports stored.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-30s  %-25s  %-10s  %s\n", "Company", "Industry", "Age", "Errors")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 78))

	for _, sum := range summaries {
		company := sum.Company
		if len(company) > 30 {
			company = company[:27] + "..."
		}
		industry := sum.Industry
		if len(industry) > 25 {
			industry = industry[:22] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-30s  %-25s  %-10s  %d\n",
			company, industry, formatAge(sum.GeneratedAt), sum.Errors)
	}

	fmt.Fprintf(os.Stdout, "\n%d report(s)\n", len(summaries))
	return nil
}

// --- show subcommand ---

var reportShowCmd = &cobra.Command{
	Use:   "show [company]",
	Short: "Print a stored report as markdown",
	Long: `Show prints one stored report to stdout. When the company has reports
for several industries, pass --industry to pick one.`,
	RunE: runReportShow,
}

func runReportShow(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a company name")
	}
	industry, _ := cmd.Flags().GetString("industry")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := findReport(context.Background(), st, strings.Join(args, " "), industry)
	if err != nil {
		return err
	}
	return printRecord(rec, jsonOutput)
}

// --- export subcommand ---

var reportExportCmd = &cobra.Command{
	Use:   "export [company]",
	Short: "Write stored reports to markdown files",
	Long: `Export renders stored reports and writes them under --dir, one file per
company and industry pair. With --all, every stored report is exported
concurrently.`,
	RunE: runReportExport,
}

func runReportExport(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	dir, _ := cmd.Flags().GetString("dir")
	workers, _ := cmd.Flags().GetInt("workers")
	industry, _ := cmd.Flags().GetString("industry")

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()

	if all {
		summaries, err := st.List(ctx)
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			fmt.Println("No reports stored.")
			return nil
		}

		recs := make([]types.Record, 0, len(summaries))
		for _, sum := range summaries {
			rec, ok, err := st.GetAny(ctx, sum.Company, sum.Industry)
			if err != nil {
				return err
			}
			if ok {
				recs = append(recs, rec)
			}
		}

		paths, err := report.ExportAll(ctx, recs, dir, workers)
		if err != nil {
			return err
		}
		for _, path := range paths {
			fmt.Println(path)
		}
		fmt.Fprintf(os.Stdout, "\nExported %d report(s) to %s\n", len(paths), dir)
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("provide a company name or --all")
	}

	rec, err := findReport(ctx, st, strings.Join(args, " "), industry)
	if err != nil {
		return err
	}
	path, err := report.Export(rec, dir)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

// --- clear subcommand ---

var reportClearCmd = &cobra.Command{
	Use:   "clear [company]",
	Short: "Remove stored reports",
	Long: `Clear removes stored reports. With no arguments it empties the store;
with a company name it removes that company's reports, optionally
narrowed by --industry.`,
	RunE: runReportClear,
}

func runReportClear(cmd *cobra.Command, args []string) error {
	industry, _ := cmd.Flags().GetString("industry")

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()

	if len(args) == 0 {
		if industry != "" {
			return fmt.Errorf("--industry needs a company name")
		}
		n, err := st.Clear(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d report(s).\n", n)
		return nil
	}

	company := strings.Join(args, " ")
	if industry != "" {
		ok, err := st.Delete(ctx, company, industry)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no stored report for %s (%s)", company, industry)
		}
		fmt.Println("Removed 1 report.")
		return nil
	}

	summaries, err := st.List(ctx)
	if err != nil {
		return err
	}
	removed := 0
	for _, sum := range summaries {
		if sum.Company != company {
			continue
		}
		ok, err := st.Delete(ctx, company, sum.Industry)
		if err != nil {
			return err
		}
		if ok {
			removed++
		}
	}
	if removed == 0 {
		return fmt.Errorf("no stored report for %s", company)
	}
	fmt.Printf("Removed %d report(s).\n", removed)
	return nil
}

// --- shared helpers ---

func openStore() (*store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return store.New(cfg.Report)
}

// findReport resolves a company (and optional industry) to a stored
// record, regardless of age. Without --industry the company must map to
// exactly one stored pair.
func findReport(ctx context.Context, st *store.Store, company, industry string) (types.Record, error) {
	if industry != "" {
		rec, ok, err := st.GetAny(ctx, company, industry)
		if err != nil {
			return types.Record{}, err
		}
		if !ok {
			return types.Record{}, fmt.Errorf("no stored report for %s (%s)", company, industry)
		}
		return rec, nil
	}

	summaries, err := st.List(ctx)
	if err != nil {
		return types.Record{}, err
	}
	var matches []store.Summary
	for _, sum := range summaries {
		if sum.Company == company {
			matches = append(matches, sum)
		}
	}

	switch len(matches) {
	case 0:
		return types.Record{}, fmt.Errorf("no stored report for %s", company)
	case 1:
		rec, ok, err := st.GetAny(ctx, company, matches[0].Industry)
		if err != nil {
			return types.Record{}, err
		}
		if !ok {
			return types.Record{}, fmt.Errorf("no stored report for %s (%s)", company, matches[0].Industry)
		}
		return rec, nil
	default:
		industries := make([]string, len(matches))
		for i, sum := range matches {
			industries[i] = sum.Industry
		}
		return types.Record{}, fmt.Errorf("%s has reports for several industries (%s): pass --industry",
			company, strings.Join(industries, ", "))
	}
}

func formatAge(t time.Time) string {
	age := time.Since(t)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	}
}

func init() {
	reportShowCmd.Flags().String("industry", "", "industry to disambiguate the company")
	reportShowCmd.Flags().Bool("json", false, "print the report record as JSON instead of markdown")

	reportExportCmd.Flags().String("industry", "", "industry to disambiguate the company")
	reportExportCmd.Flags().Bool("all", false, "export every stored report")
	reportExportCmd.Flags().String("dir", "exports", "directory to write report files into")
	reportExportCmd.Flags().Int("workers", report.DefaultExportWorkers, "concurrent exports with --all")

	reportClearCmd.Flags().String("industry", "", "industry to narrow the removal")

	reportCmd.AddCommand(reportListCmd, reportShowCmd, reportExportCmd, reportClearCmd)
	rootCmd.AddCommand(reportCmd)
}
