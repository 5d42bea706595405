package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/pareto-cli/internal/analysis"
	"github.com/KaramelBytes/pareto-cli/internal/parser"
	"github.com/KaramelBytes/pareto-cli/internal/project"
	"github.com/KaramelBytes/pareto-cli/internal/source"
)

var (
	abProject     string
	abFormat      string
	abLang        string
	abStrict      bool
	abMaxRows     int
	abSheetName   string
	abSheetIndex  int
	abConcurrency int
	abQuiet       bool
)

type batchResult struct {
	locator string
	report  *analysis.Report
	err     error
}

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch [inputs...]",
	Short: "Analyze several sources concurrently; with -p and no inputs, every saved source",
	RunE: func(cmd *cobra.Command, args []string) error {
		format := abFormat
		if !cmd.Flags().Changed("format") {
			format = settings().OutputFormat
		}
		format, err := checkFormat(format)
		if err != nil {
			return err
		}

		var p *project.Project
		if abProject != "" {
			if p, err = loadProject(abProject); err != nil {
				return err
			}
		}
		inputs := expandInputs(args)
		if len(args) == 0 && p != nil {
			for _, s := range p.SortedSources() {
				inputs = append(inputs, s.Locator)
			}
		}
		if len(inputs) == 0 {
			if p != nil {
				return fmt.Errorf("project %s has no saved sources", p.Name)
			}
			return fmt.Errorf("no inputs given (pass files/urls or --project)")
		}
		for i, in := range inputs {
			inputs[i] = resolveLocator(p, in)
		}

		opt, err := analyzeOptions(cmd, p, abLang, abStrict, abMaxRows, abSheetName, abSheetIndex)
		if err != nil {
			return err
		}
		limit := abConcurrency
		if !cmd.Flags().Changed("concurrency") {
			limit = settings().BatchConcurrency
		}
		if limit < 1 {
			return fmt.Errorf("--concurrency must be >= 1")
		}

		results := runBatch(cmd, inputs, opt, limit)
		return printBatch(cmd.OutOrStdout(), cmd.ErrOrStderr(), results, format)
	},
}

// runBatch analyzes every input with at most limit in flight. Results keep
// input order; one failure does not stop the others.
func runBatch(cmd *cobra.Command, inputs []string, opt parser.Options, limit int) []batchResult {
	fetcher := newFetcher()
	log := cliLogger().With(slog.String("component", "batch"))
	results := make([]batchResult, len(inputs))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(limit)
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			rep, err := parser.Load(ctx, fetcher, in, opt)
			results[i] = batchResult{locator: in, report: rep, err: err}
			if err != nil {
				log.WarnContext(ctx, "analysis failed", slog.String("input", in), slog.String("error", err.Error()))
			} else {
				log.DebugContext(ctx, "analysis complete", slog.String("input", in), slog.Int("rows", rep.Summary.TotalRows))
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func printBatch(out, errOut io.Writer, results []batchResult, format string) error {
	failed := 0
	total := len(results)
	for i, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(errOut, "✗ [%d/%d] %s: %v\n", i+1, total, r.locator, r.err)
			continue
		}
		if !abQuiet {
			fmt.Fprintf(out, "=== [%d/%d] %s ===\n", i+1, total, r.report.Name)
		}
		if err := writeReport(out, r.report, format); err != nil {
			return err
		}
	}
	if failed > 0 {
		errs := make([]error, 0, failed)
		for _, r := range results {
			if r.err != nil {
				errs = append(errs, r.err)
			}
		}
		return fmt.Errorf("%d of %d inputs failed: %w", failed, total, errors.Join(errs...))
	}
	return nil
}

// expandInputs expands glob patterns in local paths, dropping duplicates.
// URLs and non-matching patterns pass through unchanged.
func expandInputs(args []string) []string {
	var out []string
	seen := map[string]struct{}{}
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	for _, arg := range args {
		if source.IsRemote(arg) {
			add(arg)
			continue
		}
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path; a missing file surfaces as an analysis error
			add(arg)
			continue
		}
		sort.Strings(matches)
		for _, m := range matches {
			if info, err := os.Stat(m); err == nil && info.IsDir() {
				continue
			}
			add(m)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	analyzeBatchCmd.Flags().StringVarP(&abProject, "project", "p", "", "project whose saved sources and language to use")
	analyzeBatchCmd.Flags().StringVar(&abFormat, "format", "markdown", "output format: markdown|json|yaml|table (default from config)")
	analyzeBatchCmd.Flags().StringVar(&abLang, "lang", "", "message language, BCP 47 tag (default from config)")
	analyzeBatchCmd.Flags().BoolVar(&abStrict, "strict-quotes", false, "parse quoted fields so embedded commas stay in one value")
	analyzeBatchCmd.Flags().IntVar(&abMaxRows, "max-rows", 0, "maximum data rows per input (0 = unlimited)")
	analyzeBatchCmd.Flags().StringVar(&abSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	analyzeBatchCmd.Flags().IntVar(&abSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	analyzeBatchCmd.Flags().IntVar(&abConcurrency, "concurrency", 4, "maximum inputs analyzed at once (default from config)")
	analyzeBatchCmd.Flags().BoolVar(&abQuiet, "quiet", false, "omit per-input headers")
}
