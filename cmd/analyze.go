package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/pareto-cli/internal/parser"
	"github.com/KaramelBytes/pareto-cli/internal/project"
)

var (
	anaProject    string
	anaOutputPath string
	anaFormat     string
	anaLang       string
	anaStrict     bool
	anaMaxRows    int
	anaSheetName  string
	anaSheetIndex int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|url>",
	Short: "Rank rows of a CSV/TXT/XLSX source and classify them around the 80/20 threshold",
	Long: `Analyze a local file, an http(s) URL or a Google Sheets link.

With --project the argument may also be the id or name of a saved source, and
the project's language applies unless --lang is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := anaFormat
		if !cmd.Flags().Changed("format") {
			format = settings().OutputFormat
		}
		format, err := checkFormat(format)
		if err != nil {
			return err
		}

		var p *project.Project
		if anaProject != "" {
			if p, err = loadProject(anaProject); err != nil {
				return err
			}
		}
		opt, err := analyzeOptions(cmd, p, anaLang, anaStrict, anaMaxRows, anaSheetName, anaSheetIndex)
		if err != nil {
			return err
		}
		locator := resolveLocator(p, args[0])

		rep, err := parser.Load(cmd.Context(), newFetcher(), locator, opt)
		if err != nil {
			return err
		}

		if anaOutputPath != "" {
			if err := writeReportFile(anaOutputPath, rep, format); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote analysis to %s\n", anaOutputPath)
			return nil
		}
		return writeReport(cmd.OutOrStdout(), rep, format)
	},
}

// analyzeOptions layers config defaults, project settings and flags.
func analyzeOptions(cmd *cobra.Command, p *project.Project, lang string, strict bool, maxRows int, sheetName string, sheetIndex int) (parser.Options, error) {
	s := settings()
	opt := parser.DefaultOptions()
	opt.Language = p.Language(s.Language)
	opt.StrictQuotes = s.StrictQuotes
	opt.MaxRows = s.MaxRows

	f := cmd.Flags()
	if f.Changed("lang") {
		opt.Language = lang
	}
	if f.Changed("strict-quotes") {
		opt.StrictQuotes = strict
	}
	if f.Changed("max-rows") {
		if maxRows < 0 {
			return opt, fmt.Errorf("--max-rows must be >= 0")
		}
		opt.MaxRows = maxRows
	}
	if f.Changed("sheet-name") && f.Changed("sheet-index") {
		return opt, fmt.Errorf("use only one of --sheet-name and --sheet-index")
	}
	opt.SheetName = sheetName
	if sheetIndex > 0 {
		opt.SheetIndex = sheetIndex
	}
	return opt, nil
}

// resolveLocator maps a saved source id or name to its locator.
func resolveLocator(p *project.Project, arg string) string {
	if p == nil {
		return arg
	}
	if s, ok := p.Sources[arg]; ok {
		return s.Locator
	}
	for _, s := range p.SortedSources() {
		if s.Name == arg {
			return s.Locator
		}
	}
	return arg
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaProject, "project", "p", "", "project whose saved sources and language to use")
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the report")
	analyzeCmd.Flags().StringVar(&anaFormat, "format", "markdown", "output format: markdown|json|yaml|table (default from config)")
	analyzeCmd.Flags().StringVar(&anaLang, "lang", "", "message language, BCP 47 tag such as es or en (default from config)")
	analyzeCmd.Flags().BoolVar(&anaStrict, "strict-quotes", false, "parse quoted fields so embedded commas stay in one value")
	analyzeCmd.Flags().IntVar(&anaMaxRows, "max-rows", 0, "maximum data rows to analyze (0 = unlimited)")
	analyzeCmd.Flags().StringVar(&anaSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	analyzeCmd.Flags().IntVar(&anaSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}
