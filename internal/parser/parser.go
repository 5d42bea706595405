package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/pareto-cli/internal/analysis"
	"github.com/KaramelBytes/pareto-cli/internal/source"
)

// Options bundles analysis options with workbook sheet selection.
type Options struct {
	analysis.Options
	// SheetName selects a workbook sheet by name (case-insensitive).
	SheetName string
	// SheetIndex selects a workbook sheet by 1-based position when SheetName is empty.
	SheetIndex int
}

// DefaultOptions returns analysis defaults and the first sheet.
func DefaultOptions() Options {
	return Options{Options: analysis.DefaultOptions(), SheetIndex: 1}
}

// Parser turns document bytes into an analysis report.
type Parser interface {
	CanParse(filename string) bool
	Parse(content []byte, opt Options) (*analysis.Report, error)
}

var registry []Parser

// Register adds a parser implementation to the registry.
func Register(p Parser) {
	registry = append(registry, p)
}

// Parse selects a parser by filename and analyzes content. Unknown
// extensions are read as comma-delimited text.
func Parse(name string, content []byte, opt Options) (*analysis.Report, error) {
	var rep *analysis.Report
	var err error
	p := lookup(name)
	if p == nil {
		rep, err = csvParser{}.Parse(content, opt)
	} else {
		rep, err = p.Parse(content, opt)
	}
	if err != nil {
		return nil, err
	}
	_, isXLSX := p.(xlsxParser)
	rep.Name = reportName(filepath.Base(name), isXLSX, opt)
	return rep, nil
}

// ParseFile reads a file from disk and analyzes it. Workbooks are streamed
// from disk.
func ParseFile(path string, opt Options) (*analysis.Report, error) {
	if _, ok := lookup(path).(xlsxParser); ok {
		return analysis.AnalyzeXLSX(path, opt.Options, opt.SheetName, opt.SheetIndex)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Parse(path, data, opt)
}

// ParseDocument analyzes a fetched document, trusting its detected kind
// over the name.
func ParseDocument(doc *source.Document, opt Options) (*analysis.Report, error) {
	var rep *analysis.Report
	var err error
	isXLSX := doc.Kind == source.KindXLSX
	if isXLSX {
		rep, err = xlsxParser{}.Parse(doc.Content, opt)
	} else if p := lookup(doc.Name); p != nil {
		rep, err = p.Parse(doc.Content, opt)
	} else {
		rep, err = csvParser{}.Parse(doc.Content, opt)
	}
	if err != nil {
		return nil, err
	}
	rep.Name = reportName(doc.Name, isXLSX, opt)
	return rep, nil
}

// Load fetches a locator and analyzes it.
func Load(ctx context.Context, f *source.Fetcher, locator string, opt Options) (*analysis.Report, error) {
	doc, err := f.Fetch(ctx, locator)
	if err != nil {
		return nil, err
	}
	rep, err := ParseDocument(doc, opt)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", doc.Name, err)
	}
	return rep, nil
}

func reportName(name string, isXLSX bool, opt Options) string {
	if isXLSX && opt.SheetName != "" {
		return fmt.Sprintf("%s (sheet: %s)", name, opt.SheetName)
	}
	return name
}

func lookup(name string) Parser {
	for _, p := range registry {
		if p.CanParse(name) {
			return p
		}
	}
	return nil
}

func init() {
	// Register default parsers
	Register(csvParser{})
	Register(txtParser{})
	Register(xlsxParser{})
}
