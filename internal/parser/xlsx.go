package parser

import (
	"bytes"
	"strings"

	"github.com/KaramelBytes/pareto-cli/internal/analysis"
)

type xlsxParser struct{}

func (xlsxParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

func (xlsxParser) Parse(content []byte, opt Options) (*analysis.Report, error) {
	return analysis.AnalyzeWorkbook(bytes.NewReader(content), opt.Options, opt.SheetName, opt.SheetIndex)
}
