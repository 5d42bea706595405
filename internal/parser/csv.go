package parser

import (
	"strings"

	"github.com/KaramelBytes/pareto-cli/internal/analysis"
)

type csvParser struct{}

func (csvParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".csv")
}

func (csvParser) Parse(content []byte, opt Options) (*analysis.Report, error) {
	return analysis.Analyze(string(content), opt.Options)
}
