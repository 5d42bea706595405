package parser

import (
	"strings"

	"github.com/KaramelBytes/pareto-cli/internal/analysis"
)

// txtParser reads plain-text exports, which spreadsheets save as comma-separated lines.
type txtParser struct{}

func (txtParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".txt")
}

func (txtParser) Parse(content []byte, opt Options) (*analysis.Report, error) {
	return analysis.Analyze(string(content), opt.Options)
}
