package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/pareto-cli/internal/analysis"
	"github.com/KaramelBytes/pareto-cli/internal/utils"
)

var outputFormats = []string{"markdown", "json", "yaml", "table"}

func checkFormat(format string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	switch f {
	case "md":
		return "markdown", nil
	case "yml":
		return "yaml", nil
	}
	for _, known := range outputFormats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported --format: %s (use %s)", format, strings.Join(outputFormats, "|"))
}

// writeReport renders rep to w in the given format.
func writeReport(w io.Writer, rep *analysis.Report, format string) error {
	switch format {
	case "json":
		b, err := utils.PrettyJSON(rep)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		return enc.Close()
	case "table":
		return rep.WriteTable(w)
	default:
		_, err := fmt.Fprintln(w, rep.Markdown())
		return err
	}
}

func writeReportFile(path string, rep *analysis.Report, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := writeReport(f, rep, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
