package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags clears values and Changed state left by a previous invocation.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sc := range c.Commands() {
		resetFlags(sc)
	}
}

// execCmd runs the root command with args and returns stdout, stderr and the error.
func execCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	cfg = nil
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// runCmd is a helper to execute the root command with args; it fails the test on error.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, _, err := execCmd(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestCLI_AnalyzeMarkdown(t *testing.T) {
	home := isolateHome(t)
	p := filepath.Join(home, "ventas.csv")
	writeFile(t, p, "producto,ventas\nA,500\nB,300\nC,150\nD,50\n")

	out := runCmd(t, "analyze", p)
	for _, want := range []string{"[PARETO SUMMARY]", "[PRIORITY TIERS]", "[ROW ANALYSIS]", "Alta Prioridad", "ventas.csv"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestCLI_AnalyzeJSONEnglishToFile(t *testing.T) {
	home := isolateHome(t)
	p := filepath.Join(home, "data.csv")
	writeFile(t, p, "name,val\nA,10\nB,90\n")
	outPath := filepath.Join(home, "report.json")

	runCmd(t, "analyze", p, "--format", "json", "--lang", "en", "-o", outPath)
	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var rep struct {
		Summary struct {
			TotalRows int `json:"totalRows"`
		} `json:"summary"`
		RowAnalyses []struct {
			Classification string `json:"classification"`
		} `json:"rowAnalyses"`
	}
	if err := json.Unmarshal(b, &rep); err != nil {
		t.Fatalf("decode: %v\n%s", err, b)
	}
	if rep.Summary.TotalRows != 2 || rep.RowAnalyses[0].Classification != "Medium Priority" {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

func TestCLI_AnalyzeFormats(t *testing.T) {
	home := isolateHome(t)
	p := filepath.Join(home, "data.csv")
	writeFile(t, p, "name,val\nA,10\nB,90\n")

	if out := runCmd(t, "analyze", p, "--format", "yaml"); !strings.Contains(out, "paretoThreshold: 80") {
		t.Fatalf("expected yaml output, got:\n%s", out)
	}
	if out := runCmd(t, "analyze", p, "--format", "table"); !strings.Contains(out, "Media Prioridad") {
		t.Fatalf("expected table output, got:\n%s", out)
	}
	if _, _, err := execCmd(t, "analyze", p, "--format", "pdf"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestCLI_AnalyzeErrors(t *testing.T) {
	home := isolateHome(t)
	empty := filepath.Join(home, "empty.csv")
	writeFile(t, empty, "name,val\n")

	if _, _, err := execCmd(t, "analyze", empty); err == nil || !strings.Contains(err.Error(), "empty input") {
		t.Fatalf("expected empty input error, got %v", err)
	}
	if _, _, err := execCmd(t, "analyze", filepath.Join(home, "missing.csv")); err == nil || !strings.Contains(err.Error(), "source unavailable") {
		t.Fatalf("expected source unavailable error, got %v", err)
	}
	if _, _, err := execCmd(t, "analyze", empty, "--sheet-name", "a", "--sheet-index", "2"); err == nil {
		t.Fatalf("expected conflicting sheet flags error")
	}
}

func TestCLI_ProjectSourcesAndLanguage(t *testing.T) {
	home := isolateHome(t)
	p := filepath.Join(home, "ventas.csv")
	writeFile(t, p, "producto,ventas\nA,500\nB,300\nC,150\nD,50\n")

	runCmd(t, "init", "q3", "-d", "quarter three")
	if _, _, err := execCmd(t, "init", "q3"); err == nil {
		t.Fatalf("expected error re-initializing project")
	}
	runCmd(t, "add", "-p", "q3", p, "--desc", "sales export")
	if _, _, err := execCmd(t, "add", "-p", "q3", p); err == nil {
		t.Fatalf("expected duplicate source error")
	}

	out := runCmd(t, "list", "--sources", "-p", "q3")
	if !strings.Contains(out, p) || !strings.Contains(out, "sales export") {
		t.Fatalf("unexpected sources listing:\n%s", out)
	}
	if out := runCmd(t, "list", "--projects"); !strings.Contains(out, "- q3") {
		t.Fatalf("unexpected projects listing:\n%s", out)
	}

	runCmd(t, "project", "set-language", "-p", "q3", "en")
	out = runCmd(t, "analyze", "-p", "q3", "ventas.csv")
	if !strings.Contains(out, "High Priority") {
		t.Fatalf("expected project language to apply, got:\n%s", out)
	}
	out = runCmd(t, "analyze", "-p", "q3", "ventas.csv", "--lang", "es")
	if !strings.Contains(out, "Alta Prioridad") {
		t.Fatalf("expected --lang to override project language, got:\n%s", out)
	}
	runCmd(t, "project", "set-language", "-p", "q3", "--clear")
	if out := runCmd(t, "analyze", "-p", "q3", "ventas.csv"); !strings.Contains(out, "Alta Prioridad") {
		t.Fatalf("expected default language after clear, got:\n%s", out)
	}

	runCmd(t, "project", "remove-source", "-p", "q3", p)
	if out := runCmd(t, "list", "--sources", "-p", "q3"); !strings.Contains(out, "(no sources)") {
		t.Fatalf("expected empty source list, got:\n%s", out)
	}
}

func TestAnalyzeBatch_OrderedOutputAndProjectSources(t *testing.T) {
	home := isolateHome(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("canal,ingresos\nweb,700\ntienda,300\n"))
	}))
	defer srv.Close()

	d := filepath.Join(home, "data")
	if err := os.MkdirAll(d, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(d, "b.csv"), "x,y\nB1,1\n")
	writeFile(t, filepath.Join(d, "a.csv"), "x,y\nA1,1\n")

	out := runCmd(t, "analyze-batch", filepath.Join(d, "*.csv"), srv.URL+"/canales.csv", "--concurrency", "2")
	ia := strings.Index(out, "=== [1/3] a.csv ===")
	ib := strings.Index(out, "=== [2/3] b.csv ===")
	ic := strings.Index(out, "=== [3/3] canales.csv ===")
	if ia < 0 || ib < ia || ic < ib {
		t.Fatalf("expected results in input order, got:\n%s", out)
	}

	runCmd(t, "init", "batchp")
	runCmd(t, "add", "-p", "batchp", filepath.Join(d, "b.csv"))
	runCmd(t, "add", "-p", "batchp", srv.URL+"/canales.csv")
	out = runCmd(t, "analyze-batch", "-p", "batchp", "--format", "json", "--quiet")
	if strings.Contains(out, "===") {
		t.Fatalf("--quiet should omit headers:\n%s", out)
	}
	if strings.Count(out, `"paretoThreshold"`) != 2 {
		t.Fatalf("expected two reports, got:\n%s", out)
	}
}

func TestAnalyzeBatch_PartialFailure(t *testing.T) {
	home := isolateHome(t)
	good := filepath.Join(home, "good.csv")
	writeFile(t, good, "x,y\nA,1\n")

	out, errOut, err := execCmd(t, "analyze-batch", good, filepath.Join(home, "missing.csv"))
	if err == nil || !strings.Contains(err.Error(), "1 of 2 inputs failed") {
		t.Fatalf("expected partial failure error, got %v", err)
	}
	if !strings.Contains(out, "good.csv") {
		t.Fatalf("expected successful report despite failure, got:\n%s", out)
	}
	if !strings.Contains(errOut, "missing.csv") {
		t.Fatalf("expected failure line on stderr, got:\n%s", errOut)
	}

	runCmd(t, "init", "emptyp")
	if _, _, err := execCmd(t, "analyze-batch", "-p", "emptyp"); err == nil {
		t.Fatalf("expected error for project without sources")
	}
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	isolateHome(t)
	runCmd(t, "config", "set", "batch_concurrency", "2")
	if _, _, err := execCmd(t, "config", "set", "output_format", "pdf"); err == nil {
		t.Fatalf("expected invalid value error")
	}
	if _, _, err := execCmd(t, "config", "set", "nope", "1"); err == nil {
		t.Fatalf("expected unknown key error")
	}
	// config show reads the loaded config; load it the way Execute does
	loadConfig()
	defer func() { cfg, logger = nil, nil }()
	rootCmd.SetArgs([]string{"config", "show"})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out.String(), "batch_concurrency: 2") {
		t.Fatalf("expected saved value, got:\n%s", out.String())
	}
}
