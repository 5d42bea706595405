package server

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/KaramelBytes/pareto-cli/internal/analysis"
	"github.com/KaramelBytes/pareto-cli/internal/parser"
	"github.com/KaramelBytes/pareto-cli/internal/source"
)

// AnalyzeRequest is the body of POST /api/analyze. Exactly one of Text and
// URL must be set.
type AnalyzeRequest struct {
	Text         string `json:"text" validate:"required_without=URL,excluded_with=URL"`
	URL          string `json:"url" validate:"required_without=Text,excluded_with=Text"`
	Language     string `json:"language" validate:"omitempty,bcp47_language_tag"`
	StrictQuotes *bool  `json:"strictQuotes"`
	MaxRows      *int   `json:"maxRows" validate:"omitempty,gte=0"`
	SheetName    string `json:"sheetName"`
	SheetIndex   int    `json:"sheetIndex" validate:"gte=0"`
}

// Bind implements render.Binder.
func (a *AnalyzeRequest) Bind(r *http.Request) error {
	a.Text = strings.TrimSpace(a.Text)
	a.URL = strings.TrimSpace(a.URL)
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

// handleAnalyze handles POST /api/analyze
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := render.Bind(r, &req); err != nil {
		s.fail(w, r, fmt.Errorf("%w: decode body: %w", errBadRequest, err))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.fail(w, r, err)
		return
	}
	opt := s.options(req.Language, req.StrictQuotes, req.MaxRows)
	if req.SheetName != "" {
		opt.SheetName = req.SheetName
	}
	if req.SheetIndex > 0 {
		opt.SheetIndex = req.SheetIndex
	}

	var (
		rep *analysis.Report
		err error
	)
	if req.URL != "" {
		if !source.IsRemote(req.URL) {
			s.fail(w, r, fmt.Errorf("%w: url must use http or https", errBadRequest))
			return
		}
		rep, err = parser.Load(r.Context(), s.fetcher, req.URL, opt)
	} else {
		rep, err = analysis.Analyze(req.Text, opt.Options)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.DebugContext(r.Context(), "analysis complete",
		slog.String("name", rep.Name),
		slog.Int("rows", rep.Summary.TotalRows),
	)
	render.JSON(w, r, rep)
}

// handleAnalyzeRaw handles POST /api/analyze/csv. The body is the document
// itself; options come from the query string (lang, strictQuotes, maxRows,
// name, sheet).
func (s *Server) handleAnalyzeRaw(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lang := q.Get("lang")
	if lang != "" {
		if err := s.validate.Var(lang, "bcp47_language_tag"); err != nil {
			s.fail(w, r, fmt.Errorf("%w: invalid lang %q", errBadRequest, lang))
			return
		}
	}
	var strict *bool
	if v := q.Get("strictQuotes"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			s.fail(w, r, fmt.Errorf("%w: invalid strictQuotes %q", errBadRequest, v))
			return
		}
		strict = &b
	}
	var maxRows *int
	if v := q.Get("maxRows"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.fail(w, r, fmt.Errorf("%w: invalid maxRows %q", errBadRequest, v))
			return
		}
		maxRows = &n
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opt := s.options(lang, strict, maxRows)
	opt.SheetName = q.Get("sheet")
	name := q.Get("name")
	if name == "" {
		name = "upload.csv"
		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/vnd.openxmlformats-officedocument.spreadsheetml") {
			name = "upload.xlsx"
		}
	}
	rep, err := parser.Parse(name, body, opt)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.JSON(w, r, rep)
}

func (s *Server) options(lang string, strict *bool, maxRows *int) parser.Options {
	opt := s.cfg.Defaults
	if opt.Language == "" {
		opt.Language = analysis.DefaultOptions().Language
	}
	if lang != "" {
		opt.Language = lang
	}
	if strict != nil {
		opt.StrictQuotes = *strict
	}
	if maxRows != nil {
		opt.MaxRows = *maxRows
	}
	return opt
}

// fail logs err and renders it with the mapped status.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	msg := err.Error()
	if verrs, ok := err.(validator.ValidationErrors); ok {
		msg = validationMessage(verrs)
	}
	level := slog.LevelWarn
	if status >= 500 && status != http.StatusBadGateway {
		level = slog.LevelError
		msg = "internal error"
	}
	s.logger.Log(r.Context(), level, "analysis request failed",
		slog.Int("status", status),
		slog.String("code", code),
		slog.String("error", err.Error()),
	)
	renderError(w, r, status, code, msg)
}

func validationMessage(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required_without":
			parts = append(parts, "one of text or url is required")
		case "excluded_with":
			parts = append(parts, "text and url are mutually exclusive")
		case "bcp47_language_tag":
			parts = append(parts, fmt.Sprintf("%s must be a BCP 47 language tag", fe.Field()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(dedupe(parts), "; ")
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
