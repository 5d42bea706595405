package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// Document is the raw content behind a locator.
type Document struct {
	Locator     string
	Name        string
	Kind        Kind
	ContentType string
	Content     []byte
}

// Text returns the content as a string.
func (d *Document) Text() string { return string(d.Content) }

// Fetcher resolves locators (local paths or http(s) URLs) into documents.
// Each fetch is a single attempt; failures are not retried.
type Fetcher struct {
	httpClient *http.Client
	maxBytes   int64
	logger     *slog.Logger
}

// DefaultMaxBytes bounds a fetched document.
const DefaultMaxBytes = 20 << 20

// NewFetcher returns a fetcher with the given HTTP timeout and size limit.
// Zero values fall back to 30s and DefaultMaxBytes.
func NewFetcher(timeout time.Duration, maxBytes int64, logger *slog.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		maxBytes:   maxBytes,
		logger:     logger.With(slog.String("component", "fetcher")),
	}
}

// Fetch loads the document behind locator. Every failure to reach or read
// the document is an *UnavailableError.
func (f *Fetcher) Fetch(ctx context.Context, locator string) (*Document, error) {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return nil, errors.New("locator is required")
	}
	if IsRemote(locator) {
		return f.fetchURL(ctx, locator)
	}
	return f.fetchFile(locator)
}

func (f *Fetcher) fetchFile(path string) (*Document, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, unavailable(path, 0, err)
	}
	defer fh.Close()
	info, err := fh.Stat()
	if err != nil {
		return nil, unavailable(path, 0, err)
	}
	if info.IsDir() {
		return nil, unavailable(path, 0, errors.New("is a directory"))
	}
	b, err := f.readLimited(fh)
	if err != nil {
		return nil, unavailable(path, 0, err)
	}
	f.logger.Debug("read local source", slog.String("path", path), slog.Int("bytes", len(b)))
	return &Document{
		Locator: path,
		Name:    displayName(path),
		Kind:    KindFor(path, ""),
		Content: b,
	}, nil
}

func (f *Fetcher) fetchURL(ctx context.Context, locator string) (*Document, error) {
	target, err := ResolveURL(locator)
	if err != nil {
		return nil, unavailable(locator, 0, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, unavailable(locator, 0, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "text/csv, "+xlsxContentType+";q=0.9, */*;q=0.5")
	req.Header.Set("User-Agent", "pareto-cli")

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.WarnContext(ctx, "fetch failed", slog.String("url", target), slog.String("error", err.Error()))
		return nil, unavailable(locator, 0, fmt.Errorf("http request: %w", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		f.logger.WarnContext(ctx, "fetch returned non-2xx",
			slog.String("url", target),
			slog.Int("status", resp.StatusCode),
		)
		var cause error
		if msg := strings.TrimSpace(string(b)); msg != "" && len(msg) < 200 {
			cause = errors.New(msg)
		}
		return nil, unavailable(locator, resp.StatusCode, cause)
	}
	body, err := f.readLimited(resp.Body)
	if err != nil {
		return nil, unavailable(locator, resp.StatusCode, err)
	}
	ct := resp.Header.Get("Content-Type")
	f.logger.DebugContext(ctx, "fetched remote source",
		slog.String("url", target),
		slog.String("content_type", ct),
		slog.Int("bytes", len(body)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return &Document{
		Locator:     locator,
		Name:        displayName(locator),
		Kind:        KindFor(resp.Request.URL.Path, ct),
		ContentType: ct,
		Content:     body,
	}, nil
}

func (f *Fetcher) readLimited(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(b)) > f.maxBytes {
		return nil, fmt.Errorf("document exceeds %d bytes", f.maxBytes)
	}
	return b, nil
}
