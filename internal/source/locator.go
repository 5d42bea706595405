package source

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
)

// Kind is the document format of a fetched source.
type Kind string

const (
	KindCSV  Kind = "csv"
	KindXLSX Kind = "xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var sheetsPath = regexp.MustCompile(`^/spreadsheets/d/([A-Za-z0-9_-]+)`)

// IsRemote reports whether the locator is an http(s) URL.
func IsRemote(locator string) bool {
	l := strings.ToLower(strings.TrimSpace(locator))
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// ResolveURL rewrites Google Sheets links (edit, view or share URLs) to the
// CSV export endpoint, keeping the gid of the selected tab. Other URLs are
// returned unchanged.
func ResolveURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}
	if !strings.EqualFold(u.Host, "docs.google.com") {
		return u.String(), nil
	}
	m := sheetsPath.FindStringSubmatch(u.Path)
	if m == nil || (strings.HasSuffix(u.Path, "/export") && u.Query().Get("format") != "") {
		return u.String(), nil
	}
	gid := u.Query().Get("gid")
	if gid == "" {
		// the tab is usually carried in the fragment: #gid=123
		if frag, err := url.ParseQuery(u.Fragment); err == nil {
			gid = frag.Get("gid")
		}
	}
	out := url.URL{Scheme: "https", Host: "docs.google.com", Path: "/spreadsheets/d/" + m[1] + "/export"}
	q := url.Values{}
	q.Set("format", "csv")
	if gid != "" {
		q.Set("gid", gid)
	}
	out.RawQuery = q.Encode()
	return out.String(), nil
}

// KindFor infers the document kind from a name and an optional content type.
func KindFor(name, contentType string) Kind {
	if strings.HasPrefix(strings.ToLower(contentType), xlsxContentType) {
		return KindXLSX
	}
	if strings.EqualFold(path.Ext(name), ".xlsx") {
		return KindXLSX
	}
	return KindCSV
}

// displayName is the last path element of a locator, without query.
func displayName(locator string) string {
	if IsRemote(locator) {
		if u, err := url.Parse(locator); err == nil {
			if base := path.Base(u.Path); base != "" && base != "/" && base != "." {
				return base
			}
			return u.Host
		}
	}
	return path.Base(strings.ReplaceAll(locator, "\\", "/"))
}
