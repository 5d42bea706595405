package project

import "time"

// Source is a saved locator: a local path or an http(s) URL. Only the
// locator is kept; analysis results are never stored.
type Source struct {
	ID          string    `json:"id"`
	Locator     string    `json:"locator"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	AddedAt     time.Time `json:"added_at"`
}
