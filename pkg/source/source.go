// Package source holds the per-site adapters that turn remote pages and
// feeds into normalized documents.
package source

import (
	"context"

	"github.com/upsc-exam-ai/data-scraper/pkg/domain"
)

// Source is one upstream site. FetchArticles returns every document the
// source can produce inside the lookback window; failures on individual
// pages or items degrade to fewer documents, not an error.
type Source interface {
	Name() string
	FetchArticles(ctx context.Context, daysBack int) ([]domain.Document, error)
}

// Minimum sizes a feed-derived document must meet to be worth storing.
// Structured site articles are identified by title+URL instead and skip
// this check.
const (
	minTitleLen = 10
	minBodyLen  = 50
)

// ValidDocument filters out feed items too thin to be articles: missing
// URL, stub titles, or bodies shorter than a sentence or two.
func ValidDocument(d *domain.Document) bool {
	if d.SourceURL == "" {
		return false
	}
	if len(d.Title) < minTitleLen {
		return false
	}
	return len(d.PlainText()) >= minBodyLen
}
