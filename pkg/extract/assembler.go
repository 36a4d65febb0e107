// Package extract reconstructs structured documents from flat article
// markup. The source pages carry no explicit nesting — headings,
// paragraphs, lists and tables are all siblings — so section structure,
// the FAQ region, exam metadata and content images are all inferred from
// heading levels and sibling order in a single forward scan per region.
package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/upsc-exam-ai/data-scraper/pkg/domain"
)

// Assembler turns article containers on a fetched page into normalized
// documents. It is stateless across articles; the same Assembler can be
// reused for any number of pages.
type Assembler struct {
	opts Options
}

// NewAssembler creates an Assembler with the given markup conventions.
func NewAssembler(opts Options) *Assembler {
	return &Assembler{opts: opts}
}

// ExtractArticles parses a page and produces one Document per article
// container that has a resolvable title and URL. Containers missing
// either are skipped — a per-article condition, never a page failure.
// The error return covers unparseable markup only.
func (a *Assembler) ExtractArticles(pageHTML string, published time.Time) ([]domain.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	var docs []domain.Document
	doc.Find(a.opts.ContainerSelector).Each(func(_ int, container *goquery.Selection) {
		if d, ok := a.extractOne(container, published); ok {
			docs = append(docs, d)
		}
	})
	return docs, nil
}

// extractOne assembles a single container. ok is false when the
// container lacks a title link, a title, or an href.
func (a *Assembler) extractOne(container *goquery.Selection, published time.Time) (domain.Document, bool) {
	link := container.Find(a.opts.TitleSelector).First()
	title := strings.Join(strings.Fields(link.Text()), " ")
	url, _ := link.Attr("href")
	if title == "" || url == "" {
		return domain.Document{}, false
	}

	return domain.Document{
		Title:         title,
		Source:        a.opts.SourceName,
		PublishedDate: published,
		SourceURL:     url,
		Metadata:      a.extractMetadata(container),
		Sections:      a.extractSections(container),
		Faqs:          a.extractFaqs(container),
		Images:        a.extractImages(container),
		ExtractedAt:   time.Now(),
	}, true
}
