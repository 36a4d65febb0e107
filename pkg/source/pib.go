package source

import (
	"context"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	readability "github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/upsc-exam-ai/data-scraper/pkg/cleantext"
	"github.com/upsc-exam-ai/data-scraper/pkg/domain"
)

const pibFeedURL = "https://pib.gov.in/RssMain.aspx?ModId=6&Lang=1&Regid=3"

// PIB reads press releases from the Press Information Bureau RSS feed.
// Feed items carry no document structure, so each one normalizes to a
// single-section document holding the cleaned item body.
type PIB struct {
	parser  *gofeed.Parser
	feedURL string
	log     zerolog.Logger
}

// NewPIB builds the source against the national PIB feed.
func NewPIB() *PIB {
	return &PIB{
		parser:  gofeed.NewParser(),
		feedURL: pibFeedURL,
		log:     log.With().Str("source", "pib").Logger(),
	}
}

// Name implements Source.
func (p *PIB) Name() string { return "PIB" }

// FetchArticles parses the feed and keeps items inside the lookback
// window that pass document validation. Items that fail to parse are
// logged and skipped.
func (p *PIB) FetchArticles(ctx context.Context, daysBack int) ([]domain.Document, error) {
	feed, err := p.parser.ParseURLWithContext(p.feedURL, ctx)
	if err != nil {
		return nil, err
	}
	p.log.Info().Int("items", len(feed.Items)).Msg("feed fetched")

	cutoff := time.Now().AddDate(0, 0, -daysBack)
	var docs []domain.Document
	for _, item := range feed.Items {
		doc := p.documentFromItem(item)
		if doc.PublishedDate.Before(cutoff) {
			continue
		}
		if !ValidDocument(&doc) {
			p.log.Warn().Str("title", doc.Title).Msg("dropping invalid feed item")
			continue
		}
		docs = append(docs, doc)
	}

	p.log.Info().Int("count", len(docs)).Msg("feed items accepted")
	return docs, nil
}

func (p *PIB) documentFromItem(item *gofeed.Item) domain.Document {
	body := p.itemBody(item)
	return domain.Document{
		Title:         strings.TrimSpace(item.Title),
		Source:        p.Name(),
		PublishedDate: p.itemDate(item),
		SourceURL:     strings.TrimSpace(item.Link),
		Sections: []domain.Section{
			{Blocks: []domain.ContentBlock{domain.Paragraph(body)}},
		},
		ExtractedAt: time.Now(),
	}
}

// itemBody prefers the item's full encoded content, run through
// readability to drop markup and chrome; short or absent content falls
// back to the cleaned description.
func (p *PIB) itemBody(item *gofeed.Item) string {
	if item.Content != "" {
		article, err := readability.FromReader(strings.NewReader(item.Content), nil)
		if err == nil {
			if text := cleantext.NormalizeWhitespace(article.TextContent); text != "" {
				return text
			}
		}
	}
	return cleantext.Clean(item.Description)
}

// itemDate resolves the publication date, falling back to a lenient
// parse of the raw pubDate string and finally to now. Feed dates are
// too inconsistent to make a bad one fatal.
func (p *PIB) itemDate(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.Published != "" {
		if t, err := dateparse.ParseAny(item.Published); err == nil {
			return t
		}
		p.log.Warn().Str("pubDate", item.Published).Msg("unparseable date, using now")
	}
	return time.Now()
}
