package source

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/upsc-exam-ai/data-scraper/pkg/domain"
	"github.com/upsc-exam-ai/data-scraper/pkg/extract"
	"github.com/upsc-exam-ai/data-scraper/pkg/httpclient"
)

const sanskritiBaseURL = "https://www.sanskritiias.com/current-affairs/date/"

// Sanskriti scrapes current-affairs articles from the Sanskriti IAS
// site. Articles are published on per-date pages; each page can carry
// several article containers.
type Sanskriti struct {
	client  *httpclient.HTTPClient
	asm     *extract.Assembler
	baseURL string
	// delay between per-date fetches, to stay polite to the server
	delay time.Duration
	log   zerolog.Logger
}

// NewSanskriti builds the source with the site's default markup
// conventions.
func NewSanskriti() *Sanskriti {
	return &Sanskriti{
		client:  httpclient.NewClient(httpclient.BrowserClient),
		asm:     extract.NewAssembler(extract.DefaultOptions()),
		baseURL: sanskritiBaseURL,
		delay:   time.Second,
		log:     log.With().Str("source", "sanskriti").Logger(),
	}
}

// Name implements Source.
func (s *Sanskriti) Name() string { return "Sanskriti IAS" }

// DateURL builds the per-date page URL. The site wants the day without
// a leading zero and the month spelled out, e.g.
// .../current-affairs/date/2-January-2026.
func (s *Sanskriti) DateURL(date time.Time) string {
	return fmt.Sprintf("%s%d-%s-%d", s.baseURL, date.Day(), date.Month().String(), date.Year())
}

// FetchForDate fetches one date page and extracts every article on it.
// A page with no article containers is normal for dates with no
// publications and returns an empty slice.
func (s *Sanskriti) FetchForDate(ctx context.Context, date time.Time) ([]domain.Document, error) {
	url := s.DateURL(date)
	s.log.Info().Str("url", url).Msg("fetching articles")

	body, err := s.client.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	docs, err := s.asm.ExtractArticles(string(body), date)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", url, err)
	}
	if len(docs) == 0 {
		s.log.Warn().Str("date", date.Format("2006-01-02")).Msg("no articles found")
	}
	return docs, nil
}

// FetchArticles walks the lookback window oldest-first and collects
// every extractable article. A failed date is logged and skipped; one
// bad page never aborts the window.
func (s *Sanskriti) FetchArticles(ctx context.Context, daysBack int) ([]domain.Document, error) {
	var all []domain.Document
	end := time.Now()
	start := end.AddDate(0, 0, -daysBack)

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		docs, err := s.FetchForDate(ctx, date)
		if err != nil {
			s.log.Error().Err(err).Str("date", date.Format("2006-01-02")).Msg("date fetch failed")
		} else {
			all = append(all, docs...)
		}

		select {
		case <-ctx.Done():
			return all, ctx.Err()
		case <-time.After(s.delay):
		}
	}

	s.log.Info().Int("count", len(all)).Msg("fetch window complete")
	return all, nil
}
