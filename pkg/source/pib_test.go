package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upsc-exam-ai/data-scraper/pkg/domain"
)

func pibServer(t *testing.T, rss string) *PIB {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rss))
	}))
	t.Cleanup(server.Close)

	p := NewPIB()
	p.feedURL = server.URL
	return p
}

func rssFeed(items string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>PIB</title><link>https://pib.gov.in</link>` + items + `</channel></rss>`
}

func TestPIB_FetchArticles(t *testing.T) {
	recent := time.Now().Add(-24 * time.Hour).Format(time.RFC1123Z)
	items := fmt.Sprintf(`
<item>
  <title>Cabinet approves the new national semiconductor mission</title>
  <link>https://pib.gov.in/release/1</link>
  <description>&lt;p&gt;The Union Cabinet today approved a comprehensive national mission covering fabrication, design and skilling across the semiconductor value chain.&lt;/p&gt;</description>
  <pubDate>%s</pubDate>
</item>`, recent)

	p := pibServer(t, rssFeed(items))
	docs, err := p.FetchArticles(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, "Cabinet approves the new national semiconductor mission", doc.Title)
	assert.Equal(t, "https://pib.gov.in/release/1", doc.SourceURL)
	assert.Equal(t, "PIB", doc.Source)
	require.Len(t, doc.Sections, 1)
	require.Len(t, doc.Sections[0].Blocks, 1)
	body := doc.Sections[0].Blocks[0]
	assert.Equal(t, domain.BlockParagraph, body.Type)
	assert.Contains(t, body.Text, "Union Cabinet today approved")
	assert.NotContains(t, body.Text, "<p>")
}

func TestPIB_FetchArticles_CutoffFiltersOldItems(t *testing.T) {
	old := time.Now().AddDate(0, 0, -30).Format(time.RFC1123Z)
	items := fmt.Sprintf(`
<item>
  <title>An old release well outside the lookback window</title>
  <link>https://pib.gov.in/release/old</link>
  <description>This body is certainly long enough to pass the minimum length validation.</description>
  <pubDate>%s</pubDate>
</item>`, old)

	p := pibServer(t, rssFeed(items))
	docs, err := p.FetchArticles(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestPIB_FetchArticles_ThinItemsDropped(t *testing.T) {
	recent := time.Now().Add(-time.Hour).Format(time.RFC1123Z)
	items := fmt.Sprintf(`
<item>
  <title>Short</title>
  <link>https://pib.gov.in/release/thin</link>
  <description>Too thin.</description>
  <pubDate>%s</pubDate>
</item>`, recent)

	p := pibServer(t, rssFeed(items))
	docs, err := p.FetchArticles(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestPIB_ItemDate_FallsBackToNow(t *testing.T) {
	items := `
<item>
  <title>A release whose feed date is complete garbage text</title>
  <link>https://pib.gov.in/release/baddate</link>
  <description>This body is certainly long enough to pass the minimum length validation rules.</description>
  <pubDate>not a date at all</pubDate>
</item>`

	p := pibServer(t, rssFeed(items))
	docs, err := p.FetchArticles(context.Background(), 7)
	require.NoError(t, err)

	// The unparseable date resolves to now, which is inside any window.
	require.Len(t, docs, 1)
	assert.WithinDuration(t, time.Now(), docs[0].PublishedDate, time.Minute)
}

func TestValidDocument(t *testing.T) {
	good := domain.Document{
		Title:     "A sufficiently descriptive title",
		SourceURL: "https://example.com/a",
		Sections: []domain.Section{{Blocks: []domain.ContentBlock{
			domain.Paragraph("A body paragraph that easily clears the fifty character minimum."),
		}}},
	}
	assert.True(t, ValidDocument(&good))

	noURL := good
	noURL.SourceURL = ""
	assert.False(t, ValidDocument(&noURL))

	shortTitle := good
	shortTitle.Title = "Short"
	assert.False(t, ValidDocument(&shortTitle))

	thin := good
	thin.Sections = []domain.Section{{Blocks: []domain.ContentBlock{domain.Paragraph("tiny")}}}
	assert.False(t, ValidDocument(&thin))
}
