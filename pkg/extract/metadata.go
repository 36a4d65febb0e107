package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/upsc-exam-ai/data-scraper/pkg/domain"
)

// extractMetadata reads exam-relevance tags from the first metadata
// table in the container. The table's first cell holds line-separated
// entries; a "Prelims:" line sets the prelims tag and a line mentioning
// "Mains" with a colon or comma sets the mains tag. When a tag repeats,
// the last line wins — the scan is linear and later lines overwrite
// earlier ones. A missing table or cell leaves both tags empty.
func (a *Assembler) extractMetadata(container *goquery.Selection) domain.Metadata {
	var md domain.Metadata

	cell := container.Find("table." + a.opts.MetadataTableClass).First().Find("td").First()
	if cell.Length() == 0 {
		return md
	}

	for _, line := range textLines(cell.Nodes[0]) {
		switch {
		case strings.HasPrefix(line, "Prelims:"):
			md.Prelims = strings.TrimSpace(strings.TrimPrefix(line, "Prelims:"))
		case strings.Contains(line, "Mains") && (strings.Contains(line, ":") || strings.Contains(line, ",")):
			rest := strings.ReplaceAll(line, "Mains:", "")
			rest = strings.ReplaceAll(rest, "Mains,", "")
			md.Mains = strings.TrimSpace(rest)
		}
	}

	return md
}
