package extract

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/upsc-exam-ai/data-scraper/pkg/domain"
)

// extractSections walks every top-level heading in an article container
// (skipping the FAQ marker heading) and collects the blocks that follow
// it, up to the next top-level or article-level heading.
//
// The source markup has no nesting: headings, paragraphs, lists and
// tables are all flat siblings, so structure is inferred from a single
// forward scan. A sub-heading encountered mid-scan closes the running
// accumulation as one Section and opens a new one under the same title,
// which is how one heading with several sub-headings becomes several
// Section records. Accumulations with no blocks are never flushed.
func (a *Assembler) extractSections(container *goquery.Selection) []domain.Section {
	var sections []domain.Section

	container.Find(headingTag(a.opts.TopHeadingLevel)).Each(func(_ int, h *goquery.Selection) {
		title := strings.Join(strings.Fields(h.Text()), " ")
		if strings.EqualFold(title, a.opts.FaqMarker) {
			return
		}

		subheading := ""
		var blocks []domain.ContentBlock
		flush := func() {
			if len(blocks) > 0 {
				sections = append(sections, domain.Section{
					Title:      title,
					Subheading: subheading,
					Blocks:     blocks,
				})
				blocks = nil
			}
		}

		scan := scanAfter(h.Nodes[0], a.opts.TopHeadingLevel, a.opts.ArticleHeadingLevel)
		for n, ok := scan.Next(); ok; n, ok = scan.Next() {
			if n.kind == kindHeading && n.level == a.opts.SubHeadingLevel {
				flush()
				subheading = nodeText(n.el)
				continue
			}
			if b, ok := a.blockFromNode(n); ok {
				blocks = append(blocks, b)
			}
		}
		flush()
	})

	return sections
}

func headingTag(level int) string {
	return "h" + strconv.Itoa(level)
}
