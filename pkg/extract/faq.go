package extract

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/atom"

	"github.com/upsc-exam-ai/data-scraper/pkg/domain"
)

// extractFaqs locates the FAQ region (the top-level heading whose text
// matches the FAQ marker) and pairs questions with answers using a
// two-state scan: a paragraph matching the question heuristic opens a
// pair, and everything after it up to the next question (or the region
// boundary) joins into that pair's answer. A region with answer text but
// no question-marked paragraph yields nothing.
func (a *Assembler) extractFaqs(container *goquery.Selection) []domain.FaqEntry {
	marker := a.findFaqHeading(container)
	if marker == nil {
		return nil
	}

	var faqs []domain.FaqEntry
	question := ""
	var answer []string
	flush := func() {
		if question != "" {
			faqs = append(faqs, domain.FaqEntry{
				Question: question,
				Answer:   strings.Join(answer, " "),
			})
		}
	}

	scan := scanAfter(marker.Nodes[0], a.opts.TopHeadingLevel, a.opts.ArticleHeadingLevel)
	for n, ok := scan.Next(); ok; n, ok = scan.Next() {
		switch n.kind {
		case kindParagraph:
			text := nodeText(n.el)
			if a.looksLikeFaqQuestion(n) {
				flush()
				question = text
				answer = nil
			} else if text != "" && question != "" {
				answer = append(answer, text)
			}
		case kindList:
			// List answers join as plain text, not bullets.
			if question != "" {
				answer = append(answer, listItems(n.el)...)
			}
		}
	}
	flush()

	return faqs
}

func (a *Assembler) findFaqHeading(container *goquery.Selection) *goquery.Selection {
	var found *goquery.Selection
	container.Find(headingTag(a.opts.TopHeadingLevel)).EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if strings.EqualFold(strings.TrimSpace(h.Text()), a.opts.FaqMarker) {
			found = h
			return false
		}
		return true
	})
	return found
}

// looksLikeFaqQuestion is the question heuristic: a paragraph reads as a
// question when it carries a bold run and a "Q" within its first few
// characters, or when its raw text opens with "Q" followed by a
// non-letter ("Q.", "Q1"). The window is bounded by
// Options.QuestionPrefixWindow. Deliberately fuzzy; kept isolated so it
// can be tuned without touching the scanning state machine.
func (a *Assembler) looksLikeFaqQuestion(n node) bool {
	if n.kind != kindParagraph {
		return false
	}
	text := nodeText(n.el)
	if text == "" {
		return false
	}
	prefix := text
	if runes := []rune(text); len(runes) > a.opts.QuestionPrefixWindow {
		prefix = string(runes[:a.opts.QuestionPrefixWindow])
	}
	if hasDescendant(n.el, atom.Strong) && strings.Contains(prefix, "Q") {
		return true
	}
	return startsWithQuestionMark(text)
}

// startsWithQuestionMark matches a leading "Q" directly followed by a
// non-letter, e.g. "Q.", "Q1", "Q:".
func startsWithQuestionMark(text string) bool {
	runes := []rune(text)
	if len(runes) < 2 || runes[0] != 'Q' {
		return false
	}
	return !unicode.IsLetter(runes[1])
}
