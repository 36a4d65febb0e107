package extract

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/upsc-exam-ai/data-scraper/pkg/domain"
)

// blockFromNode converts one classified sibling into a ContentBlock.
// ok is false for nodes that yield nothing: headings, non-content kinds,
// the metadata table, and anything whose extracted text is empty. Empty
// nodes are dropped silently so sections stay free of markup noise.
func (a *Assembler) blockFromNode(n node) (domain.ContentBlock, bool) {
	switch n.kind {
	case kindParagraph:
		if text := nodeText(n.el); text != "" {
			return domain.Paragraph(text), true
		}
	case kindList:
		if items := listItems(n.el); len(items) > 0 {
			return domain.List(n.ordered, items), true
		}
	case kindTable:
		if hasClass(n.el, a.opts.MetadataTableClass) {
			break
		}
		if rows := tableRows(n.el); len(rows) > 0 {
			return domain.Table(rows), true
		}
	}
	return domain.ContentBlock{}, false
}

// listItems returns the text of each direct <li> child. Nested sub-lists
// are not recursed into as separate items; their text folds into the
// parent item. Items with no text are dropped.
func listItems(list *html.Node) []string {
	var items []string
	for c := list.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.DataAtom != atom.Li {
			continue
		}
		if text := nodeText(c); text != "" {
			items = append(items, text)
		}
	}
	return items
}

// tableRows flattens a table into cell text, one slice per <tr> in
// document order. Rows without cells are dropped.
func tableRows(table *html.Node) [][]string {
	var rows [][]string
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.ElementNode && cur.DataAtom == atom.Tr {
			if cells := rowCells(cur); len(cells) > 0 {
				rows = append(rows, cells)
			}
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)
	return rows
}

func rowCells(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom == atom.Td || c.DataAtom == atom.Th {
			cells = append(cells, nodeText(c))
		}
	}
	return cells
}
