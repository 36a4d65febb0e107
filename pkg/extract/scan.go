package extract

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// nodeKind is the closed set of node classifications the extractors
// dispatch on. Every sibling is classified exactly once, at scan time.
type nodeKind int

const (
	kindOther nodeKind = iota
	kindHeading
	kindParagraph
	kindList
	kindTable
	kindImage
)

// node is one classified element sibling.
type node struct {
	kind    nodeKind
	level   int  // heading level 1..6, set only for kindHeading
	ordered bool // set only for kindList, true for <ol>
	el      *html.Node
}

// classify maps an element to its nodeKind. Non-element nodes and tags
// outside the closed set come back as kindOther.
func classify(n *html.Node) node {
	if n.Type != html.ElementNode {
		return node{kind: kindOther, el: n}
	}
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return node{kind: kindHeading, level: int(n.Data[1] - '0'), el: n}
	case atom.P:
		return node{kind: kindParagraph, el: n}
	case atom.Ul:
		return node{kind: kindList, el: n}
	case atom.Ol:
		return node{kind: kindList, ordered: true, el: n}
	case atom.Table:
		return node{kind: kindTable, el: n}
	case atom.Img:
		return node{kind: kindImage, el: n}
	}
	return node{kind: kindOther, el: n}
}

// siblingScan walks forward through the element siblings that follow a
// marker node, stopping just before the first heading whose level is in
// the stop set. The marker itself is excluded. A fresh scan over the
// same region can always be built again from the marker, so scans are
// cheap to restart.
type siblingScan struct {
	next *html.Node
	stop map[int]bool
}

// scanAfter starts a bounded sibling scan after marker. stopLevels are
// the heading levels that terminate the scan (exclusive).
func scanAfter(marker *html.Node, stopLevels ...int) *siblingScan {
	stop := make(map[int]bool, len(stopLevels))
	for _, l := range stopLevels {
		stop[l] = true
	}
	return &siblingScan{next: marker.NextSibling, stop: stop}
}

// Next returns the next classified element sibling, or ok=false when the
// scan hit a terminating heading or ran out of siblings.
func (s *siblingScan) Next() (node, bool) {
	for s.next != nil {
		cur := s.next
		s.next = cur.NextSibling
		if cur.Type != html.ElementNode {
			continue
		}
		n := classify(cur)
		if n.kind == kindHeading && s.stop[n.level] {
			s.next = nil
			return node{}, false
		}
		return n, true
	}
	return node{}, false
}

// nodeText returns the concatenated text content of a node with runs of
// whitespace collapsed to single spaces and the ends trimmed.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	collectText(n, &sb)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// textLines returns the trimmed text of each text node under n as a
// separate line, skipping empty ones. This mirrors how the metadata
// table cell lays out one tag per line.
func textLines(n *html.Node) []string {
	var lines []string
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			if line := strings.TrimSpace(cur.Data); line != "" {
				lines = append(lines, line)
			}
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return lines
}

// hasClass reports whether an element's class attribute contains the
// given class name.
func hasClass(n *html.Node, name string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == name {
				return true
			}
		}
	}
	return false
}

// hasDescendant reports whether n contains an element with the given
// atom anywhere below it.
func hasDescendant(n *html.Node, a atom.Atom) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			return true
		}
		if hasDescendant(c, a) {
			return true
		}
	}
	return false
}
