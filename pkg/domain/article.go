package domain

import "time"

// BlockType discriminates the variants of a ContentBlock.
type BlockType string

const (
	BlockParagraph BlockType = "paragraph"
	BlockList      BlockType = "list"
	BlockTable     BlockType = "table"
)

// ContentBlock is one unit of article body content. Exactly one of the
// variant fields is populated, selected by Type:
//
//	paragraph -> Text
//	list      -> Items (Ordered tells <ol> from <ul>)
//	table     -> Rows
//
// Blocks are never mutated after extraction.
type ContentBlock struct {
	Type    BlockType  `json:"type"`
	Text    string     `json:"text,omitempty"`
	Ordered bool       `json:"ordered,omitempty"`
	Items   []string   `json:"items,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`
}

// Paragraph builds a paragraph block.
func Paragraph(text string) ContentBlock {
	return ContentBlock{Type: BlockParagraph, Text: text}
}

// List builds a list block.
func List(ordered bool, items []string) ContentBlock {
	return ContentBlock{Type: BlockList, Ordered: ordered, Items: items}
}

// Table builds a table block.
func Table(rows [][]string) ContentBlock {
	return ContentBlock{Type: BlockTable, Rows: rows}
}

// Section is one logical section of an article: a top-level heading, an
// optional running subheading, and the blocks between that heading (or
// subheading) and the next boundary. A top-level heading with several
// subheadings yields several Sections sharing the same Title. A Section
// with no blocks is never emitted.
type Section struct {
	Title      string         `json:"heading"`
	Subheading string         `json:"subheading,omitempty"`
	Blocks     []ContentBlock `json:"blocks"`
}

// FaqEntry is one question/answer pair from an article's FAQ region.
// Answer is the space-joined text of everything between this question
// and the next one.
type FaqEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ImageRef points at one content image inside an article.
type ImageRef struct {
	URL     string `json:"url"`
	Alt     string `json:"alt"`
	Caption string `json:"caption,omitempty"`
}

// Metadata holds the examination-relevance tags parsed from an article's
// metadata table. Either field may be empty when the table is absent or
// does not mention that paper.
type Metadata struct {
	Prelims string `json:"prelims,omitempty"`
	Mains   string `json:"mains,omitempty"`
}

// Document is the normalized, source-agnostic representation of one
// article. SourceURL is the document's identity: the store holds at most
// one row per SourceURL.
type Document struct {
	Title         string     `json:"title"`
	Source        string     `json:"source"`
	PublishedDate time.Time  `json:"published_date"`
	SourceURL     string     `json:"source_url"`
	Metadata      Metadata   `json:"metadata"`
	Sections      []Section  `json:"content"`
	Faqs          []FaqEntry `json:"faqs"`
	Images        []ImageRef `json:"images"`
	ExtractedAt   time.Time  `json:"extracted_at"`
}

// PlainText flattens the document body into a single string, used for
// vector-store payloads and validation. Sections, list items and FAQ
// text are joined with spaces in document order.
func (d *Document) PlainText() string {
	var parts []string
	for _, sec := range d.Sections {
		for _, b := range sec.Blocks {
			switch b.Type {
			case BlockParagraph:
				parts = append(parts, b.Text)
			case BlockList:
				parts = append(parts, b.Items...)
			case BlockTable:
				for _, row := range b.Rows {
					parts = append(parts, row...)
				}
			}
		}
	}
	for _, f := range d.Faqs {
		parts = append(parts, f.Question, f.Answer)
	}
	return joinNonEmpty(parts)
}

func joinNonEmpty(parts []string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += p
	}
	return out
}

// Attachments groups the extras stored alongside a document.
type Attachments struct {
	Images []ImageRef `json:"images"`
}

// StoredArticle is the persisted superset of a Document: one row in the
// durable store. Rows are created exactly once per SourceURL and never
// mutated or deleted by this system.
type StoredArticle struct {
	ID            string       `json:"id"`
	PublishedDate time.Time    `json:"published_date"`
	SourceURL     string       `json:"source_url"`
	Document      Document     `json:"article"`
	Attachments   *Attachments `json:"attachments,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}
