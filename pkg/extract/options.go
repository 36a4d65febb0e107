package extract

// Options carries the markup conventions of the scraped site. The
// defaults match the Sanskriti IAS article layout; other sites with the
// same flat-sibling structure can adjust the selectors and markers.
type Options struct {
	// SourceName is stamped on every extracted document.
	SourceName string

	// ContainerSelector locates article root nodes on a fetched page.
	ContainerSelector string

	// TitleSelector locates the title link inside a container. The
	// link's text is the document title and its href the source URL.
	TitleSelector string

	// Heading levels carrying structural meaning. Top-level headings
	// open sections, sub-headings open subsections, and article-level
	// headings terminate any forward scan.
	TopHeadingLevel     int
	SubHeadingLevel     int
	ArticleHeadingLevel int

	// FaqMarker is the top-level heading text (case-insensitive) that
	// opens the FAQ region.
	FaqMarker string

	// MetadataTableClass marks the table holding exam-relevance tags.
	// Tables with this class never become content blocks.
	MetadataTableClass string

	// ImageClass and ImagePathSegment select content images: only
	// images carrying the class whose src contains the path segment
	// are kept. Everything else is site chrome.
	ImageClass       string
	ImagePathSegment string

	// QuestionPrefixWindow bounds how far into a paragraph the FAQ
	// question marker may appear. The default reproduces the observed
	// site samples; widen with care.
	QuestionPrefixWindow int
}

// DefaultOptions returns the conventions of the live Sanskriti IAS site.
func DefaultOptions() Options {
	return Options{
		SourceName:           "Sanskriti IAS",
		ContainerSelector:    "div.blog",
		TitleSelector:        "h4 a.text-danger",
		TopHeadingLevel:      2,
		SubHeadingLevel:      3,
		ArticleHeadingLevel:  4,
		FaqMarker:            "FAQS",
		MetadataTableClass:   "table-bordered",
		ImageClass:           "img-fluid",
		ImagePathSegment:     "uploaded_files/images",
		QuestionPrefixWindow: 5,
	}
}
