// Package cleantext normalizes free-form article text: entity decoding,
// tag stripping, boilerplate removal and whitespace collapsing. All
// functions are total and idempotent, so callers can clean already-clean
// text without harm.
package cleantext

import (
	"html"
	"regexp"
	"strings"

	xhtml "golang.org/x/net/html"
)

// boilerplatePatterns match the trailing junk news sites append to
// article bodies. Matched text is removed to end of line.
var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)Share this article.*$`),
	regexp.MustCompile(`(?im)Subscribe to.*$`),
	regexp.MustCompile(`(?im)Follow us on.*$`),
	regexp.MustCompile(`(?im)Copyright \d{4}.*$`),
	regexp.MustCompile(`(?im)All rights reserved.*$`),
}

var multiSpace = regexp.MustCompile(`\s+`)

// Clean runs the full cleanup pipeline: strip markup, drop boilerplate,
// normalize whitespace.
func Clean(raw string) string {
	text := StripTags(raw)
	text = RemoveBoilerplate(text)
	return NormalizeWhitespace(text)
}

// StripTags removes HTML markup and decodes entities, leaving plain
// text. Non-HTML input passes through unchanged apart from entity
// decoding.
func StripTags(raw string) string {
	if raw == "" {
		return ""
	}
	var sb strings.Builder
	z := xhtml.NewTokenizer(strings.NewReader(raw))
	for {
		tt := z.Next()
		if tt == xhtml.ErrorToken {
			break
		}
		if tt == xhtml.TextToken {
			sb.Write(z.Text())
			sb.WriteByte(' ')
		}
	}
	return strings.TrimSpace(html.UnescapeString(sb.String()))
}

// RemoveBoilerplate strips the common share/subscribe/copyright tails.
func RemoveBoilerplate(text string) string {
	for _, p := range boilerplatePatterns {
		text = p.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}

// NormalizeWhitespace collapses runs of whitespace to single spaces and
// trims the ends.
func NormalizeWhitespace(text string) string {
	return strings.TrimSpace(multiSpace.ReplaceAllString(text, " "))
}
