package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/upsc-exam-ai/data-scraper/pkg/domain"
)

// extractImages keeps the container's content images: those carrying the
// fluid image class whose src contains the content-upload path segment.
// Header art, logos and other site chrome use the same class but live
// under different paths, so the path check is what separates them. When
// a kept image sits inside a titled link, the link title becomes the
// caption. Encounter order is preserved.
func (a *Assembler) extractImages(container *goquery.Selection) []domain.ImageRef {
	var images []domain.ImageRef

	container.Find("img." + a.opts.ImageClass).Each(func(_ int, img *goquery.Selection) {
		src, _ := img.Attr("src")
		if !strings.Contains(src, a.opts.ImagePathSegment) {
			return
		}
		ref := domain.ImageRef{URL: src}
		ref.Alt, _ = img.Attr("alt")
		if link := img.Closest("a"); link.Length() > 0 {
			ref.Caption, _ = link.Attr("title")
		}
		images = append(images, ref)
	})

	return images
}
