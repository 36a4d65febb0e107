package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractImages_ContentPathFilter(t *testing.T) {
	c := containerFrom(t, `<div class="blog">
		<img class="img-fluid" src="/assets/logo.png" alt="site logo">
		<img class="img-fluid" src="/uploaded_files/images/summit.jpg" alt="summit">
		<img class="img-fluid" src="/uploaded_files/images/map.png" alt="map">
		<img src="/uploaded_files/images/plain.png" alt="no fluid class">
	</div>`)

	images := testAssembler().extractImages(c)
	require.Len(t, images, 2)
	assert.Equal(t, "/uploaded_files/images/summit.jpg", images[0].URL)
	assert.Equal(t, "summit", images[0].Alt)
	assert.Equal(t, "/uploaded_files/images/map.png", images[1].URL)
}

func TestExtractImages_CaptionFromWrappingLink(t *testing.T) {
	c := containerFrom(t, `<div class="blog">
		<a href="/full.jpg" title="Summit venue in Delhi">
			<img class="img-fluid" src="/uploaded_files/images/venue.jpg" alt="venue">
		</a>
		<img class="img-fluid" src="/uploaded_files/images/bare.jpg" alt="bare">
	</div>`)

	images := testAssembler().extractImages(c)
	require.Len(t, images, 2)
	assert.Equal(t, "Summit venue in Delhi", images[0].Caption)
	assert.Empty(t, images[1].Caption)
}

func TestExtractImages_NoneMatching(t *testing.T) {
	c := containerFrom(t, `<div class="blog">
		<img class="img-fluid" src="/assets/banner.png" alt="banner">
	</div>`)

	assert.Empty(t, testAssembler().extractImages(c))
}
