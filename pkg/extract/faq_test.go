package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFaqs_PairsQuestionsWithAnswers(t *testing.T) {
	c := containerFrom(t, `<div class="blog">
		<h2>FAQs</h2>
		<p><strong>Q1.</strong> What is the summit?</p>
		<p>An annual meeting of member states.</p>
		<p>It rotates between capitals.</p>
		<p><strong>Q2.</strong> Who attends?</p>
		<p>Heads of state.</p>
	</div>`)

	faqs := testAssembler().extractFaqs(c)
	require.Len(t, faqs, 2)

	assert.Equal(t, "Q1. What is the summit?", faqs[0].Question)
	assert.Equal(t, "An annual meeting of member states. It rotates between capitals.", faqs[0].Answer)
	assert.Equal(t, "Q2. Who attends?", faqs[1].Question)
	assert.Equal(t, "Heads of state.", faqs[1].Answer)
}

func TestExtractFaqs_ListItemsJoinAnswerAsPlainText(t *testing.T) {
	c := containerFrom(t, `<div class="blog">
		<h2>FAQs</h2>
		<p><strong>Q.</strong> What are the pillars?</p>
		<ul><li>Economy</li><li>Security</li></ul>
	</div>`)

	faqs := testAssembler().extractFaqs(c)
	require.Len(t, faqs, 1)
	assert.Equal(t, "Economy Security", faqs[0].Answer)
}

func TestExtractFaqs_NoMarkerHeading(t *testing.T) {
	c := containerFrom(t, `<div class="blog">
		<h2>Background</h2>
		<p>Just prose, no FAQ region.</p>
	</div>`)

	assert.Empty(t, testAssembler().extractFaqs(c))
}

func TestExtractFaqs_TextWithoutQuestionMarkerYieldsNothing(t *testing.T) {
	c := containerFrom(t, `<div class="blog">
		<h2>FAQs</h2>
		<p>This region has text but nothing marked as a question.</p>
		<p>So no entries come out of it.</p>
	</div>`)

	assert.Empty(t, testAssembler().extractFaqs(c))
}

func TestExtractFaqs_RegionBoundedByNextHeading(t *testing.T) {
	c := containerFrom(t, `<div class="blog">
		<h2>FAQs</h2>
		<p><strong>Q.</strong> Scoped question?</p>
		<p>Scoped answer.</p>
		<h2>After</h2>
		<p>Not part of any answer.</p>
	</div>`)

	faqs := testAssembler().extractFaqs(c)
	require.Len(t, faqs, 1)
	assert.Equal(t, "Scoped answer.", faqs[0].Answer)
}

func TestExtractFaqs_MarkerMatchIsCaseInsensitive(t *testing.T) {
	c := containerFrom(t, `<div class="blog">
		<h2>faqs</h2>
		<p><strong>Q.</strong> Lowercase heading?</p>
		<p>Still found.</p>
	</div>`)

	require.Len(t, testAssembler().extractFaqs(c), 1)
}

func TestLooksLikeFaqQuestion(t *testing.T) {
	cases := []struct {
		name string
		html string
		want bool
	}{
		{"bold q with dot", `<p><strong>Q.</strong> What is X?</p>`, true},
		{"bold q numbered", `<p><strong>Q1:</strong> What is Y?</p>`, true},
		{"plain q dot prefix", `<p>Q. What is Z?</p>`, true},
		{"plain q numbered", `<p>Q2 What about this?</p>`, true},
		{"bold but no q in window", `<p><strong>Note:</strong> Quite important.</p>`, false},
		{"q word start", `<p>Quantum computing is hard.</p>`, false},
		{"plain prose", `<p>Nothing question-like here.</p>`, false},
		{"empty", `<p>  </p>`, false},
	}

	a := testAssembler()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(tc.html))
			require.NoError(t, err)
			n := classify(doc.Find("p").Nodes[0])
			assert.Equal(t, tc.want, a.looksLikeFaqQuestion(n))
		})
	}
}
