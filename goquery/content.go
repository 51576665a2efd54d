package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webseed"
)

// candidateSelector enumerates the container elements considered as
// main-content candidates. Leaf blocks (p, h1-h6, pre) are not
// candidates themselves; they are carried by whichever container wins.
const candidateSelector = "main, article, section, div, [role='main']"

// selectContent returns the subtree judged to hold the page's primary
// content. The body competes against every container candidate; the
// highest density score wins and ties resolve to the earliest element
// in document order, so output is reproducible for a given input.
func selectContent(doc *goquery.Document, scorer webseed.Scorer) *goquery.Selection {
	best := doc.Find("body").First()
	bestScore := scorer.Score(contentStats(best))

	doc.Find(candidateSelector).Each(func(_ int, sel *goquery.Selection) {
		if score := scorer.Score(contentStats(sel)); score > bestScore {
			best = sel
			bestScore = score
		}
	})

	return best
}

// contentStats measures the signals the density scorer works from:
// collapsed visible text length, descendant link count, and descendant
// list item count.
func contentStats(sel *goquery.Selection) webseed.ContentStats {
	return webseed.ContentStats{
		TextLen:   len(strings.Join(strings.Fields(sel.Text()), " ")),
		Links:     sel.Find("a").Length(),
		ListItems: sel.Find("li").Length(),
	}
}
