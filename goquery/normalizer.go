package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// boilerplateTags are structural elements removed wholesale before
// content identification. They carry navigation, chrome, or executable
// content rather than prose.
var boilerplateTags = []string{
	"script", "style", "noscript", "iframe",
	"form", "button", "input",
	"nav", "header", "footer", "aside",
}

// boilerplatePatterns match against class and id attributes. An element
// whose class or id contains any of these substrings is treated as
// boilerplate and removed with its subtree.
var boilerplatePatterns = []string{
	"menu", "nav", "footer", "header", "sidebar", "banner", "cookie", "advert",
}

// protectedTags are never removed by pattern matching. Page-level
// containers routinely carry classes like "sidebar-open" that would
// otherwise wipe the whole document.
var protectedTags = map[string]bool{
	"html":    true,
	"body":    true,
	"main":    true,
	"article": true,
}

// iconMaxDim is the width/height threshold below which an SVG is
// considered an icon rather than a content diagram.
const iconMaxDim = 64.0

// prune removes boilerplate from the document in place: blocked tags,
// elements whose class/id matches a boilerplate pattern, and icon SVGs.
// Pruning is idempotent; a second pass finds nothing left to remove.
func prune(doc *goquery.Document) {
	doc.Find(strings.Join(boilerplateTags, ", ")).Remove()

	doc.Find("[class], [id]").Each(func(_ int, sel *goquery.Selection) {
		if len(sel.Nodes) == 0 || protectedTags[sel.Nodes[0].Data] {
			return
		}
		if matchesBoilerplate(sel) {
			sel.Remove()
		}
	})

	doc.Find("svg").Each(func(_ int, sel *goquery.Selection) {
		if isIconSVG(sel) {
			sel.Remove()
		}
	})
}

// matchesBoilerplate reports whether the element's class or id contains
// a boilerplate pattern. Matching is case-insensitive and substring
// based, mirroring how sites name their chrome ("main-nav", "NavBar",
// "cookie-consent").
func matchesBoilerplate(sel *goquery.Selection) bool {
	class, _ := sel.Attr("class")
	id, _ := sel.Attr("id")
	attrs := strings.ToLower(class + " " + id)
	if strings.TrimSpace(attrs) == "" {
		return false
	}
	for _, pattern := range boilerplatePatterns {
		if strings.Contains(attrs, pattern) {
			return true
		}
	}
	return false
}

// isIconSVG reports whether an SVG element is decoration rather than
// content. An SVG with no text content is an icon or logo; an SVG whose
// declared dimensions or viewBox fit within iconMaxDim is too small to
// be a meaningful diagram even when it carries text.
func isIconSVG(sel *goquery.Selection) bool {
	if strings.TrimSpace(sel.Text()) == "" {
		return true
	}
	if w, ok := sel.Attr("width"); ok {
		if px := parseDimension(w); px > 0 && px <= iconMaxDim {
			return true
		}
	}
	if h, ok := sel.Attr("height"); ok {
		if px := parseDimension(h); px > 0 && px <= iconMaxDim {
			return true
		}
	}
	if vb, ok := sel.Attr("viewBox"); ok {
		if w, h, ok := parseViewBox(vb); ok && w <= iconMaxDim && h <= iconMaxDim {
			return true
		}
	}
	return false
}

// parseDimension parses an SVG width/height attribute value, tolerating
// a px suffix. Returns 0 for percentages and other unparseable units.
func parseDimension(v string) float64 {
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	px, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return px
}

// parseViewBox extracts the width and height from a viewBox attribute
// ("min-x min-y width height").
func parseViewBox(v string) (w, h float64, ok bool) {
	fields := strings.Fields(v)
	if len(fields) != 4 {
		return 0, 0, false
	}
	w, errW := strconv.ParseFloat(fields[2], 64)
	h, errH := strconv.ParseFloat(fields[3], 64)
	if errW != nil || errH != nil {
		return 0, 0, false
	}
	return w, h, true
}
