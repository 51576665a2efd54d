package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webseed"
)

// pageMetadata reads OpenGraph tags from the document head, falling
// back to the title element and the canonical link where OpenGraph is
// absent. Missing tags leave fields empty; metadata extraction never
// fails.
func pageMetadata(doc *goquery.Document) webseed.PageMetadata {
	meta := webseed.PageMetadata{
		Title:       metaContent(doc, "og:title"),
		Description: metaContent(doc, "og:description"),
		Image:       metaContent(doc, "og:image"),
		Type:        metaContent(doc, "og:type"),
		URL:         metaContent(doc, "og:url"),
	}

	if meta.Title == "" {
		meta.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if meta.Description == "" {
		meta.Description = firstAttr(doc, `meta[name="description"]`, "content")
	}
	if meta.URL == "" {
		meta.URL = firstAttr(doc, `link[rel="canonical"]`, "href")
	}

	return meta
}

// metaContent returns the content attribute of the first meta tag
// carrying the given OpenGraph key as either a property or a name.
func metaContent(doc *goquery.Document, key string) string {
	selector := `meta[property="` + key + `"], meta[name="` + key + `"]`
	return firstAttr(doc, selector, "content")
}

func firstAttr(doc *goquery.Document, selector, name string) string {
	value, _ := doc.Find(selector).First().Attr(name)
	return strings.TrimSpace(value)
}
