// Package webseed turns raw web pages and platform transcripts into clean,
// deduplicated, size-bounded documents suitable as context for language
// models. It removes boilerplate, identifies the main content region,
// normalizes it into a small closed set of content nodes, deduplicates
// images by content hash, and serializes the result as Markdown, XML, or
// raw cleaned HTML.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package webseed
