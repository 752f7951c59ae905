// Package seo holds the page metadata and structured-data payloads the
// layout renders into document heads.
package seo

// OpenGraph carries og:* tags for link previews.
type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
}

// Twitter carries twitter:* card tags.
type Twitter struct {
	Card  string
	Site  string
	Image string
}

// Meta is the per-page head metadata. Zero-value fields are omitted by the
// layout.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	OG          OpenGraph
	Twitter     Twitter
}
