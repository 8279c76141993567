// Package scraper provides an HTTP service that downloads a web page,
// separates the article from the surrounding boilerplate, and returns the
// article text, images, authors, and page metadata as structured JSON.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., trafilatura/, goquery/, colly/).
package scraper
