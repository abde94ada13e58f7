package main

// Post represents one migrated article: the frontmatter fields plus the
// Markdown body.
type Post struct {
	Title   string
	Date    string // ISO YYYY-MM-DD
	Author  string
	Slug    string
	Content string
	Image   string // site-relative path to the downloaded featured image
	Summary string // plain-text excerpt, max 200 characters
}

// ImageTask is one inline image pending download within a post.
type ImageTask struct {
	OriginalSrc string // src/data-src attribute as found in markup, may be relative
	ResolvedURL string // absolute URL after resolution against the post URL
	Filename    string
	LocalPath   string // site-relative path once downloaded
}

// CrawlState tracks pagination progress while discovering post URLs.
type CrawlState struct {
	Discovered     []string // post URLs in first-discovery order
	Seen           map[string]struct{}
	CurrentPageURL string
	PageNumber     int
	StalePages     int // consecutive pages that contributed zero new URLs
}

// ScrapeResult tracks the outcome of migrating a single post URL.
type ScrapeResult struct {
	URL      string
	Filename string
	Err      error
}
