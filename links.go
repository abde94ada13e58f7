package main

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// disqualifiedPathMarkers reject taxonomy and listing URLs that look like
// post anchors but are not posts.
var disqualifiedPathMarkers = []string{"/category/", "/page/", "/author/", "/tag/"}

// categoryRootRe matches the category archive roots themselves.
var categoryRootRe = regexp.MustCompile(`(?i)/(akce|fotogalerie)/$`)

// LinkExtractor finds post links and pagination links on a category's
// archive pages.
type LinkExtractor struct {
	baseURL *url.URL
}

// NewLinkExtractor creates an extractor resolving relative URLs against base.
func NewLinkExtractor(base *url.URL) *LinkExtractor {
	return &LinkExtractor{baseURL: base}
}

// ExtractPostLinks returns the absolute URLs of all qualifying post anchors
// on a listing page, deduplicated in first-discovery order. Three selector
// strategies run in descending precision; the rejection rules are shared.
func (le *LinkExtractor) ExtractPostLinks(listingHTML string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(listingHTML))
	if err != nil {
		return nil, fmt.Errorf("parsing listing page: %w", err)
	}

	var links []string
	seen := make(map[string]struct{})
	add := func(href string, ok bool) {
		if !ok {
			return
		}
		full, ok := le.qualify(href)
		if !ok {
			return
		}
		if _, dup := seen[full]; dup {
			return
		}
		seen[full] = struct{}{}
		links = append(links, full)
	}

	// Entry-title anchors are the most reliable WordPress signal.
	doc.Find("h1.entry-title a, h2.entry-title a").Each(func(_ int, a *goquery.Selection) {
		add(a.Attr("href"))
	})

	// Article containers, located via their own title heading.
	doc.Find("article.post, article.hentry").Each(func(_ int, article *goquery.Selection) {
		a := article.Find("h1.entry-title a, h2.entry-title a").First()
		add(a.Attr("href"))
	})

	// Broad fallback: any heading anchor inside an article.
	doc.Find("article h1 a, article h2 a").Each(func(_ int, a *goquery.Selection) {
		add(a.Attr("href"))
	})

	return links, nil
}

// FindNextPageLink returns the absolute URL of the next archive page, or ""
// when the listing has no further pages. Heuristics are tried in order; a
// match only counts as a real next-page link when its href carries a
// pagination marker or the anchor is rel=next.
func (le *LinkExtractor) FindNextPageLink(listingHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(listingHTML))
	if err != nil {
		return ""
	}

	// "Starší příspěvky" is how Czech WordPress labels the next archive page.
	next := doc.Find("a").FilterFunction(func(_ int, a *goquery.Selection) bool {
		text := strings.TrimSpace(a.Text())
		return strings.Contains(text, "Starší příspěvky") || strings.Contains(text, "Older posts")
	}).First()

	if next.Length() == 0 {
		next = doc.Find(`a[rel="next"]`).First()
	}
	if next.Length() == 0 {
		next = doc.Find(".nav-next a").First()
	}
	if next.Length() == 0 {
		next = doc.Find(".pagination .next a").First()
	}
	if next.Length() == 0 {
		doc.Find(".pagination a, .nav-links a, .navigation a, #nav-below a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			if _, ok := a.Attr("href"); !ok {
				return true
			}
			text := strings.TrimSpace(a.Text())
			if text == "→" || text == "»" || strings.Contains(text, "Starší") ||
				strings.Contains(text, "Older") || strings.Contains(text, "Next") {
				next = a
				return false
			}
			return true
		})
	}

	href, ok := next.Attr("href")
	if !ok || href == "" {
		return ""
	}
	rel, _ := next.Attr("rel")
	if !strings.Contains(href, "/page/") && !strings.Contains(href, "paged=") && rel != "next" {
		return ""
	}
	return le.resolve(href)
}

// qualify resolves href against the site base and rejects non-post URLs.
func (le *LinkExtractor) qualify(href string) (string, bool) {
	full := le.resolve(href)
	if full == "" {
		return "", false
	}
	for _, marker := range disqualifiedPathMarkers {
		if strings.Contains(full, marker) {
			return "", false
		}
	}
	if categoryRootRe.MatchString(full) {
		return "", false
	}
	return full, true
}

func (le *LinkExtractor) resolve(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http") {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return le.baseURL.ResolveReference(ref).String()
}
