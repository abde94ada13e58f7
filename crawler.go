package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Migrator drives one category's migration: directory setup, the pagination
// crawl that builds the post URL set, then rate-limited per-post extraction.
type Migrator struct {
	fetcher     *Fetcher
	scraper     *Scraper
	links       *LinkExtractor
	categoryURL string
	postsDir    string
	mediaDir    string
	limiter     *rate.Limiter
	workers     int
	maxPages    int
}

// NewMigrator wires the migration pipeline for one category: akce posts go
// to content/posts, fotogalerie posts to content/fotogalerie, with media
// under public/images/{category}.
func NewMigrator(settings *Settings, category string) (*Migrator, error) {
	base, err := url.Parse(settings.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL %s: %w", settings.BaseURL, err)
	}

	postsDir := filepath.Join("content", "posts")
	if category == "fotogalerie" {
		postsDir = filepath.Join("content", "fotogalerie")
	}
	mediaDir := filepath.Join("public", "images", category)

	fetcher := NewFetcher(settings.UserAgent)
	images := NewImageDownloader(fetcher, mediaDir, "/images/"+category)

	return &Migrator{
		fetcher:     fetcher,
		scraper:     NewScraper(fetcher, images),
		links:       NewLinkExtractor(base),
		categoryURL: settings.BaseURL + "/category/" + category + "/",
		postsDir:    postsDir,
		mediaDir:    mediaDir,
		limiter:     rate.NewLimiter(limitFor(settings.Delay()), 1),
		workers:     settings.Workers,
		maxPages:    settings.MaxPages,
	}, nil
}

func limitFor(delay time.Duration) rate.Limit {
	if delay <= 0 {
		return rate.Inf
	}
	return rate.Every(delay)
}

// Run executes the full migration. Per-post failures are logged, never
// propagated; only an unusable environment (no output directories, no
// reachable archive) surfaces as an error.
func (m *Migrator) Run(ctx context.Context) error {
	if err := m.ensureDirectories(); err != nil {
		return err
	}

	urls, err := m.Crawl(ctx)
	if err != nil {
		return err
	}
	log.Printf("Total unique posts found: %d", len(urls))

	results := m.Extract(ctx, urls)
	migrated, failed := 0, 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		} else {
			migrated++
		}
	}
	log.Printf("Migration complete: %d migrated, %d failed", migrated, failed)
	return nil
}

func (m *Migrator) ensureDirectories() error {
	if err := os.MkdirAll(m.postsDir, 0755); err != nil {
		return fmt.Errorf("creating posts directory: %w", err)
	}
	if err := os.MkdirAll(m.mediaDir, 0755); err != nil {
		return fmt.Errorf("creating media directory: %w", err)
	}
	return nil
}

// Crawl walks the category's archive pages and returns all discovered post
// URLs in first-discovery order. The loop terminates on two consecutive
// stale pages, a failed manual probe, or the page ceiling, whichever comes
// first.
func (m *Migrator) Crawl(ctx context.Context) ([]string, error) {
	state := CrawlState{
		Seen:           make(map[string]struct{}),
		CurrentPageURL: m.categoryURL,
		PageNumber:     1,
	}

	for state.CurrentPageURL != "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		log.Printf("Fetching archive page %d: %s", state.PageNumber, state.CurrentPageURL)
		html, err := m.fetcher.Get(state.CurrentPageURL)
		if err != nil {
			return nil, fmt.Errorf("fetching archive page %d: %w", state.PageNumber, err)
		}
		links, err := m.links.ExtractPostLinks(string(html))
		if err != nil {
			return nil, err
		}

		before := len(state.Discovered)
		for _, link := range links {
			if _, dup := state.Seen[link]; dup {
				continue
			}
			state.Seen[link] = struct{}{}
			state.Discovered = append(state.Discovered, link)
		}
		log.Printf("Found %d posts on this page (%d total unique)", len(links), len(state.Discovered))

		if len(state.Discovered) == before {
			state.StalePages++
			if state.StalePages >= 2 {
				log.Printf("No new posts found on last 2 pages, stopping")
				break
			}
		} else {
			state.StalePages = 0
		}

		next := m.links.FindNextPageLink(string(html))
		if next != "" && next != state.CurrentPageURL {
			state.CurrentPageURL = next
			state.PageNumber++
		} else {
			probe, ok := m.probeNextPage(state.PageNumber)
			if !ok {
				log.Printf("No more pages found or reached end of pagination")
				break
			}
			state.CurrentPageURL = probe
			state.PageNumber++
		}

		if state.PageNumber > m.maxPages {
			log.Printf("Reached safety limit of %d pages, stopping", m.maxPages)
			break
		}
	}

	return state.Discovered, nil
}

// probeNextPage checks whether {categoryURL}page/{n+1}/ still yields posts
// once the in-page pagination links run out. A fetch failure or an empty
// page means the archive is exhausted.
func (m *Migrator) probeNextPage(pageNumber int) (string, bool) {
	probe := fmt.Sprintf("%spage/%d/", m.categoryURL, pageNumber+1)
	log.Printf("Trying manual pagination: %s", probe)
	html, err := m.fetcher.Get(probe)
	if err != nil {
		return "", false
	}
	links, err := m.links.ExtractPostLinks(string(html))
	if err != nil || len(links) == 0 {
		return "", false
	}
	return probe, true
}

// Extract migrates every discovered post in discovery order, isolating
// failures per URL. The shared limiter keeps the aggregate request rate at
// the configured pace no matter how many workers run.
func (m *Migrator) Extract(ctx context.Context, urls []string) []ScrapeResult {
	results := make([]ScrapeResult, len(urls))

	var g errgroup.Group
	g.SetLimit(m.workers)
	for i, postURL := range urls {
		i, postURL := i, postURL
		g.Go(func() error {
			results[i] = m.migrateOne(ctx, postURL, i+1, len(urls))
			return nil
		})
	}
	g.Wait()

	return results
}

func (m *Migrator) migrateOne(ctx context.Context, postURL string, n, total int) ScrapeResult {
	if err := m.limiter.Wait(ctx); err != nil {
		return ScrapeResult{URL: postURL, Err: err}
	}

	log.Printf("[%d/%d] Scraping post: %s", n, total, postURL)
	post, err := m.scraper.ScrapePost(postURL)
	if err != nil {
		log.Printf("✗ Failed %s: %v", postURL, err)
		return ScrapeResult{URL: postURL, Err: err}
	}
	if err := SavePost(post, m.postsDir); err != nil {
		log.Printf("✗ Failed %s: %v", postURL, err)
		return ScrapeResult{URL: postURL, Err: err}
	}

	log.Printf("✓ Migrated: %s", post.Slug)
	return ScrapeResult{URL: postURL, Filename: post.Slug + ".md"}
}
