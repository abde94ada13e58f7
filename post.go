package main

import (
	"bytes"
	"fmt"
	"log"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// ExtractionError reports a post page missing a required field.
type ExtractionError struct {
	URL   string
	Field string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("could not find %s in %s", e.Field, e.URL)
}

// Selector chains tried in order, first match wins. The lists cover the
// WordPress themes the legacy site cycled through over the years.
const (
	titleSelectors    = "h1.entry-title, h1.post-title, article h1, .entry-header h1"
	datetimeSelectors = "time.entry-date, time[datetime]"
	dateTextSelectors = ".entry-date, .post-date, time, .published"
	authorLinkSel     = ".entry-meta .author a, .author.vcard a, .author a.url"
	authorTextSel     = ".author, .by-author, .entry-author, .post-author"
	authorAltLinkSel  = ".author a, .by-author a"
	contentSelectors  = ".entry-content, .post-content, article .content, .post-body"
	featuredSelectors = ".post-thumbnail img, .featured-image img, .wp-post-image"
	excerptSelectors  = ".entry-summary, .post-excerpt, .excerpt"
)

const summaryMaxLen = 200

var authorPrefixRe = regexp.MustCompile(`(?i)^(by|od)\s+`)

// Scraper extracts one Post per URL, downloading referenced media on the way.
type Scraper struct {
	fetcher   *Fetcher
	images    *ImageDownloader
	converter *md.Converter
}

// NewScraper creates a scraper. The Markdown converter uses atx headings,
// fenced code blocks and "-" bullets so the output matches the site's
// existing content files.
func NewScraper(fetcher *Fetcher, images *ImageDownloader) *Scraper {
	opts := &md.Options{
		HeadingStyle:     "atx",
		CodeBlockStyle:   "fenced",
		BulletListMarker: "-",
	}
	return &Scraper{
		fetcher:   fetcher,
		images:    images,
		converter: md.NewConverter("", true, opts),
	}
}

// ScrapePost fetches a post page and produces a fully populated Post: title,
// date, author, slug, Markdown body, optional summary and featured image,
// with inline image references downloaded and rewritten.
func (s *Scraper) ScrapePost(postURL string) (*Post, error) {
	body, err := s.fetcher.Get(postURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", postURL, err)
	}
	base, err := url.Parse(postURL)
	if err != nil {
		return nil, fmt.Errorf("parsing post URL: %w", err)
	}

	title := strings.TrimSpace(doc.Find(titleSelectors).First().Text())
	if title == "" {
		return nil, &ExtractionError{URL: postURL, Field: "title"}
	}

	post := &Post{
		Title:  title,
		Slug:   Slugify(title),
		Date:   extractDate(doc),
		Author: extractAuthor(doc),
	}

	content := contentRoot(doc)

	if featured := doc.Find(featuredSelectors).First(); featured.Length() > 0 {
		if src := imgSrc(featured); src != "" {
			resolved := resolveURL(base, src)
			localPath, err := s.images.Download(resolved, ImageFilename(resolved, post.Slug, 0))
			if err != nil {
				return nil, err
			}
			post.Image = localPath
		}
	}

	s.downloadInlineImages(content, base, post.Slug)
	rewriteRelativeLinks(content, base)

	htmlContent, err := content.Html()
	if err != nil {
		return nil, fmt.Errorf("serializing content of %s: %w", postURL, err)
	}
	markdown, err := s.converter.ConvertString(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("converting %s to markdown: %w", postURL, err)
	}
	post.Content = strings.TrimSpace(markdown)

	if excerpt := doc.Find(excerptSelectors).First(); excerpt.Length() > 0 {
		post.Summary = truncateRunes(strings.TrimSpace(excerpt.Text()), summaryMaxLen)
	} else if len([]rune(post.Content)) > summaryMaxLen {
		collapsed := strings.ReplaceAll(truncateRunes(post.Content, summaryMaxLen), "\n", " ")
		post.Summary = strings.TrimSpace(collapsed)
	}

	return post, nil
}

// downloadInlineImages scans the content subtree for images, downloads each
// one, and rewrites its src to the local copy. A failed download is logged
// and that image's src left untouched; one bad image never sinks the post.
func (s *Scraper) downloadInlineImages(content *goquery.Selection, base *url.URL, slug string) {
	var tasks []ImageTask
	content.Find("img").Each(func(i int, img *goquery.Selection) {
		src := imgSrc(img)
		if src == "" || strings.Contains(src, "data:image") {
			return
		}
		resolved := resolveURL(base, src)
		tasks = append(tasks, ImageTask{
			OriginalSrc: src,
			ResolvedURL: resolved,
			Filename:    ImageFilename(resolved, slug, i+1),
		})
	})

	for i := range tasks {
		task := &tasks[i]
		localPath, err := s.images.Download(task.ResolvedURL, task.Filename)
		if err != nil {
			log.Printf("Failed to download image %s: %v", task.ResolvedURL, err)
			continue
		}
		task.LocalPath = localPath
		rewriteImageSrc(content, task)
	}
}

// rewriteImageSrc points every matching img element at the downloaded local
// copy. Matching tolerates the attribute drifting between the original src,
// the resolved URL, and the URL basename.
func rewriteImageSrc(content *goquery.Selection, task *ImageTask) {
	basename := path.Base(urlPath(task.ResolvedURL))
	content.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := imgSrc(img)
		if src == "" {
			return
		}
		if src == task.OriginalSrc || src == task.ResolvedURL || strings.Contains(src, basename) {
			img.SetAttr("src", task.LocalPath)
			img.RemoveAttr("data-src")
		}
	})
}

// rewriteRelativeLinks absolutizes hyperlinks that are neither absolute nor
// fragment-only nor site-root-relative.
func rewriteRelativeLinks(content *goquery.Selection, base *url.URL) {
	content.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || href == "" {
			return
		}
		if strings.HasPrefix(href, "http") || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "/") {
			return
		}
		a.SetAttr("href", resolveURL(base, href))
	})
}

// extractDate prefers a machine-readable datetime attribute, then visible
// date text, then today.
func extractDate(doc *goquery.Document) string {
	if attr, ok := doc.Find(datetimeSelectors).First().Attr("datetime"); ok {
		if iso, parsed := ParseDatetimeAttr(attr); parsed {
			return iso
		}
	}
	if text := strings.TrimSpace(doc.Find(dateTextSelectors).First().Text()); text != "" {
		return ParseCzechDate(text)
	}
	return time.Now().Format("2006-01-02")
}

// extractAuthor tries the structured author link, then generic author
// containers with a leading "by"/"od" stripped, then a secondary link.
func extractAuthor(doc *goquery.Document) string {
	if link := doc.Find(authorLinkSel).First(); link.Length() > 0 {
		return strings.TrimSpace(link.Text())
	}
	if text := strings.TrimSpace(doc.Find(authorTextSel).First().Text()); text != "" {
		return strings.TrimSpace(authorPrefixRe.ReplaceAllString(text, ""))
	}
	return strings.TrimSpace(doc.Find(authorAltLinkSel).First().Text())
}

// contentRoot locates the post body, falling back to the whole article with
// its header and footer stripped.
func contentRoot(doc *goquery.Document) *goquery.Selection {
	content := doc.Find(contentSelectors).First()
	if content.Length() > 0 {
		return content
	}
	article := doc.Find("article").First()
	article.Find("header, .entry-header, .post-header").Remove()
	article.Find("footer, .entry-footer, .post-footer").Remove()
	return article
}

func imgSrc(img *goquery.Selection) string {
	if src, ok := img.Attr("src"); ok && src != "" {
		return src
	}
	src, _ := img.Attr("data-src")
	return src
}

func resolveURL(base *url.URL, href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func urlPath(raw string) string {
	if u, err := url.Parse(raw); err == nil {
		return u.Path
	}
	return raw
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
