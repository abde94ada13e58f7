package main

import (
	"net/url"
	"reflect"
	"testing"
)

func newTestExtractor(t *testing.T, base string) *LinkExtractor {
	t.Helper()
	u, err := url.Parse(base)
	if err != nil {
		t.Fatalf("parsing base URL: %v", err)
	}
	return NewLinkExtractor(u)
}

func TestExtractPostLinks(t *testing.T) {
	listing := `<html><body>
<article class="post">
  <h2 class="entry-title"><a href="http://example.com/2024/04/05/jarni-brigada/">Jarní brigáda</a></h2>
</article>
<article class="hentry">
  <h2 class="entry-title"><a href="/2024/05/01/druhy-prispevek/">Druhý příspěvek</a></h2>
</article>
<article>
  <h1><a href="http://example.com/2024/06/01/treti/">Třetí</a></h1>
</article>
<article><h2><a href="http://example.com/category/akce/">Kategorie</a></h2></article>
<article><h2><a href="http://example.com/category/akce/page/2/">Stránkování</a></h2></article>
<article><h2><a href="http://example.com/author/jan/">Autor</a></h2></article>
<article><h2><a href="http://example.com/tag/sport/">Štítek</a></h2></article>
<article><h2><a href="http://example.com/akce/">Kořen kategorie</a></h2></article>
<article><h2><a href="http://example.com/2024/04/05/jarni-brigada/">Duplikát</a></h2></article>
</body></html>`

	le := newTestExtractor(t, "http://example.com")
	got, err := le.ExtractPostLinks(listing)
	if err != nil {
		t.Fatalf("ExtractPostLinks() error = %v", err)
	}

	want := []string{
		"http://example.com/2024/04/05/jarni-brigada/",
		"http://example.com/2024/05/01/druhy-prispevek/",
		"http://example.com/2024/06/01/treti/",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractPostLinks() = %v, want %v", got, want)
	}
}

func TestExtractPostLinksEmptyListing(t *testing.T) {
	le := newTestExtractor(t, "http://example.com")
	got, err := le.ExtractPostLinks("<html><body><p>Nothing here</p></body></html>")
	if err != nil {
		t.Fatalf("ExtractPostLinks() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ExtractPostLinks() = %v, want no links", got)
	}
}

func TestFindNextPageLink(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			"older posts phrase",
			`<div><a href="/category/akce/page/2/">Starší příspěvky</a></div>`,
			"http://example.com/category/akce/page/2/",
		},
		{
			"english phrase",
			`<div><a href="/category/akce/page/2/">Older posts</a></div>`,
			"http://example.com/category/akce/page/2/",
		},
		{
			"rel next without pagination marker",
			`<a rel="next" href="/archiv-2/">more</a>`,
			"http://example.com/archiv-2/",
		},
		{
			"nav-next container",
			`<div class="nav-next"><a href="/category/akce/page/3/">more</a></div>`,
			"http://example.com/category/akce/page/3/",
		},
		{
			"pagination next container",
			`<div class="pagination"><span class="next"><a href="/category/akce/page/4/">more</a></span></div>`,
			"http://example.com/category/akce/page/4/",
		},
		{
			"arrow glyph in nav-links",
			`<div class="nav-links"><a href="/category/akce/page/5/">→</a></div>`,
			"http://example.com/category/akce/page/5/",
		},
		{
			"paged query parameter",
			`<div><a href="/?paged=2">Older posts</a></div>`,
			"http://example.com/?paged=2",
		},
		{
			"matched anchor without pagination marker is rejected",
			`<div><a href="/category/akce/">Starší příspěvky</a></div>`,
			"",
		},
		{
			"no candidates",
			`<p>Last page</p>`,
			"",
		},
	}

	le := newTestExtractor(t, "http://example.com")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := "<html><body>" + tt.html + "</body></html>"
			if got := le.FindNextPageLink(html); got != tt.want {
				t.Errorf("FindNextPageLink() = %q, want %q", got, tt.want)
			}
		})
	}
}
