// Package content reads the Markdown content store the migration crawler
// produces: frontmatter-led posts under content/posts and
// content/fotogalerie. It is the contract the crawler's output must satisfy
// before the site will display it.
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// PostMeta is one post's validated frontmatter.
type PostMeta struct {
	Title    string `yaml:"title"`
	Date     string `yaml:"date"`
	Author   string `yaml:"author"`
	Image    string `yaml:"image"`
	Summary  string `yaml:"summary"`
	Slug     string `yaml:"slug"`
	FilePath string `yaml:"-"`
}

// Post is a post's metadata together with its Markdown body.
type Post struct {
	Meta PostMeta
	Body string
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// LoadPost parses and validates a single Markdown post file. Title must be
// non-empty and date ISO-parseable; the slug falls back to the filename stem
// when the field is absent.
func LoadPost(path string) (*Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading post %s: %w", path, err)
	}
	defer f.Close()

	var meta PostMeta
	body, err := frontmatter.Parse(f, &meta)
	if err != nil {
		return nil, fmt.Errorf("parsing frontmatter of %s: %w", path, err)
	}

	meta.Title = strings.TrimSpace(meta.Title)
	if meta.Title == "" {
		return nil, fmt.Errorf("invalid frontmatter in %s: title must be a non-empty string", path)
	}
	if !isISODate(meta.Date) {
		return nil, fmt.Errorf("invalid frontmatter in %s: date %q is not a valid ISO date", path, meta.Date)
	}
	if strings.TrimSpace(meta.Slug) == "" {
		meta.Slug = slugFromFilename(path)
	} else {
		meta.Slug = strings.Trim(strings.TrimSpace(meta.Slug), "/")
	}
	meta.FilePath = path

	return &Post{Meta: meta, Body: strings.TrimSpace(string(body))}, nil
}

// ListPosts reads every .md file in dir and returns the metadata sorted by
// date descending. A missing directory yields an empty list, matching a
// category that has not been migrated yet.
func ListPosts(dir string) ([]PostMeta, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading content directory %s: %w", dir, err)
	}

	var metas []PostMeta
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".md") {
			continue
		}
		post, err := LoadPost(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		metas = append(metas, post.Meta)
	}

	sort.SliceStable(metas, func(i, j int) bool {
		return parseDate(metas[i].Date).After(parseDate(metas[j].Date))
	})
	return metas, nil
}

func isISODate(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

func parseDate(value string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

func slugFromFilename(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
