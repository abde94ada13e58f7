package main

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ImageFilename derives the deterministic local filename for an image URL:
// the post slug plus the slugified URL basename, with image-{index} when the
// basename slugifies to nothing and .jpg when the URL carries no extension.
func ImageFilename(rawURL, slug string, index int) string {
	name := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		name = u.Path
	}
	ext := path.Ext(name)
	if ext == "" {
		ext = ".jpg"
	}
	base := Slugify(strings.TrimSuffix(path.Base(name), ext))
	if base == "" {
		base = fmt.Sprintf("image-%d", index)
	}
	return slug + "-" + base + ext
}

// ImageDownloader stores post media under one category's media directory and
// hands back the site-relative paths content should reference.
type ImageDownloader struct {
	fetcher *Fetcher
	dir     string // e.g. public/images/akce
	relBase string // e.g. /images/akce
}

// NewImageDownloader creates a downloader writing into dir. relBase is the
// path prefix the site serves dir under.
func NewImageDownloader(fetcher *Fetcher, dir, relBase string) *ImageDownloader {
	return &ImageDownloader{fetcher: fetcher, dir: dir, relBase: relBase}
}

// Download fetches imageURL into the media directory and returns the
// site-relative path. Existing files are overwritten so re-running a
// migration stays idempotent.
func (d *ImageDownloader) Download(imageURL, filename string) (string, error) {
	data, err := d.fetcher.Get(imageURL)
	if err != nil {
		return "", fmt.Errorf("downloading image %s: %w", imageURL, err)
	}
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return "", fmt.Errorf("creating media directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(d.dir, filename), data, 0644); err != nil {
		return "", fmt.Errorf("writing image %s: %w", filename, err)
	}
	return path.Join(d.relBase, filename), nil
}
