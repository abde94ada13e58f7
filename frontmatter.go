package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Frontmatter serializes a post's metadata block. The field order is fixed
// so re-scrapes produce byte-identical files: title, date, author, image,
// summary, slug, with the optional fields omitted when empty.
func Frontmatter(post *Post) string {
	var b strings.Builder
	b.WriteString("---\n")
	writeField(&b, "title", post.Title)
	writeField(&b, "date", post.Date)
	if post.Author != "" {
		writeField(&b, "author", post.Author)
	}
	if post.Image != "" {
		writeField(&b, "image", post.Image)
	}
	if post.Summary != "" {
		writeField(&b, "summary", post.Summary)
	}
	writeField(&b, "slug", post.Slug)
	b.WriteString("---\n\n")
	return b.String()
}

// writeField emits a double-quoted value with embedded quotes escaped.
func writeField(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteString(`: "`)
	b.WriteString(strings.ReplaceAll(value, `"`, `\"`))
	b.WriteString("\"\n")
}

// SavePost writes the post as frontmatter plus Markdown body to
// {postsDir}/{slug}.md, replacing any previous file for the same slug.
func SavePost(post *Post, postsDir string) error {
	filePath := filepath.Join(postsDir, post.Slug+".md")
	content := Frontmatter(post) + post.Content + "\n"
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", filePath, err)
	}
	log.Printf("Saved: %s", filePath)
	return nil
}
