package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePost(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadPost(t *testing.T) {
	dir := t.TempDir()
	path := writePost(t, dir, "jarni-brigada.md", `---
title: "Jarní brigáda"
date: "2024-04-05"
author: "Jan Novák"
image: "/images/akce/jarni-brigada-photo.jpg"
summary: "Sešli jsme se na hřišti."
slug: "jarni-brigada"
---

Sešli jsme se na hřišti u sokolovny.
`)

	post, err := LoadPost(path)
	if err != nil {
		t.Fatalf("LoadPost() error = %v", err)
	}

	if post.Meta.Title != "Jarní brigáda" {
		t.Errorf("Title = %q, want %q", post.Meta.Title, "Jarní brigáda")
	}
	if post.Meta.Date != "2024-04-05" {
		t.Errorf("Date = %q, want %q", post.Meta.Date, "2024-04-05")
	}
	if post.Meta.Author != "Jan Novák" {
		t.Errorf("Author = %q, want %q", post.Meta.Author, "Jan Novák")
	}
	if post.Meta.Image != "/images/akce/jarni-brigada-photo.jpg" {
		t.Errorf("Image = %q, want %q", post.Meta.Image, "/images/akce/jarni-brigada-photo.jpg")
	}
	if post.Meta.Slug != "jarni-brigada" {
		t.Errorf("Slug = %q, want %q", post.Meta.Slug, "jarni-brigada")
	}
	if post.Meta.FilePath != path {
		t.Errorf("FilePath = %q, want %q", post.Meta.FilePath, path)
	}
	if post.Body != "Sešli jsme se na hřišti u sokolovny." {
		t.Errorf("Body = %q, want trimmed body text", post.Body)
	}
}

func TestLoadPostSlugFromFilename(t *testing.T) {
	dir := t.TempDir()
	path := writePost(t, dir, "podzimni-zavody.md", `---
title: "Podzimní závody"
date: "2023-10-14"
---

Výsledky.
`)

	post, err := LoadPost(path)
	if err != nil {
		t.Fatalf("LoadPost() error = %v", err)
	}
	if post.Meta.Slug != "podzimni-zavody" {
		t.Errorf("Slug = %q, want filename stem %q", post.Meta.Slug, "podzimni-zavody")
	}
}

func TestLoadPostRejectsEmptyTitle(t *testing.T) {
	dir := t.TempDir()
	path := writePost(t, dir, "bad.md", `---
title: "   "
date: "2024-01-01"
---

Body.
`)

	if _, err := LoadPost(path); err == nil {
		t.Error("LoadPost() should reject an empty title")
	}
}

func TestLoadPostRejectsBadDate(t *testing.T) {
	dir := t.TempDir()
	path := writePost(t, dir, "bad-date.md", `---
title: "Ples"
date: "10. února 2024"
---

Body.
`)

	_, err := LoadPost(path)
	if err == nil {
		t.Fatal("LoadPost() should reject a non-ISO date")
	}
	if !strings.Contains(err.Error(), "not a valid ISO date") {
		t.Errorf("error = %v, want ISO date complaint", err)
	}
}

func TestLoadPostAcceptsRFC3339Date(t *testing.T) {
	dir := t.TempDir()
	path := writePost(t, dir, "rfc.md", `---
title: "Schůze"
date: "2024-05-01T18:00:00Z"
---

Zápis.
`)

	if _, err := LoadPost(path); err != nil {
		t.Errorf("LoadPost() error = %v, RFC 3339 dates should be accepted", err)
	}
}

func TestListPostsSortedByDateDescending(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "stary.md", "---\ntitle: \"Starý\"\ndate: \"2022-01-01\"\n---\n\nA.\n")
	writePost(t, dir, "novy.md", "---\ntitle: \"Nový\"\ndate: \"2024-06-01\"\n---\n\nB.\n")
	writePost(t, dir, "stredni.md", "---\ntitle: \"Střední\"\ndate: \"2023-03-15\"\n---\n\nC.\n")
	writePost(t, dir, "poznamky.txt", "not a post")

	metas, err := ListPosts(dir)
	if err != nil {
		t.Fatalf("ListPosts() error = %v", err)
	}

	var titles []string
	for _, m := range metas {
		titles = append(titles, m.Title)
	}
	want := []string{"Nový", "Střední", "Starý"}
	if len(titles) != len(want) {
		t.Fatalf("ListPosts() returned %d posts, want %d", len(titles), len(want))
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("titles[%d] = %q, want %q", i, titles[i], want[i])
		}
	}
}

func TestListPostsMissingDirectory(t *testing.T) {
	metas, err := ListPosts(filepath.Join(t.TempDir(), "fotogalerie"))
	if err != nil {
		t.Fatalf("ListPosts() error = %v, missing directory should be empty", err)
	}
	if metas != nil {
		t.Errorf("ListPosts() = %v, want nil", metas)
	}
}
