package folio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var modTime = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestParsePost_FrontMatterFields(t *testing.T) {
	src := `---
title: Hello World
subtitle: A first post
slug: hello
date: 2024-01-15
tags: [go, Web, " "]
showToc: true
cover:
  img: ./cover.png
  credit: Jane
  url: https://example.com/jane
---
Some **intro** text.

## Section
`
	p, err := ParsePost(strings.NewReader(src), modTime)
	require.NoError(t, err)
	require.Equal(t, "hello", p.Slug)
	require.Equal(t, "Hello World", p.Title)
	require.Equal(t, "A first post", p.Subtitle)
	require.Equal(t, "2024-01-15", p.Date)
	require.Equal(t, []string{"go", "Web"}, p.Tags)
	require.True(t, p.ShowToc)
	require.True(t, p.Published)
	require.Equal(t, "/blog/hello/", p.Link)
	require.Equal(t, "Some intro text. Section", p.Excerpt)
	require.Equal(t, 1, p.TimeToRead)
	require.Contains(t, p.Body, "## Section")

	cover, ok := p.Cover.(map[string]any)
	require.True(t, ok, "cover decodes as map[string]any, got %T", p.Cover)
	require.Equal(t, CoverWrapped, ClassifyCover(cover))
	require.Equal(t, "./cover.png", FlattenCover(cover)["src"])
}

func TestParsePost_Defaults(t *testing.T) {
	p, err := ParsePost(strings.NewReader("---\ntitle: \"Go & You: Part 2\"\npublished: false\n---\nbody\n"), modTime)
	require.NoError(t, err)
	require.Equal(t, "go-you-part-2", p.Slug)
	require.Equal(t, "2024-05-06", p.Date)
	require.False(t, p.Published)
	require.Nil(t, p.Cover)
}

func TestParsePost_QuotedDateAndNestedSlug(t *testing.T) {
	p, err := ParsePost(strings.NewReader("---\ntitle: T\nslug: /blog/nested/\ndate: \"2023-12-31\"\n---\n"), modTime)
	require.NoError(t, err)
	require.Equal(t, "nested", p.Slug)
	require.Equal(t, "2023-12-31", p.Date)
}

func TestParsePost_SlugCannotEscapeOutput(t *testing.T) {
	for _, slug := range []string{"..", ".", "/blog/../", "a/.."} {
		p, err := ParsePost(strings.NewReader("---\ntitle: Safe Title\nslug: \""+slug+"\"\n---\n"), modTime)
		require.NoError(t, err, slug)
		require.Equal(t, "safe-title", p.Slug, slug)
	}

	p, err := ParsePost(strings.NewReader("---\ntitle: T\nslug: My_Post.v2\n---\n"), modTime)
	require.NoError(t, err)
	require.Equal(t, "my-post-v2", p.Slug)
}

func TestParsePost_Errors(t *testing.T) {
	_, err := ParsePost(strings.NewReader("---\nslug: x\n---\nbody"), modTime)
	require.ErrorIs(t, err, ErrMissingTitle)

	_, err = ParsePost(strings.NewReader("---\ntitle: \"!!!\"\n---\nbody"), modTime)
	require.ErrorIs(t, err, ErrMissingSlug)

	_, err = ParsePost(strings.NewReader("---\ntitle: T\ndate: yesterday\n---\nbody"), modTime)
	require.Error(t, err)
}

func TestLoadContent_SortsAndRejectsDuplicates(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "a.md"), "---\ntitle: A\ndate: 2024-01-01\n---\nA body\n")
	writeTestFile(t, filepath.Join(dir, "nested", "b.mdx"), "---\ntitle: B\ndate: 2024-02-01\n---\nB body\n")
	writeTestFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	posts, err := LoadContent(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a"}, slugs(posts))
	require.Equal(t, filepath.Join(dir, "nested", "b.mdx"), posts[0].SourcePath)

	writeTestFile(t, filepath.Join(dir, "dup.md"), "---\ntitle: Other\nslug: a\n---\n")
	_, err = LoadContent(dir)
	require.True(t, errors.Is(err, ErrDuplicateSlug), "got %v", err)
}

func TestExcerpt(t *testing.T) {
	require.Equal(t, "short text", Excerpt("  short\n text ", 140))

	long := strings.Repeat("word ", 40)
	got := Excerpt(long, 22)
	require.Equal(t, "word word word word…", got)
	require.LessOrEqual(t, len([]rune(got)), 23)
}

func TestTimeToRead(t *testing.T) {
	require.Equal(t, 1, TimeToRead(""))
	require.Equal(t, 1, TimeToRead(strings.Repeat("w ", 100)))
	require.Equal(t, 2, TimeToRead(strings.Repeat("w ", 530)))
	require.Equal(t, 4, TimeToRead(strings.Repeat("w ", 1000)))
}
