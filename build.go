package folio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/a-h/templ"
	"go.uber.org/zap"
)

// Builder indexes content into the store and writes the static site.
type Builder struct {
	Config SiteConfig
	Store  *Store
	Views  ViewFuncs
	Logger *zap.Logger
}

// BuildStats summarizes a static build.
type BuildStats struct {
	Posts int
	Files int
}

// NewBuilder returns a Builder; a nil logger is replaced by a no-op one.
func NewBuilder(cfg SiteConfig, store *Store, views ViewFuncs, logger *zap.Logger) *Builder {
	cfg.setDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{Config: cfg, Store: store, Views: views, Logger: logger}
}

// Index loads every post from the content directory, processes local cover
// images, and replaces the store contents with the result.
func (b *Builder) Index(ctx context.Context) ([]Post, error) {
	posts, err := LoadContent(b.Config.postsDir())
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := ProcessCover(&posts[i], b.Config.StaticDir); err != nil {
			return nil, err
		}
	}
	if err := b.Store.ReplaceAll(posts); err != nil {
		return nil, fmt.Errorf("index posts: %w", err)
	}
	b.Logger.Info("indexed content",
		zap.String("dir", b.Config.postsDir()),
		zap.Int("posts", len(posts)))
	return posts, nil
}

// Build indexes the content and renders every published post, the index,
// the feed, the sitemap and the 404 page into the output directory.
func (b *Builder) Build(ctx context.Context) (BuildStats, error) {
	var stats BuildStats
	footer, err := LoadFooter(b.Config.footerDir())
	if err != nil {
		return stats, err
	}
	if _, err := b.Index(ctx); err != nil {
		return stats, err
	}
	posts, err := b.Store.ListPosts("")
	if err != nil {
		return stats, err
	}
	tags, err := b.Store.ListTags()
	if err != nil {
		return stats, err
	}

	out := b.Config.OutputDir
	write := func(rel string, cmp templ.Component) error {
		if err := writeComponent(ctx, filepath.Join(out, rel), cmp); err != nil {
			return fmt.Errorf("write %s: %w", rel, err)
		}
		stats.Files++
		return nil
	}

	for _, p := range posts {
		r, err := Resolve(ctx, b.Store, NeighborsOf(posts, p.Slug))
		if err != nil {
			return stats, err
		}
		page, err := NewPostPage(b.Config, r, footer)
		if err != nil {
			return stats, err
		}
		if err := write(filepath.Join("blog", p.Slug, "index.html"), b.Views.Post(page)); err != nil {
			return stats, err
		}
		stats.Posts++
		b.Logger.Debug("rendered post", zap.String("slug", p.Slug))
	}

	if err := write("index.html", b.Views.Index(NewIndexPage(b.Config, posts, "", tags, footer))); err != nil {
		return stats, err
	}
	if b.Views.NotFound != nil {
		if err := write("404.html", b.Views.NotFound()); err != nil {
			return stats, err
		}
	}
	if err := writeFile(filepath.Join(out, "feed.xml"), func(w io.Writer) error {
		return writeRSS(w, b.Config, posts)
	}); err != nil {
		return stats, err
	}
	if err := writeFile(filepath.Join(out, "sitemap.xml"), func(w io.Writer) error {
		return writeSitemap(w, b.Config, posts)
	}); err != nil {
		return stats, err
	}
	stats.Files += 2

	n, err := copyDir(b.Config.StaticDir, filepath.Join(out, "public"))
	if err != nil {
		return stats, fmt.Errorf("copy static: %w", err)
	}
	stats.Files += n
	n, err = copyDir(filepath.Join(b.Config.footerDir(), "logos"), filepath.Join(out, filepath.FromSlash(LogoURLPrefix)))
	if err != nil {
		return stats, fmt.Errorf("copy logos: %w", err)
	}
	stats.Files += n

	b.Logger.Info("build complete",
		zap.String("out", out),
		zap.Int("posts", stats.Posts),
		zap.Int("files", stats.Files))
	return stats, nil
}

func writeFile(path string, fn func(w io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeComponent(ctx context.Context, path string, cmp templ.Component) error {
	return writeFile(path, func(w io.Writer) error {
		return cmp.Render(ctx, w)
	})
}

// copyDir copies the regular files under src into dst and reports how many
// it wrote. A missing src copies nothing.
func copyDir(src, dst string) (int, error) {
	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	n := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()
		if err := writeFile(target, func(w io.Writer) error {
			_, err := io.Copy(w, in)
			return err
		}); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}
