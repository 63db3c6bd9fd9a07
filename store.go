package folio

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database holding the indexed posts. It is the
// content store every page query goes through.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the server read while a watch reload rewrites the index.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    subtitle TEXT NOT NULL DEFAULT '',
    date TEXT NOT NULL,
    tags TEXT NOT NULL,
    cover TEXT NOT NULL DEFAULT '',
    show_toc INTEGER NOT NULL DEFAULT 0,
    body TEXT NOT NULL,
    excerpt TEXT NOT NULL DEFAULT '',
    time_to_read INTEGER NOT NULL DEFAULT 1,
    published INTEGER NOT NULL DEFAULT 1
);
`)
	return err
}

const postColumns = `slug, title, subtitle, date, tags, cover, show_toc, body, excerpt, time_to_read, published`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(r rowScanner) (Post, error) {
	var slug, title, subtitle, date, tags, cover, body, excerpt string
	var showToc, timeToRead, published int
	if err := r.Scan(&slug, &title, &subtitle, &date, &tags, &cover, &showToc, &body, &excerpt, &timeToRead, &published); err != nil {
		return Post{}, err
	}
	p := Post{
		Slug:       slug,
		Title:      title,
		Subtitle:   subtitle,
		Date:       date,
		Tags:       ParseTags(tags),
		ShowToc:    showToc == 1,
		Body:       body,
		Excerpt:    excerpt,
		TimeToRead: timeToRead,
		Link:       postLink(slug),
		Published:  published == 1,
	}
	if cover != "" {
		if err := json.Unmarshal([]byte(cover), &p.Cover); err != nil {
			return Post{}, fmt.Errorf("decode cover of %q: %w", slug, err)
		}
	}
	return p, nil
}

func (s *Store) queryPosts(query string, args ...any) ([]Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListPosts returns all published posts ordered by date descending.
// If tag is non-empty, results are filtered to posts containing that tag.
func (s *Store) ListPosts(tag string) ([]Post, error) {
	if tag == "" {
		return s.queryPosts(`SELECT ` + postColumns + ` FROM posts WHERE published = 1 ORDER BY date DESC, slug ASC`)
	}
	return s.queryPosts(`SELECT `+postColumns+` FROM posts WHERE published = 1 AND instr(lower(tags), ',' || ? || ',') > 0 ORDER BY date DESC, slug ASC`, normalizeTag(tag))
}

// ListAllPosts returns every post (published and drafts) ordered by date descending.
func (s *Store) ListAllPosts() ([]Post, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts ORDER BY date DESC, slug ASC`)
}

// ListTags returns a sorted, deduplicated slice of all tags from published posts.
func (s *Store) ListTags() ([]string, error) {
	rows, err := s.db.Query(`SELECT tags FROM posts WHERE published = 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return nil, err
		}
		for _, t := range ParseTags(tags) {
			set[strings.ToLower(t)] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	var result []string
	for t := range set {
		result = append(result, t)
	}
	sort.Strings(result)
	return result, nil
}

// GetPost returns a single published post by slug.
func (s *Store) GetPost(slug string) (Post, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ? AND published = 1`, slug))
}

// GetPostAny returns a post by slug regardless of published status (for draft preview).
func (s *Store) GetPostAny(slug string) (Post, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug))
}

// GetBySlug implements Repository over published posts.
func (s *Store) GetBySlug(ctx context.Context, slug string) (Post, error) {
	return scanPost(s.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE slug = ? AND published = 1`, slug))
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func savePost(db execer, p Post) error {
	normalizedTags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		if t = normalizeTag(t); t != "" {
			normalizedTags = append(normalizedTags, t)
		}
	}
	tagString := "," + strings.Join(normalizedTags, ",") + ","
	cover := ""
	if p.Cover != nil {
		b, err := json.Marshal(p.Cover)
		if err != nil {
			return fmt.Errorf("encode cover of %q: %w", p.Slug, err)
		}
		cover = string(b)
	}
	_, err := db.Exec(`INSERT OR REPLACE INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Subtitle, p.Date, tagString, cover, boolInt(p.ShowToc), p.Body, p.Excerpt, p.TimeToRead, boolInt(p.Published))
	return err
}

// SavePost upserts a post. Tags are normalized to lowercase.
func (s *Store) SavePost(p Post) error {
	return savePost(s.db, p)
}

// ReplaceAll swaps the whole index for posts in one transaction.
func (s *Store) ReplaceAll(posts []Post) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM posts`); err != nil {
		tx.Rollback()
		return err
	}
	for _, p := range posts {
		if err := savePost(tx, p); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
