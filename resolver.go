package folio

import (
	"context"
	"errors"
	"fmt"
)

// Repository looks up posts by exact slug. Implementations return
// ErrNotFound when no post matches.
type Repository interface {
	GetBySlug(ctx context.Context, slug string) (Post, error)
}

// Neighbors identifies a post and the posts linked before and after it.
// Empty slugs are not looked up.
type Neighbors struct {
	Slug     string
	PrevSlug string
	NextSlug string
}

// Resolved holds the records found for a Neighbors query. Any of them may be
// nil; a missing record is not an error.
type Resolved struct {
	Post *Post
	Prev *Post
	Next *Post
}

// Resolve fetches the current, previous and next posts from repo and
// flattens each cover. Only repository failures other than ErrNotFound are
// returned as errors.
func Resolve(ctx context.Context, repo Repository, n Neighbors) (Resolved, error) {
	var (
		r   Resolved
		err error
	)
	if r.Post, err = lookup(ctx, repo, n.Slug); err != nil {
		return Resolved{}, err
	}
	if r.Prev, err = lookup(ctx, repo, n.PrevSlug); err != nil {
		return Resolved{}, err
	}
	if r.Next, err = lookup(ctx, repo, n.NextSlug); err != nil {
		return Resolved{}, err
	}
	return r, nil
}

func lookup(ctx context.Context, repo Repository, slug string) (*Post, error) {
	if slug == "" {
		return nil, nil
	}
	p, err := repo.GetBySlug(ctx, slug)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", slug, err)
	}
	if flat := FlattenCover(p.Cover); flat != nil {
		p.Cover = flat
	} else {
		p.Cover = nil
	}
	return &p, nil
}

// NeighborsOf locates slug in posts (newest first) and names the older post
// as previous and the newer post as next.
func NeighborsOf(posts []Post, slug string) Neighbors {
	n := Neighbors{Slug: slug}
	for i, p := range posts {
		if p.Slug != slug {
			continue
		}
		if i > 0 {
			n.NextSlug = posts[i-1].Slug
		}
		if i+1 < len(posts) {
			n.PrevSlug = posts[i+1].Slug
		}
		break
	}
	return n
}

// draftRepository resolves any post, published or not.
type draftRepository struct {
	store *Store
}

func (d draftRepository) GetBySlug(_ context.Context, slug string) (Post, error) {
	return d.store.GetPostAny(slug)
}
