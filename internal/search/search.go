// Package search federates substring queries across projects,
// articles and media filenames.
package search

import (
	"context"
	"fmt"
	"strings"

	"mythwiki/internal/media"
	"mythwiki/internal/render"
	"mythwiki/internal/store"
)

const (
	projectLimit = 10
	articleLimit = 20
	totalLimit   = 30
)

type Result struct {
	Title     string `json:"title"`
	Kind      string `json:"type"`
	URL       string `json:"url"`
	Excerpt   string `json:"excerpt,omitempty"`
	Project   string `json:"project,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

type Searcher struct {
	store *store.Store
	media *media.Store
}

func NewSearcher(st *store.Store, md *media.Store) *Searcher {
	return &Searcher{store: st, media: md}
}

// Search runs the query across all categories. Results come back in
// project, article, media order and are capped at totalLimit overall.
// An empty query yields an empty result set.
func (s *Searcher) Search(ctx context.Context, query string) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Result{}, nil
	}

	var results []Result

	projects, err := s.store.SearchProjects(ctx, query, projectLimit)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		var excerpt string
		if p.Description != "" {
			excerpt = render.Excerpt(p.Description, query)
		}
		results = append(results, Result{
			Title:   p.Name,
			Kind:    "Project",
			URL:     "/projects/" + p.Slug,
			Excerpt: excerpt,
		})
	}

	articles, err := s.store.SearchArticles(ctx, query, articleLimit)
	if err != nil {
		return nil, err
	}
	for _, a := range articles {
		var excerpt string
		if a.BodyContent != "" {
			excerpt = render.Excerpt(a.BodyContent, query)
		}
		kind := a.TypeName
		if kind == "" {
			kind = "Article"
		}
		results = append(results, Result{
			Title:   a.Title,
			Kind:    kind,
			URL:     fmt.Sprintf("/projects/%s/a/%d", a.ProjectSlug, a.ID),
			Excerpt: excerpt,
			Project: a.ProjectName,
		})
	}

	all, err := s.store.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	lower := strings.ToLower(query)
	for _, p := range all {
		files, err := s.media.List(p.Slug)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if !strings.Contains(strings.ToLower(f.Filename), lower) {
				continue
			}
			results = append(results, Result{
				Title:     f.Filename,
				Kind:      "Media",
				URL:       "/projects/" + p.Slug + "/media",
				Excerpt:   "Image file in " + p.Name,
				Project:   p.Name,
				Thumbnail: "/projects/" + p.Slug + "/media/files/" + f.Filename,
			})
		}
	}

	if len(results) > totalLimit {
		results = results[:totalLimit]
	}
	return results, nil
}
