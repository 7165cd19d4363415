package store

import (
	"context"
	"testing"
)

func TestSearchProjectsMatchesNameGenreDescription(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p, err := s.CreateProject(ctx, "Dragon's Rest", "Fantasy")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if _, err := s.CreateProject(ctx, "Starfall", "Space opera"); err != nil {
		t.Fatalf("create project: %v", err)
	}
	if err := s.UpdateProjectDescription(ctx, p.ID, "A land where dragons sleep."); err != nil {
		t.Fatalf("update description: %v", err)
	}

	matches, err := s.SearchProjects(ctx, "dragon", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != p.ID {
		t.Fatalf("matches = %+v, want just Dragon's Rest", matches)
	}

	matches, err = s.SearchProjects(ctx, "opera", 10)
	if err != nil {
		t.Fatalf("search genre: %v", err)
	}
	if len(matches) != 1 || matches[0].Name != "Starfall" {
		t.Fatalf("genre matches = %+v", matches)
	}
}

func TestSearchArticlesMatchesTitleBodyAndTypeName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := testProject(t, s)

	smith, err := s.CreateArticle(ctx, CreateArticleParams{
		ProjectID: p.ID, TypeKey: "npc", Title: "Mira the Smith", BodyContent: "Forges dragonsteel.",
	})
	if err != nil {
		t.Fatalf("create article: %v", err)
	}
	if _, err := s.CreateArticle(ctx, CreateArticleParams{
		ProjectID: p.ID, TypeKey: "location", Title: "The Spire",
	}); err != nil {
		t.Fatalf("create article: %v", err)
	}

	matches, err := s.SearchArticles(ctx, "dragonsteel", 10)
	if err != nil {
		t.Fatalf("search body: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != smith.ID {
		t.Fatalf("body matches = %+v", matches)
	}
	if matches[0].ProjectSlug != p.Slug || matches[0].TypeName != "NPC" {
		t.Fatalf("match metadata = %+v", matches[0])
	}

	matches, err = s.SearchArticles(ctx, "NPC", 10)
	if err != nil {
		t.Fatalf("search type: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != smith.ID {
		t.Fatalf("type matches = %+v", matches)
	}
}

func TestSearchEscapesLikeWildcards(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := testProject(t, s)

	target, err := s.CreateArticle(ctx, CreateArticleParams{
		ProjectID: p.ID, TypeKey: "item", Title: "Proof", BodyContent: "Success rate: 100% of the time",
	})
	if err != nil {
		t.Fatalf("create article: %v", err)
	}
	if _, err := s.CreateArticle(ctx, CreateArticleParams{
		ProjectID: p.ID, TypeKey: "item", Title: "Decoy", BodyContent: "100 gold pieces",
	}); err != nil {
		t.Fatalf("create decoy: %v", err)
	}

	matches, err := s.SearchArticles(ctx, "100%", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != target.ID {
		t.Fatalf("%% should match literally, got %+v", matches)
	}
}

func TestSearchRespectsLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := testProject(t, s)

	for _, title := range []string{"Ember One", "Ember Two", "Ember Three"} {
		if _, err := s.CreateArticle(ctx, CreateArticleParams{
			ProjectID: p.ID, TypeKey: "item", Title: title,
		}); err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
	}
	matches, err := s.SearchArticles(ctx, "ember", 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("limit ignored: got %d matches", len(matches))
	}
}
