package store

import (
	"context"
	"errors"
	"testing"

	"mythwiki/internal/domain"
)

func TestCreateArticleAssignsProjectScopedSlug(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := testProject(t, s)

	first, err := s.CreateArticle(ctx, CreateArticleParams{
		ProjectID: p.ID, TypeKey: "npc", Title: "Mira the Smith",
	})
	if err != nil {
		t.Fatalf("create article: %v", err)
	}
	if first.Slug != "mira-the-smith" {
		t.Fatalf("slug = %q, want mira-the-smith", first.Slug)
	}
	second, err := s.CreateArticle(ctx, CreateArticleParams{
		ProjectID: p.ID, TypeKey: "npc", Title: "Mira the Smith",
	})
	if err != nil {
		t.Fatalf("create second article: %v", err)
	}
	if second.Slug != "mira-the-smith-2" {
		t.Fatalf("second slug = %q, want mira-the-smith-2", second.Slug)
	}

	// Same title in another project starts from the bare slug again.
	other, err := s.CreateProject(ctx, "Ironmoor", "Fantasy")
	if err != nil {
		t.Fatalf("create other project: %v", err)
	}
	elsewhere, err := s.CreateArticle(ctx, CreateArticleParams{
		ProjectID: other.ID, TypeKey: "npc", Title: "Mira the Smith",
	})
	if err != nil {
		t.Fatalf("create article in other project: %v", err)
	}
	if elsewhere.Slug != "mira-the-smith" {
		t.Fatalf("other-project slug = %q, want mira-the-smith", elsewhere.Slug)
	}
}

func TestCreateArticleValidations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := testProject(t, s)

	_, err := s.CreateArticle(ctx, CreateArticleParams{ProjectID: p.ID, TypeKey: "npc", Title: "  "})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("blank title: expected validation error, got %v", err)
	}
	_, err = s.CreateArticle(ctx, CreateArticleParams{ProjectID: p.ID, TypeKey: "dragon", Title: "Smaug"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("unknown type: expected validation error, got %v", err)
	}
}

func TestCreateArticleDanglingProjectIsNotADuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// A foreign-key violation must surface as such, not get retried
	// through the slug-suffix loop and reported as a duplicate.
	_, err := s.CreateArticle(ctx, CreateArticleParams{
		ProjectID: 9999, TypeKey: "npc", Title: "Orphan",
	})
	if err == nil {
		t.Fatal("expected an error for a missing project")
	}
	if errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("foreign-key failure reported as duplicate: %v", err)
	}
}

func TestUpdateArticleContentBumpsUpdatedAt(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := testProject(t, s)

	a, err := s.CreateArticle(ctx, CreateArticleParams{
		ProjectID: p.ID, TypeKey: "location", Title: "The Spire", BodyContent: "old",
	})
	if err != nil {
		t.Fatalf("create article: %v", err)
	}
	if err := s.UpdateArticleContent(ctx, a.ID, "new body"); err != nil {
		t.Fatalf("update content: %v", err)
	}
	got, err := s.GetArticleFull(ctx, a.ID)
	if err != nil {
		t.Fatalf("get article: %v", err)
	}
	if got.BodyContent != "new body" {
		t.Fatalf("body = %q", got.BodyContent)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Fatalf("updated_at %v should be after created_at %v", got.UpdatedAt, got.CreatedAt)
	}
	if got.Slug != a.Slug {
		t.Fatalf("slug changed on update: %q -> %q", a.Slug, got.Slug)
	}
}

func TestSetFeaturedImage(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := testProject(t, s)

	a, err := s.CreateArticle(ctx, CreateArticleParams{
		ProjectID: p.ID, TypeKey: "item", Title: "The Ember Crown",
	})
	if err != nil {
		t.Fatalf("create article: %v", err)
	}
	if err := s.SetFeaturedImage(ctx, a.ID, "crown.png"); err != nil {
		t.Fatalf("set featured image: %v", err)
	}
	got, err := s.GetArticle(ctx, a.ID)
	if err != nil {
		t.Fatalf("get article: %v", err)
	}
	if got.FeaturedImage != "crown.png" {
		t.Fatalf("featured = %q", got.FeaturedImage)
	}
	if err := s.SetFeaturedImage(ctx, a.ID, ""); err != nil {
		t.Fatalf("clear featured image: %v", err)
	}
	got, err = s.GetArticle(ctx, a.ID)
	if err != nil {
		t.Fatalf("get article: %v", err)
	}
	if got.FeaturedImage != "" {
		t.Fatalf("featured should be cleared, got %q", got.FeaturedImage)
	}
}

func TestDeleteArticle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := testProject(t, s)

	a, err := s.CreateArticle(ctx, CreateArticleParams{
		ProjectID: p.ID, TypeKey: "npc", Title: "Mira",
	})
	if err != nil {
		t.Fatalf("create article: %v", err)
	}
	if err := s.DeleteArticle(ctx, a.ID); err != nil {
		t.Fatalf("delete article: %v", err)
	}
	if _, err := s.GetArticle(ctx, a.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := s.DeleteArticle(ctx, a.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("double delete: expected not found, got %v", err)
	}
}

func TestArticleIDBySlug(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := testProject(t, s)

	a, err := s.CreateArticle(ctx, CreateArticleParams{
		ProjectID: p.ID, TypeKey: "npc", Title: "Mira the Smith",
	})
	if err != nil {
		t.Fatalf("create article: %v", err)
	}

	id, ok, err := s.ArticleIDBySlug(ctx, p.Slug, "mira-the-smith")
	if err != nil || !ok || id != a.ID {
		t.Fatalf("resolve = (%d, %v, %v), want (%d, true, nil)", id, ok, err, a.ID)
	}
	_, ok, err = s.ArticleIDBySlug(ctx, p.Slug, "nobody")
	if err != nil || ok {
		t.Fatalf("missing slug should resolve to ok=false, got (%v, %v)", ok, err)
	}
	_, ok, err = s.ArticleIDBySlug(ctx, "other-project", "mira-the-smith")
	if err != nil || ok {
		t.Fatalf("wrong project should resolve to ok=false, got (%v, %v)", ok, err)
	}
}
