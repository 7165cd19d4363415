package store

import (
	"context"
	"testing"
)

func TestFolderTreeNestsFoldersAndArticles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := testProject(t, s)

	regions, err := s.CreateFolder(ctx, p.ID, nil, "Regions")
	if err != nil {
		t.Fatalf("create regions: %v", err)
	}
	cities, err := s.CreateFolder(ctx, p.ID, &regions.ID, "Cities")
	if err != nil {
		t.Fatalf("create cities: %v", err)
	}

	rootArticle := createTestArticle(t, s, p.ID, "conflict", "The Long War")
	nested, err := s.CreateArticle(ctx, CreateArticleParams{
		ProjectID: p.ID, FolderID: &cities.ID, TypeKey: "settlement", Title: "Duskport",
	})
	if err != nil {
		t.Fatalf("create nested article: %v", err)
	}

	tree, err := s.FolderTree(ctx, p.ID)
	if err != nil {
		t.Fatalf("folder tree: %v", err)
	}
	if tree.Name != "Root" {
		t.Fatalf("root name = %q", tree.Name)
	}
	if len(tree.Articles) != 1 || tree.Articles[0].ID != rootArticle.ID {
		t.Fatalf("root articles = %+v", tree.Articles)
	}
	if len(tree.Folders) != 1 || tree.Folders[0].ID != regions.ID {
		t.Fatalf("root folders = %+v", tree.Folders)
	}
	regionsNode := tree.Folders[0]
	if len(regionsNode.Folders) != 1 || regionsNode.Folders[0].ID != cities.ID {
		t.Fatalf("regions children = %+v", regionsNode.Folders)
	}
	citiesNode := regionsNode.Folders[0]
	if len(citiesNode.Articles) != 1 || citiesNode.Articles[0].ID != nested.ID {
		t.Fatalf("cities articles = %+v", citiesNode.Articles)
	}
}

func TestFolderTreeOrdersFoldersByNameArticlesNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := testProject(t, s)

	for _, name := range []string{"Zephyr", "Aldermoor"} {
		if _, err := s.CreateFolder(ctx, p.ID, nil, name); err != nil {
			t.Fatalf("create folder %q: %v", name, err)
		}
	}
	first := createTestArticle(t, s, p.ID, "npc", "First")
	second := createTestArticle(t, s, p.ID, "npc", "Second")

	tree, err := s.FolderTree(ctx, p.ID)
	if err != nil {
		t.Fatalf("folder tree: %v", err)
	}
	if tree.Folders[0].Name != "Aldermoor" || tree.Folders[1].Name != "Zephyr" {
		t.Fatalf("folder order = %q, %q", tree.Folders[0].Name, tree.Folders[1].Name)
	}
	if tree.Articles[0].ID != second.ID || tree.Articles[1].ID != first.ID {
		t.Fatalf("article order = %+v", tree.Articles)
	}
}

func TestFolderTreeEmptyProject(t *testing.T) {
	s := newTestStore(t)
	p := testProject(t, s)

	tree, err := s.FolderTree(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("folder tree: %v", err)
	}
	if len(tree.Folders) != 0 || len(tree.Articles) != 0 {
		t.Fatalf("empty project tree = %+v", tree)
	}
}
