package store

import (
	"context"
	"database/sql"
	"time"
)

// TreeArticle is the article summary carried in the content tree.
type TreeArticle struct {
	ID        int64
	FolderID  *int64
	Title     string
	Slug      string
	CreatedAt time.Time
}

// TreeNode is one folder in the nested content tree. The root node has
// ID 0 and name "Root".
type TreeNode struct {
	ID       int64
	Name     string
	Slug     string
	Articles []TreeArticle
	Folders  []*TreeNode
}

// Folder nesting beyond this depth is ignored rather than recursed
// into, so a parent cycle in corrupted data cannot hang the builder.
const maxTreeDepth = 64

// FolderTree loads the project's folders and articles in two queries
// and assembles the nested structure iteratively. Folders are ordered
// by name, articles newest first.
func (s *Store) FolderTree(ctx context.Context, projectID int64) (*TreeNode, error) {
	folders, err := s.db.QueryContext(ctx, `
		SELECT id, parent_id, name, slug
		FROM folders WHERE project_id=? ORDER BY name ASC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer folders.Close()

	type folderRow struct {
		node   *TreeNode
		parent *int64
	}
	var rows []folderRow
	for folders.Next() {
		var node TreeNode
		var parent sql.NullInt64
		if err := folders.Scan(&node.ID, &parent, &node.Name, &node.Slug); err != nil {
			return nil, err
		}
		row := folderRow{node: &node}
		if parent.Valid {
			row.parent = &parent.Int64
		}
		rows = append(rows, row)
	}
	if err := folders.Err(); err != nil {
		return nil, err
	}
	folders.Close()

	articles, err := s.db.QueryContext(ctx, `
		SELECT id, folder_id, title, slug, created_at
		FROM articles WHERE project_id=? ORDER BY created_at DESC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer articles.Close()

	articlesByFolder := map[int64][]TreeArticle{}
	var rootArticles []TreeArticle
	for articles.Next() {
		var a TreeArticle
		var folder sql.NullInt64
		var created string
		if err := articles.Scan(&a.ID, &folder, &a.Title, &a.Slug, &created); err != nil {
			return nil, err
		}
		a.CreatedAt = parseTime(created)
		if folder.Valid {
			a.FolderID = &folder.Int64
			articlesByFolder[folder.Int64] = append(articlesByFolder[folder.Int64], a)
		} else {
			rootArticles = append(rootArticles, a)
		}
	}
	if err := articles.Err(); err != nil {
		return nil, err
	}

	childrenOf := map[int64][]*TreeNode{}
	var rootChildren []*TreeNode
	for _, row := range rows {
		row.node.Articles = articlesByFolder[row.node.ID]
		if row.parent == nil {
			rootChildren = append(rootChildren, row.node)
		} else {
			childrenOf[*row.parent] = append(childrenOf[*row.parent], row.node)
		}
	}

	root := &TreeNode{Name: "Root", Articles: rootArticles, Folders: rootChildren}

	// Attach children with an explicit stack; rows beyond the depth
	// cap keep empty Folders slices.
	type frame struct {
		node  *TreeNode
		depth int
	}
	stack := make([]frame, 0, len(rows)+1)
	for _, child := range rootChildren {
		stack = append(stack, frame{node: child, depth: 1})
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.depth >= maxTreeDepth {
			continue
		}
		top.node.Folders = childrenOf[top.node.ID]
		for _, child := range top.node.Folders {
			stack = append(stack, frame{node: child, depth: top.depth + 1})
		}
	}
	return root, nil
}
