package web

import (
	"html/template"

	"mythwiki/internal/media"
	"mythwiki/internal/store"
)

type ViewData struct {
	Title           string
	ContentTemplate string
	ContentHTML     template.HTML
	Error           string

	Projects []store.Project
	Project  *store.Project
	Tree     *store.TreeNode
	Types    []store.ArticleType
	Stats    *store.ProjectStats

	Article         *store.Article
	RenderedHTML    template.HTML
	Prompts         []PromptView
	MediaFiles      []media.File
	DescriptionHTML template.HTML
}

// PromptView pairs a prompt definition with the article's current
// answer and, for select prompts, the linkable candidates.
type PromptView struct {
	Prompt  store.Prompt
	Value   store.PromptValue
	Options []store.LinkedArticle
}
