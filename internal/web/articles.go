package web

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"mythwiki/internal/store"
)

func (s *Server) handleCreateArticle(w http.ResponseWriter, r *http.Request, project *store.Project) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctx := r.Context()

	article, err := s.store.CreateArticle(ctx, store.CreateArticleParams{
		ProjectID:   project.ID,
		FolderID:    formInt64(r, "folder_id"),
		TypeKey:     r.Form.Get("type_key"),
		Title:       r.Form.Get("title"),
		BodyContent: r.Form.Get("body_content"),
	})
	if err != nil {
		s.redirectWithError(w, r, "/projects/"+project.Slug, err)
		return
	}

	articleType, err := s.store.GetArticleTypeByKey(ctx, article.TypeKey)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := s.store.CreatePromptValuesForArticle(ctx, article.ID, articleType.ID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, articleURL(project.Slug, article.ID), http.StatusSeeOther)
}

// handleArticle routes /projects/<slug>/a/<id>[/<action>].
func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request, project *store.Project, tail string) {
	idRaw, action, _ := strings.Cut(tail, "/")
	id, err := strconv.ParseInt(idRaw, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	article, err := s.store.GetArticleFull(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if article.ProjectID != project.ID {
		http.NotFound(w, r)
		return
	}

	switch action {
	case "":
		s.handleArticleView(w, r, project, article)
	case "edit":
		s.handleArticleEdit(w, r, project, article)
	case "delete":
		s.handleArticleDelete(w, r, project, article)
	case "prompts":
		s.handleArticlePrompts(w, r, project, article)
	case "featured":
		s.handleArticleFeatured(w, r, project, article)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleArticleView(w http.ResponseWriter, r *http.Request, project *store.Project, article *store.Article) {
	ctx := r.Context()

	htmlStr, err := s.renderer.Render(ctx, article.BodyContent, project.Slug)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	prompts, err := s.articlePrompts(r, project, article)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	mediaFiles, err := s.media.List(project.Slug)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.views.RenderPage(w, ViewData{
		Title:           article.Title,
		ContentTemplate: "article",
		Project:         project,
		Article:         article,
		RenderedHTML:    template.HTML(htmlStr),
		Prompts:         prompts,
		MediaFiles:      mediaFiles,
		Error:           r.URL.Query().Get("error"),
	})
}

// articlePrompts assembles the structured-field views: each prompt of
// the article's type with its saved answer and, for select prompts,
// the candidate articles of the linked type.
func (s *Server) articlePrompts(r *http.Request, project *store.Project, article *store.Article) ([]PromptView, error) {
	ctx := r.Context()
	articleType, err := s.store.GetArticleTypeByKey(ctx, article.TypeKey)
	if err != nil {
		return nil, err
	}
	prompts, err := s.store.PromptsForArticleType(ctx, articleType.ID)
	if err != nil {
		return nil, err
	}
	values, err := s.store.PromptValuesForArticle(ctx, article.ID)
	if err != nil {
		return nil, err
	}

	out := make([]PromptView, 0, len(prompts))
	for _, p := range prompts {
		pv := PromptView{Prompt: p, Value: values[p.Key]}
		if p.Type == "select" && p.LinkedTypeKey != "" {
			options, err := s.store.LinkedArticles(ctx, p.LinkedTypeKey, project.ID)
			if err != nil {
				return nil, err
			}
			pv.Options = options
		}
		out = append(out, pv)
	}
	return out, nil
}

func (s *Server) handleArticleEdit(w http.ResponseWriter, r *http.Request, project *store.Project, article *store.Article) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.store.UpdateArticleContent(r.Context(), article.ID, r.Form.Get("body_content")); err != nil {
		s.writeError(w, r, err)
		return
	}
	http.Redirect(w, r, articleURL(project.Slug, article.ID), http.StatusSeeOther)
}

func (s *Server) handleArticleDelete(w http.ResponseWriter, r *http.Request, project *store.Project, article *store.Article) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := s.store.DeleteArticle(r.Context(), article.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	http.Redirect(w, r, "/projects/"+project.Slug, http.StatusSeeOther)
}

// handleArticlePrompts saves every submitted prompt answer. Select
// prompts post linked article ids under prompt_<id>_linked; text and
// textarea prompts post plain values under prompt_<id>.
func (s *Server) handleArticlePrompts(w http.ResponseWriter, r *http.Request, project *store.Project, article *store.Article) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctx := r.Context()

	prompts, err := s.articlePrompts(r, project, article)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	for _, pv := range prompts {
		p := pv.Prompt
		if p.Type == "select" {
			linked := formInt64(r, fmt.Sprintf("prompt_%d_linked", p.ID))
			if err := s.store.SavePromptValue(ctx, article.ID, p.ID, nil, linked); err != nil {
				s.writeError(w, r, err)
				return
			}
			continue
		}
		value := r.Form.Get(fmt.Sprintf("prompt_%d", p.ID))
		if err := s.store.SavePromptValue(ctx, article.ID, p.ID, &value, nil); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	if err := s.store.TouchArticle(ctx, article.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	http.Redirect(w, r, articleURL(project.Slug, article.ID), http.StatusSeeOther)
}

func (s *Server) handleArticleFeatured(w http.ResponseWriter, r *http.Request, project *store.Project, article *store.Article) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.store.SetFeaturedImage(r.Context(), article.ID, r.Form.Get("filename")); err != nil {
		s.writeError(w, r, err)
		return
	}
	http.Redirect(w, r, articleURL(project.Slug, article.ID), http.StatusSeeOther)
}

func articleURL(projectSlug string, articleID int64) string {
	return fmt.Sprintf("/projects/%s/a/%d", projectSlug, articleID)
}
