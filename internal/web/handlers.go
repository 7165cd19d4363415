package web

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"mythwiki/internal/domain"
	"mythwiki/internal/store"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.views.RenderPage(w, ViewData{Title: "Home", ContentTemplate: "index"})
}

func (s *Server) handleProjectsOverview(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.views.RenderPage(w, ViewData{
		Title:           "Projects",
		ContentTemplate: "projects",
		Projects:        projects,
		Error:           r.URL.Query().Get("error"),
	})
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_, err := s.store.CreateProject(r.Context(), r.Form.Get("name"), r.Form.Get("genre"))
	if err != nil {
		s.redirectWithError(w, r, "/projects", err)
		return
	}
	http.Redirect(w, r, "/projects", http.StatusSeeOther)
}

// handleProjects dispatches everything under /projects/<slug>/...
func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/projects/")
	rest = strings.TrimSuffix(rest, "/")
	if rest == "" {
		http.Redirect(w, r, "/projects", http.StatusSeeOther)
		return
	}
	parts := strings.SplitN(rest, "/", 2)
	slug := parts[0]

	project, err := s.store.GetProjectBySlug(r.Context(), slug)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if len(parts) == 1 {
		s.handleProjectHome(w, r, project)
		return
	}

	tail := parts[1]
	switch {
	case tail == "description":
		s.handleUpdateDescription(w, r, project)
	case tail == "articles/new":
		s.handleCreateArticle(w, r, project)
	case strings.HasPrefix(tail, "a/"):
		s.handleArticle(w, r, project, strings.TrimPrefix(tail, "a/"))
	case tail == "folders/new":
		s.handleCreateFolder(w, r, project)
	case strings.HasPrefix(tail, "folders/"):
		s.handleFolder(w, r, project, strings.TrimPrefix(tail, "folders/"))
	case tail == "media":
		s.handleMediaList(w, r, project)
	case tail == "media/upload":
		s.handleMediaUpload(w, r, project)
	case strings.HasPrefix(tail, "media/files/"):
		s.handleMediaFile(w, r, project, strings.TrimPrefix(tail, "media/files/"))
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleProjectHome(w http.ResponseWriter, r *http.Request, project *store.Project) {
	ctx := r.Context()
	tree, err := s.store.FolderTree(ctx, project.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	types, err := s.store.ListArticleTypes(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	mediaCount, err := s.media.Count(project.Slug)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	stats, err := s.store.ProjectStatistics(ctx, project.ID, mediaCount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var descriptionHTML template.HTML
	if project.Description != "" {
		htmlStr, err := s.renderer.Render(ctx, project.Description, project.Slug)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		descriptionHTML = template.HTML(htmlStr)
	}

	s.views.RenderPage(w, ViewData{
		Title:           project.Name,
		ContentTemplate: "project",
		Project:         project,
		Tree:            tree,
		Types:           types,
		Stats:           stats,
		DescriptionHTML: descriptionHTML,
		Error:           r.URL.Query().Get("error"),
	})
}

func (s *Server) handleUpdateDescription(w http.ResponseWriter, r *http.Request, project *store.Project) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.store.UpdateProjectDescription(r.Context(), project.ID, r.Form.Get("description")); err != nil {
		s.redirectWithError(w, r, "/projects/"+project.Slug, err)
		return
	}
	http.Redirect(w, r, "/projects/"+project.Slug, http.StatusSeeOther)
}

// redirectWithError sends recoverable errors back to the originating
// page as a query parameter; anything else is written as an HTTP
// error.
func (s *Server) redirectWithError(w http.ResponseWriter, r *http.Request, target string, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrNotEmpty):
		http.Redirect(w, r, target+"?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
	default:
		s.writeError(w, r, err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.NotFound(w, r)
	case errors.Is(err, domain.ErrPathTraversal):
		http.Error(w, "invalid path", http.StatusBadRequest)
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrDuplicate):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func formInt64(r *http.Request, key string) *int64 {
	raw := strings.TrimSpace(r.Form.Get(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}
