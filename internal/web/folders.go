package web

import (
	"net/http"
	"strconv"
	"strings"

	"mythwiki/internal/store"
)

func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request, project *store.Project) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_, err := s.store.CreateFolder(r.Context(), project.ID, formInt64(r, "parent_id"), r.Form.Get("name"))
	if err != nil {
		s.redirectWithError(w, r, "/projects/"+project.Slug, err)
		return
	}
	http.Redirect(w, r, "/projects/"+project.Slug, http.StatusSeeOther)
}

// handleFolder routes /projects/<slug>/folders/<id>/<action>.
func (s *Server) handleFolder(w http.ResponseWriter, r *http.Request, project *store.Project, tail string) {
	idRaw, action, _ := strings.Cut(tail, "/")
	id, err := strconv.ParseInt(idRaw, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	folder, err := s.store.GetFolder(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if folder.ProjectID != project.ID {
		http.NotFound(w, r)
		return
	}

	switch action {
	case "delete":
		if err := s.store.DeleteFolder(r.Context(), id); err != nil {
			s.redirectWithError(w, r, "/projects/"+project.Slug, err)
			return
		}
	case "rename":
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if _, err := s.store.RenameFolder(r.Context(), id, r.Form.Get("name")); err != nil {
			s.redirectWithError(w, r, "/projects/"+project.Slug, err)
			return
		}
	default:
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/projects/"+project.Slug, http.StatusSeeOther)
}
