package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"mythwiki/internal/domain"
	"mythwiki/internal/store"
)

func (s *Server) handleMediaList(w http.ResponseWriter, r *http.Request, project *store.Project) {
	files, err := s.media.List(project.Slug)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.views.RenderPage(w, ViewData{
		Title:           project.Name + " media",
		ContentTemplate: "media",
		Project:         project,
		MediaFiles:      files,
		Error:           r.URL.Query().Get("error"),
	})
}

func (s *Server) handleMediaUpload(w http.ResponseWriter, r *http.Request, project *store.Project) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.redirectWithError(w, r, "/projects/"+project.Slug+"/media",
			&domain.ValidationError{Message: "No file selected."})
		return
	}
	defer file.Close()

	if _, err := s.media.Save(project.Slug, header.Filename, file); err != nil {
		s.redirectWithError(w, r, "/projects/"+project.Slug+"/media", err)
		return
	}
	http.Redirect(w, r, "/projects/"+project.Slug+"/media", http.StatusSeeOther)
}

func (s *Server) handleMediaFile(w http.ResponseWriter, r *http.Request, project *store.Project, filename string) {
	path, err := s.media.FilePath(project.Slug, filename)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	http.ServeFile(w, r, path)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	results, err := s.searcher.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(results); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
