package web

import (
	"net/http"

	"mythwiki/internal/config"
	"mythwiki/internal/media"
	"mythwiki/internal/render"
	"mythwiki/internal/search"
	"mythwiki/internal/store"
)

type Server struct {
	cfg      config.Config
	store    *store.Store
	media    *media.Store
	renderer *render.Renderer
	searcher *search.Searcher
	mux      *http.ServeMux
	views    *Templates
}

func NewServer(cfg config.Config, st *store.Store, md *media.Store) *Server {
	s := &Server{
		cfg:      cfg,
		store:    st,
		media:    md,
		renderer: render.NewRenderer(st),
		searcher: search.NewSearcher(st, md),
		mux:      http.NewServeMux(),
		views:    MustParseTemplates(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return requestLogger(s.mux)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/api/search", s.handleSearch)
	s.mux.HandleFunc("/projects", s.handleProjectsOverview)
	s.mux.HandleFunc("/projects/new", s.handleCreateProject)
	s.mux.HandleFunc("/projects/", s.handleProjects)
}
