// Package web serves the JSON API and the embedded single-page UI.
package web

import (
	"net/http"

	"github.com/doeshing/deskcommander/assets"
	"github.com/doeshing/deskcommander/internal/infrastructure/config"
	"github.com/doeshing/deskcommander/internal/ports"
	"github.com/doeshing/deskcommander/internal/services"
)

// Server is the UI shell: it wires HTTP requests to the command service.
type Server struct {
	service   *services.CommandService
	cfgLoader *config.FileLoader
	log       ports.Logger
}

// NewServer builds the web server.
func NewServer(service *services.CommandService, cfgLoader *config.FileLoader, log ports.Logger) *Server {
	return &Server{
		service:   service,
		cfgLoader: cfgLoader,
		log:       log,
	}
}

// Routes builds the request mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleIndex)
	mux.HandleFunc("POST /api/v1/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/v1/execute", s.handleExecute)
	mux.HandleFunc("POST /api/v1/run", s.handleRun)
	mux.HandleFunc("GET /api/v1/history", s.handleHistory)
	mux.HandleFunc("DELETE /api/v1/history", s.handleHistoryClear)
	mux.HandleFunc("GET /api/v1/status", s.handleStatus)
	mux.HandleFunc("GET /api/v1/models", s.handleModels)
	mux.HandleFunc("GET /api/v1/config", s.handleConfigGet)
	mux.HandleFunc("PUT /api/v1/config", s.handleConfigPut)
	mux.HandleFunc("GET /api/v1/templates", s.handleTemplates)
	return mux
}

// Serve blocks listening on addr.
func (s *Server) Serve(addr string) error {
	s.log.Info("listening", map[string]interface{}{"addr": addr})
	return http.ListenAndServe(addr, s.Routes())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(assets.IndexHTML)
}
