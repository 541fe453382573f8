package web

import (
	"errors"
	"net/http"

	"github.com/doeshing/deskcommander/internal/domain"
)

type promptRequest struct {
	Prompt string `json:"prompt"`
}

type commandRequest struct {
	Prompt  string `json:"prompt"`
	Command string `json:"command"`
}

// handleGenerate handles POST /api/v1/generate: prompt in, candidate command out.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if err := s.parseJSON(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	resp, err := s.service.Generate(r.Context(), req.Prompt)
	if err != nil {
		s.respondGenerateError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// handleExecute handles POST /api/v1/execute: runs a displayed (possibly
// user-edited) command through filter and executor.
func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := s.parseJSON(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	resp, err := s.service.Execute(r.Context(), req.Prompt, req.Command)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCommand) {
			s.respondError(w, http.StatusBadRequest, "no command to execute")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// handleRun handles POST /api/v1/run: generate and execute in one chain.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if err := s.parseJSON(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	resp, err := s.service.Run(r.Context(), req.Prompt)
	if err != nil {
		s.respondGenerateError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// handleHistory handles GET /api/v1/history: ring contents, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"records": s.service.Ring.Records(),
		"cap":     s.service.Ring.Cap(),
	})
}

// handleHistoryClear handles DELETE /api/v1/history.
func (s *Server) handleHistoryClear(w http.ResponseWriter, r *http.Request) {
	s.service.Ring.Clear()
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// handleStatus handles GET /api/v1/status: model reachability and launch modes.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, cfg, err := s.service.Status(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"ollama":    status,
		"model":     cfg.OllamaModel,
		"dry_run":   s.service.DryRun,
		"safe_mode": s.service.SafeMode,
	})
}

// handleModels handles GET /api/v1/models: installed Ollama models.
func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.cfgLoader.Load(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	names, err := s.service.Model.ListModels(r.Context(), cfg)
	if err != nil {
		s.respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"models": names})
}

// handleConfigGet handles GET /api/v1/config.
func (s *Server) handleConfigGet(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.cfgLoader.Load(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, cfg)
}

// handleConfigPut handles PUT /api/v1/config: persist model/endpoint/timeout.
func (s *Server) handleConfigPut(w http.ResponseWriter, r *http.Request) {
	var cfg domain.Config
	if err := s.parseJSON(r, &cfg); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cfg = cfg.Hydrate()
	if err := s.cfgLoader.Save(cfg); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.log.Info("config updated", map[string]interface{}{
		"model":   cfg.OllamaModel,
		"timeout": cfg.TimeoutSeconds,
	})
	s.respondJSON(w, http.StatusOK, cfg)
}

// handleTemplates handles GET /api/v1/templates: quick-command shortcuts.
func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"groups": domain.BuiltinTemplates(),
	})
}

// respondGenerateError maps model client failures to status messages.
// Connectivity problems are reported as a gateway error so the UI stays up.
func (s *Server) respondGenerateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyPrompt):
		s.respondError(w, http.StatusBadRequest, "please enter a command request")
	case errors.Is(err, domain.ErrConnectivity):
		s.respondError(w, http.StatusBadGateway, "Cannot connect to Ollama. Please run: ollama serve")
	case errors.Is(err, domain.ErrModel):
		s.respondError(w, http.StatusBadGateway, err.Error())
	default:
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}
