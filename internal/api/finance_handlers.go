package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/consorcio-server/consorcio-server/internal/manager"
)

// HandleGetFinanceConfig gets a consortium's financial configuration
func (s *RESTServer) HandleGetFinanceConfig(w http.ResponseWriter, r *http.Request) {
	consortiumID := chi.URLParam(r, "consortiumId")

	cfg, err := s.mgr.GetFinanceConfig(r.Context(), consortiumID)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, cfg)
}

// HandleUpsertFinanceConfig creates or replaces a financial configuration
func (s *RESTServer) HandleUpsertFinanceConfig(w http.ResponseWriter, r *http.Request) {
	var in manager.FinanceConfigInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg, err := s.mgr.UpsertFinanceConfig(r.Context(), s.caller(r), in)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, cfg)
}

// HandleUpdateFinanceConfig replaces an existing financial configuration
func (s *RESTServer) HandleUpdateFinanceConfig(w http.ResponseWriter, r *http.Request) {
	var in manager.FinanceConfigInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in.ConsortiumID = chi.URLParam(r, "consortiumId")

	cfg, err := s.mgr.UpdateFinanceConfig(r.Context(), s.caller(r), in)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, cfg)
}

// HandleDeleteFinanceConfig removes a consortium's financial configuration
func (s *RESTServer) HandleDeleteFinanceConfig(w http.ResponseWriter, r *http.Request) {
	consortiumID := chi.URLParam(r, "consortiumId")

	if err := s.mgr.DeleteFinanceConfig(r.Context(), s.caller(r), consortiumID); err != nil {
		s.respondManagerError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
