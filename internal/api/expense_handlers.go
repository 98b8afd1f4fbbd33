package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/manager"
)

// HandleListExpenses lists expense records
func (s *RESTServer) HandleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.mgr.ListExpenses(r.Context())
	if err != nil {
		s.respondManagerError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, expenses)
}

// HandleCreateExpense creates an expense record
func (s *RESTServer) HandleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var in manager.CreateExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := s.mgr.CreateExpense(r.Context(), s.caller(r), in)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, e)
}

// HandleGetExpense gets an expense record
func (s *RESTServer) HandleGetExpense(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	e, err := s.mgr.GetExpense(r.Context(), id)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, e)
}

// HandleUpdateExpense updates an expense record
func (s *RESTServer) HandleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	var in manager.UpdateExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := s.mgr.UpdateExpense(r.Context(), s.caller(r), id, in)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, e)
}

// HandleDeleteExpense deletes an expense record
func (s *RESTServer) HandleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	if err := s.mgr.DeleteExpense(r.Context(), s.caller(r), id); err != nil {
		s.respondManagerError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleSendExpense emails the computed bill and marks the record as sent
func (s *RESTServer) HandleSendExpense(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	var req struct {
		To string `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := s.mgr.SendExpense(r.Context(), s.caller(r), id, req.To)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, e)
}
