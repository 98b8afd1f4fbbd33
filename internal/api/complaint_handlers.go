package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/manager"
)

// HandleListComplaints lists complaints
func (s *RESTServer) HandleListComplaints(w http.ResponseWriter, r *http.Request) {
	complaints, err := s.mgr.ListComplaints(r.Context())
	if err != nil {
		s.respondManagerError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, complaints)
}

// HandleCreateComplaint files a complaint
func (s *RESTServer) HandleCreateComplaint(w http.ResponseWriter, r *http.Request) {
	var in manager.CreateComplaintInput
	var uploads []manager.Upload

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		in.UnitID = r.FormValue("unitId")
		in.Content = r.FormValue("content")

		var err error
		uploads, err = formUploads(r, "files")
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid file upload")
			return
		}
	} else if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := s.mgr.CreateComplaint(r.Context(), s.caller(r), in, uploads)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, c)
}

// HandleGetComplaint gets a complaint
func (s *RESTServer) HandleGetComplaint(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid complaint id")
		return
	}

	c, err := s.mgr.GetComplaint(r.Context(), id)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, c)
}

// HandleUpdateComplaint applies an admin reply or status transition
func (s *RESTServer) HandleUpdateComplaint(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid complaint id")
		return
	}

	var in manager.UpdateComplaintInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := s.mgr.UpdateComplaint(r.Context(), s.caller(r), id, in)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, c)
}

// HandleDeleteComplaint deletes a complaint
func (s *RESTServer) HandleDeleteComplaint(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid complaint id")
		return
	}

	if err := s.mgr.DeleteComplaint(r.Context(), s.caller(r), id); err != nil {
		s.respondManagerError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
