package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/manager"
)

// HandleListBuildings lists buildings
func (s *RESTServer) HandleListBuildings(w http.ResponseWriter, r *http.Request) {
	buildings, err := s.mgr.ListBuildings(r.Context())
	if err != nil {
		s.respondManagerError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, buildings)
}

// HandleCreateBuilding creates a building
func (s *RESTServer) HandleCreateBuilding(w http.ResponseWriter, r *http.Request) {
	var in manager.CreateBuildingInput
	var uploads []manager.Upload

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		in.Name = r.FormValue("name")
		in.Address = r.FormValue("address")
		in.UnitCount, _ = strconv.Atoi(r.FormValue("unitCount"))

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

	b, err := s.mgr.CreateBuilding(r.Context(), s.caller(r), in, uploads)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, b)
}

// HandleGetBuilding gets a building
func (s *RESTServer) HandleGetBuilding(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid building id")
		return
	}

	b, err := s.mgr.GetBuilding(r.Context(), id)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, b)
}

// HandleUpdateBuilding updates a building
func (s *RESTServer) HandleUpdateBuilding(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid building id")
		return
	}

	var in manager.UpdateBuildingInput
	var uploads []manager.Upload

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		if v, ok := formValue(r, "name"); ok {
			in.Name = &v
		}
		if v, ok := formValue(r, "address"); ok {
			in.Address = &v
		}
		if v, ok := formValue(r, "unitCount"); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				s.respondError(w, http.StatusBadRequest, "invalid unit count")
				return
			}
			in.UnitCount = &n
		}

		uploads, err = formUploads(r, "files")
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid file upload")
			return
		}
	} else if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := s.mgr.UpdateBuilding(r.Context(), s.caller(r), id, in, uploads)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, b)
}

// HandleDeleteBuilding deletes a building
func (s *RESTServer) HandleDeleteBuilding(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid building id")
		return
	}

	if err := s.mgr.DeleteBuilding(r.Context(), s.caller(r), id); err != nil {
		s.respondManagerError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
