package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/manager"
)

// HandleListUsers lists users
func (s *RESTServer) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.mgr.ListUsers(r.Context())
	if err != nil {
		s.respondManagerError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, users)
}

// HandleCreateUser creates a user account, with an optional avatar file
func (s *RESTServer) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var in manager.CreateUserInput
	var avatar *manager.Upload

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		in.Name = r.FormValue("name")
		in.Email = r.FormValue("email")
		in.Password = r.FormValue("password")
		in.UnitID = r.FormValue("unitId")
		in.IsAdmin, _ = strconv.ParseBool(r.FormValue("isAdmin"))

		uploads, err := formUploads(r, "file")
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid file upload")
			return
		}
		avatar = firstUpload(uploads)
	} else if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := s.mgr.CreateUser(r.Context(), s.caller(r), in, avatar)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, u)
}

// HandleGetUser gets a user
func (s *RESTServer) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	u, err := s.mgr.GetUser(r.Context(), id)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, u)
}

// HandleUpdateUser updates a user account
func (s *RESTServer) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var in manager.UpdateUserInput
	var avatar *manager.Upload

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		if v, ok := formValue(r, "name"); ok {
			in.Name = &v
		}
		if v, ok := formValue(r, "email"); ok {
			in.Email = &v
		}
		if v, ok := formValue(r, "password"); ok {
			in.Password = &v
		}
		if v, ok := formValue(r, "unitId"); ok {
			in.UnitID = &v
		}
		if v, ok := formValue(r, "isAdmin"); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				s.respondError(w, http.StatusBadRequest, "invalid admin flag")
				return
			}
			in.IsAdmin = &b
		}

		uploads, err := formUploads(r, "file")
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid file upload")
			return
		}
		avatar = firstUpload(uploads)
	} else if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := s.mgr.UpdateUser(r.Context(), s.caller(r), id, in, avatar)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, u)
}

// HandleDeleteUser deletes a user account
func (s *RESTServer) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := s.mgr.DeleteUser(r.Context(), s.caller(r), id); err != nil {
		s.respondManagerError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
