package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/manager"
)

// HandleListInvitations lists invitations
func (s *RESTServer) HandleListInvitations(w http.ResponseWriter, r *http.Request) {
	invitations, err := s.mgr.ListInvitations(r.Context())
	if err != nil {
		s.respondManagerError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, invitations)
}

// HandleCreateInvitation creates an invitation and dispatches its email
func (s *RESTServer) HandleCreateInvitation(w http.ResponseWriter, r *http.Request) {
	var in manager.CreateInvitationInput
	var uploads []manager.Upload

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		in.RecipientEmail = r.FormValue("recipientEmail")
		in.Subject = r.FormValue("subject")
		in.Message = r.FormValue("message")

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

	inv, err := s.mgr.CreateInvitation(r.Context(), s.caller(r), in, uploads)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, inv)
}

// HandleGetInvitation gets an invitation
func (s *RESTServer) HandleGetInvitation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid invitation id")
		return
	}

	inv, err := s.mgr.GetInvitation(r.Context(), id)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, inv)
}

// HandleDeleteInvitation deletes an invitation record
func (s *RESTServer) HandleDeleteInvitation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid invitation id")
		return
	}

	if err := s.mgr.DeleteInvitation(r.Context(), s.caller(r), id); err != nil {
		s.respondManagerError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
