package api

import (
	"encoding/json"
	"net/http"

	"github.com/consorcio-server/consorcio-server/internal/manager"
)

// HandleSendEmail sends a transactional email, with an optional attachment
func (s *RESTServer) HandleSendEmail(w http.ResponseWriter, r *http.Request) {
	var in manager.SendEmailInput
	var attachment *manager.Upload

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		in.To = r.FormValue("to")
		in.Subject = r.FormValue("subject")
		in.Body = r.FormValue("body")

		uploads, err := formUploads(r, "file")
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid file upload")
			return
		}
		attachment = firstUpload(uploads)
	} else if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.mgr.SendEmail(r.Context(), s.caller(r), in, attachment); err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "sent",
	})
}

// HandleListEmailLog returns the email send history
func (s *RESTServer) HandleListEmailLog(w http.ResponseWriter, r *http.Request) {
	logs, err := s.mgr.ListEmailLog(r.Context(), s.caller(r))
	if err != nil {
		s.respondManagerError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, logs)
}
