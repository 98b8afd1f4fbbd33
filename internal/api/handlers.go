package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/consorcio-server/consorcio-server/internal/manager"
)

const maxUploadMemory = 32 << 20

// ========== Auth handlers ==========

// HandleLogin handles user login
func (s *RESTServer) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := s.mgr.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": token,
		"expires_in":   int(s.config.JWT.AccessTokenTTL.Seconds()),
		"token_type":   "Bearer",
		"user":         user,
	})
}

// HandleGetCurrentUser returns the authenticated user's record
func (s *RESTServer) HandleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	caller := s.caller(r)

	user, err := s.mgr.GetUser(r.Context(), caller.ID)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, user)
}

// ========== Helper methods ==========

// HandleHealth health check
func (s *RESTServer) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now(),
	})
}

// HandleRoot root handler
func (s *RESTServer) HandleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"service": "Consorcio Server",
		"version": "1.0.0",
		"health":  "/api/v1/health",
	})
}

// respondJSON responds with JSON
func (s *RESTServer) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

// respondError responds with error
func (s *RESTServer) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// statusByKind maps every manager error kind to its HTTP status
var statusByKind = map[manager.Kind]int{
	manager.KindValidation:   http.StatusBadRequest,
	manager.KindUnauthorized: http.StatusForbidden,
	manager.KindNotFound:     http.StatusNotFound,
	manager.KindTransport:    http.StatusInternalServerError,
}

// respondManagerError translates a manager error to an HTTP response
func (s *RESTServer) respondManagerError(w http.ResponseWriter, err error) {
	status, ok := statusByKind[manager.KindOf(err)]
	if !ok {
		status = http.StatusInternalServerError
	}
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("Request failed")
	}
	s.respondError(w, status, err.Error())
}

// ========== Helper functions ==========

// isMultipart reports whether the request carries multipart form data
func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// formUploads reads the files posted under a form field. The request's
// multipart form must already be parsed.
func formUploads(r *http.Request, field string) ([]manager.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	var uploads []manager.Upload
	for _, fh := range r.MultipartForm.File[field] {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, manager.Upload{Filename: fh.Filename, Content: data})
	}
	return uploads, nil
}

// formValue returns a multipart form value and whether the field was posted
func formValue(r *http.Request, key string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}
	vals, ok := r.MultipartForm.Value[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// firstUpload returns the first upload, nil when there is none
func firstUpload(uploads []manager.Upload) *manager.Upload {
	if len(uploads) == 0 {
		return nil
	}
	return &uploads[0]
}

// parseDate parses a date form value, accepting RFC3339 or a plain day
func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
