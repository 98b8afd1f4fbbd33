package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/manager"
)

// HandleListDocuments lists shared documents
func (s *RESTServer) HandleListDocuments(w http.ResponseWriter, r *http.Request) {
	documents, err := s.mgr.ListDocuments(r.Context())
	if err != nil {
		s.respondManagerError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, documents)
}

// HandleCreateDocument uploads a shared document. Multipart only: the file
// is the point of the operation.
func (s *RESTServer) HandleCreateDocument(w http.ResponseWriter, r *http.Request) {
	if !isMultipart(r) {
		s.respondError(w, http.StatusBadRequest, "multipart form data required")
		return
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	var in manager.CreateDocumentInput
	in.Category = r.FormValue("category")
	in.Description = r.FormValue("description")
	if v, ok := formValue(r, "date"); ok {
		t, err := parseDate(v)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid date")
			return
		}
		in.Date = t
	}

	uploads, err := formUploads(r, "file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid file upload")
		return
	}

	d, err := s.mgr.CreateDocument(r.Context(), s.caller(r), in, firstUpload(uploads))
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, d)
}

// HandleGetDocument gets a document
func (s *RESTServer) HandleGetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	d, err := s.mgr.GetDocument(r.Context(), id)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, d)
}

// HandleDeleteDocument deletes a document record
func (s *RESTServer) HandleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	if err := s.mgr.DeleteDocument(r.Context(), s.caller(r), id); err != nil {
		s.respondManagerError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
