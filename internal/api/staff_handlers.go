package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/manager"
)

// HandleListStaff lists staff members
func (s *RESTServer) HandleListStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := s.mgr.ListStaff(r.Context())
	if err != nil {
		s.respondManagerError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, staff)
}

// HandleCreateStaff registers a staff member
func (s *RESTServer) HandleCreateStaff(w http.ResponseWriter, r *http.Request) {
	var in manager.CreateStaffInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	st, err := s.mgr.CreateStaff(r.Context(), s.caller(r), in)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, st)
}

// HandleGetStaff gets a staff member
func (s *RESTServer) HandleGetStaff(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid staff id")
		return
	}

	st, err := s.mgr.GetStaff(r.Context(), id)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, st)
}

// HandleUpdateStaff updates a staff member
func (s *RESTServer) HandleUpdateStaff(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid staff id")
		return
	}

	var in manager.UpdateStaffInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	st, err := s.mgr.UpdateStaff(r.Context(), s.caller(r), id, in)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, st)
}

// HandleDeleteStaff deletes a staff member
func (s *RESTServer) HandleDeleteStaff(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid staff id")
		return
	}

	if err := s.mgr.DeleteStaff(r.Context(), s.caller(r), id); err != nil {
		s.respondManagerError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleCreatePayrollReceipt registers a payroll receipt for a staff member
func (s *RESTServer) HandleCreatePayrollReceipt(w http.ResponseWriter, r *http.Request) {
	staffID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid staff id")
		return
	}

	var in manager.CreatePayrollReceiptInput
	var attachment *manager.Upload

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		in.Month, _ = strconv.Atoi(r.FormValue("month"))
		in.Year, _ = strconv.Atoi(r.FormValue("year"))
		in.Amount, _ = strconv.ParseFloat(r.FormValue("amount"), 64)
		in.Details = r.FormValue("details")

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

	in.StaffID = staffID

	receipt, err := s.mgr.CreatePayrollReceipt(r.Context(), s.caller(r), in, attachment)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, receipt)
}

// HandleListPayrollReceipts lists one staff member's payroll receipts
func (s *RESTServer) HandleListPayrollReceipts(w http.ResponseWriter, r *http.Request) {
	staffID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid staff id")
		return
	}

	receipts, err := s.mgr.ListPayrollReceipts(r.Context(), staffID)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, receipts)
}

// HandleGetPayrollReceipt gets a payroll receipt
func (s *RESTServer) HandleGetPayrollReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid receipt id")
		return
	}

	receipt, err := s.mgr.GetPayrollReceipt(r.Context(), id)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, receipt)
}
