package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/manager"
)

// HandleListPayments lists payments
func (s *RESTServer) HandleListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := s.mgr.ListPayments(r.Context())
	if err != nil {
		s.respondManagerError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, payments)
}

// HandleCreatePayment registers a payment, with an optional receipt file
func (s *RESTServer) HandleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var in manager.CreatePaymentInput
	var receipt *manager.Upload

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		in.UnitID = r.FormValue("unitId")
		in.Amount, _ = strconv.ParseFloat(r.FormValue("amount"), 64)
		in.Status = r.FormValue("status")
		in.Description = r.FormValue("description")
		in.NotifyEmail = r.FormValue("notifyEmail")
		if v, ok := formValue(r, "paymentDate"); ok {
			t, err := parseDate(v)
			if err != nil {
				s.respondError(w, http.StatusBadRequest, "invalid payment date")
				return
			}
			in.PaymentDate = t
		}

		uploads, err := formUploads(r, "file")
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid file upload")
			return
		}
		receipt = firstUpload(uploads)
	} else if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := s.mgr.CreatePayment(r.Context(), s.caller(r), in, receipt)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, p)
}

// HandleGetPayment gets a payment
func (s *RESTServer) HandleGetPayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	p, err := s.mgr.GetPayment(r.Context(), id)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, p)
}

// HandleUpdatePayment updates a payment
func (s *RESTServer) HandleUpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	var in manager.UpdatePaymentInput
	var receipt *manager.Upload

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		if v, ok := formValue(r, "amount"); ok {
			a, err := strconv.ParseFloat(v, 64)
			if err != nil {
				s.respondError(w, http.StatusBadRequest, "invalid amount")
				return
			}
			in.Amount = &a
		}
		if v, ok := formValue(r, "paymentDate"); ok {
			t, err := parseDate(v)
			if err != nil {
				s.respondError(w, http.StatusBadRequest, "invalid payment date")
				return
			}
			in.PaymentDate = &t
		}
		if v, ok := formValue(r, "status"); ok {
			in.Status = &v
		}
		if v, ok := formValue(r, "description"); ok {
			in.Description = &v
		}

		uploads, err := formUploads(r, "file")
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid file upload")
			return
		}
		receipt = firstUpload(uploads)
	} else if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := s.mgr.UpdatePayment(r.Context(), s.caller(r), id, in, receipt)
	if err != nil {
		s.respondManagerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, p)
}

// HandleDeletePayment deletes a payment
func (s *RESTServer) HandleDeletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	if err := s.mgr.DeletePayment(r.Context(), s.caller(r), id); err != nil {
		s.respondManagerError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
