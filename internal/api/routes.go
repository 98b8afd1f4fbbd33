package api

import (
	"github.com/go-chi/chi/v5"
)

// setupAPIRoutes sets up API v1 routes
func (s *RESTServer) setupAPIRoutes(r chi.Router) {
	// Health check
	r.Get("/health", s.HandleHealth)
	r.Get("/", s.HandleRoot)

	// Auth routes (public)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.HandleLogin)
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		// Buildings
		r.Route("/buildings", func(r chi.Router) {
			r.Get("/", s.HandleListBuildings)
			r.Post("/", s.HandleCreateBuilding)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetBuilding)
				r.Put("/", s.HandleUpdateBuilding)
				r.Delete("/", s.HandleDeleteBuilding)
			})
		})

		// Expenses
		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", s.HandleListExpenses)
			r.Post("/", s.HandleCreateExpense)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetExpense)
				r.Put("/", s.HandleUpdateExpense)
				r.Delete("/", s.HandleDeleteExpense)
				r.Post("/send", s.HandleSendExpense)
			})
		})

		// Payments
		r.Route("/payments", func(r chi.Router) {
			r.Get("/", s.HandleListPayments)
			r.Post("/", s.HandleCreatePayment)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetPayment)
				r.Put("/", s.HandleUpdatePayment)
				r.Delete("/", s.HandleDeletePayment)
			})
		})

		// Complaints
		r.Route("/complaints", func(r chi.Router) {
			r.Get("/", s.HandleListComplaints)
			r.Post("/", s.HandleCreateComplaint)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetComplaint)
				r.Put("/", s.HandleUpdateComplaint)
				r.Delete("/", s.HandleDeleteComplaint)
			})
		})

		// Invitations
		r.Route("/invitations", func(r chi.Router) {
			r.Get("/", s.HandleListInvitations)
			r.Post("/", s.HandleCreateInvitation)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetInvitation)
				r.Delete("/", s.HandleDeleteInvitation)
			})
		})

		// Users
		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.HandleListUsers)
			r.Post("/", s.HandleCreateUser)
			r.Get("/me", s.HandleGetCurrentUser)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetUser)
				r.Put("/", s.HandleUpdateUser)
				r.Delete("/", s.HandleDeleteUser)
			})
		})

		// Staff and payroll receipts
		r.Route("/staff", func(r chi.Router) {
			r.Get("/", s.HandleListStaff)
			r.Post("/", s.HandleCreateStaff)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetStaff)
				r.Put("/", s.HandleUpdateStaff)
				r.Delete("/", s.HandleDeleteStaff)
				r.Get("/receipts", s.HandleListPayrollReceipts)
				r.Post("/receipts", s.HandleCreatePayrollReceipt)
			})
		})
		r.Get("/receipts/{id}", s.HandleGetPayrollReceipt)

		// Documents
		r.Route("/documents", func(r chi.Router) {
			r.Get("/", s.HandleListDocuments)
			r.Post("/", s.HandleCreateDocument)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetDocument)
				r.Delete("/", s.HandleDeleteDocument)
			})
		})

		// Financial configuration
		r.Route("/finance", func(r chi.Router) {
			r.Post("/", s.HandleUpsertFinanceConfig)
			r.Route("/{consortiumId}", func(r chi.Router) {
				r.Get("/", s.HandleGetFinanceConfig)
				r.Put("/", s.HandleUpdateFinanceConfig)
				r.Delete("/", s.HandleDeleteFinanceConfig)
			})
		})

		// Email
		r.Route("/email", func(r chi.Router) {
			r.Post("/send", s.HandleSendEmail)
			r.Get("/log", s.HandleListEmailLog)
		})
	})
}
