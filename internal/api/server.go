package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/consorcio-server/consorcio-server/internal/auth"
	"github.com/consorcio-server/consorcio-server/internal/config"
	"github.com/consorcio-server/consorcio-server/internal/manager"
)

type ctxKey int

const callerKey ctxKey = iota

// RESTServer represents the REST API server
type RESTServer struct {
	config *config.Config
	mgr    *manager.Manager
	auth   *auth.JWTManager
	router chi.Router
	server *http.Server
}

// NewRESTServer creates a new REST API server
func NewRESTServer(cfg *config.Config, mgr *manager.Manager, jwtMgr *auth.JWTManager) *RESTServer {
	s := &RESTServer{
		config: cfg,
		mgr:    mgr,
		auth:   jwtMgr,
		router: chi.NewRouter(),
	}

	s.setupRoutes()

	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all routes
func (s *RESTServer) setupRoutes() {
	// Middleware
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Uploaded files, when stored on local disk
	if s.config.Uploads.Driver == "disk" {
		s.router.Handle("/uploads/*", http.StripPrefix("/uploads/",
			http.FileServer(http.Dir(s.config.Uploads.Dir))))
	}

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		s.setupAPIRoutes(r)
	})
}

// ListenAndServe starts the server
func (s *RESTServer) ListenAndServe(addr string) error {
	s.server.Addr = addr
	log.Info().Str("addr", addr).Msg("Starting REST API server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *RESTServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Router exposes the handler, used by tests
func (s *RESTServer) Router() http.Handler {
	return s.router
}

// authMiddleware is the authentication middleware
func (s *RESTServer) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			s.respondError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			s.respondError(w, http.StatusUnauthorized, "invalid authorization header")
			return
		}

		claims, err := s.auth.ValidateToken(parts[1])
		if err != nil {
			s.respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		caller := manager.Caller{
			ID:      claims.UserID,
			Email:   claims.Email,
			IsAdmin: claims.IsAdmin,
		}

		ctx := context.WithValue(r.Context(), callerKey, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// caller returns the authenticated caller; zero value outside authMiddleware
func (s *RESTServer) caller(r *http.Request) manager.Caller {
	caller, _ := r.Context().Value(callerKey).(manager.Caller)
	return caller
}
