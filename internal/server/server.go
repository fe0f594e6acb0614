// Package server exposes the front desk HTTP API consumed by the property
// listing UI: schema lookups, location dropdowns, OTP auth and submission.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"listing-frontdesk/internal/api"
	"listing-frontdesk/internal/cache"
	"listing-frontdesk/internal/common/config"
	apperrors "listing-frontdesk/internal/common/errors"
	"listing-frontdesk/internal/common/logger"
	"listing-frontdesk/internal/form"
	"listing-frontdesk/internal/session"
	"listing-frontdesk/internal/uploader"
)

// AuthService is the slice of the upstream auth client the server needs.
type AuthService interface {
	SendOTP(ctx context.Context, mobileNumber string) error
	VerifyOTP(ctx context.Context, mobileNumber, otp string) (session.User, error)
	GuestSignup(ctx context.Context) (session.User, error)
}

// ListingService covers property submission, retrieval and administration.
type ListingService interface {
	form.Submitter
	GetProperty(ctx context.Context, propertyID string) (api.Property, error)
	ListTempUsers(ctx context.Context) ([]api.Property, error)
	ListTempProperties(ctx context.Context, filters map[string]string) ([]api.Property, error)
	DeleteTempUser(ctx context.Context, userID string) error
	DeleteTempProperty(ctx context.Context, propertyID string) error
}

// Dependencies carries everything the server wires into its handlers.
type Dependencies struct {
	Locations cache.LocationSource
	Auth      AuthService
	Listings  ListingService
	Uploader  *uploader.Uploader
	Sessions  *session.Manager
}

// Server is the front desk HTTP server.
type Server struct {
	cfg        config.ServerConfig
	log        logger.Logger
	deps       Dependencies
	errHandler *apperrors.ErrorHandler
	router     *mux.Router
	httpServer *http.Server
}

// New creates the server and registers all routes.
func New(cfg config.ServerConfig, deps Dependencies, log logger.Logger) *Server {
	s := &Server{
		cfg:        cfg,
		log:        log,
		deps:       deps,
		errHandler: apperrors.NewErrorHandler(log),
		router:     mux.NewRouter(),
	}
	s.registerRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Millisecond,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.router.Use(s.observeMiddleware)

	api := s.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/schema/{subCategory}", s.handleSchema).Methods(http.MethodGet)

	api.HandleFunc("/locations/states", s.handleStates).Methods(http.MethodGet)
	api.HandleFunc("/locations/cities", s.handleCities).Methods(http.MethodPost)
	api.HandleFunc("/locations/localities", s.handleLocalities).Methods(http.MethodPost)

	api.HandleFunc("/auth/send-otp", s.handleSendOTP).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify-otp", s.handleVerifyOTP).Methods(http.MethodPost)
	api.HandleFunc("/auth/guest", s.handleGuestSession).Methods(http.MethodPost)

	api.Handle("/properties", s.withSession(s.handleSubmitProperty)).Methods(http.MethodPost)
	api.Handle("/properties/{propertyId}", s.withSession(s.handleGetProperty)).Methods(http.MethodGet)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Handle("/users", s.requireSession(s.handleAdminListUsers)).Methods(http.MethodGet)
	admin.Handle("/users/{userId}", s.requireSession(s.handleAdminDeleteUser)).Methods(http.MethodDelete)
	admin.Handle("/properties", s.requireSession(s.handleAdminListProperties)).Methods(http.MethodGet)
	admin.Handle("/properties/{propertyId}", s.requireSession(s.handleAdminDeleteProperty)).Methods(http.MethodDelete)

	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins serving and blocks until the listener stops.
func (s *Server) Start() error {
	s.log.Info("Front desk listening", map[string]interface{}{"addr": s.cfg.Addr()})
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
