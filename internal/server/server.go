// Package server wires the application together: storage backend,
// services, handlers, middleware, and routes, plus the HTTP server
// lifecycle with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/sakif/travelvault/internal/auth"
	"github.com/sakif/travelvault/internal/config"
	"github.com/sakif/travelvault/internal/export"
	"github.com/sakif/travelvault/internal/flightinfo"
	"github.com/sakif/travelvault/internal/handler"
	"github.com/sakif/travelvault/internal/middleware"
	"github.com/sakif/travelvault/internal/repository"
	"github.com/sakif/travelvault/internal/repository/memory"
	"github.com/sakif/travelvault/internal/repository/sqlite"
	"github.com/sakif/travelvault/internal/service"
)

// Server owns the router and the storage backend; the backend is
// closed on shutdown.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	store  repository.Store
}

// New builds a fully wired server from configuration, picking the
// storage backend from cfg.DBPath ("memory" selects the in-process
// store).
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	var store repository.Store
	if cfg.DBPath == "memory" {
		store = memory.New()
	} else {
		db, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		store = db
	}

	srv, err := NewWithStore(cfg, store, logger)
	if err != nil {
		store.Close()
		return nil, err
	}
	return srv, nil
}

// NewWithStore builds the server around an existing store. Tests use
// this to run the full HTTP stack against the memory backend.
func NewWithStore(cfg config.Config, store repository.Store, logger *slog.Logger) (*Server, error) {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
	}

	if err := s.setupRoutes(); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() error {
	tokens, err := auth.NewTokenService(s.config.JWTSecret, s.config.TokenTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	lookup := flightinfo.NewClient(s.config.AviationStackKey, s.logger)

	authService := service.NewAuthService(s.store.Users(), tokens, passwords, s.logger)
	recordService := service.NewRecordService(s.store, lookup, s.logger)
	exportEngine := export.NewEngine(s.store, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	recordHandler := handler.NewRecordHandler(recordService, s.logger)
	exportHandler := handler.NewExportHandler(exportEngine, s.logger)

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	s.router.Use(cors.New(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)

		// Everything below requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Get("/auth/me", authHandler.HandleMe)

			r.Get("/personal-info", recordHandler.HandleGetPersonalInfo)
			r.Post("/personal-info", recordHandler.HandleCreatePersonalInfo)
			r.Put("/personal-info/{id}", recordHandler.HandleUpdatePersonalInfo)
			r.Delete("/personal-info/{id}", recordHandler.HandleDeletePersonalInfo)

			r.Get("/travel-history", recordHandler.HandleListTravelHistory)
			r.Post("/travel-history", recordHandler.HandleCreateTravelHistory)
			r.Put("/travel-history/{id}", recordHandler.HandleUpdateTravelHistory)
			r.Delete("/travel-history/{id}", recordHandler.HandleDeleteTravelHistory)

			r.Get("/flights", recordHandler.HandleListFlights)
			r.Post("/flights", recordHandler.HandleCreateFlight)
			// Registered before the {id} routes so "autofill" is never
			// parsed as a flight ID.
			r.Get("/flights/autofill/{flightNumber}", recordHandler.HandleFlightAutofill)
			r.Put("/flights/{id}", recordHandler.HandleUpdateFlight)
			r.Delete("/flights/{id}", recordHandler.HandleDeleteFlight)

			r.Get("/employers", recordHandler.HandleListEmployers)
			r.Post("/employers", recordHandler.HandleCreateEmployer)
			r.Put("/employers/{id}", recordHandler.HandleUpdateEmployer)
			r.Delete("/employers/{id}", recordHandler.HandleDeleteEmployer)

			r.Get("/education", recordHandler.HandleListEducation)
			r.Post("/education", recordHandler.HandleCreateEducation)
			r.Put("/education/{id}", recordHandler.HandleUpdateEducation)
			r.Delete("/education/{id}", recordHandler.HandleDeleteEducation)

			r.Get("/addresses", recordHandler.HandleListAddresses)
			r.Post("/addresses", recordHandler.HandleCreateAddress)
			r.Put("/addresses/{id}", recordHandler.HandleUpdateAddress)
			r.Delete("/addresses/{id}", recordHandler.HandleDeleteAddress)

			r.Get("/export/{format}", exportHandler.HandleExport)
			r.Get("/stats", recordHandler.HandleStats)
		})
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully and closes the store.
func (s *Server) Start() error {
	defer s.store.Close()

	srv := &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.String("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
