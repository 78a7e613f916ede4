// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/gkiran-dev/event-booking-backend/internal/auth"
	"github.com/gkiran-dev/event-booking-backend/internal/config"
	"github.com/gkiran-dev/event-booking-backend/internal/database"
	"github.com/gkiran-dev/event-booking-backend/internal/handler"
	"github.com/gkiran-dev/event-booking-backend/internal/repository"
	"github.com/gkiran-dev/event-booking-backend/internal/service"
)

func main() {
	// ── 1. Configuration and logging ──────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("config")
	}
	log := config.NewLogger(cfg.Logging)

	// ── 2. Connect to MongoDB ─────────────────────────────────────────────
	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	defer func() {
		_ = db.Client().Disconnect(context.Background())
	}()
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("indexes")
	}
	log.Info().Str("database", cfg.Database.Name).Msg("connected to MongoDB")

	// ── 3. Wire up layers ────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	tokens := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authSvc := service.NewAuthService(userRepo, tokens, log)
	eventSvc := service.NewEventService(eventRepo, bookingRepo, log)
	bookingSvc := service.NewBookingService(bookingRepo, eventRepo, cfg.Booking.LegacyWrites, log)

	h := handler.NewHandler(authSvc, eventSvc, bookingSvc, log)

	// ── 4. Build the router ───────────────────────────────────────────────
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(handler.RequestLogger(log))
	r.Use(handler.CORS)

	// Health
	r.Get("/health", handler.HealthCheck)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		})

		// Public catalog reads
		r.Get("/events", h.ListEvents)
		r.Get("/events/{id}", h.GetEvent)

		// Token-protected operations
		r.Group(func(r chi.Router) {
			r.Use(handler.RequireAuth(tokens))

			r.Post("/", h.CreateEvent)
			r.Put("/events/{id}", h.UpdateEvent)
			r.Delete("/events/{id}", h.DeleteEvent)

			r.Post("/bookings", h.CreateBooking)
			r.Get("/bookings", h.ListBookings)
			r.Get("/bookings/{id}", h.GetBooking)
		})
	})

	// Static landing page; everything unmatched is a 404.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "web/index.html")
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "404 Not Found", http.StatusNotFound)
	})

	// ── 5. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Run in background goroutine so we can listen for shutdown signal.
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
