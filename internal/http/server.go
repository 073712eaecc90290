package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paylinkhq/paylink/internal/config"
	"github.com/paylinkhq/paylink/internal/http/handler"
	"github.com/paylinkhq/paylink/internal/http/middleware"
	"github.com/paylinkhq/paylink/internal/realtime/websocket"
	redisRepo "github.com/paylinkhq/paylink/internal/repository/redis"
	"github.com/paylinkhq/paylink/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	pool   *pgxpool.Pool
	cache  *redisRepo.Cache
	wsHub  *websocket.Hub
}

// NewServer creates a new HTTP server
func NewServer(
	cfg *config.Config,
	paymentService *service.PaymentService,
	methodService *service.PaymentMethodService,
	authMiddleware *middleware.Auth,
	cache *redisRepo.Cache,
	pool *pgxpool.Pool,
	wsHub *websocket.Hub,
	logger *slog.Logger,
) *Server {
	router := chi.NewRouter()
	validator := validator.New()

	server := &Server{
		router: router,
		config: cfg,
		logger: logger,
		pool:   pool,
		cache:  cache,
		wsHub:  wsHub,
	}

	// Create handlers
	paymentHandler := handler.NewPaymentHandler(paymentService, validator, logger)
	methodHandler := handler.NewPaymentMethodHandler(methodService, validator, logger)
	wsHandler := websocket.NewHandler(wsHub, logger)

	rateLimits := middleware.NewRateLimitMiddleware(cache, cfg.RateLimit)

	// Setup middleware
	server.setupMiddleware(cfg, logger)

	// Setup routes
	server.setupRoutes(paymentHandler, methodHandler, wsHandler, authMiddleware, rateLimits)

	return server
}

// setupMiddleware configures global middleware
func (s *Server) setupMiddleware(cfg *config.Config, logger *slog.Logger) {
	// Built-in chi middleware
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(chimiddleware.Timeout(30 * time.Second))

	// Custom middleware
	s.router.Use(middleware.Logger(logger))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.CORS.AllowedOrigins
	s.router.Use(middleware.CORS(corsConfig))
	s.router.Use(middleware.Security())

	// Rate limiting is applied per-route, not globally
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(
	paymentHandler *handler.PaymentHandler,
	methodHandler *handler.PaymentMethodHandler,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.Auth,
	rateLimits *middleware.RateLimitMiddleware,
) {
	// Health check (no rate limit)
	s.router.Get("/health", s.healthCheck)
	s.router.Get("/ready", s.readinessCheck)

	s.router.Route("/api", func(r chi.Router) {
		// Webhook route: unauthenticated, the provider calls it directly
		r.With(rateLimits.Webhook()).Post("/payment/callback/billplz", paymentHandler.BillplzCallback)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Middleware())

			r.With(rateLimits.Payment()).Post("/payment/generate", paymentHandler.Generate)

			r.Route("/payment-method", func(r chi.Router) {
				r.Use(rateLimits.API())

				r.Get("/", methodHandler.List)
				r.Post("/", methodHandler.Create)
				r.Get("/{id}", methodHandler.GetByID)
				r.Patch("/{id}", methodHandler.Update)
				r.Delete("/{id}", methodHandler.Delete)
			})

			r.Route("/bulk/payment-method", func(r chi.Router) {
				r.Use(rateLimits.API())

				r.Post("/", methodHandler.BulkCreate)
				r.Delete("/", methodHandler.BulkDelete)
			})
		})
	})

	// WebSocket routes (JWT auth)
	s.router.Route("/ws", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Middleware())
			r.Get("/payments", wsHandler.HandlePayments)
		})
	})
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// healthCheck handles GET /health
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// readinessCheck handles GET /ready
func (s *Server) readinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	if s.pool != nil {
		if err := s.pool.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable","reason":"database"}`))
			return
		}
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable","reason":"redis"}`))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
