// Package server provides the HTTP REST API for ScholarIQ.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/scholariq/scholariq/internal/advisor"
	"github.com/scholariq/scholariq/internal/config"
	"github.com/scholariq/scholariq/internal/db"
	"github.com/scholariq/scholariq/internal/model"
	"github.com/scholariq/scholariq/internal/recommend"
	"github.com/scholariq/scholariq/internal/server/middleware"
	"github.com/scholariq/scholariq/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	cfg         *config.ServerConfig
	logger      *zap.Logger
	db          *db.DB
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	engine      *recommend.Engine
	advisor     advisor.Advisor
	matchModel  *model.MatchModel
}

// New creates a new server instance
func New(cfg *config.ServerConfig, logger *zap.Logger) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		db:     database,
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	// The match model is optional; without it the engine runs rules-only.
	var predictor recommend.MatchPredictor
	if cfg.MatchModelDir != "" {
		matchModel, err := model.Load(cfg.MatchModelDir)
		if err != nil {
			logger.Warn("match model unavailable, scoring rules-only", zap.Error(err))
		} else {
			s.matchModel = matchModel
			predictor = matchModel
		}
	}
	s.engine = recommend.NewEngine(predictor, logger)

	if cfg.GeminiAPIKey != "" {
		adv, err := advisor.New(context.Background(), cfg.GeminiAPIKey, os.Getenv("GEMINI_MODEL"))
		if err != nil {
			logger.Warn("advisor unavailable", zap.Error(err))
		} else {
			s.advisor = adv
		}
	}

	authRequired := middleware.Auth(s.jwtService.AsTokenValidator())
	adminRequired := func(next http.Handler) http.Handler {
		return authRequired(s.adminOnly(next))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Authentication
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	// Profile
	mux.Handle("GET /users/me", authRequired(http.HandlerFunc(s.handleGetMe)))
	mux.Handle("PUT /users/me", authRequired(http.HandlerFunc(s.handleUpdateMe)))
	mux.Handle("PUT /users/me/password", authRequired(http.HandlerFunc(s.handleUpdatePassword)))

	// Catalog; writes are admin-only
	mux.HandleFunc("GET /universities", s.handleListUniversities)
	mux.HandleFunc("GET /universities/{id}", s.handleGetUniversity)
	mux.Handle("POST /universities", adminRequired(http.HandlerFunc(s.handleCreateUniversity)))
	mux.HandleFunc("GET /scholarships", s.handleListScholarships)
	mux.HandleFunc("GET /scholarships/{id}", s.handleGetScholarship)
	mux.Handle("POST /scholarships", adminRequired(http.HandlerFunc(s.handleCreateScholarship)))

	// Admin fraud review and dashboard
	mux.Handle("PUT /scholarships/{id}/fraud", adminRequired(http.HandlerFunc(s.handleSetFraudFlag)))
	mux.Handle("GET /admin/fraud", adminRequired(http.HandlerFunc(s.handleListFlaggedScholarships)))
	mux.Handle("GET /admin/stats", adminRequired(http.HandlerFunc(s.handleAdminStats)))

	// Application tracker
	mux.Handle("GET /applications", authRequired(http.HandlerFunc(s.handleListApplications)))
	mux.Handle("POST /applications", authRequired(http.HandlerFunc(s.handleCreateApplication)))
	mux.Handle("PUT /applications/{id}", authRequired(http.HandlerFunc(s.handleUpdateApplication)))
	mux.Handle("DELETE /applications/{id}", authRequired(http.HandlerFunc(s.handleDeleteApplication)))

	// Recommendations
	mux.Handle("GET /recommendations", authRequired(http.HandlerFunc(s.handleRecommendations)))
	mux.Handle("GET /recommendations/profile", authRequired(http.HandlerFunc(s.handleProfileRecommendations)))

	// Advisor chat
	mux.Handle("POST /chat", authRequired(http.HandlerFunc(s.handleChat)))
	mux.Handle("GET /chat/history", authRequired(http.HandlerFunc(s.handleChatHistory)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.advisor != nil {
		if err := s.advisor.Close(); err != nil {
			s.logger.Warn("failed to close advisor", zap.Error(err))
		}
	}
	if s.matchModel != nil {
		s.matchModel.Close()
	}

	s.db.Close()
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects requests over the per-client budget.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(info.RetryAfter.Seconds())+1))
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)))
	})
}

// extractClientID derives a rate limit key from the request, preferring the
// proxy-forwarded address.
func (s *Server) extractClientID(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit <= 0 {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
}
