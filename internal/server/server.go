// Package server provides the HTTP REST API for the career coach.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/generate"
	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/orchestrator"
	"github.com/jonathan/career-coach/internal/server/ratelimit"
	"github.com/jonathan/career-coach/internal/types"
)

// Database is the storage surface the handlers need: everything the
// orchestrator persists plus the direct record updates the API exposes.
// *db.DB satisfies it.
type Database interface {
	orchestrator.Store

	GetLearningJourney(ctx context.Context, userID, journeyID uuid.UUID) (*types.LearningJourney, error)
	UpdateLearningJourneySteps(ctx context.Context, j *types.LearningJourney) error
	UpdateProjectStatus(ctx context.Context, userID, projectID uuid.UUID, status string) error
	SetJobSaved(ctx context.Context, userID, jobID uuid.UUID, saved bool) error
	SetTermAchieved(ctx context.Context, userID uuid.UUID, key types.StageKey) error
	UpsertUserGoal(ctx context.Context, goal *types.UserGoal) error
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          Database
	svc         *orchestrator.Service
	rateLimiter *ratelimit.Limiter
	closeDB     func()
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	APIKey      string
	Timeout     time.Duration
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	llmClient, err := llm.NewClient(context.Background(), llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	svc := orchestrator.New(database, generate.NewLLMGenerator(llmClient), cfg.Timeout)

	s := newServer(database, svc, cfg.Port)
	s.closeDB = database.Close
	return s, nil
}

// newServer wires the routes over an already-connected database and
// orchestrator. Split out from New so handler tests can inject fakes.
func newServer(database Database, svc *orchestrator.Service, port int) *Server {
	s := &Server{
		db:  database,
		svc: svc,
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Journey endpoints
	mux.HandleFunc("GET /users/{id}/journey", s.handleGetJourney)
	mux.HandleFunc("GET /users/{id}/journey/flags", s.handleGetFlags)
	mux.HandleFunc("POST /users/{id}/journey/term-achieved", s.handleTermAchieved)
	mux.HandleFunc("POST /users/{id}/actions/{action}", s.handleRunAction)

	// Goal endpoints
	mux.HandleFunc("GET /users/{id}/goal", s.handleGetGoal)
	mux.HandleFunc("PUT /users/{id}/goal", s.handleUpdateGoal)

	// Domain record endpoints
	mux.HandleFunc("GET /users/{id}/career-advice", s.handleGetCareerAdvice)
	mux.HandleFunc("GET /users/{id}/skill-validation", s.handleGetSkillValidation)
	mux.HandleFunc("GET /users/{id}/learning-journeys", s.handleListLearningJourneys)
	mux.HandleFunc("PUT /users/{id}/learning-journeys/{journey_id}/steps", s.handleUpdateLearningSteps)
	mux.HandleFunc("GET /users/{id}/projects", s.handleListProjects)
	mux.HandleFunc("PUT /users/{id}/projects/{project_id}/status", s.handleUpdateProjectStatus)
	mux.HandleFunc("GET /users/{id}/project-plan", s.handleGetProjectPlan)
	mux.HandleFunc("GET /users/{id}/resumes", s.handleListResumes)
	mux.HandleFunc("GET /users/{id}/jobs", s.handleListJobs)
	mux.HandleFunc("PUT /users/{id}/jobs/{job_id}/saved", s.handleSetJobSaved)
	mux.HandleFunc("GET /users/{id}/interview-preps", s.handleListInterviewPreps)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Long timeout for generation actions
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	if s.closeDB != nil {
		s.closeDB()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps a domain error to its HTTP status and writes it.
func (s *Server) handleError(w http.ResponseWriter, err error) {
	s.errorResponse(w, HTTPStatus(err), err.Error())
}

// pathUserID parses the {id} path segment.
func pathUserID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue("id"))
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
// In the future, this could use X-Forwarded-For header (only from trusted proxies).
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
