//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/errandly/errand-service/internal/engine"
	"github.com/errandly/errand-service/internal/repository"
)

type Lifecycle interface {
	Create(ctx context.Context, customerID string, in engine.CreateInput) (*engine.Details, error)
	Accept(ctx context.Context, errandID, userID string) (*engine.Details, error)
	Start(ctx context.Context, errandID, userID string) (*engine.Details, error)
	Complete(ctx context.Context, errandID, userID string) (*engine.Details, error)
	Cancel(ctx context.Context, errandID, userID, reason string) (*engine.Details, error)
	Get(ctx context.Context, errandID string) (*engine.Details, error)
	ListByCustomer(ctx context.Context, customerID string, lastN int, activeOnly bool) ([]repository.Errand, error)
}

type UserRepo interface {
	ValidateUser(ctx context.Context, username, password string) (*repository.User, error)
}

type Server struct {
	lifecycle Lifecycle
	userRepo  UserRepo
	server    *http.Server
}

func New(lifecycle Lifecycle, userRepo UserRepo) *Server {
	return &Server{
		lifecycle: lifecycle,
		userRepo:  userRepo,
	}
}

func (s *Server) Run(ctx context.Context, port string) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go s.handleShutdown()

	log.Printf("Server starting on port %s", port)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleShutdown() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	sig := <-signals
	log.Printf("Received signal %v, initiating graceful shutdown...", sig)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		log.Printf("ERROR: Server shutdown failed: %v", err)
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	log.Println("HTTP server shutdown completed")

	return nil
}

func (s *Server) setupRoutes() http.Handler {
	api := http.NewServeMux()

	api.HandleFunc("POST /errands", s.handleCreateErrand)
	api.HandleFunc("GET /errands/{id}", s.handleGetErrand)
	api.HandleFunc("POST /errands/{id}/accept", s.handleAcceptErrand)
	api.HandleFunc("POST /errands/{id}/start", s.handleStartErrand)
	api.HandleFunc("POST /errands/{id}/complete", s.handleCompleteErrand)
	api.HandleFunc("POST /errands/{id}/cancel", s.handleCancelErrand)
	api.HandleFunc("GET /users/{userID}/errands", s.handleListErrands)

	root := http.NewServeMux()
	root.Handle("GET /metrics", promhttp.Handler())
	root.Handle("/", s.basicAuthMiddleware(api))

	return root
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, map[string]string{"code": code, "error": message})
}

// respondEngineError maps engine failures onto their HTTP status and stable
// code. Infra errors are logged and surfaced as a generic 500.
func respondEngineError(w http.ResponseWriter, err error) {
	status := engine.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("ERROR: internal failure: %v", err)
		respondError(w, status, "INTERNAL", "internal error")
		return
	}
	respondError(w, status, engine.Code(err), err.Error())
}

func (s *Server) handleCreateErrand(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	var createRequest struct {
		Category     string  `json:"category"`
		Urgency      string  `json:"urgency"`
		LocationFrom string  `json:"location_from"`
		LocationTo   string  `json:"location_to"`
		BasePrice    float64 `json:"base_price"`
		DistanceKm   float64 `json:"distance_km"`
	}

	if err := json.NewDecoder(r.Body).Decode(&createRequest); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	details, err := s.lifecycle.Create(r.Context(), user.ID, engine.CreateInput{
		Category:     repository.Category(createRequest.Category),
		Urgency:      repository.Urgency(createRequest.Urgency),
		LocationFrom: createRequest.LocationFrom,
		LocationTo:   createRequest.LocationTo,
		BasePrice:    createRequest.BasePrice,
		DistanceKm:   createRequest.DistanceKm,
	})
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, details)
}

func (s *Server) handleGetErrand(w http.ResponseWriter, r *http.Request) {
	errandID := r.PathValue("id")
	if errandID == "" {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Missing errand ID")
		return
	}

	details, err := s.lifecycle.Get(r.Context(), errandID)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, details)
}

func (s *Server) handleAcceptErrand(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, s.lifecycle.Accept)
}

func (s *Server) handleStartErrand(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, s.lifecycle.Start)
}

func (s *Server) handleCompleteErrand(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, s.lifecycle.Complete)
}

func (s *Server) handleTransition(w http.ResponseWriter, r *http.Request, op func(context.Context, string, string) (*engine.Details, error)) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	errandID := r.PathValue("id")
	if errandID == "" {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Missing errand ID")
		return
	}

	details, err := op(r.Context(), errandID, user.ID)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, details)
}

func (s *Server) handleCancelErrand(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	errandID := r.PathValue("id")
	if errandID == "" {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Missing errand ID")
		return
	}

	var cancelRequest struct {
		Reason string `json:"reason"`
	}
	if r.Body != nil {
		// The reason is optional; an empty body is fine.
		if err := json.NewDecoder(r.Body).Decode(&cancelRequest); err != nil && !errors.Is(err, io.EOF) {
			respondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
			return
		}
	}

	details, err := s.lifecycle.Cancel(r.Context(), errandID, user.ID, cancelRequest.Reason)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, details)
}

func (s *Server) handleListErrands(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("userID")
	if customerID == "" {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Missing user ID")
		return
	}

	lastN := 0
	activeOnly := false

	if lastNStr := r.URL.Query().Get("last"); lastNStr != "" {
		var err error
		lastN, err = strconv.Atoi(lastNStr)
		if err != nil || lastN <= 0 {
			respondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid value for 'last' parameter")
			return
		}
	}

	if activeStr := r.URL.Query().Get("active"); activeStr == "true" {
		activeOnly = true
	}

	errands, err := s.lifecycle.ListByCustomer(r.Context(), customerID, lastN, activeOnly)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, errands)
}
