// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input ingestion, calculator orchestration, output serialization.
// The API NEVER performs premium logic.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"premium-estimator/core/premium"
	"premium-estimator/internal/errors"
)

// DefaultMaxBodyBytes caps request bodies when no limit is configured
const DefaultMaxBodyBytes int64 = 1 << 20

// RequestIDHeader carries the request id on every response
const RequestIDHeader = "X-Request-ID"

// Server is the API server
type Server struct {
	calc         *premium.Calculator
	mux          *http.ServeMux
	handler      http.Handler
	version      string
	logger       *zap.Logger
	maxBodyBytes int64
	location     *time.Location
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the request logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxBodyBytes caps request bodies; non-positive values keep the default
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithLocation sets the timezone in which evaluationDate strings are read
func WithLocation(loc *time.Location) Option {
	return func(s *Server) {
		if loc != nil {
			s.location = loc
		}
	}
}

// NewServer creates a new API server around calc
func NewServer(calc *premium.Calculator, version string, opts ...Option) *Server {
	if calc == nil {
		calc = premium.New(nil)
	}
	s := &Server{
		calc:         calc,
		mux:          http.NewServeMux(),
		version:      version,
		logger:       zap.NewNop(),
		maxBodyBytes: DefaultMaxBodyBytes,
		location:     time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registerRoutes()
	s.handler = s.withRequestContext(s.mux)
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoints
	s.mux.HandleFunc("POST /premium-calculations/estimate", s.handleEstimate)
	s.mux.HandleFunc("POST /premium-calculations/estimate-range", s.handleEstimateRange)
	s.mux.HandleFunc("GET /premium-calculations/factors", s.handleFactors)
	s.mux.HandleFunc("POST /premium-calculations/rating", s.handleRating)

	// Supporting endpoints
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

type requestIDKey struct{}

// RequestID returns the id assigned to the request carried by ctx
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// withRequestContext assigns a request id and logs every request
func (s *Server) withRequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))

		s.logger.Info("request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, code, message string, status int) {
	s.writeJSON(w, ErrorResponse{
		Error:     ErrorBody{Code: code, Message: message},
		RequestID: RequestID(r.Context()),
	}, status)
}

// writeFailure maps a calculation error onto the error envelope.
// Invalid input is the caller's fault; everything else is ours.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	errType := errors.TypeOf(err)
	if errType == errors.TypeInvalidInput {
		s.writeError(w, r, string(errType), errors.Message(err), http.StatusBadRequest)
		return
	}
	s.logger.Error("calculation failed",
		zap.String("request_id", RequestID(r.Context())),
		zap.Error(err),
	)
	s.writeError(w, r, string(errType), errors.Message(err), http.StatusInternalServerError)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
