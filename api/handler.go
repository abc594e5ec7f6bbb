// Package api - HTTP handlers for premium calculation
// Handlers wrap the calculator - they contain NO pricing logic.
package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"premium-estimator/core/determinism"
	"premium-estimator/core/explanation"
	"premium-estimator/core/output"
	"premium-estimator/core/premium"
	"premium-estimator/core/rating"
	"premium-estimator/core/types"
)

// handleEstimate handles POST /premium-calculations/estimate
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	s.estimate(w, r, s.calc.CalculatePremiumAt)
}

// handleEstimateRange handles POST /premium-calculations/estimate-range
func (s *Server) handleEstimateRange(w http.ResponseWriter, r *http.Request) {
	s.estimate(w, r, s.calc.CalculatePremiumRangeAt)
}

type calculateFunc func(types.QuoteInput, time.Time) (*types.CalculationResult, error)

func (s *Server) estimate(w http.ResponseWriter, r *http.Request, calculate calculateFunc) {
	start := time.Now()

	var req EstimateRequest
	if !s.decode(w, r, &req) {
		return
	}

	quote, err := req.QuoteInput()
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	at, err := s.evaluationDate(req.EvaluationDate)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	// Execute calculator (NO PRICING LOGIC HERE)
	result, err := calculate(quote, at)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	resp := EstimateResponse{
		EstimateView: output.NewEstimateView(result),
		Metadata:     s.metadata(r, start, quote, at),
	}
	if r.URL.Query().Get("explain") == "true" {
		resp.Explanation = explanation.Explain(s.calc.RateTable(), quote, result)
	}
	s.writeJSON(w, resp, http.StatusOK)
}

// handleFactors handles GET /premium-calculations/factors
func (s *Server) handleFactors(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, output.NewFactorsView(s.calc.CalculationFactors()), http.StatusOK)
}

// handleRating handles POST /premium-calculations/rating
func (s *Server) handleRating(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req RatingRequest
	if !s.decode(w, r, &req) {
		return
	}
	at, err := s.evaluationDate(req.EvaluationDate)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	ws, err := rating.Rate(s.calc.RateTable(), req.Input, at)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	s.writeJSON(w, WorksheetResponse{
		WorksheetView: output.NewWorksheetView(ws),
		Metadata:      s.metadata(r, start, req.Input, at),
	}, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, HealthResponse{
		Status:           "healthy",
		Version:          s.version,
		RateTableVersion: s.calc.RateTable().Label(),
		Time:             time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "premium-estimator",
		"api_version": "v1",
	}, http.StatusOK)
}

// decode reads a JSON body into v, writing the error response itself on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeError(w, r, CodeRequestTooLarge, "request body too large", http.StatusRequestEntityTooLarge)
			return false
		}
		s.writeError(w, r, CodeInvalidJSON, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// evaluationDate resolves an optional YYYY-MM-DD override against the calculator's clock
func (s *Server) evaluationDate(raw string) (time.Time, error) {
	if raw == "" {
		return s.calc.Now(), nil
	}
	return premium.ParseDate(raw, s.location)
}

func (s *Server) metadata(r *http.Request, start time.Time, input interface{}, at time.Time) *ResponseMetadata {
	return &ResponseMetadata{
		RequestID:     RequestID(r.Context()),
		InputHash:     computeInputHash(input, at),
		EngineVersion: s.version,
		DurationMs:    time.Since(start).Milliseconds(),
	}
}

// computeInputHash identifies the normalized input and evaluation date
func computeInputHash(input interface{}, at time.Time) string {
	data, _ := json.Marshal(struct {
		Input          interface{} `json:"input"`
		EvaluationDate string      `json:"evaluationDate"`
	}{input, at.Format(types.DateLayout)})
	return determinism.ComputeHash(data).Hex()
}
