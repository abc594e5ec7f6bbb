// Package api - API types for premium calculation
// These types define the contract for the /premium-calculations endpoints.
// API is stateless and deterministic for a given evaluation date.
package api

import (
	"premium-estimator/core/explanation"
	"premium-estimator/core/output"
	"premium-estimator/core/rating"
	"premium-estimator/core/types"
)

// EstimateRequest is the input to POST /premium-calculations/estimate and
// /premium-calculations/estimate-range.
type EstimateRequest = types.QuoteRequest

// RatingRequest is the input to POST /premium-calculations/rating
type RatingRequest struct {
	rating.Input

	// EvaluationDate optionally pins the date (YYYY-MM-DD)
	EvaluationDate string `json:"evaluationDate,omitempty"`
}

// EstimateResponse is a premium estimate plus request metadata
type EstimateResponse struct {
	*output.EstimateView
	Explanation *explanation.PremiumExplanation `json:"explanation,omitempty"`
	Metadata    *ResponseMetadata               `json:"metadata"`
}

// WorksheetResponse is a rating worksheet plus request metadata
type WorksheetResponse struct {
	*output.WorksheetView
	Metadata *ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes how a response was produced
type ResponseMetadata struct {
	RequestID     string `json:"requestId"`
	InputHash     string `json:"inputHash"`
	EngineVersion string `json:"engineVersion"`
	DurationMs    int64  `json:"durationMs"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error     ErrorBody `json:"error"`
	RequestID string    `json:"requestId"`
}

// ErrorBody carries a machine-readable code and a message
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes that are not internal/errors types
const (
	CodeInvalidJSON     = "INVALID_JSON"
	CodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status           string `json:"status"`
	Version          string `json:"version"`
	RateTableVersion string `json:"rateTableVersion"`
	Time             string `json:"time"`
}
