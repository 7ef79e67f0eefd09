// Package api exposes the intake classification engine over HTTP.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/helpdeskai/intake-engine/pkg/classification"
	"github.com/helpdeskai/intake-engine/pkg/config"
	"github.com/helpdeskai/intake-engine/pkg/observability"
)

// IntakeAPIServer holds the server state and dependencies.
type IntakeAPIServer struct {
	engine *classification.Engine
	config *config.EngineConfig
}

// ClassifyRequest is the body of every single-text classification endpoint.
type ClassifyRequest struct {
	Text string `json:"text"`

	// Type is only read by the category endpoint; it restricts category
	// candidates to the given request type ("incident" or "demande").
	Type string `json:"type,omitempty"`
}

// BatchClassifyRequest is the body of the batch endpoint.
type BatchClassifyRequest struct {
	Texts []string `json:"texts"`
}

// BatchClassifyResponse carries one intake result per input text plus batch
// statistics.
type BatchClassifyResponse struct {
	Results          []classification.IntakeResult `json:"results"`
	TotalCount       int                           `json:"total_count"`
	ProcessingTimeMs int64                         `json:"processing_time_ms"`
	Statistics       BatchStatistics               `json:"statistics"`
}

// BatchStatistics summarizes a batch run.
type BatchStatistics struct {
	CategoryDistribution map[string]int `json:"category_distribution"`
	AvgConfidence        float64        `json:"avg_confidence"`
	LowConfidenceCount   int            `json:"low_confidence_count"`
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
}

// NewServer creates an API server over an engine.
func NewServer(engine *classification.Engine, cfg *config.EngineConfig) *IntakeAPIServer {
	return &IntakeAPIServer{engine: engine, config: cfg}
}

// Handler returns the HTTP handler with all routes registered.
func (s *IntakeAPIServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/v1/classify/intake", s.handleIntake)
	mux.HandleFunc("/api/v1/classify/type", s.handleType)
	mux.HandleFunc("/api/v1/classify/category", s.handleCategory)
	mux.HandleFunc("/api/v1/classify/urgency", s.handleUrgency)
	mux.HandleFunc("/api/v1/classify/sentiment", s.handleSentiment)
	mux.HandleFunc("/api/v1/classify/complexity", s.handleComplexity)
	mux.HandleFunc("/api/v1/classify/batch", s.handleBatch)
	return mux
}

// Start serves the API on the given port, blocking until the server stops.
func (s *IntakeAPIServer) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	observability.Infof("Starting intake API server on %s", addr)
	server := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return server.ListenAndServe()
}

func (s *IntakeAPIServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// decodeClassifyRequest validates method and body for single-text endpoints.
func decodeClassifyRequest(w http.ResponseWriter, r *http.Request) (ClassifyRequest, string, bool) {
	requestID := uuid.NewString()
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", requestID)
		return ClassifyRequest{}, requestID, false
	}
	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", requestID)
		return ClassifyRequest{}, requestID, false
	}
	return req, requestID, true
}

func (s *IntakeAPIServer) handleIntake(w http.ResponseWriter, r *http.Request) {
	req, requestID, ok := decodeClassifyRequest(w, r)
	if !ok {
		return
	}
	start := time.Now()
	result, err := s.engine.ClassifyIntake(req.Text)
	if err != nil {
		observability.Errorf("request %s: intake classification failed: %v", requestID, err)
		writeError(w, http.StatusServiceUnavailable, "engine initialization failed", requestID)
		return
	}
	observability.Infof("request %s: intake classified type=%s category=%s urgency=%d in %v",
		requestID, result.Type.Type, result.Category.Category, result.Urgency.Urgency, time.Since(start))
	writeJSON(w, http.StatusOK, result)
}

func (s *IntakeAPIServer) handleType(w http.ResponseWriter, r *http.Request) {
	req, requestID, ok := decodeClassifyRequest(w, r)
	if !ok {
		return
	}
	result, err := s.engine.ClassifyType(req.Text)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "engine initialization failed", requestID)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *IntakeAPIServer) handleCategory(w http.ResponseWriter, r *http.Request) {
	req, requestID, ok := decodeClassifyRequest(w, r)
	if !ok {
		return
	}
	result, err := s.engine.ClassifyCategory(req.Text, req.Type)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "engine initialization failed", requestID)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *IntakeAPIServer) handleUrgency(w http.ResponseWriter, r *http.Request) {
	req, requestID, ok := decodeClassifyRequest(w, r)
	if !ok {
		return
	}
	result, err := s.engine.ClassifyUrgency(req.Text)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "engine initialization failed", requestID)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *IntakeAPIServer) handleSentiment(w http.ResponseWriter, r *http.Request) {
	req, requestID, ok := decodeClassifyRequest(w, r)
	if !ok {
		return
	}
	result, err := s.engine.ClassifySentiment(req.Text)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "engine initialization failed", requestID)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *IntakeAPIServer) handleComplexity(w http.ResponseWriter, r *http.Request) {
	req, requestID, ok := decodeClassifyRequest(w, r)
	if !ok {
		return
	}
	result, err := s.engine.ClassifyComplexity(req.Text)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "engine initialization failed", requestID)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *IntakeAPIServer) handleBatch(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", requestID)
		return
	}
	var req BatchClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", requestID)
		return
	}
	if len(req.Texts) == 0 {
		writeError(w, http.StatusBadRequest, "texts must not be empty", requestID)
		return
	}

	start := time.Now()
	resp := BatchClassifyResponse{
		Results:    make([]classification.IntakeResult, 0, len(req.Texts)),
		TotalCount: len(req.Texts),
		Statistics: BatchStatistics{CategoryDistribution: make(map[string]int)},
	}

	var confidenceSum float64
	for _, text := range req.Texts {
		result, err := s.engine.ClassifyIntake(text)
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, "engine initialization failed", requestID)
			return
		}
		resp.Results = append(resp.Results, result)
		resp.Statistics.CategoryDistribution[result.Category.Category]++
		confidenceSum += result.Category.Confidence
		if result.Category.Confidence < 0.5 {
			resp.Statistics.LowConfidenceCount++
		}
	}
	resp.Statistics.AvgConfidence = confidenceSum / float64(len(req.Texts))
	resp.ProcessingTimeMs = time.Since(start).Milliseconds()

	observability.Infof("request %s: batch of %d classified in %dms",
		requestID, resp.TotalCount, resp.ProcessingTimeMs)
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		observability.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message, requestID string) {
	writeJSON(w, status, ErrorResponse{Error: message, RequestID: requestID})
}
