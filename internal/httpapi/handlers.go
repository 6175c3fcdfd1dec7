// Package httpapi exposes the orchestrator over HTTP, per spec §6:
// POST /complete, POST /feedback, GET /health.
package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/routellm/llm-router/internal/types"
)

// Orchestrator is the subset of C11 the HTTP front door depends on.
type Orchestrator interface {
	Complete(ctx context.Context, prompt string, opts types.RoutingOptions) (*types.LlmResponse, error)
}

// FeedbackIngestor is the subset of C12 the HTTP front door depends on.
type FeedbackIngestor interface {
	Feedback(ctx context.Context, prompt string, category types.TaskCategory) error
}

// Server wires the three endpoints onto a chi router.
type Server struct {
	router    Orchestrator
	feedback  FeedbackIngestor
	modelName string
	mux       *chi.Mux
}

// NewServer builds the HTTP front door and registers its routes.
// modelName is reported by /health (spec §6: HF_MODEL_NAME).
func NewServer(router Orchestrator, feedback FeedbackIngestor, modelName string) *Server {
	s := &Server{router: router, feedback: feedback, modelName: modelName, mux: chi.NewRouter()}

	s.mux.Use(middleware.Logger)
	s.mux.Use(middleware.Recoverer)

	s.mux.Get("/health", s.handleHealth)
	s.mux.Post("/complete", s.handleComplete)
	s.mux.Post("/feedback", s.handleFeedback)

	return s
}

// ServeHTTP lets Server be used directly as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"model":  s.modelName,
		"ts":     time.Now().UTC().Format(time.RFC3339),
	})
}

type completeOptions struct {
	Strategy             string   `json:"strategy,omitempty"`
	Sensitivity          string   `json:"sensitivity,omitempty"`
	RequireContextWindow int      `json:"requireContextWindow,omitempty"`
	MaxCostPer1MTokens   *float64 `json:"maxCostPer1MTokens,omitempty"`
	ForceCategory        string   `json:"forceCategory,omitempty"`
	ForceModel           string   `json:"forceModel,omitempty"`
}

type completeRequest struct {
	Prompt  string           `json:"prompt"`
	Options *completeOptions `json:"options,omitempty"`
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", "invalid JSON body")
		return
	}

	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "prompt is required")
		return
	}

	options := req.Options
	if options == nil {
		options = &completeOptions{}
	}

	category := types.TaskCategory(options.ForceCategory)
	if options.ForceCategory != "" && !types.IsValidCategory(category) {
		writeError(w, http.StatusBadRequest, "validation_failed", "forceCategory must be one of "+joinCategories())
		return
	}

	opts := types.RoutingOptions{
		Strategy:             types.RoutingStrategyName(options.Strategy),
		Sensitivity:          types.PrivacySensitivity(options.Sensitivity),
		RequireContextWindow: options.RequireContextWindow,
		MaxCostPer1MTokens:   options.MaxCostPer1MTokens,
		ForceCategory:        category,
		ForceModel:           options.ForceModel,
	}

	resp, err := s.router.Complete(r.Context(), req.Prompt, opts)
	if err != nil {
		log.Printf("complete failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

type feedbackRequest struct {
	Prompt   string `json:"prompt"`
	Category string `json:"category"`
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", "invalid JSON body")
		return
	}

	if req.Prompt == "" || req.Category == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "prompt and category are required")
		return
	}

	if err := s.feedback.Feedback(r.Context(), req.Prompt, types.TaskCategory(req.Category)); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// writeError writes the spec §6 error body {error, code}.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"error": message, "code": code})
}

func joinCategories() string {
	out := ""
	for i, c := range types.Categories {
		if i > 0 {
			out += ", "
		}
		out += string(c)
	}
	return out
}
