// Package router provides C11, the orchestrator tying the classifier,
// catalogue, routing strategy, circuit breaker, retry driver, and audit
// sink into the request lifecycle described in spec §4.8.
package router

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/routellm/llm-router/internal/audit"
	"github.com/routellm/llm-router/internal/breaker"
	"github.com/routellm/llm-router/internal/catalog"
	"github.com/routellm/llm-router/internal/embedding"
	"github.com/routellm/llm-router/internal/provider"
	"github.com/routellm/llm-router/internal/retry"
	"github.com/routellm/llm-router/internal/strategy"
	"github.com/routellm/llm-router/internal/types"
)

// confidenceMin is CONFIDENCE_MIN from spec §4.8: below this, the
// orchestrator escalates to the reasoning category.
const confidenceMin = 0.5

// Classifier is the subset of C4 the orchestrator depends on.
type Classifier interface {
	Classify(ctx context.Context, prompt string) (*types.ClassificationResult, error)
}

// Router is C11: the request-lifecycle orchestrator.
type Router struct {
	classifier Classifier
	catalogue  catalog.Catalogue
	client     provider.Client
	auditSink  audit.Sink
	retryCfg   retry.Config

	breakers *breaker.Map
	tracker  *audit.Tracker

	closing atomic.Bool
}

// New wires the orchestrator's collaborators. The breaker map is created
// here and owned exclusively by the Router (spec §3).
func New(classifier Classifier, catalogue catalog.Catalogue, client provider.Client, sink audit.Sink) *Router {
	return &Router{
		classifier: classifier,
		catalogue:  catalogue,
		client:     client,
		auditSink:  sink,
		retryCfg:   retry.DefaultConfig(),
		breakers:   breaker.NewMap(func(format string, args ...any) { log.Printf(format, args...) }),
		tracker:    audit.NewTracker(),
	}
}

// Complete implements spec §4.8 end to end: classification, candidate
// assembly, fallback loop, audit.
func (r *Router) Complete(ctx context.Context, prompt string, opts types.RoutingOptions) (*types.LlmResponse, error) {
	if r.closing.Load() {
		return nil, fmt.Errorf("router is shutting down")
	}

	classification, err := r.classify(ctx, prompt, opts)
	if err != nil {
		return nil, err
	}

	candidates, err := r.assembleCandidates(opts, classification.Category)
	if err != nil {
		return nil, err
	}

	response, entry, err := r.fallbackLoop(ctx, prompt, classification, candidates)
	if err != nil {
		return nil, err
	}

	audit.Dispatch(r.auditSink, entry, r.tracker)

	return response, nil
}

// classify implements step 1 of spec §4.8: forceCategory bypass, or
// C4.classify plus the low-confidence escalation.
func (r *Router) classify(ctx context.Context, prompt string, opts types.RoutingOptions) (*types.ClassificationResult, error) {
	if opts.ForceCategory != "" {
		return &types.ClassificationResult{
			Category:             opts.ForceCategory,
			Confidence:           1,
			Scores:               map[types.TaskCategory]float64{},
			Signals:              nil,
			EstimatedInputTokens: embedding.EstimateTokens(prompt),
			Source:               types.SourceSemantic,
		}, nil
	}

	result, err := r.classifier.Classify(ctx, prompt)
	if err != nil {
		return nil, err
	}

	if result.Confidence < confidenceMin {
		log.Printf("classification confidence %.2f below minimum %.2f, escalating to reasoning", result.Confidence, confidenceMin)
		escalated := *result
		escalated.Category = types.CategoryReasoning
		return &escalated, nil
	}

	return result, nil
}

// assembleCandidates implements step 2 of spec §4.8.
func (r *Router) assembleCandidates(opts types.RoutingOptions, category types.TaskCategory) ([]types.ModelProfile, error) {
	var candidates []types.ModelProfile

	if opts.ForceModel != "" {
		found := false
		for _, m := range r.catalogue.GetAll() {
			if m.ID == opts.ForceModel {
				candidates = []types.ModelProfile{m}
				found = true
				break
			}
		}
		if !found {
			return nil, &types.UnknownModelError{Model: opts.ForceModel}
		}
	} else {
		sensitivity := opts.Sensitivity
		if sensitivity == "" {
			sensitivity = types.SensitivityPublic
		}

		filtered := r.catalogue.GetCandidates(sensitivity, opts.RequireContextWindow, opts.MaxCostPer1MTokens)
		ranked := strategy.ForName(opts.Strategy).Select(category, filtered)

		candidates = make([]types.ModelProfile, 0, len(ranked))
		for _, m := range ranked {
			if r.breakers.Get(m.ID).CanExecute() {
				candidates = append(candidates, m)
			}
		}
	}

	if len(candidates) == 0 {
		return nil, &types.NoModelsAvailableError{Category: category}
	}

	return candidates, nil
}

// fallbackLoop implements step 3/4 of spec §4.8.
func (r *Router) fallbackLoop(ctx context.Context, prompt string, classification *types.ClassificationResult, candidates []types.ModelProfile) (*types.LlmResponse, types.AuditEntry, error) {
	var lastErr error
	attempted := make([]string, 0, len(candidates))

	for _, model := range candidates {
		attempted = append(attempted, model.ID)
		b := r.breakers.Get(model.ID)

		value, err := retry.WithRetry(ctx, r.retryCfg, func(ctx context.Context) (any, error) {
			return r.client.Complete(ctx, prompt, model.ID)
		})

		if err != nil {
			b.RecordFailure()
			lastErr = err
			log.Printf("provider call failed for model %s: %v", model.ID, err)
			continue
		}

		result := value.(*provider.Result)
		b.RecordSuccess()

		inputTokens := result.Data.InputTokens
		if inputTokens == 0 {
			inputTokens = classification.EstimatedInputTokens
		}
		outputTokens := result.Data.OutputTokens

		costUsd := float64(inputTokens)/1e6*model.CostPer1MInput + float64(outputTokens)/1e6*model.CostPer1MOutput

		response := &types.LlmResponse{
			Content:          result.Data.Content,
			Model:            model.ID,
			Category:         classification.Category,
			EstimatedCostUsd: costUsd,
			LatencyMs:        result.LatencyMs,
			Usage:            types.Usage{InputTokens: inputTokens, OutputTokens: outputTokens},
			FallbackUsed:     model.ID != candidates[0].ID,
		}

		entry := types.AuditEntry{
			PromptHash:    embedding.HashPrompt(prompt),
			PromptPreview: audit.TruncatePreview(prompt),
			Category:      classification.Category,
			Confidence:    classification.Confidence,
			Source:        classification.Source,
			Model:         model.ID,
			CostUsd:       costUsd,
			LatencyMs:     result.LatencyMs,
		}

		return response, entry, nil
	}

	return nil, types.AuditEntry{}, &types.AllModelsFailedError{Attempted: attempted, LastErr: lastErr}
}

// Close makes every later Complete call fail with a shutdown error and
// waits (bounded by ctx) for in-flight audit dispatches to drain, restored
// from the teacher's graceful
// shutdown pattern (classifier.go backgroundTasks/closing).
func (r *Router) Close(ctx context.Context) error {
	r.closing.Store(true)
	return r.tracker.Wait(ctx)
}
