// Command router boots the LLM routing service: either as a long-running
// HTTP server ("serve") or as a one-shot operator correction ("feedback"),
// following the teacher's cobra-driven cmd/ layout generalised from a
// single-binary CLI to a service with a background server subcommand.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/routellm/llm-router/internal/audit"
	"github.com/routellm/llm-router/internal/cache"
	"github.com/routellm/llm-router/internal/catalog"
	"github.com/routellm/llm-router/internal/classifier"
	"github.com/routellm/llm-router/internal/config"
	"github.com/routellm/llm-router/internal/embedding"
	"github.com/routellm/llm-router/internal/feedback"
	"github.com/routellm/llm-router/internal/httpapi"
	"github.com/routellm/llm-router/internal/provider"
	"github.com/routellm/llm-router/internal/router"
	"github.com/routellm/llm-router/internal/types"
	"github.com/routellm/llm-router/internal/vectorstore"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "router",
		Short:         "LLM prompt routing service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newFeedbackCommand())

	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newFeedbackCommand() *cobra.Command {
	var prompt, category string

	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Record an operator correction for a misclassified prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeedback(cmd.Context(), prompt, category)
		},
	}

	cmd.Flags().StringVar(&prompt, "prompt", "", "the prompt text that was misclassified")
	cmd.Flags().StringVar(&category, "category", "", "the correct category")
	_ = cmd.MarkFlagRequired("prompt")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

// newVectorStore selects Pinecone when a Pinecone host is configured,
// else falls back to Qdrant, the documented default (spec §6: QDRANT_URL).
func newVectorStore(cfg *config.Config) vectorstore.Store {
	if cfg.PineconeHost != "" {
		return vectorstore.NewPineconeStore(cfg.PineconeKey, cfg.PineconeHost)
	}
	return vectorstore.NewQdrantStore(cfg.QdrantURL)
}

// bootClassifier wires C1-C4 (embedding runtime, vector store, cache,
// classifier), warming up the embedding runtime exactly once and ensuring
// the vector collection exists, per spec §5/§9 boot sequence.
func bootClassifier(ctx context.Context, cfg *config.Config) (*classifier.Classifier, error) {
	emb := embedding.NewVoyageRuntime(cfg.VoyageAPIKey)
	if err := emb.WarmUp(ctx); err != nil {
		return nil, fmt.Errorf("embedding warm-up failed: %w", err)
	}

	store := newVectorStore(cfg)
	redisCache, err := cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	c := classifier.New(emb, store, redisCache)
	if err := c.EnsureCollection(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure vector collection: %w", err)
	}

	return c, nil
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	c, err := bootClassifier(ctx, cfg)
	if err != nil {
		return err
	}

	providerName := catalog.ProviderName(cfg.Provider)
	cat := catalog.ForProvider(providerName)
	client := provider.ForProvider(providerName, cfg.APIKeyFor(cfg.Provider))

	sink, err := audit.NewPostgresSink(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect audit sink: %w", err)
	}
	defer sink.Close()

	r := router.New(c, cat, client, sink)
	ingestor := feedback.New(c)

	server := httpapi.NewServer(r, ingestor, cfg.HFModelName)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server,
	}

	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("router listening on :%s (provider=%s)", cfg.Port, cfg.Provider)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-shutdownCtx.Done():
		log.Println("shutting down")
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(drainCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	if err := r.Close(drainCtx); err != nil {
		log.Printf("audit drain error: %v", err)
	}

	return nil
}

func runFeedback(ctx context.Context, prompt, category string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	c, err := bootClassifier(ctx, cfg)
	if err != nil {
		return err
	}

	ingestor := feedback.New(c)
	if err := ingestor.Feedback(ctx, prompt, types.TaskCategory(category)); err != nil {
		return fmt.Errorf("failed to record feedback: %w", err)
	}

	fmt.Printf("recorded correction: category=%s bursts=%d\n", category, ingestor.BurstCount())
	return nil
}
