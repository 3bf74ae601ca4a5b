// Sercha Chat is a local retrieval-augmented document assistant.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/sercha-chat/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sercha-chat/internal/adapters/driven/docstore/filesystem"
	ollamaembed "github.com/custodia-labs/sercha-chat/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/sercha-chat/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/custodia-labs/sercha-chat/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/custodia-labs/sercha-chat/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/sercha-chat/internal/adapters/driven/llm/openai"
	memorystore "github.com/custodia-labs/sercha-chat/internal/adapters/driven/vectorstore/memory"
	milvusstore "github.com/custodia-labs/sercha-chat/internal/adapters/driven/vectorstore/milvus"
	sqlitestore "github.com/custodia-labs/sercha-chat/internal/adapters/driven/vectorstore/sqlite"
	"github.com/custodia-labs/sercha-chat/internal/adapters/driving/cli"
	"github.com/custodia-labs/sercha-chat/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-chat/internal/core/services"
	"github.com/custodia-labs/sercha-chat/internal/loaders"
	"github.com/custodia-labs/sercha-chat/internal/loaders/csv"
	"github.com/custodia-labs/sercha-chat/internal/loaders/docx"
	"github.com/custodia-labs/sercha-chat/internal/loaders/pdf"
	"github.com/custodia-labs/sercha-chat/internal/loaders/plaintext"
	"github.com/custodia-labs/sercha-chat/internal/logger"
	"github.com/custodia-labs/sercha-chat/internal/splitter"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// .env holds provider API keys during development
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	prompts, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("opening prompt store: %w", err)
	}

	docs, err := filesystem.NewDocStore(cfg.GetString("documents.dir"))
	if err != nil {
		return fmt.Errorf("opening document store: %w", err)
	}

	registry := loaders.NewRegistry()
	registry.Register(plaintext.New())
	registry.Register(pdf.New())
	registry.Register(docx.New())
	registry.Register(csv.New())

	var splitOpts []splitter.Option
	if size := cfg.GetInt("splitter.chunk_size"); size > 0 {
		splitOpts = append(splitOpts, splitter.WithChunkSize(size))
	}
	if overlap := cfg.GetInt("splitter.overlap"); overlap > 0 {
		splitOpts = append(splitOpts, splitter.WithOverlap(overlap))
	}
	split := splitter.New(splitOpts...)

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return err
	}

	llm, err := buildLLM(cfg)
	if err != nil {
		return err
	}

	vectors, err := buildVectorStore(ctx, cfg, embedder.Dimensions())
	if err != nil {
		return err
	}

	library := services.NewLibrary(docs, registry, split, embedder, vectors, llm)
	defer func() {
		if err := library.Close(); err != nil {
			logger.Warn("close: %v", err)
		}
	}()

	if k := cfg.GetInt("chat.top_k"); k > 0 {
		library.SetTopK(k)
	}
	if rps := cfg.GetInt("embedding.requests_per_second"); rps > 0 {
		library.SetEmbedLimit(float64(rps))
	}
	if prompt, err := prompts.Load(driven.PromptRAGSystem); err == nil {
		library.SetSystemPrompt(prompt)
	}

	cli.SetVersion(version)
	cli.SetServices(&cli.Services{
		Library:   library,
		Assistant: library,
		Config:    cfg,
		Prompts:   prompts,
	})
	cli.SetChatConfig(&cli.ChatConfig{WatchDir: docs.Dir()})

	return cli.ExecuteContext(ctx)
}

func buildEmbedder(cfg driven.ConfigStore) (driven.EmbeddingService, error) {
	provider := cfg.GetString("embedding.provider")
	if provider == "" {
		provider = "ollama"
	}

	switch provider {
	case "openai":
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     firstNonEmpty(cfg.GetString("embedding.api_key"), os.Getenv("OPENAI_API_KEY")),
			BaseURL:    cfg.GetString("embedding.base_url"),
			Model:      cfg.GetString("embedding.model"),
			Dimensions: cfg.GetInt("embedding.dimensions"),
		})
	case "ollama":
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    cfg.GetString("embedding.base_url"),
			Model:      cfg.GetString("embedding.model"),
			Dimensions: cfg.GetInt("embedding.dimensions"),
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q (supported: openai, ollama)", provider)
	}
}

func buildLLM(cfg driven.ConfigStore) (driven.LLMService, error) {
	provider := cfg.GetString("llm.provider")
	if provider == "" {
		provider = "ollama"
	}

	switch provider {
	case "openai":
		return openaillm.NewLLMService(openaillm.Config{
			APIKey:  firstNonEmpty(cfg.GetString("llm.api_key"), os.Getenv("OPENAI_API_KEY")),
			BaseURL: cfg.GetString("llm.base_url"),
			Model:   cfg.GetString("llm.model"),
		})
	case "anthropic":
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  firstNonEmpty(cfg.GetString("llm.api_key"), os.Getenv("ANTHROPIC_API_KEY")),
			BaseURL: cfg.GetString("llm.base_url"),
			Model:   cfg.GetString("llm.model"),
		})
	case "ollama":
		return ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: cfg.GetString("llm.base_url"),
			Model:   cfg.GetString("llm.model"),
		}), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q (supported: openai, anthropic, ollama)", provider)
	}
}

func buildVectorStore(ctx context.Context, cfg driven.ConfigStore, dimensions int) (driven.VectorStore, error) {
	backend := cfg.GetString("vectorstore.backend")
	if backend == "" {
		backend = "sqlite"
	}

	switch backend {
	case "sqlite":
		store, err := sqlitestore.NewStore(cfg.GetString("vectorstore.data_dir"))
		if err != nil {
			return nil, err
		}
		// Collections persisted by a previous process are never
		// rebound; each process rebuilds into a fresh collection.
		if err := store.DropAll(ctx); err != nil {
			logger.Warn("startup cleanup: %v", err)
		}
		return store, nil
	case "milvus":
		connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		return milvusstore.NewStore(connectCtx, milvusstore.Config{
			Address:    cfg.GetString("vectorstore.milvus.address"),
			Username:   cfg.GetString("vectorstore.milvus.username"),
			Password:   cfg.GetString("vectorstore.milvus.password"),
			Dimensions: dimensions,
		})
	case "memory":
		return memorystore.NewStore(), nil
	default:
		return nil, errors.New("unknown vectorstore backend (supported: sqlite, milvus, memory)")
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
