// Package app wires the configured collaborators into the chat and browse services.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"bizfinder/internal/config"
	"bizfinder/internal/contextutil"
	"bizfinder/internal/interpret"
	"bizfinder/internal/llm"
	"bizfinder/internal/search"
	"bizfinder/internal/service"
	"bizfinder/internal/storage"
	"bizfinder/internal/vectorstore"
	"bizfinder/internal/vocab"
)

// App holds the process-wide components built from a Config.
type App struct {
	Config *config.Config
	DB     *sql.DB
	Store  *storage.ListingRepo
	Index  *vocab.Index

	Interpreter *interpret.Interpreter
	Fetcher     *search.Fetcher
	Generator   *llm.Client
	Chat        service.ChatService
	Browse      service.BrowseService

	closers []io.Closer
}

// OpenStore opens the configured database and returns the listings repository over it.
// SQLite schemas are migrated so a fresh file is usable.
func OpenStore(cfg *config.Config) (*sql.DB, *storage.ListingRepo, error) {
	db, err := storage.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if cfg.DBDriver == storage.DriverSQLite {
		if err := storage.Migrate(db, cfg.ListingsTable); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}
	repo, err := storage.NewListingRepo(db, cfg.DBDriver, cfg.ListingsTable)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, repo, nil
}

// New builds every component. The vocabulary index is complete when New returns.
// Any error is a startup failure; resources acquired so far are released.
func New(ctx context.Context, cfg *config.Config) (_ *App, err error) {
	logger := contextutil.LoggerFromContext(ctx)
	a := &App{Config: cfg}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	db, repo, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}
	a.DB, a.Store = db, repo
	a.closers = append(a.closers, db)
	logger.InfoContext(ctx, "Database initialized", "driver", cfg.DBDriver, "table", cfg.ListingsTable)

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, 0)
	embedder.BatchSize = cfg.EmbeddingBatchSize
	if err := checkEmbeddings(ctx, embedder, cfg.EmbeddingVectorSize); err != nil {
		return nil, err
	}
	embedder.ExpectedSize = cfg.EmbeddingVectorSize

	if cfg.LLMAutoload {
		if err := llm.NewModelLoader(cfg.LLMBaseURL).LoadModel(ctx, cfg.LLMModelName, nil); err != nil {
			logger.WarnContext(ctx, "model autoload failed; explanations may be unavailable",
				"model", cfg.LLMModelName, "error", err)
		} else {
			logger.InfoContext(ctx, "Model loaded", "model", cfg.LLMModelName)
		}
	}
	generator := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)
	generator.Temperature = cfg.LLMTemperature
	a.Generator = generator

	idx, err := vocab.Build(ctx, repo, embedder)
	if err != nil {
		return nil, fmt.Errorf("failed to build vocabulary: %w", err)
	}
	a.Index = idx

	scorer, err := a.newScorer(ctx, idx)
	if err != nil {
		return nil, err
	}

	a.Interpreter = interpret.New(idx, embedder, scorer, interpret.Options{
		SpellThreshold:    cfg.SpellThreshold,
		CityThreshold:     cfg.CityThreshold,
		SimilarCategories: cfg.SimilarCategories,
	})
	a.Fetcher = search.NewFetcher(repo, search.Options{
		CandidateLimit: cfg.CandidateLimit,
		MinReviews:     cfg.MinReviews,
		ResultLimit:    cfg.ResultLimit,
	})
	a.Chat = service.NewChatService(generator, a.Interpreter, a.Fetcher, service.ChatOptions{
		GeneratorTimeout: cfg.LLMTimeout,
		ResultLimit:      cfg.ResultLimit,
	})
	a.Browse = service.NewBrowseService(a.Interpreter, a.Fetcher, search.NewPageBuilder(a.Fetcher))

	return a, nil
}

func (a *App) newScorer(ctx context.Context, idx *vocab.Index) (interpret.LabelScorer, error) {
	if a.Config.VectorBackend != config.BackendQdrant {
		return vectorstore.NewMemoryScorer(idx), nil
	}

	qs, err := vectorstore.NewQdrantScorer(a.Config.QdrantURL, a.Config.QdrantCollectionPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}
	a.closers = append(a.closers, qs)
	if err := qs.Sync(ctx, idx); err != nil {
		return nil, fmt.Errorf("failed to sync label vectors to Qdrant: %w", err)
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "Qdrant collections ready",
		"categories", qs.Collection(vocab.Categories),
		"subcategories", qs.Collection(vocab.Subcategories),
	)
	return qs, nil
}

// checkEmbeddings checks the embeddings server's vector size when want is positive.
// An unreachable server is only a warning since classification degrades without it;
// a size mismatch is fatal.
func checkEmbeddings(ctx context.Context, embedder *llm.EmbeddingsClient, want int) error {
	if want <= 0 {
		return nil
	}
	logger := contextutil.LoggerFromContext(ctx)
	vectors, err := embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		logger.WarnContext(ctx, "embedding check failed", "error", err)
		return nil
	}
	if len(vectors) == 0 || len(vectors[0]) != want {
		got := 0
		if len(vectors) > 0 {
			got = len(vectors[0])
		}
		return fmt.Errorf("embedding vector size mismatch: expected %d, got %d", want, got)
	}
	logger.InfoContext(ctx, "Embedding client validated", "vector_size", want)
	return nil
}

// Close releases the database and any vector store connection.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
