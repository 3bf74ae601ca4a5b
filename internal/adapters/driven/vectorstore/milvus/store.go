// Package milvus provides a vector store adapter backed by a Milvus
// server. It suits document sets that outgrow the embedded SQLite scan,
// at the cost of running an external service.
package milvus

import (
	"context"
	"fmt"
	"time"

	"github.com/milvus-io/milvus/client/v2/column"
	"github.com/milvus-io/milvus/client/v2/entity"
	"github.com/milvus-io/milvus/client/v2/index"
	"github.com/milvus-io/milvus/client/v2/milvusclient"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
	"github.com/custodia-labs/sercha-chat/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-chat/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Default configuration values.
const (
	DefaultAddress = "localhost:19530"
	DefaultTimeout = 30 * time.Second
)

// Field names used in every collection schema.
const (
	fieldID        = "id"
	fieldSource    = "source"
	fieldContent   = "content"
	fieldEmbedding = "embedding"
)

const varCharMaxLength = "65535"

// Config holds configuration for the Milvus vector store.
type Config struct {
	// Address is the Milvus server address (default: localhost:19530).
	Address string

	// Username and Password are optional server credentials.
	Username string
	Password string

	// Dimensions is the embedding vector size (required).
	Dimensions int

	// Timeout bounds the initial connection (default: 30s).
	Timeout time.Duration
}

// Store is a Milvus-backed vector store.
type Store struct {
	client     *milvusclient.Client
	dimensions int
}

// NewStore connects to a Milvus server.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Dimensions <= 0 {
		return nil, fmt.Errorf("milvus: dimensions must be positive")
	}
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := milvusclient.New(connectCtx, &milvusclient.ClientConfig{
		Address:  cfg.Address,
		Username: cfg.Username,
		Password: cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("milvus: connecting to %s: %w", cfg.Address, err)
	}

	return &Store{client: client, dimensions: cfg.Dimensions}, nil
}

// Build creates the collection, inserts all records and flushes them to
// storage before returning.
func (s *Store) Build(ctx context.Context, collection string, records []driven.VectorRecord) error {
	if len(records) == 0 {
		return fmt.Errorf("%w: empty record set for collection %s", domain.ErrIndexBuild, collection)
	}

	if err := s.createCollection(ctx, collection); err != nil {
		return err
	}

	ids := make([]string, len(records))
	sources := make([]string, len(records))
	contents := make([]string, len(records))
	embeddings := make([][]float32, len(records))
	for i, record := range records {
		ids[i] = record.ID
		sources[i] = record.Source
		contents[i] = record.Content
		embeddings[i] = record.Embedding
	}

	insertOpt := milvusclient.NewColumnBasedInsertOption(collection,
		column.NewColumnVarChar(fieldID, ids),
		column.NewColumnVarChar(fieldSource, sources),
		column.NewColumnVarChar(fieldContent, contents),
		column.NewColumnFloatVector(fieldEmbedding, s.dimensions, embeddings),
	)
	if _, err := s.client.Insert(ctx, insertOpt); err != nil {
		return fmt.Errorf("milvus: inserting into %s: %w", collection, err)
	}

	// Flush so the records are durable and searchable.
	flushTask, err := s.client.Flush(ctx, milvusclient.NewFlushOption(collection))
	if err != nil {
		return fmt.Errorf("milvus: flushing %s: %w", collection, err)
	}
	if err := flushTask.Await(ctx); err != nil {
		return fmt.Errorf("milvus: awaiting flush of %s: %w", collection, err)
	}

	loadTask, err := s.client.LoadCollection(ctx, milvusclient.NewLoadCollectionOption(collection))
	if err != nil {
		return fmt.Errorf("milvus: loading %s: %w", collection, err)
	}
	if err := loadTask.Await(ctx); err != nil {
		return fmt.Errorf("milvus: awaiting load of %s: %w", collection, err)
	}
	return nil
}

// createCollection declares the schema and index for a new collection.
func (s *Store) createCollection(ctx context.Context, collection string) error {
	exists, err := s.client.HasCollection(ctx, milvusclient.NewHasCollectionOption(collection))
	if err != nil {
		return fmt.Errorf("milvus: checking collection %s: %w", collection, err)
	}
	if exists {
		return nil
	}

	schema := &entity.Schema{
		CollectionName: collection,
		Description:    "Document chunks with embeddings",
		Fields: []*entity.Field{
			{
				Name:       fieldID,
				DataType:   entity.FieldTypeVarChar,
				PrimaryKey: true,
				AutoID:     false,
				TypeParams: map[string]string{"max_length": "255"},
			},
			{
				Name:       fieldSource,
				DataType:   entity.FieldTypeVarChar,
				TypeParams: map[string]string{"max_length": "1024"},
			},
			{
				Name:       fieldContent,
				DataType:   entity.FieldTypeVarChar,
				TypeParams: map[string]string{"max_length": varCharMaxLength},
			},
			{
				Name:       fieldEmbedding,
				DataType:   entity.FieldTypeFloatVector,
				TypeParams: map[string]string{"dim": fmt.Sprintf("%d", s.dimensions)},
			},
		},
	}

	if err := s.client.CreateCollection(ctx, milvusclient.NewCreateCollectionOption(collection, schema)); err != nil {
		return fmt.Errorf("milvus: creating collection %s: %w", collection, err)
	}

	idx := index.NewHNSWIndex(entity.COSINE, 16, 200)
	indexTask, err := s.client.CreateIndex(ctx, milvusclient.NewCreateIndexOption(collection, fieldEmbedding, idx))
	if err != nil {
		return fmt.Errorf("milvus: creating index on %s: %w", collection, err)
	}
	if err := indexTask.Await(ctx); err != nil {
		return fmt.Errorf("milvus: awaiting index on %s: %w", collection, err)
	}
	return nil
}

// Search returns up to k records nearest to the query vector.
func (s *Store) Search(ctx context.Context, collection string, query []float32, k int) ([]driven.VectorHit, error) {
	exists, err := s.client.HasCollection(ctx, milvusclient.NewHasCollectionOption(collection))
	if err != nil {
		return nil, fmt.Errorf("milvus: checking collection %s: %w", collection, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: collection %s", domain.ErrNotFound, collection)
	}

	searchOpt := milvusclient.NewSearchOption(collection, k, []entity.Vector{entity.FloatVector(query)}).
		WithANNSField(fieldEmbedding).
		WithOutputFields(fieldSource, fieldContent)

	resultSets, err := s.client.Search(ctx, searchOpt)
	if err != nil {
		return nil, fmt.Errorf("milvus: searching %s: %w", collection, err)
	}

	var hits []driven.VectorHit
	for _, rs := range resultSets {
		sourceCol := rs.GetColumn(fieldSource)
		contentCol := rs.GetColumn(fieldContent)
		if sourceCol == nil || contentCol == nil {
			logger.Warn("Milvus result set for %s missing output fields", collection)
			continue
		}
		for i := 0; i < rs.ResultCount; i++ {
			source, err := sourceCol.GetAsString(i)
			if err != nil {
				return nil, fmt.Errorf("milvus: reading source at %d: %w", i, err)
			}
			content, err := contentCol.GetAsString(i)
			if err != nil {
				return nil, fmt.Errorf("milvus: reading content at %d: %w", i, err)
			}
			hits = append(hits, driven.VectorHit{
				Source:     source,
				Content:    content,
				Similarity: float64(rs.Scores[i]),
			})
		}
	}
	return hits, nil
}

// Drop removes a collection and its data.
func (s *Store) Drop(ctx context.Context, collection string) error {
	if err := s.client.DropCollection(ctx, milvusclient.NewDropCollectionOption(collection)); err != nil {
		return fmt.Errorf("milvus: dropping collection %s: %w", collection, err)
	}
	return nil
}

// Close disconnects from the server.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()
	return s.client.Close(ctx)
}
