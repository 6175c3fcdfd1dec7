package vectorstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/pinecone-io/go-pinecone/pinecone"
	"google.golang.org/protobuf/types/known/structpb"
)

// PineconeStore is the legacy backend the classifier lineage was
// originally built on, kept available behind the same Store interface for
// deployments that already run a Pinecone index rather than Qdrant.
// cmd/router selects it over Qdrant when PINECONE_HOST is configured; see
// DESIGN.md.
type PineconeStore struct {
	apiKey string
	host   string

	once  sync.Once
	index *pinecone.IndexConnection
	err   error
}

// NewPineconeStore returns a store backed by a single Pinecone index/host.
func NewPineconeStore(apiKey, host string) *PineconeStore {
	return &PineconeStore{apiKey: apiKey, host: host}
}

func (s *PineconeStore) ensureIndex() (*pinecone.IndexConnection, error) {
	s.once.Do(func() {
		client, err := pinecone.NewClient(pinecone.NewClientParams{ApiKey: s.apiKey})
		if err != nil {
			s.err = fmt.Errorf("failed to initialize pinecone client: %w", err)
			return
		}
		idx, err := client.Index(pinecone.NewIndexConnParams{Host: s.host, Namespace: CollectionName})
		if err != nil {
			s.err = fmt.Errorf("failed to connect to pinecone index: %w", err)
			return
		}
		s.index = idx
	})
	return s.index, s.err
}

// EnsureCollection only opens the index connection for Pinecone: indexes
// are provisioned out of band, so nothing is created here.
func (s *PineconeStore) EnsureCollection(ctx context.Context, dimensions int) error {
	_, err := s.ensureIndex()
	return err
}

func (s *PineconeStore) Search(ctx context.Context, vector []float32, topK int) ([]Match, error) {
	idx, err := s.ensureIndex()
	if err != nil {
		return nil, err
	}

	resp, err := idx.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          vector,
		TopK:            uint32(topK),
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, fmt.Errorf("pinecone search failed: %w", err)
	}

	matches := make([]Match, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		payload := map[string]any{}
		if m.Vector != nil && m.Vector.Metadata != nil {
			payload = m.Vector.Metadata.AsMap()
		}
		matches = append(matches, Match{
			ID:      m.Vector.Id,
			Score:   m.Score,
			Payload: payload,
		})
	}
	return matches, nil
}

func (s *PineconeStore) Upsert(ctx context.Context, point Point) error {
	idx, err := s.ensureIndex()
	if err != nil {
		return err
	}

	metadataStruct, err := structpb.NewStruct(map[string]any{
		"category": point.Category,
		"text":     point.Text,
		"source":   point.Source,
		"addedAt":  point.AddedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to build pinecone metadata: %w", err)
	}

	vectors := []*pinecone.Vector{
		{
			Id:       point.ID,
			Values:   point.Vector,
			Metadata: &pinecone.Metadata{Fields: metadataStruct.Fields},
		},
	}

	_, err = idx.UpsertVectors(ctx, vectors)
	return err
}
