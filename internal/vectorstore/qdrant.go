package vectorstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// QdrantStore adapts Qdrant's gRPC client to the Store capability. The
// underlying connection is created lazily and kept as a singleton,
// mirroring the teacher's clients/pinecone pattern of a sync.Once-guarded
// shared client.
type QdrantStore struct {
	url       string
	namespace string

	once   sync.Once
	client *qdrant.Client
	dialErr error
}

// NewQdrantStore returns a store backed by the Qdrant instance at url,
// scoping all points into a single named collection.
func NewQdrantStore(url string) *QdrantStore {
	return &QdrantStore{url: url}
}

func (s *QdrantStore) ensureClient() (*qdrant.Client, error) {
	s.once.Do(func() {
		cfg, err := parseQdrantURL(s.url)
		if err != nil {
			s.dialErr = err
			return
		}
		client, err := qdrant.NewClient(cfg)
		if err != nil {
			s.dialErr = fmt.Errorf("failed to connect to qdrant: %w", err)
			return
		}
		s.client = client
	})
	return s.client, s.dialErr
}

func (s *QdrantStore) EnsureCollection(ctx context.Context, dimensions int) error {
	client, err := s.ensureClient()
	if err != nil {
		return err
	}

	exists, err := client.CollectionExists(ctx, CollectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}
	if exists {
		return nil
	}

	return client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: CollectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dimensions),
			Distance: qdrant.Distance_Cosine,
		}),
	})
}

func (s *QdrantStore) Search(ctx context.Context, vector []float32, topK int) ([]Match, error) {
	client, err := s.ensureClient()
	if err != nil {
		return nil, err
	}

	limit := uint64(topK)
	points, err := client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: CollectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant search failed: %w", err)
	}

	matches := make([]Match, 0, len(points))
	for _, p := range points {
		matches = append(matches, Match{
			ID:      pointIDString(p.Id),
			Score:   p.Score,
			Payload: payloadToMap(p.Payload),
		})
	}
	return matches, nil
}

func (s *QdrantStore) Upsert(ctx context.Context, point Point) error {
	client, err := s.ensureClient()
	if err != nil {
		return err
	}

	id := point.ID
	if id == "" {
		id = uuid.New().String()
	}

	payload := qdrant.NewValueMap(map[string]any{
		"category": point.Category,
		"text":     point.Text,
		"source":   point.Source,
		"addedAt":  point.AddedAt,
	})

	_, err = client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: CollectionName,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewID(id),
				Vectors: qdrant.NewVectors(point.Vector...),
				Payload: payload,
			},
		},
	})
	return err
}

func payloadToMap(payload map[string]*qdrant.Value) map[string]any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		switch {
		case v == nil:
			out[k] = nil
		case v.GetStringValue() != "":
			out[k] = v.GetStringValue()
		case v.GetIntegerValue() != 0:
			out[k] = v.GetIntegerValue()
		case v.GetDoubleValue() != 0:
			out[k] = v.GetDoubleValue()
		case v.GetBoolValue():
			out[k] = v.GetBoolValue()
		default:
			out[k] = v.String()
		}
	}
	return out
}

func pointIDString(id *qdrant.PointId) string {
	if id == nil {
		return ""
	}
	if uid := id.GetUuid(); uid != "" {
		return uid
	}
	return fmt.Sprintf("%d", id.GetNum())
}

func parseQdrantURL(raw string) (*qdrant.Config, error) {
	if raw == "" {
		return nil, fmt.Errorf("QDRANT_URL must be set")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return nil, fmt.Errorf("invalid QDRANT_URL %q", raw)
	}
	cfg := &qdrant.Config{Host: u.Hostname(), UseTLS: u.Scheme == "https"}
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid QDRANT_URL port %q", p)
		}
		cfg.Port = port
	}
	return cfg, nil
}
