// Package vectorstore provides C2, the KNN vector store adapter used by
// the semantic classifier to recall previously-labelled prompts.
package vectorstore

import "context"

// CollectionName is the single collection the router reads and writes.
const CollectionName = "llm_router_examples"

// Point is one labelled example stored in the collection, matching the
// payload shape in spec §3/§6.
type Point struct {
	ID       string
	Vector   []float32
	Category string
	Text     string
	Source   string
	AddedAt  string
}

// Match is one KNN search hit.
type Match struct {
	ID       string
	Score    float32
	Payload  map[string]any
}

// Store is the capability the classifier depends on: KNN search over the
// collection and point upsert. Implementations must create the collection
// on first use via EnsureCollection.
type Store interface {
	// EnsureCollection creates the collection with the given vector
	// dimension and cosine distance if it does not already exist.
	EnsureCollection(ctx context.Context, dimensions int) error

	// Search returns up to topK nearest neighbours of vector, ordered by
	// descending similarity.
	Search(ctx context.Context, vector []float32, topK int) ([]Match, error)

	// Upsert stores or replaces a single labelled point.
	Upsert(ctx context.Context, point Point) error
}
