// Package searchindex mirrors documents into an Elasticsearch index.
package searchindex

import "context"

// Action represents the remote operation performed against the index.
type Action string

const (
	// ActionIndex indicates a document was created or replaced.
	ActionIndex Action = "index"
	// ActionDelete indicates a document was removed.
	ActionDelete Action = "delete"
)

// Indexer is the search index collaborator used by the sync handler.
type Indexer interface {
	Upsert(ctx context.Context, index, id string, document map[string]any) error
	Delete(ctx context.Context, index, id string) error
}
