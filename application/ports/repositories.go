package ports

import (
	"context"

	"fieldstore/domain/core/entities"
	"fieldstore/domain/events"
	"fieldstore/pkg/fieldexpr"
)

// DocumentSummary is the metadata-level view returned by listings
type DocumentSummary struct {
	DocumentID string `json:"document_id"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// DocumentRepository persists documents and serves partial reads/writes.
// Compiled expressions are passed through opaquely: the repository never
// inspects placeholder tokens, it hands them to the storage engine as-is.
type DocumentRepository interface {
	// Put creates or fully replaces a document
	Put(ctx context.Context, doc *entities.Document) error

	// Get returns a document's attributes, restricted to the projection
	// when one is supplied (nil projection returns all attributes)
	Get(ctx context.Context, ownerID, documentID string, projection *fieldexpr.Projection) (map[string]interface{}, error)

	// UpdateFields applies a compiled partial update to an existing document
	UpdateFields(ctx context.Context, ownerID, documentID string, update *fieldexpr.Update) error

	// Delete removes a document
	Delete(ctx context.Context, ownerID, documentID string) error

	// List returns summaries of all documents owned by a user
	List(ctx context.Context, ownerID string) ([]DocumentSummary, error)
}

// EventBus publishes domain events
type EventBus interface {
	Publish(ctx context.Context, event events.DomainEvent) error
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// Cache provides read-path caching
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	Set(ctx context.Context, key string, value interface{}, ttl int) error
	Delete(ctx context.Context, key string) error
}
