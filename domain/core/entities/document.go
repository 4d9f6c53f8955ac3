package entities

import (
	"errors"
	"time"

	"fieldstore/domain/core/valueobjects"
)

// Document is a schemaless document owned by a user. Attributes hold the
// decoded JSON payload; nested values stay as map[string]interface{} so
// field-path addressing can walk them.
type Document struct {
	id         valueobjects.DocumentID
	ownerID    string
	attributes map[string]interface{}
	createdAt  time.Time
	updatedAt  time.Time
}

// NewDocument creates a new document with a generated ID
func NewDocument(ownerID string, attributes map[string]interface{}) (*Document, error) {
	if ownerID == "" {
		return nil, errors.New("document owner cannot be empty")
	}
	if attributes == nil {
		attributes = make(map[string]interface{})
	}
	now := time.Now().UTC()
	return &Document{
		id:         valueobjects.NewDocumentID(),
		ownerID:    ownerID,
		attributes: attributes,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructDocument restores a document from persisted state
func ReconstructDocument(
	id valueobjects.DocumentID,
	ownerID string,
	attributes map[string]interface{},
	createdAt, updatedAt time.Time,
) *Document {
	if attributes == nil {
		attributes = make(map[string]interface{})
	}
	return &Document{
		id:         id,
		ownerID:    ownerID,
		attributes: attributes,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// ID returns the document identifier
func (d *Document) ID() valueobjects.DocumentID {
	return d.id
}

// OwnerID returns the owning user's ID
func (d *Document) OwnerID() string {
	return d.ownerID
}

// Attributes returns a shallow copy of the attribute map. Callers get a
// read-only view; mutating the copy does not touch the document.
func (d *Document) Attributes() map[string]interface{} {
	copied := make(map[string]interface{}, len(d.attributes))
	for k, v := range d.attributes {
		copied[k] = v
	}
	return copied
}

// CreatedAt returns the creation timestamp
func (d *Document) CreatedAt() time.Time {
	return d.createdAt
}

// UpdatedAt returns the last-modified timestamp
func (d *Document) UpdatedAt() time.Time {
	return d.updatedAt
}
