package events

import (
	"time"
)

// SourceService identifies this service on the event bus
const SourceService = "fieldstore"

// DomainEvent is the base interface for all domain events.
// Events represent something that has happened in the past.
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// Document Events

// DocumentPut is raised when a document is created or fully replaced
type DocumentPut struct {
	BaseEvent
	DocumentID string `json:"document_id"`
	OwnerID    string `json:"owner_id"`
}

// NewDocumentPut creates a DocumentPut event
func NewDocumentPut(documentID, ownerID string, timestamp time.Time) DocumentPut {
	return DocumentPut{
		BaseEvent: BaseEvent{
			AggregateID: documentID,
			EventType:   "document.put",
			Timestamp:   timestamp,
			Version:     1,
		},
		DocumentID: documentID,
		OwnerID:    ownerID,
	}
}

// DocumentPatched is raised when a subset of a document's attributes is
// set or removed
type DocumentPatched struct {
	BaseEvent
	DocumentID string   `json:"document_id"`
	OwnerID    string   `json:"owner_id"`
	FieldPaths []string `json:"field_paths"`
}

// NewDocumentPatched creates a DocumentPatched event
func NewDocumentPatched(documentID, ownerID string, fieldPaths []string, timestamp time.Time) DocumentPatched {
	return DocumentPatched{
		BaseEvent: BaseEvent{
			AggregateID: documentID,
			EventType:   "document.patched",
			Timestamp:   timestamp,
			Version:     1,
		},
		DocumentID: documentID,
		OwnerID:    ownerID,
		FieldPaths: fieldPaths,
	}
}

// DocumentDeleted is raised when a document is deleted
type DocumentDeleted struct {
	BaseEvent
	DocumentID string `json:"document_id"`
	OwnerID    string `json:"owner_id"`
}

// NewDocumentDeleted creates a DocumentDeleted event
func NewDocumentDeleted(documentID, ownerID string, timestamp time.Time) DocumentDeleted {
	return DocumentDeleted{
		BaseEvent: BaseEvent{
			AggregateID: documentID,
			EventType:   "document.deleted",
			Timestamp:   timestamp,
			Version:     1,
		},
		DocumentID: documentID,
		OwnerID:    ownerID,
	}
}
