package queries

import (
	"fieldstore/pkg/utils"
)

// GetDocumentQuery reads a document, optionally restricted to a set of
// field paths (an empty list returns the whole document)
type GetDocumentQuery struct {
	DocumentID string   `json:"document_id" validate:"required,uuid"`
	OwnerID    string   `json:"owner_id" validate:"required"`
	FieldPaths []string `json:"field_paths"`
}

// Validate checks the query's invariants
func (q GetDocumentQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// DocumentResult is the response shape for a document read
type DocumentResult struct {
	DocumentID string                 `json:"document_id"`
	Attributes map[string]interface{} `json:"attributes"`
}
