package queries

import (
	"fieldstore/application/ports"
	"fieldstore/pkg/utils"
)

// ListDocumentsQuery lists the documents owned by a user
type ListDocumentsQuery struct {
	OwnerID string `json:"owner_id" validate:"required"`
}

// Validate checks the query's invariants
func (q ListDocumentsQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// ListDocumentsResult is the response shape for a document listing
type ListDocumentsResult struct {
	Documents []ports.DocumentSummary `json:"documents"`
	Count     int                     `json:"count"`
}
