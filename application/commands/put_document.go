package commands

import (
	"fieldstore/pkg/utils"
)

// PutDocumentCommand creates or fully replaces a document
type PutDocumentCommand struct {
	DocumentID string                 `json:"document_id" validate:"required,uuid"`
	OwnerID    string                 `json:"owner_id" validate:"required"`
	Attributes map[string]interface{} `json:"attributes" validate:"required"`
}

// Validate checks the command's invariants
func (c PutDocumentCommand) Validate() error {
	return utils.ValidateStruct(c)
}
