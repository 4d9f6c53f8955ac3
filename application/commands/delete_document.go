package commands

import (
	"fieldstore/pkg/utils"
)

// DeleteDocumentCommand removes a document entirely
type DeleteDocumentCommand struct {
	DocumentID string `json:"document_id" validate:"required,uuid"`
	OwnerID    string `json:"owner_id" validate:"required"`
}

// Validate checks the command's invariants
func (c DeleteDocumentCommand) Validate() error {
	return utils.ValidateStruct(c)
}
