package commands

import (
	"fieldstore/pkg/utils"
)

// PatchDocumentCommand applies a partial update to a document. FieldPaths
// may be empty, in which case the handler infers them from Data so that a
// partial body updates exactly the attributes it carries.
type PatchDocumentCommand struct {
	DocumentID string                 `json:"document_id" validate:"required,uuid"`
	OwnerID    string                 `json:"owner_id" validate:"required"`
	FieldPaths []string               `json:"field_paths"`
	Data       map[string]interface{} `json:"data" validate:"required"`
}

// Validate checks the command's invariants
func (c PatchDocumentCommand) Validate() error {
	return utils.ValidateStruct(c)
}
