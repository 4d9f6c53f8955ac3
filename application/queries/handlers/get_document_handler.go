package handlers

import (
	"context"
	"fmt"

	"fieldstore/application/ports"
	"fieldstore/application/queries"
	querybus "fieldstore/application/queries/bus"
	apperrors "fieldstore/pkg/errors"
	"fieldstore/pkg/fieldexpr"

	"go.uber.org/zap"
)

// GetDocumentHandler handles the GetDocumentQuery. Field paths compile to
// a projection expression so the storage engine only returns the
// requested attributes.
type GetDocumentHandler struct {
	docRepo  ports.DocumentRepository
	maxDepth int
	logger   *zap.Logger
}

// NewGetDocumentHandler creates a new handler instance
func NewGetDocumentHandler(docRepo ports.DocumentRepository, maxDepth int, logger *zap.Logger) *GetDocumentHandler {
	return &GetDocumentHandler{
		docRepo:  docRepo,
		maxDepth: maxDepth,
		logger:   logger,
	}
}

// Handle executes the get document query
func (h *GetDocumentHandler) Handle(ctx context.Context, query querybus.Query) (interface{}, error) {
	getQuery, ok := query.(queries.GetDocumentQuery)
	if !ok {
		return nil, apperrors.NewInternalError(fmt.Sprintf("unexpected query type %T", query))
	}

	projection, err := fieldexpr.CompileProjection(getQuery.FieldPaths, h.maxDepth)
	if err != nil {
		return nil, err
	}

	attributes, err := h.docRepo.Get(ctx, getQuery.OwnerID, getQuery.DocumentID, projection)
	if err != nil {
		return nil, err
	}

	return &queries.DocumentResult{
		DocumentID: getQuery.DocumentID,
		Attributes: attributes,
	}, nil
}
