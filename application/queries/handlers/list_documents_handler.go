package handlers

import (
	"context"
	"fmt"

	"fieldstore/application/ports"
	"fieldstore/application/queries"
	querybus "fieldstore/application/queries/bus"
	apperrors "fieldstore/pkg/errors"

	"go.uber.org/zap"
)

// ListDocumentsHandler handles the ListDocumentsQuery
type ListDocumentsHandler struct {
	docRepo ports.DocumentRepository
	logger  *zap.Logger
}

// NewListDocumentsHandler creates a new handler instance
func NewListDocumentsHandler(docRepo ports.DocumentRepository, logger *zap.Logger) *ListDocumentsHandler {
	return &ListDocumentsHandler{
		docRepo: docRepo,
		logger:  logger,
	}
}

// Handle executes the list documents query
func (h *ListDocumentsHandler) Handle(ctx context.Context, query querybus.Query) (interface{}, error) {
	listQuery, ok := query.(queries.ListDocumentsQuery)
	if !ok {
		return nil, apperrors.NewInternalError(fmt.Sprintf("unexpected query type %T", query))
	}

	summaries, err := h.docRepo.List(ctx, listQuery.OwnerID)
	if err != nil {
		return nil, err
	}

	return &queries.ListDocumentsResult{
		Documents: summaries,
		Count:     len(summaries),
	}, nil
}
