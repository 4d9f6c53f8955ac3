package handlers

import (
	"context"
	"fmt"
	"time"

	"fieldstore/application/commands"
	"fieldstore/application/commands/bus"
	"fieldstore/application/ports"
	"fieldstore/domain/events"
	apperrors "fieldstore/pkg/errors"

	"go.uber.org/zap"
)

// DeleteDocumentHandler handles the DeleteDocumentCommand
type DeleteDocumentHandler struct {
	docRepo  ports.DocumentRepository
	eventBus ports.EventBus
	logger   *zap.Logger
}

// NewDeleteDocumentHandler creates a new handler instance
func NewDeleteDocumentHandler(
	docRepo ports.DocumentRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *DeleteDocumentHandler {
	return &DeleteDocumentHandler{
		docRepo:  docRepo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Handle executes the delete document command
func (h *DeleteDocumentHandler) Handle(ctx context.Context, cmd bus.Command) error {
	deleteCmd, ok := cmd.(commands.DeleteDocumentCommand)
	if !ok {
		return apperrors.NewInternalError(fmt.Sprintf("unexpected command type %T", cmd))
	}

	if err := h.docRepo.Delete(ctx, deleteCmd.OwnerID, deleteCmd.DocumentID); err != nil {
		h.logger.Error("Failed to delete document",
			zap.String("documentID", deleteCmd.DocumentID),
			zap.String("ownerID", deleteCmd.OwnerID),
			zap.Error(err),
		)
		return err
	}

	event := events.NewDocumentDeleted(deleteCmd.DocumentID, deleteCmd.OwnerID, time.Now().UTC())
	if err := h.eventBus.Publish(ctx, event); err != nil {
		h.logger.Warn("Failed to publish document.deleted event",
			zap.String("documentID", deleteCmd.DocumentID),
			zap.Error(err),
		)
	}

	return nil
}
