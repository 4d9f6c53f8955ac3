package handlers

import (
	"context"
	"fmt"
	"time"

	"fieldstore/application/commands"
	"fieldstore/application/commands/bus"
	"fieldstore/application/ports"
	"fieldstore/domain/core/entities"
	"fieldstore/domain/core/valueobjects"
	"fieldstore/domain/events"
	apperrors "fieldstore/pkg/errors"

	"go.uber.org/zap"
)

// PutDocumentHandler handles the PutDocumentCommand
type PutDocumentHandler struct {
	docRepo  ports.DocumentRepository
	eventBus ports.EventBus
	logger   *zap.Logger
}

// NewPutDocumentHandler creates a new handler instance
func NewPutDocumentHandler(
	docRepo ports.DocumentRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *PutDocumentHandler {
	return &PutDocumentHandler{
		docRepo:  docRepo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Handle executes the put document command
func (h *PutDocumentHandler) Handle(ctx context.Context, cmd bus.Command) error {
	putCmd, ok := cmd.(commands.PutDocumentCommand)
	if !ok {
		return apperrors.NewInternalError(fmt.Sprintf("unexpected command type %T", cmd))
	}

	docID, err := valueobjects.NewDocumentIDFromString(putCmd.DocumentID)
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	now := time.Now().UTC()
	doc := entities.ReconstructDocument(docID, putCmd.OwnerID, putCmd.Attributes, now, now)

	if err := h.docRepo.Put(ctx, doc); err != nil {
		h.logger.Error("Failed to put document",
			zap.String("documentID", putCmd.DocumentID),
			zap.String("ownerID", putCmd.OwnerID),
			zap.Error(err),
		)
		return err
	}

	event := events.NewDocumentPut(putCmd.DocumentID, putCmd.OwnerID, now)
	if err := h.eventBus.Publish(ctx, event); err != nil {
		// The write succeeded; a lost event is logged, not surfaced.
		h.logger.Warn("Failed to publish document.put event",
			zap.String("documentID", putCmd.DocumentID),
			zap.Error(err),
		)
	}

	return nil
}
