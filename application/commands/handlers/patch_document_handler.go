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
	"fieldstore/pkg/fieldexpr"

	"go.uber.org/zap"
)

// PatchDocumentHandler handles the PatchDocumentCommand. It compiles the
// command's field paths (explicit or inferred from the payload) into a
// placeholder-based update expression and hands the triple to the
// repository.
type PatchDocumentHandler struct {
	docRepo  ports.DocumentRepository
	eventBus ports.EventBus
	maxDepth int
	logger   *zap.Logger
}

// NewPatchDocumentHandler creates a new handler instance
func NewPatchDocumentHandler(
	docRepo ports.DocumentRepository,
	eventBus ports.EventBus,
	maxDepth int,
	logger *zap.Logger,
) *PatchDocumentHandler {
	return &PatchDocumentHandler{
		docRepo:  docRepo,
		eventBus: eventBus,
		maxDepth: maxDepth,
		logger:   logger,
	}
}

// Handle executes the patch document command
func (h *PatchDocumentHandler) Handle(ctx context.Context, cmd bus.Command) error {
	patchCmd, ok := cmd.(commands.PatchDocumentCommand)
	if !ok {
		return apperrors.NewInternalError(fmt.Sprintf("unexpected command type %T", cmd))
	}

	fieldPaths := patchCmd.FieldPaths
	if len(fieldPaths) == 0 {
		fieldPaths = fieldexpr.InferFieldPaths(patchCmd.Data, h.maxDepth)
	}
	if len(fieldPaths) == 0 {
		return apperrors.NewValidationError("request contains no updatable fields")
	}

	update, err := fieldexpr.CompileUpdate(fieldPaths, patchCmd.Data, h.maxDepth)
	if err != nil {
		return err
	}

	h.logger.Debug("Compiled partial update",
		zap.String("documentID", patchCmd.DocumentID),
		zap.Strings("fieldPaths", fieldPaths),
		zap.String("expression", update.Expression),
	)

	if err := h.docRepo.UpdateFields(ctx, patchCmd.OwnerID, patchCmd.DocumentID, update); err != nil {
		h.logger.Error("Failed to patch document",
			zap.String("documentID", patchCmd.DocumentID),
			zap.String("ownerID", patchCmd.OwnerID),
			zap.Error(err),
		)
		return err
	}

	event := events.NewDocumentPatched(patchCmd.DocumentID, patchCmd.OwnerID, fieldPaths, time.Now().UTC())
	if err := h.eventBus.Publish(ctx, event); err != nil {
		h.logger.Warn("Failed to publish document.patched event",
			zap.String("documentID", patchCmd.DocumentID),
			zap.Error(err),
		)
	}

	return nil
}
