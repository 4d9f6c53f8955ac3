package handlers

import (
	"encoding/json"
	"net/http"

	"fieldstore/application/commands"
	"fieldstore/application/commands/bus"
	"fieldstore/application/queries"
	querybus "fieldstore/application/queries/bus"
	"fieldstore/pkg/auth"
	"fieldstore/pkg/common"
	apperrors "fieldstore/pkg/errors"
	"fieldstore/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxBodyBytes caps document payload size
const maxBodyBytes = 1 << 20

// DocumentHandler handles document-related HTTP requests
type DocumentHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *apperrors.ErrorHandler
	logger     *zap.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     apperrors.NewErrorHandler(logger, false),
		logger:     logger,
	}
}

// CreateDocumentResponse represents the response for creating a document
type CreateDocumentResponse struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

// CreateDocument handles POST /documents
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var attrs map[string]interface{}
	if err := common.ParseJSONBody(r, &attrs, maxBodyBytes); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	documentID := uuid.New().String()

	cmd := commands.PutDocumentCommand{
		DocumentID: documentID,
		OwnerID:    userCtx.UserID,
		Attributes: attrs,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to create document",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		h.errors.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, CreateDocumentResponse{
		ID:        documentID,
		Message:   "Document created successfully",
		CreatedAt: utils.NowRFC3339(),
	})
}

// PutDocument handles PUT /documents/{documentID}
func (h *DocumentHandler) PutDocument(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")
	if _, err := uuid.Parse(documentID); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid document ID format")
		return
	}

	var attrs map[string]interface{}
	if err := common.ParseJSONBody(r, &attrs, maxBodyBytes); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cmd := commands.PutDocumentCommand{
		DocumentID: documentID,
		OwnerID:    userCtx.UserID,
		Attributes: attrs,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to put document",
			zap.String("documentID", documentID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		h.errors.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"message": "Document saved successfully",
		"id":      documentID,
	})
}

// GetDocument handles GET /documents/{documentID}. Repeated `field`
// query parameters restrict the read to those field paths.
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")
	if _, err := uuid.Parse(documentID); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid document ID format")
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	query := queries.GetDocumentQuery{
		DocumentID: documentID,
		OwnerID:    userCtx.UserID,
		FieldPaths: r.URL.Query()["field"],
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Failed to get document",
			zap.String("documentID", documentID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		h.errors.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// PatchDocument handles PATCH /documents/{documentID}. The body carries
// the new values; repeated `field` query parameters name the paths to
// touch. Without them the updated paths are inferred from the body, and
// a body key set to null removes that attribute.
func (h *DocumentHandler) PatchDocument(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")
	if _, err := uuid.Parse(documentID); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid document ID format")
		return
	}

	var data map[string]interface{}
	if err := common.ParseJSONBody(r, &data, maxBodyBytes); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cmd := commands.PatchDocumentCommand{
		DocumentID: documentID,
		OwnerID:    userCtx.UserID,
		FieldPaths: r.URL.Query()["field"],
		Data:       data,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to patch document",
			zap.String("documentID", documentID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		h.errors.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"message": "Document updated successfully",
		"id":      documentID,
	})
}

// DeleteDocument handles DELETE /documents/{documentID}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")
	if _, err := uuid.Parse(documentID); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid document ID format")
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cmd := commands.DeleteDocumentCommand{
		DocumentID: documentID,
		OwnerID:    userCtx.UserID,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to delete document",
			zap.String("documentID", documentID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListDocuments handles GET /documents
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	query := queries.ListDocumentsQuery{
		OwnerID: userCtx.UserID,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Failed to list documents",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		h.errors.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// Helper methods

func (h *DocumentHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *DocumentHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}
