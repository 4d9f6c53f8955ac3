package handlers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fieldstore/application/commands"
	"fieldstore/domain/events"
	apperrors "fieldstore/pkg/errors"
	"fieldstore/pkg/fieldexpr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestPatchDocumentHandler_Handle_ExplicitFieldPaths(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := new(MockDocumentRepository)
	mockEventBus := new(MockEventBus)
	logger := zap.NewNop()

	cmd := commands.PatchDocumentCommand{
		DocumentID: uuid.New().String(),
		OwnerID:    "user123",
		FieldPaths: []string{"profile.displayName", "settings.theme"},
		Data: map[string]interface{}{
			"profile": map[string]interface{}{"displayName": "Ada"},
		},
	}

	var captured *fieldexpr.Update
	mockRepo.On("UpdateFields", ctx, "user123", cmd.DocumentID, mock.MatchedBy(func(u *fieldexpr.Update) bool {
		captured = u
		return true
	})).Return(nil)
	mockEventBus.On("Publish", ctx, mock.AnythingOfType("events.DocumentPatched")).Return(nil)

	handler := NewPatchDocumentHandler(mockRepo, mockEventBus, 2, logger)

	// Act
	err := handler.Handle(ctx, cmd)

	// Assert
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// profile.displayName has a value so it lands in SET; settings.theme
	// is absent from the payload so it lands in REMOVE
	assert.Contains(t, captured.Expression, "SET #attr0_0.#attr0_1 = :val0")
	assert.Contains(t, captured.Expression, "REMOVE #attr1_0.#attr1_1")
	assert.NotContains(t, captured.Expression, "displayName")
	assert.NotContains(t, captured.Expression, "theme")
	assert.Equal(t, "Ada", captured.Values[":val0"])
}

func TestPatchDocumentHandler_Handle_InfersFieldPathsFromData(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockDocumentRepository)
	mockEventBus := new(MockEventBus)
	logger := zap.NewNop()

	cmd := commands.PatchDocumentCommand{
		DocumentID: uuid.New().String(),
		OwnerID:    "user123",
		Data: map[string]interface{}{
			"status": "archived",
			"profile": map[string]interface{}{
				"displayName": "Grace",
			},
		},
	}

	mockRepo.On("UpdateFields", ctx, "user123", cmd.DocumentID, mock.Anything).Return(nil)
	mockEventBus.On("Publish", ctx, mock.MatchedBy(func(event events.DomainEvent) bool {
		patched, ok := event.(events.DocumentPatched)
		return ok && assert.ObjectsAreEqual([]string{"profile.displayName", "status"}, patched.FieldPaths)
	})).Return(nil)

	handler := NewPatchDocumentHandler(mockRepo, mockEventBus, 2, logger)

	err := handler.Handle(ctx, cmd)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockEventBus.AssertExpectations(t)
}

func TestPatchDocumentHandler_Handle_NullValueRemovesNothing(t *testing.T) {
	// An explicit null is a present value: it must compile to SET, not
	// REMOVE, so the stored attribute becomes NULL.
	ctx := context.Background()
	mockRepo := new(MockDocumentRepository)
	mockEventBus := new(MockEventBus)
	logger := zap.NewNop()

	cmd := commands.PatchDocumentCommand{
		DocumentID: uuid.New().String(),
		OwnerID:    "user123",
		FieldPaths: []string{"note"},
		Data:       map[string]interface{}{"note": nil},
	}

	mockRepo.On("UpdateFields", ctx, "user123", cmd.DocumentID, mock.MatchedBy(func(u *fieldexpr.Update) bool {
		return strings.HasPrefix(u.Expression, "SET ") && !strings.Contains(u.Expression, "REMOVE")
	})).Return(nil)
	mockEventBus.On("Publish", ctx, mock.Anything).Return(nil)

	handler := NewPatchDocumentHandler(mockRepo, mockEventBus, 2, logger)

	err := handler.Handle(ctx, cmd)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestPatchDocumentHandler_Handle_EmptyPayload(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockDocumentRepository)
	mockEventBus := new(MockEventBus)
	logger := zap.NewNop()

	cmd := commands.PatchDocumentCommand{
		DocumentID: uuid.New().String(),
		OwnerID:    "user123",
		Data:       map[string]interface{}{},
	}

	handler := NewPatchDocumentHandler(mockRepo, mockEventBus, 2, logger)

	err := handler.Handle(ctx, cmd)

	assert.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	mockRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPatchDocumentHandler_Handle_InvalidFieldPath(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockDocumentRepository)
	mockEventBus := new(MockEventBus)
	logger := zap.NewNop()

	cmd := commands.PatchDocumentCommand{
		DocumentID: uuid.New().String(),
		OwnerID:    "user123",
		FieldPaths: []string{"profile..displayName"},
		Data:       map[string]interface{}{"profile": map[string]interface{}{}},
	}

	handler := NewPatchDocumentHandler(mockRepo, mockEventBus, 2, logger)

	err := handler.Handle(ctx, cmd)

	assert.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	mockRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPatchDocumentHandler_Handle_RepositoryNotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockDocumentRepository)
	mockEventBus := new(MockEventBus)
	logger := zap.NewNop()

	cmd := commands.PatchDocumentCommand{
		DocumentID: uuid.New().String(),
		OwnerID:    "user123",
		Data:       map[string]interface{}{"status": "active"},
	}

	mockRepo.On("UpdateFields", ctx, "user123", cmd.DocumentID, mock.Anything).
		Return(apperrors.NewNotFoundError("document"))

	handler := NewPatchDocumentHandler(mockRepo, mockEventBus, 2, logger)

	err := handler.Handle(ctx, cmd)

	assert.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	mockEventBus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestDeleteDocumentHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockDocumentRepository)
	mockEventBus := new(MockEventBus)
	logger := zap.NewNop()

	cmd := commands.DeleteDocumentCommand{
		DocumentID: uuid.New().String(),
		OwnerID:    "user123",
	}

	mockRepo.On("Delete", ctx, "user123", cmd.DocumentID).Return(nil)
	mockEventBus.On("Publish", ctx, mock.AnythingOfType("events.DocumentDeleted")).Return(nil)

	handler := NewDeleteDocumentHandler(mockRepo, mockEventBus, logger)

	err := handler.Handle(ctx, cmd)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockEventBus.AssertExpectations(t)
}

func TestDeleteDocumentHandler_Handle_RepositoryError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockDocumentRepository)
	mockEventBus := new(MockEventBus)
	logger := zap.NewNop()

	cmd := commands.DeleteDocumentCommand{
		DocumentID: uuid.New().String(),
		OwnerID:    "user123",
	}

	mockRepo.On("Delete", ctx, "user123", cmd.DocumentID).Return(errors.New("delete failed"))

	handler := NewDeleteDocumentHandler(mockRepo, mockEventBus, logger)

	err := handler.Handle(ctx, cmd)

	assert.Error(t, err)
	mockEventBus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
