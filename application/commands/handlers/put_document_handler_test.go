package handlers

import (
	"context"
	"errors"
	"testing"

	"fieldstore/application/commands"
	"fieldstore/domain/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestPutDocumentHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := new(MockDocumentRepository)
	mockEventBus := new(MockEventBus)
	logger := zap.NewNop()

	cmd := commands.PutDocumentCommand{
		DocumentID: uuid.New().String(),
		OwnerID:    "user123",
		Attributes: map[string]interface{}{
			"profile": map[string]interface{}{"displayName": "Ada"},
			"status":  "active",
		},
	}

	mockRepo.On("Put", ctx, mock.AnythingOfType("*entities.Document")).Return(nil)
	mockEventBus.On("Publish", ctx, mock.AnythingOfType("events.DocumentPut")).Return(nil)

	handler := NewPutDocumentHandler(mockRepo, mockEventBus, logger)

	// Act
	err := handler.Handle(ctx, cmd)

	// Assert
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockEventBus.AssertExpectations(t)
}

func TestPutDocumentHandler_Handle_InvalidDocumentID(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockDocumentRepository)
	mockEventBus := new(MockEventBus)
	logger := zap.NewNop()

	cmd := commands.PutDocumentCommand{
		DocumentID: "not-a-uuid",
		OwnerID:    "user123",
		Attributes: map[string]interface{}{"status": "active"},
	}

	handler := NewPutDocumentHandler(mockRepo, mockEventBus, logger)

	err := handler.Handle(ctx, cmd)

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestPutDocumentHandler_Handle_RepositoryError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockDocumentRepository)
	mockEventBus := new(MockEventBus)
	logger := zap.NewNop()

	cmd := commands.PutDocumentCommand{
		DocumentID: uuid.New().String(),
		OwnerID:    "user123",
		Attributes: map[string]interface{}{"status": "active"},
	}

	mockRepo.On("Put", ctx, mock.AnythingOfType("*entities.Document")).Return(errors.New("write failed"))

	handler := NewPutDocumentHandler(mockRepo, mockEventBus, logger)

	err := handler.Handle(ctx, cmd)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "write failed")
	mockEventBus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestPutDocumentHandler_Handle_PublishFailureDoesNotFailCommand(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockDocumentRepository)
	mockEventBus := new(MockEventBus)
	logger := zap.NewNop()

	cmd := commands.PutDocumentCommand{
		DocumentID: uuid.New().String(),
		OwnerID:    "user123",
		Attributes: map[string]interface{}{"status": "active"},
	}

	mockRepo.On("Put", ctx, mock.AnythingOfType("*entities.Document")).Return(nil)
	mockEventBus.On("Publish", ctx, mock.Anything).Return(errors.New("bus unavailable"))

	handler := NewPutDocumentHandler(mockRepo, mockEventBus, logger)

	// The write succeeded, so a lost event must not surface as an error
	err := handler.Handle(ctx, cmd)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestPutDocumentHandler_Handle_EventCarriesDocumentID(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockDocumentRepository)
	mockEventBus := new(MockEventBus)
	logger := zap.NewNop()

	documentID := uuid.New().String()
	cmd := commands.PutDocumentCommand{
		DocumentID: documentID,
		OwnerID:    "user123",
		Attributes: map[string]interface{}{"status": "active"},
	}

	mockRepo.On("Put", ctx, mock.AnythingOfType("*entities.Document")).Return(nil)
	mockEventBus.On("Publish", ctx, mock.MatchedBy(func(event events.DomainEvent) bool {
		put, ok := event.(events.DocumentPut)
		return ok && put.DocumentID == documentID && put.OwnerID == "user123" &&
			put.GetEventType() == "document.put"
	})).Return(nil)

	handler := NewPutDocumentHandler(mockRepo, mockEventBus, logger)

	err := handler.Handle(ctx, cmd)

	assert.NoError(t, err)
	mockEventBus.AssertExpectations(t)
}
