package handlers

import (
	"context"

	"fieldstore/application/ports"
	"fieldstore/domain/core/entities"
	"fieldstore/domain/events"
	"fieldstore/pkg/fieldexpr"

	"github.com/stretchr/testify/mock"
)

// MockDocumentRepository is a testify mock of ports.DocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Put(ctx context.Context, doc *entities.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) Get(ctx context.Context, ownerID, documentID string, projection *fieldexpr.Projection) (map[string]interface{}, error) {
	args := m.Called(ctx, ownerID, documentID, projection)
	if v := args.Get(0); v != nil {
		return v.(map[string]interface{}), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentRepository) UpdateFields(ctx context.Context, ownerID, documentID string, update *fieldexpr.Update) error {
	args := m.Called(ctx, ownerID, documentID, update)
	return args.Error(0)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, ownerID, documentID string) error {
	args := m.Called(ctx, ownerID, documentID)
	return args.Error(0)
}

func (m *MockDocumentRepository) List(ctx context.Context, ownerID string) ([]ports.DocumentSummary, error) {
	args := m.Called(ctx, ownerID)
	if v := args.Get(0); v != nil {
		return v.([]ports.DocumentSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockEventBus is a testify mock of ports.EventBus
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, event events.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventBus) PublishBatch(ctx context.Context, evts []events.DomainEvent) error {
	args := m.Called(ctx, evts)
	return args.Error(0)
}
