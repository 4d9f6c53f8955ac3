package entities

import (
	"testing"
	"time"

	"fieldstore/domain/core/valueobjects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument(t *testing.T) {
	doc, err := NewDocument("user123", map[string]interface{}{"status": "active"})
	require.NoError(t, err)

	assert.False(t, doc.ID().IsZero())
	assert.Equal(t, "user123", doc.OwnerID())
	assert.Equal(t, "active", doc.Attributes()["status"])
	assert.Equal(t, doc.CreatedAt(), doc.UpdatedAt())
}

func TestNewDocument_EmptyOwner(t *testing.T) {
	_, err := NewDocument("", nil)
	assert.Error(t, err)
}

func TestNewDocument_NilAttributes(t *testing.T) {
	doc, err := NewDocument("user123", nil)
	require.NoError(t, err)
	assert.NotNil(t, doc.Attributes())
	assert.Empty(t, doc.Attributes())
}

func TestDocument_AttributesIsACopy(t *testing.T) {
	doc, err := NewDocument("user123", map[string]interface{}{"status": "active"})
	require.NoError(t, err)

	view := doc.Attributes()
	view["status"] = "tampered"

	assert.Equal(t, "active", doc.Attributes()["status"])
}

func TestReconstructDocument(t *testing.T) {
	id := valueobjects.NewDocumentID()
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	updated := created.Add(time.Hour)

	doc := ReconstructDocument(id, "user123", map[string]interface{}{"a": 1.0}, created, updated)

	assert.True(t, doc.ID().Equals(id))
	assert.Equal(t, created, doc.CreatedAt())
	assert.Equal(t, updated, doc.UpdatedAt())
}
