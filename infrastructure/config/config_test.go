package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "fieldstore", cfg.DynamoDBTable)
	assert.Equal(t, 2, cfg.FieldMaxDepth)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("TABLE_NAME", "documents-prod")
	t.Setenv("FIELD_MAX_DEPTH", "4")
	t.Setenv("ENABLE_METRICS", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "documents-prod", cfg.DynamoDBTable)
	assert.Equal(t, 4, cfg.FieldMaxDepth)
	assert.True(t, cfg.EnableMetrics)
}

func TestLoadConfig_InvalidDepth(t *testing.T) {
	t.Setenv("FIELD_MAX_DEPTH", "0")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate_ProductionRequiresJWTSecret(t *testing.T) {
	cfg := &Config{
		Environment:   "production",
		FieldMaxDepth: 2,
		DynamoDBTable: "documents",
		EventBusName:  "events",
	}

	assert.Error(t, cfg.Validate())

	cfg.JWTSecret = "secret"
	assert.NoError(t, cfg.Validate())
}
