// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
app:
  name: card-advisor
  environment: test
server:
  address: ":9090"
catalog:
  source: file
  path: data/cards.json
genai:
  api_key: test-key
  model: gemini-2.0-flash
scoring:
  fee_penalty_enabled: true
  top_k: 3
logging:
  level: debug
  format: console
`)

	cfg, err := LoadFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "file", cfg.Catalog.Source)
	assert.Equal(t, "test-key", cfg.GenAI.APIKey)
	assert.True(t, cfg.Scoring.FeePenaltyEnabled)
	assert.Equal(t, 3, cfg.Scoring.TopK)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfigFile(t, `
genai:
  api_key: test-key
`)

	cfg, err := LoadFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, "card-advisor", cfg.App.Name)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "file", cfg.Catalog.Source)
	assert.Equal(t, "data/transformed_cards.json", cfg.Catalog.Path)
	assert.Equal(t, "gemini-2.0-flash", cfg.GenAI.Model)
	assert.Equal(t, 60000, cfg.GenAI.Timeout)
	assert.Equal(t, 5, cfg.Scoring.TopK)
	assert.False(t, cfg.Scoring.FeePenaltyEnabled)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromFile_MissingAPIKey(t *testing.T) {
	path := writeConfigFile(t, `
catalog:
  source: file
  path: data/cards.json
`)

	_, err := LoadFromFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "genai.api_key")
}

func TestLoadFromFile_APIKeyFromEnv(t *testing.T) {
	t.Setenv("GENAI_API_KEY", "env-key")
	path := writeConfigFile(t, `
catalog:
  source: file
  path: data/cards.json
`)

	cfg, err := LoadFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.GenAI.APIKey)
}

func TestLoadFromFile_InvalidCatalogSource(t *testing.T) {
	path := writeConfigFile(t, `
genai:
  api_key: test-key
catalog:
  source: mongodb
`)

	_, err := LoadFromFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog.source")
}

func TestLoadFromFile_PostgresSourceRequiresConnection(t *testing.T) {
	path := writeConfigFile(t, `
genai:
  api_key: test-key
catalog:
  source: postgres
`)

	_, err := LoadFromFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.postgres.host")
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 60*time.Second, GetDuration(60000))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}

func TestPostgresConfig_GetDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "db.internal",
		Port:     5432,
		Database: "cardadvisor",
		User:     "svc",
		Password: "secret",
		SSLMode:  "disable",
	}

	dsn := cfg.GetDSN()

	assert.Contains(t, dsn, "host=db.internal")
	assert.Contains(t, dsn, "port=5432")
	assert.Contains(t, dsn, "dbname=cardadvisor")
	assert.Contains(t, dsn, "sslmode=disable")
}
