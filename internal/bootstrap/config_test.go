package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_Defaults(t *testing.T) {
	cfg, err := Setup(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "familytree", cfg.MongoDatabase)
	assert.Equal(t, "familytree", cfg.EventPrefix)
	assert.Empty(t, cfg.RedisUrl)
	assert.Empty(t, cfg.MongoUri)
	assert.False(t, cfg.IsLocalCors)
}

func TestSetup_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "SERVER_PORT=9000\nREDIS_URL=localhost:6379\nLOCAL_CORS=true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	cfg, err := Setup(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "localhost:6379", cfg.RedisUrl)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoUri)
	assert.True(t, cfg.IsLocalCors)
}
