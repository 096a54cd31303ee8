package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "leafscan", cfg.App.Name)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, int64(16<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "models/model.onnx", cfg.Model.Path)
	assert.Equal(t, "static/images", cfg.Uploads.Dir)
	assert.Equal(t, "/static/images", cfg.Uploads.URLPrefix)
	assert.Equal(t, 224, cfg.Preprocess.ImageSize)
	assert.Equal(t, "bicubic", cfg.Preprocess.Interpolation)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  env: production
  log_level: debug
server:
  port: "9000"
  read_timeout: 5s
model:
  path: /opt/models/plant.onnx
preprocess:
  interpolation: lanczos3
`), 0o644))

	t.Setenv("LEAFSCAN_UPLOADS_DIR", "/var/lib/leafscan/images")
	t.Setenv("LEAFSCAN_SERVER_MAX_UPLOAD_BYTES", "1048576")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "/opt/models/plant.onnx", cfg.Model.Path)
	assert.Equal(t, "lanczos3", cfg.Preprocess.Interpolation)
	assert.Equal(t, "/var/lib/leafscan/images", cfg.Uploads.Dir)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxUploadBytes)
}

func TestLoadPlainPort(t *testing.T) {
	t.Setenv("PORT", "5000")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Server.Port)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Server.Port = "http"
	cfg.Server.MaxUploadBytes = 0
	cfg.Preprocess.Interpolation = "sinc"
	cfg.Uploads.URLPrefix = "static"

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Config.Server.Port")
	assert.Contains(t, err.Error(), "Config.Server.MaxUploadBytes")
	assert.Contains(t, err.Error(), "Config.Preprocess.Interpolation")
	assert.Contains(t, err.Error(), "Config.Uploads.URLPrefix")
}
