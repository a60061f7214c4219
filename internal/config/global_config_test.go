package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/pqwriter/internal/common"
	"github.com/aleister1102/pqwriter/internal/writeropts"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, DefaultLogLevel, cfg.LogConfig.LogLevel)
	assert.Equal(t, DefaultStorageParquetBasePath, cfg.StorageConfig.ParquetBasePath)
	assert.Equal(t, "PARQUET_2_0", cfg.StorageConfig.WriterVersion)
	assert.Equal(t, "128MB", cfg.StorageConfig.MaxRowGroupSize)
	assert.Equal(t, "1MB", cfg.StorageConfig.MaxPageSize)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadGlobalConfig_NoConfigFile(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")

	cfg, err := LoadGlobalConfig("", zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, NewDefaultGlobalConfig(), cfg)
}

func TestLoadGlobalConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadGlobalConfig("/nonexistent/config.json", zerolog.Nop())

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config file does not exist")
	assert.True(t, errors.Is(err, common.ErrInvalidInput))
}

func TestLoadGlobalConfig_YAMLFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	configData := `
log_config:
  log_level: debug
storage_config:
  parquet_base_path: /data/out
  writer_version: v1
  max_row_group_size: 256MB
  max_page_size: 2MB
`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogConfig.LogLevel)
	assert.Equal(t, DefaultLogFormat, cfg.LogConfig.LogFormat)
	assert.Equal(t, "/data/out", cfg.StorageConfig.ParquetBasePath)
	assert.Equal(t, DefaultStorageCompressionCodec, cfg.StorageConfig.CompressionCodec)

	opts, err := cfg.StorageConfig.WriterOptions()
	require.NoError(t, err)
	assert.Equal(t, writeropts.Parquet1, opts.WriterVersion())
	assert.Equal(t, 268435456, opts.MaxRowGroupSize())
	assert.Equal(t, 2097152, opts.MaxPageSize())
}

func TestLoadGlobalConfig_JSONFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.json")
	configData := `{
		"log_config": {"log_format": "json"},
		"storage_config": {"compression_codec": "snappy", "max_page_size": "64KB"}
	}`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogConfig.LogFormat)
	assert.Equal(t, "snappy", cfg.StorageConfig.CompressionCodec)
	assert.Equal(t, "64KB", cfg.StorageConfig.MaxPageSize)
	assert.Equal(t, "128MB", cfg.StorageConfig.MaxRowGroupSize)
}

func TestLoadGlobalConfig_InvalidYAML(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("storage_config: [unclosed"), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config content")
}

func TestLoadGlobalConfig_EnvPath(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("storage_config:\n  max_page_size: 8KB\n"), 0644))
	t.Setenv(ConfigPathEnv, configFile)

	assert.Equal(t, configFile, GetConfigPath(""))

	cfg, err := LoadGlobalConfig("", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "8KB", cfg.StorageConfig.MaxPageSize)
}
