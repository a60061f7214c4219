package config

import (
	"github.com/aleister1102/pqwriter/internal/common"
	"github.com/aleister1102/pqwriter/internal/writeropts"
)

// StorageConfig defines where and how Parquet files are written
type StorageConfig struct {
	CompressionCodec string `json:"compression_codec,omitempty" yaml:"compression_codec,omitempty" validate:"omitempty,codec"`
	ParquetBasePath  string `json:"parquet_base_path,omitempty" yaml:"parquet_base_path,omitempty"`
	WriterVersion    string `json:"writer_version,omitempty" yaml:"writer_version,omitempty" validate:"omitempty,writerversion"`
	MaxRowGroupSize  string `json:"max_row_group_size,omitempty" yaml:"max_row_group_size,omitempty" validate:"omitempty,datasize"`
	MaxPageSize      string `json:"max_page_size,omitempty" yaml:"max_page_size,omitempty" validate:"omitempty,datasize"`
	// MemoryHeadroom is the largest share of available memory a single
	// buffered row group may take before the writer warns.
	MemoryHeadroom float64 `json:"memory_headroom,omitempty" yaml:"memory_headroom,omitempty" validate:"omitempty,gt=0,lte=1"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		CompressionCodec: DefaultStorageCompressionCodec,
		ParquetBasePath:  DefaultStorageParquetBasePath,
		WriterVersion:    DefaultStorageWriterVersion,
		MaxRowGroupSize:  DefaultStorageMaxRowGroupSize,
		MaxPageSize:      DefaultStorageMaxPageSize,
		MemoryHeadroom:   DefaultStorageMemoryHeadroom,
	}
}

// WriterOptions resolves the writer settings. Empty fields keep the builder
// defaults.
func (c StorageConfig) WriterOptions() (writeropts.WriterOptions, error) {
	builder, err := c.WriterOptionsBuilder()
	if err != nil {
		return writeropts.WriterOptions{}, err
	}
	return builder.Build()
}

// WriterOptionsBuilder returns a builder seeded from the config so callers
// can layer further overrides (e.g. command-line flags) before building.
func (c StorageConfig) WriterOptionsBuilder() (*writeropts.Builder, error) {
	builder := writeropts.NewBuilder()

	if c.WriterVersion != "" {
		version, err := writeropts.ParseWriterVersion(c.WriterVersion)
		if err != nil {
			return nil, common.NewConfigurationError("storage_config", "writer_version", err.Error())
		}
		builder.SetWriterVersion(version)
	}
	if c.MaxRowGroupSize != "" {
		builder.SetMaxRowGroupSizeString(c.MaxRowGroupSize)
	}
	if c.MaxPageSize != "" {
		builder.SetMaxPageSizeString(c.MaxPageSize)
	}

	return builder, nil
}
