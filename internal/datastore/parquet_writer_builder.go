package datastore

import (
	"github.com/aleister1102/pqwriter/internal/common"
	"github.com/aleister1102/pqwriter/internal/config"
	"github.com/aleister1102/pqwriter/internal/writeropts"
	"github.com/rs/zerolog"
)

// ParquetWriterBuilder provides a fluent interface for creating ParquetWriter
type ParquetWriterBuilder[T any] struct {
	config       *config.StorageConfig
	logger       zerolog.Logger
	writerConfig ParquetWriterConfig
	options      *writeropts.WriterOptions
	memStat      VirtualMemoryFunc
}

// NewParquetWriterBuilder creates a new ParquetWriterBuilder
func NewParquetWriterBuilder[T any](logger zerolog.Logger) *ParquetWriterBuilder[T] {
	return &ParquetWriterBuilder[T]{
		logger:       logger.With().Str("component", "ParquetWriter").Logger(),
		writerConfig: DefaultParquetWriterConfig(),
	}
}

// WithStorageConfig sets the storage configuration
func (b *ParquetWriterBuilder[T]) WithStorageConfig(cfg *config.StorageConfig) *ParquetWriterBuilder[T] {
	b.config = cfg
	return b
}

// WithWriterConfig sets the writer configuration
func (b *ParquetWriterBuilder[T]) WithWriterConfig(cfg ParquetWriterConfig) *ParquetWriterBuilder[T] {
	b.writerConfig = cfg
	return b
}

// WithWriterOptions overrides the options otherwise resolved from the storage config
func (b *ParquetWriterBuilder[T]) WithWriterOptions(opts writeropts.WriterOptions) *ParquetWriterBuilder[T] {
	b.options = &opts
	return b
}

// WithMemoryStat replaces the system memory probe, mostly for tests
func (b *ParquetWriterBuilder[T]) WithMemoryStat(fn VirtualMemoryFunc) *ParquetWriterBuilder[T] {
	b.memStat = fn
	return b
}

// Build creates a new ParquetWriter instance
func (b *ParquetWriterBuilder[T]) Build() (*ParquetWriter[T], error) {
	if b.config == nil {
		return nil, common.NewValidationError("config", b.config, "storage config cannot be nil")
	}

	if b.config.ParquetBasePath == "" {
		b.logger.Warn().Msg("ParquetBasePath is empty in config")
	}

	opts, err := b.resolveOptions()
	if err != nil {
		return nil, err
	}

	writerConfig := b.writerConfig
	if b.config.CompressionCodec != "" {
		writerConfig.CompressionType = b.config.CompressionCodec
	}

	if b.config.MemoryHeadroom > 0 {
		if _, err := CheckMemoryHeadroom(opts, b.config.MemoryHeadroom, b.memStat, b.logger); err != nil {
			b.logger.Debug().Err(err).Msg("Skipping memory headroom check")
		}
	}

	b.logger.Debug().
		Str("writer_version", opts.WriterVersion().String()).
		Int("max_row_group_size", opts.MaxRowGroupSize()).
		Int("max_page_size", opts.MaxPageSize()).
		Str("compression", writerConfig.CompressionType).
		Msg("Parquet writer configured")

	return &ParquetWriter[T]{
		config:       b.config,
		logger:       b.logger,
		fileManager:  common.NewFileManager(b.logger),
		writerConfig: writerConfig,
		options:      opts,
		locks:        NewFileLockManager(b.logger),
	}, nil
}

func (b *ParquetWriterBuilder[T]) resolveOptions() (writeropts.WriterOptions, error) {
	if b.options != nil {
		return *b.options, nil
	}
	opts, err := b.config.WriterOptions()
	if err != nil {
		return writeropts.WriterOptions{}, common.WrapError(err, "failed to resolve writer options")
	}
	return opts, nil
}
