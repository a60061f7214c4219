package datastore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aleister1102/pqwriter/internal/common"
	"github.com/aleister1102/pqwriter/internal/config"
	"github.com/aleister1102/pqwriter/internal/writeropts"
	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
)

// ParquetWriter writes records of type T to Parquet files laid out according
// to a WriterOptions value.
type ParquetWriter[T any] struct {
	config       *config.StorageConfig
	logger       zerolog.Logger
	fileManager  *common.FileManager
	writerConfig ParquetWriterConfig
	options      writeropts.WriterOptions
	locks        *FileLockManager
}

// NewParquetWriter creates a ParquetWriter whose options come from cfg
func NewParquetWriter[T any](cfg *config.StorageConfig, logger zerolog.Logger) (*ParquetWriter[T], error) {
	return NewParquetWriterBuilder[T](logger).
		WithStorageConfig(cfg).
		Build()
}

// WriteResult contains the result of a write operation
type WriteResult struct {
	FilePath       string
	RecordsWritten int
	RowGroups      int
	FileSize       int64
	WriteTime      time.Duration
}

// Options returns the writer options in effect
func (pw *ParquetWriter[T]) Options() writeropts.WriterOptions {
	return pw.options
}

// Write writes records to <ParquetBasePath>/<name>.parquet, replacing any
// existing file. Safe for concurrent use; writes to the same name are
// serialized.
func (pw *ParquetWriter[T]) Write(ctx context.Context, name string, records []T) (*WriteResult, error) {
	startTime := time.Now()

	if err := pw.validateWriteRequest(name); err != nil {
		return nil, err
	}

	if err := pw.checkCancellation(ctx, "write start"); err != nil {
		return nil, err
	}

	filePath, err := pw.prepareOutputFile(name)
	if err != nil {
		return nil, err
	}

	unlock := pw.locks.Lock(filePath)
	recordsWritten, rowGroups, err := pw.writeToParquetFile(ctx, filePath, records)
	unlock()
	if err != nil {
		return nil, err
	}

	result := &WriteResult{
		FilePath:       filePath,
		RecordsWritten: recordsWritten,
		RowGroups:      rowGroups,
		FileSize:       pw.fileManager.FileSize(filePath),
		WriteTime:      time.Since(startTime),
	}

	pw.logger.Info().
		Str("file_path", result.FilePath).
		Int("records_written", result.RecordsWritten).
		Int("row_groups", result.RowGroups).
		Dur("write_time", result.WriteTime).
		Int("active_file_locks", pw.locks.Len()).
		Msg("Successfully wrote records to Parquet file")

	return result, nil
}

func (pw *ParquetWriter[T]) validateWriteRequest(name string) error {
	if pw.config.ParquetBasePath == "" {
		return common.NewValidationError("parquet_base_path", pw.config.ParquetBasePath, "ParquetBasePath is not configured")
	}
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return common.NewValidationError("name", name, "file name must be a single path element")
	}
	return nil
}

func (pw *ParquetWriter[T]) checkCancellation(ctx context.Context, operation string) error {
	if result := common.CheckCancellationWithLog(ctx, pw.logger, operation); result.Cancelled {
		return result.Error
	}
	return nil
}

func (pw *ParquetWriter[T]) prepareOutputFile(name string) (string, error) {
	if err := pw.fileManager.EnsureDirectory(pw.config.ParquetBasePath, 0755); err != nil {
		return "", common.WrapError(err, "failed to create Parquet directory")
	}
	return filepath.Join(pw.config.ParquetBasePath, fmt.Sprintf("%s.parquet", name)), nil
}

func (pw *ParquetWriter[T]) writeToParquetFile(ctx context.Context, filePath string, records []T) (int, int, error) {
	pw.logger.Debug().
		Str("file_path", filePath).
		Int("record_count", len(records)).
		Msg("Writing records to Parquet file")

	file, err := os.Create(filePath)
	if err != nil {
		return 0, 0, common.WrapErrorf(err, "failed to create/truncate parquet file: %s", filePath)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[T](file, pw.writerOptions()...)

	recordsWritten, rowGroups, err := pw.writeRecords(ctx, writer, records)
	if err != nil {
		_ = writer.Close()
		return 0, 0, common.WrapError(err, "failed to write records to parquet file")
	}

	if err := writer.Close(); err != nil {
		return 0, 0, common.WrapErrorf(err, "failed to finalize parquet file: %s", filePath)
	}

	return recordsWritten, rowGroups, nil
}

// writerOptions translates WriterOptions into parquet-go writer options
func (pw *ParquetWriter[T]) writerOptions() []parquet.WriterOption {
	opts := []parquet.WriterOption{
		compressionOption(pw.writerConfig.CompressionType),
		parquet.DataPageVersion(pw.options.WriterVersion().DataPageVersion()),
		parquet.CreatedBy(CreatedByApplication, pw.writerConfig.CreatedByVersion, ""),
		parquet.KeyValueMetadata(MetadataWriterVersion, pw.options.WriterVersion().String()),
		parquet.KeyValueMetadata(MetadataMaxRowGroupSize, strconv.Itoa(pw.options.MaxRowGroupSize())),
		parquet.KeyValueMetadata(MetadataMaxPageSize, strconv.Itoa(pw.options.MaxPageSize())),
	}
	if pw.options.MaxPageSize() > 0 {
		opts = append(opts, parquet.PageBufferSize(pw.options.MaxPageSize()))
	}
	return opts
}

// writeRecords writes records one at a time and flushes a row group each time
// the estimated uncompressed size reaches MaxRowGroupSize. A zero threshold
// leaves the whole file in one row group.
func (pw *ParquetWriter[T]) writeRecords(ctx context.Context, writer *parquet.GenericWriter[T], records []T) (int, int, error) {
	sizer := newRowSizer[T]()
	threshold := int64(pw.options.MaxRowGroupSize())
	checkEvery := pw.writerConfig.CancelCheckInterval
	if checkEvery <= 0 {
		checkEvery = 1
	}

	batch := make([]T, 1)
	var (
		written      int
		rowGroups    int
		pendingBytes int64
		pendingRows  int
	)

	for i, record := range records {
		if i%checkEvery == 0 {
			if err := pw.checkCancellation(ctx, "during record write"); err != nil {
				return written, rowGroups, err
			}
		}

		batch[0] = record
		if _, err := writer.Write(batch); err != nil {
			return written, rowGroups, err
		}
		written++
		pendingRows++
		pendingBytes += sizer.size(record)

		if threshold > 0 && pendingBytes >= threshold {
			if err := writer.Flush(); err != nil {
				return written, rowGroups, err
			}
			rowGroups++
			pendingBytes, pendingRows = 0, 0
		}
	}

	if pendingRows > 0 {
		rowGroups++
	}

	return written, rowGroups, nil
}
