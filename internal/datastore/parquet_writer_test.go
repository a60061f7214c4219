package datastore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aleister1102/pqwriter/internal/common"
	"github.com/aleister1102/pqwriter/internal/config"
	"github.com/aleister1102/pqwriter/internal/writeropts"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	ID   int64  `parquet:"id"`
	Name string `parquet:"name"`
	Blob string `parquet:"blob"`
}

// each record is 8 + 7 + 100 = 115 bytes unencoded
func makeRecords(n int) []testRecord {
	records := make([]testRecord, n)
	for i := range records {
		records[i] = testRecord{
			ID:   int64(i),
			Name: fmt.Sprintf("rec-%03d", i),
			Blob: strings.Repeat("b", 100),
		}
	}
	return records
}

func newTestStorageConfig(t *testing.T) *config.StorageConfig {
	cfg := config.NewDefaultStorageConfig()
	cfg.ParquetBasePath = t.TempDir()
	cfg.MemoryHeadroom = 0
	return &cfg
}

func TestNewParquetWriter(t *testing.T) {
	cfg := newTestStorageConfig(t)

	writer, err := NewParquetWriter[testRecord](cfg, zerolog.Nop())

	require.NoError(t, err)
	assert.NotNil(t, writer)
	assert.Equal(t, writeropts.Default(), writer.Options())
	assert.Equal(t, "zstd", writer.writerConfig.CompressionType)
}

func TestParquetWriterBuilder_NilConfig(t *testing.T) {
	writer, err := NewParquetWriterBuilder[testRecord](zerolog.Nop()).Build()

	assert.Nil(t, writer)
	assert.True(t, errors.Is(err, common.ErrInvalidInput))
}

func TestParquetWriterBuilder_InvalidStorageSizes(t *testing.T) {
	cfg := newTestStorageConfig(t)
	cfg.MaxRowGroupSize = "3GB"

	_, err := NewParquetWriter[testRecord](cfg, zerolog.Nop())

	require.Error(t, err)
	assert.True(t, errors.Is(err, writeropts.ErrOverflow))
}

func TestParquetWriter_Write_Success(t *testing.T) {
	cfg := newTestStorageConfig(t)
	writer, err := NewParquetWriter[testRecord](cfg, zerolog.Nop())
	require.NoError(t, err)

	result, err := writer.Write(context.Background(), "example", makeRecords(10))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.ParquetBasePath, "example.parquet"), result.FilePath)
	assert.Equal(t, 10, result.RecordsWritten)
	assert.Equal(t, 1, result.RowGroups)
	assert.Greater(t, result.FileSize, int64(0))
	assert.FileExists(t, result.FilePath)

	stats, err := ReadFileStats(result.FilePath)
	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.NumRows)
	assert.Equal(t, 1, stats.RowGroups)
	assert.Contains(t, stats.CreatedBy, CreatedByApplication)
	assert.Equal(t, writeropts.Parquet2, stats.WriterVersion)
	assert.Equal(t, 134217728, stats.MaxRowGroupSize)
	assert.Equal(t, 1048576, stats.MaxPageSize)
}

func TestParquetWriter_Write_FlushesRowGroupsBySize(t *testing.T) {
	cfg := newTestStorageConfig(t)
	opts, err := writeropts.NewBuilder().
		SetWriterVersion(writeropts.Parquet1).
		SetMaxRowGroupSizeString("1KB").
		SetMaxPageSizeString("512B").
		Build()
	require.NoError(t, err)

	writer, err := NewParquetWriterBuilder[testRecord](zerolog.Nop()).
		WithStorageConfig(cfg).
		WithWriterOptions(opts).
		Build()
	require.NoError(t, err)

	result, err := writer.Write(context.Background(), "grouped", makeRecords(100))
	require.NoError(t, err)

	// 9 records reach 1KB, so 11 full groups plus one holding the last record
	assert.Equal(t, 12, result.RowGroups)

	stats, err := ReadFileStats(result.FilePath)
	require.NoError(t, err)
	assert.Equal(t, result.RowGroups, stats.RowGroups)
	assert.Equal(t, int64(100), stats.NumRows)
	assert.Equal(t, int64(9), stats.RowGroupRows[0])
	assert.Equal(t, int64(1), stats.RowGroupRows[len(stats.RowGroupRows)-1])
	assert.Equal(t, writeropts.Parquet1, stats.WriterVersion)
	assert.Equal(t, 1024, stats.MaxRowGroupSize)
	assert.Equal(t, 512, stats.MaxPageSize)
}

func TestParquetWriter_Write_ZeroRowGroupSizeKeepsOneGroup(t *testing.T) {
	cfg := newTestStorageConfig(t)
	cfg.MaxRowGroupSize = "0"
	cfg.CompressionCodec = "snappy"

	writer, err := NewParquetWriter[testRecord](cfg, zerolog.Nop())
	require.NoError(t, err)

	result, err := writer.Write(context.Background(), "single", makeRecords(50))
	require.NoError(t, err)
	assert.Equal(t, 1, result.RowGroups)
}

func TestParquetWriter_Write_EmptyRecords(t *testing.T) {
	cfg := newTestStorageConfig(t)
	writer, err := NewParquetWriter[testRecord](cfg, zerolog.Nop())
	require.NoError(t, err)

	result, err := writer.Write(context.Background(), "empty", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.RecordsWritten)
	assert.Equal(t, 0, result.RowGroups)

	stats, err := ReadFileStats(result.FilePath)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.NumRows)
}

func TestParquetWriter_Write_Validation(t *testing.T) {
	tests := []struct {
		name     string
		basePath string
		fileName string
	}{
		{"empty base path", "", "example"},
		{"empty name", "/tmp/test", ""},
		{"nested name", "/tmp/test", "a/b"},
		{"parent name", "/tmp/test", ".."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestStorageConfig(t)
			cfg.ParquetBasePath = tt.basePath
			writer, err := NewParquetWriter[testRecord](cfg, zerolog.Nop())
			require.NoError(t, err)

			_, err = writer.Write(context.Background(), tt.fileName, makeRecords(1))
			assert.True(t, errors.Is(err, common.ErrInvalidInput))
		})
	}
}

func TestParquetWriter_Write_Cancelled(t *testing.T) {
	cfg := newTestStorageConfig(t)
	writer, err := NewParquetWriter[testRecord](cfg, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = writer.Write(ctx, "cancelled", makeRecords(5))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRowSizer(t *testing.T) {
	sizer := newRowSizer[testRecord]()
	assert.Equal(t, int64(115), sizer.size(makeRecords(1)[0]))

	type optionalRecord struct {
		Flag  bool     `parquet:"flag"`
		Score *float64 `parquet:"score,optional"`
	}
	optSizer := newRowSizer[optionalRecord]()
	assert.Equal(t, int64(1), optSizer.size(optionalRecord{Flag: true}))
	score := 1.5
	assert.Equal(t, int64(9), optSizer.size(optionalRecord{Score: &score}))
}

func TestReadFileStats_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.parquet")

	_, err := ReadFileStats(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open parquet file: "+path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
