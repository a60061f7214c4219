package datastore

import (
	"strings"

	"github.com/parquet-go/parquet-go"
)

const (
	// CreatedByApplication is recorded in the footer of every written file
	CreatedByApplication = "pqwriter"

	// Footer key/value metadata carrying the options a file was written with
	MetadataWriterVersion   = "pqwriter.writer_version"
	MetadataMaxRowGroupSize = "pqwriter.max_row_group_size"
	MetadataMaxPageSize     = "pqwriter.max_page_size"
)

// ParquetWriterConfig holds settings of ParquetWriter that are not part of
// the writer options proper
type ParquetWriterConfig struct {
	CompressionType  string
	CreatedByVersion string
	// CancelCheckInterval is how many records are written between context checks
	CancelCheckInterval int
}

// DefaultParquetWriterConfig returns default configuration
func DefaultParquetWriterConfig() ParquetWriterConfig {
	return ParquetWriterConfig{
		CompressionType:     "zstd",
		CreatedByVersion:    "dev",
		CancelCheckInterval: 1024,
	}
}

// compressionOption maps a codec name onto a parquet writer option
func compressionOption(codec string) parquet.WriterOption {
	switch strings.ToLower(codec) {
	case "none", "uncompressed":
		return parquet.Compression(&parquet.Uncompressed)
	case "gzip":
		return parquet.Compression(&parquet.Gzip)
	case "snappy":
		return parquet.Compression(&parquet.Snappy)
	default:
		return parquet.Compression(&parquet.Zstd)
	}
}
