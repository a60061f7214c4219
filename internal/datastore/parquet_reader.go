package datastore

import (
	"os"
	"strconv"

	"github.com/aleister1102/pqwriter/internal/common"
	"github.com/aleister1102/pqwriter/internal/writeropts"
	"github.com/parquet-go/parquet-go"
)

// FileStats summarizes the footer of a Parquet file
type FileStats struct {
	NumRows       int64
	RowGroups     int
	RowGroupRows  []int64
	CreatedBy     string
	WriterVersion writeropts.WriterVersion
	// MaxRowGroupSize and MaxPageSize are read back from footer metadata
	// and are zero for files not written by ParquetWriter.
	MaxRowGroupSize int
	MaxPageSize     int
}

// ReadFileStats opens filePath and reports its row group layout and the
// writer options recorded in its metadata.
func ReadFileStats(filePath string) (*FileStats, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to open parquet file: %s", filePath)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to stat parquet file: %s", filePath)
	}

	pqFile, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to read parquet footer: %s", filePath)
	}

	stats := &FileStats{
		NumRows:   pqFile.NumRows(),
		RowGroups: len(pqFile.RowGroups()),
		CreatedBy: pqFile.Metadata().CreatedBy,
	}
	for _, rg := range pqFile.RowGroups() {
		stats.RowGroupRows = append(stats.RowGroupRows, rg.NumRows())
	}

	if v, ok := pqFile.Lookup(MetadataWriterVersion); ok {
		if version, err := writeropts.ParseWriterVersion(v); err == nil {
			stats.WriterVersion = version
		}
	}
	if v, ok := pqFile.Lookup(MetadataMaxRowGroupSize); ok {
		stats.MaxRowGroupSize, _ = strconv.Atoi(v)
	}
	if v, ok := pqFile.Lookup(MetadataMaxPageSize); ok {
		stats.MaxPageSize, _ = strconv.Atoi(v)
	}

	return stats, nil
}
