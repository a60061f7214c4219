package datastore

import (
	"github.com/parquet-go/parquet-go"
)

// rowSizer estimates the uncompressed, unencoded size of a record by
// deconstructing it into parquet values. It reuses its row buffer and is not
// safe for concurrent use.
type rowSizer[T any] struct {
	schema *parquet.Schema
	row    parquet.Row
}

func newRowSizer[T any]() *rowSizer[T] {
	return &rowSizer[T]{schema: parquet.SchemaOf(new(T))}
}

func (s *rowSizer[T]) size(record T) int64 {
	s.row = s.schema.Deconstruct(s.row[:0], record)

	var total int64
	for _, v := range s.row {
		total += valueSize(v)
	}
	return total
}

func valueSize(v parquet.Value) int64 {
	if v.IsNull() {
		return 0
	}
	switch v.Kind() {
	case parquet.Boolean:
		return 1
	case parquet.Int32, parquet.Float:
		return 4
	case parquet.Int64, parquet.Double:
		return 8
	case parquet.Int96:
		return 12
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return int64(len(v.ByteArray()))
	default:
		return 0
	}
}
