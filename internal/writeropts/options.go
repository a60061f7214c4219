package writeropts

import (
	"fmt"

	"github.com/docker/go-units"
)

const (
	// DefaultMaxRowGroupSize is the row group flush threshold
	DefaultMaxRowGroupSize = "128MB"
	// DefaultMaxPageSize is the data page size threshold
	DefaultMaxPageSize = "1MB"
)

// WriterOptions is the validated, immutable configuration handed to a
// columnar writer. Values are only produced by Builder.Build and are safe to
// share between goroutines.
type WriterOptions struct {
	writerVersion   WriterVersion
	maxRowGroupSize int
	maxPageSize     int
}

// Default returns the options a fresh Builder produces.
func Default() WriterOptions {
	opts, err := NewBuilder().Build()
	if err != nil {
		// defaults are constants; reaching this is a programming error
		panic(err)
	}
	return opts
}

// WriterVersion returns the format revision to emit.
func (o WriterOptions) WriterVersion() WriterVersion {
	return o.writerVersion
}

// MaxRowGroupSize returns the uncompressed row group threshold in bytes.
func (o WriterOptions) MaxRowGroupSize() int {
	return o.maxRowGroupSize
}

// MaxPageSize returns the data page threshold in bytes.
func (o WriterOptions) MaxPageSize() int {
	return o.maxPageSize
}

// Equal reports whether all three settings match.
func (o WriterOptions) Equal(other WriterOptions) bool {
	return o == other
}

func (o WriterOptions) String() string {
	return fmt.Sprintf("WriterOptions{writerVersion=%s, maxRowGroupSize=%s, maxPageSize=%s}",
		o.writerVersion,
		units.BytesSize(float64(o.maxRowGroupSize)),
		units.BytesSize(float64(o.maxPageSize)))
}
