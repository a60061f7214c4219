package writeropts

import (
	"fmt"
	"strings"
)

// WriterVersion selects the Parquet format revision emitted by a writer.
type WriterVersion int

const (
	// Parquet1 is the legacy format revision (data page header v1).
	Parquet1 WriterVersion = iota + 1
	// Parquet2 is the current format revision (data page header v2).
	Parquet2
)

// DefaultWriterVersion is used when a builder is not given a version.
const DefaultWriterVersion = Parquet2

var writerVersionNames = map[WriterVersion]string{
	Parquet1: "PARQUET_1_0",
	Parquet2: "PARQUET_2_0",
}

// WriterVersions lists every supported version, oldest first.
func WriterVersions() []WriterVersion {
	return []WriterVersion{Parquet1, Parquet2}
}

// String returns the canonical name, e.g. PARQUET_2_0
func (v WriterVersion) String() string {
	if name, ok := writerVersionNames[v]; ok {
		return name
	}
	return fmt.Sprintf("WriterVersion(%d)", int(v))
}

// IsValid reports whether v is one of the named versions.
func (v WriterVersion) IsValid() bool {
	_, ok := writerVersionNames[v]
	return ok
}

// DataPageVersion returns the data page header version written for v.
func (v WriterVersion) DataPageVersion() int {
	if v == Parquet1 {
		return 1
	}
	return 2
}

// ParseWriterVersion accepts the canonical names as well as v1/1.0/v2/2.0.
func ParseWriterVersion(s string) (WriterVersion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "parquet_1_0", "v1", "1", "1.0":
		return Parquet1, nil
	case "parquet_2_0", "v2", "2", "2.0":
		return Parquet2, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidWriterVersion, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (v WriterVersion) MarshalText() ([]byte, error) {
	if !v.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWriterVersion, int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *WriterVersion) UnmarshalText(text []byte) error {
	parsed, err := ParseWriterVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
