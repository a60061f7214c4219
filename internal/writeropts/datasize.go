package writeropts

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/docker/go-units"
)

// DataSize is a byte count together with the human expression it came from,
// e.g. "128MB". Units are binary: 1KB is 1024 bytes.
type DataSize struct {
	expr  string
	bytes int64
}

// sizePattern is the accepted expression grammar: a plain decimal magnitude,
// an optional single space and an optional unit. Exponent and hex forms are
// rejected before the text reaches units.RAMInBytes.
var sizePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?) ?([kKmMgGtTpP])?[iI]?[bB]?$`)

var unitMultipliers = map[string]float64{
	"":  1,
	"k": units.KiB,
	"m": units.MiB,
	"g": units.GiB,
	"t": units.TiB,
	"p": units.PiB,
}

// ParseDataSize parses a magnitude with an optional unit suffix (B, KB, MB,
// GB, TB, PB; KiB-style and single-letter forms are accepted too).
// Fractional magnitudes are truncated to whole bytes.
func ParseDataSize(s string) (DataSize, error) {
	expr := strings.TrimSpace(s)
	if expr == "" {
		return DataSize{}, fmt.Errorf("%w: empty expression", ErrInvalidDataSize)
	}

	m := sizePattern.FindStringSubmatch(expr)
	if m == nil {
		return DataSize{}, fmt.Errorf("%w: %q is not a decimal magnitude with an optional unit", ErrInvalidDataSize, expr)
	}

	// the grammar leaves strconv.ErrRange as the only possible failure
	magnitude, err := strconv.ParseFloat(m[1], 64)
	if err != nil || magnitude*unitMultipliers[strings.ToLower(m[2])] >= math.MaxInt64 {
		return DataSize{}, fmt.Errorf("%w: %q exceeds 64-bit byte range", ErrOverflow, expr)
	}

	n, err := units.RAMInBytes(expr)
	if err != nil {
		return DataSize{}, fmt.Errorf("%w: %v", ErrInvalidDataSize, err)
	}

	return DataSize{expr: expr, bytes: n}, nil
}

// MustParseDataSize is like ParseDataSize but panics on error.
func MustParseDataSize(s string) DataSize {
	ds, err := ParseDataSize(s)
	if err != nil {
		panic(err)
	}
	return ds
}

// NewDataSize wraps an exact byte count. Negative counts are rejected with
// ErrInvalidDataSize, matching ParseDataSize.
func NewDataSize(bytes int64) (DataSize, error) {
	if bytes < 0 {
		return DataSize{}, fmt.Errorf("%w: negative byte count %d", ErrInvalidDataSize, bytes)
	}
	return DataSize{bytes: bytes}, nil
}

// Bytes returns the exact byte count.
func (d DataSize) Bytes() int64 {
	return d.bytes
}

// IntBytes narrows the byte count to a 32-bit signed int, failing with
// ErrOverflow instead of truncating.
func (d DataSize) IntBytes() (int, error) {
	if d.bytes > math.MaxInt32 || d.bytes < math.MinInt32 {
		return 0, fmt.Errorf("%w: %d bytes does not fit in int32", ErrOverflow, d.bytes)
	}
	return int(d.bytes), nil
}

func (d DataSize) String() string {
	if d.expr != "" {
		return d.expr
	}
	return units.BytesSize(float64(d.bytes))
}

// MarshalText implements encoding.TextMarshaler.
func (d DataSize) MarshalText() ([]byte, error) {
	if d.expr != "" {
		return []byte(d.expr), nil
	}
	return []byte(strconv.FormatInt(d.bytes, 10)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DataSize) UnmarshalText(text []byte) error {
	parsed, err := ParseDataSize(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
