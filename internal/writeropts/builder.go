package writeropts

// Builder accumulates overrides on top of the defaults. It is meant for a
// single owner; callers sharing one must serialize access themselves.
type Builder struct {
	writerVersion   WriterVersion
	maxRowGroupSize *DataSize
	maxPageSize     *DataSize

	rowGroupParseErr error
	pageParseErr     error
}

// NewBuilder returns a Builder seeded with the default version and sizes.
func NewBuilder() *Builder {
	rowGroup := MustParseDataSize(DefaultMaxRowGroupSize)
	page := MustParseDataSize(DefaultMaxPageSize)
	return &Builder{
		writerVersion:   DefaultWriterVersion,
		maxRowGroupSize: &rowGroup,
		maxPageSize:     &page,
	}
}

// SetWriterVersion sets the format revision. Values outside the named
// constants are rejected by Build.
func (b *Builder) SetWriterVersion(version WriterVersion) *Builder {
	b.writerVersion = version
	return b
}

// SetMaxRowGroupSize sets the row group threshold. A nil size is accepted
// here and rejected by Build.
func (b *Builder) SetMaxRowGroupSize(size *DataSize) *Builder {
	b.maxRowGroupSize = size
	b.rowGroupParseErr = nil
	return b
}

// SetMaxPageSize sets the page threshold. A nil size is accepted here and
// rejected by Build.
func (b *Builder) SetMaxPageSize(size *DataSize) *Builder {
	b.maxPageSize = size
	b.pageParseErr = nil
	return b
}

// SetMaxRowGroupSizeString parses s as a size expression such as "256MB".
// Parse errors are reported by Build.
func (b *Builder) SetMaxRowGroupSizeString(s string) *Builder {
	size, err := ParseDataSize(s)
	if err != nil {
		b.maxRowGroupSize = nil
		b.rowGroupParseErr = err
		return b
	}
	return b.SetMaxRowGroupSize(&size)
}

// SetMaxPageSizeString parses s as a size expression such as "2MB".
// Parse errors are reported by Build.
func (b *Builder) SetMaxPageSizeString(s string) *Builder {
	size, err := ParseDataSize(s)
	if err != nil {
		b.maxPageSize = nil
		b.pageParseErr = err
		return b
	}
	return b.SetMaxPageSize(&size)
}

// Build validates the accumulated values and returns new WriterOptions.
// The builder is left untouched and may be built again.
func (b *Builder) Build() (WriterOptions, error) {
	if !b.writerVersion.IsValid() {
		return WriterOptions{}, newValidationError("writerVersion", int(b.writerVersion), ErrInvalidWriterVersion, "unknown writer version")
	}

	maxRowGroupSize, err := toIntBytes("maxRowGroupSize", b.maxRowGroupSize, b.rowGroupParseErr)
	if err != nil {
		return WriterOptions{}, err
	}

	maxPageSize, err := toIntBytes("maxPageSize", b.maxPageSize, b.pageParseErr)
	if err != nil {
		return WriterOptions{}, err
	}

	return WriterOptions{
		writerVersion:   b.writerVersion,
		maxRowGroupSize: maxRowGroupSize,
		maxPageSize:     maxPageSize,
	}, nil
}

func toIntBytes(field string, size *DataSize, parseErr error) (int, error) {
	if parseErr != nil {
		return 0, newValidationError(field, nil, parseErr, parseErr.Error())
	}
	if size == nil {
		return 0, newValidationError(field, nil, ErrMissingValue, field+" is null")
	}

	n, err := size.IntBytes()
	if err != nil {
		return 0, newValidationError(field, size.String(), err, err.Error())
	}
	return n, nil
}
