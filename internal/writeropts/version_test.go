package writeropts

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWriterVersion(t *testing.T) {
	tests := []struct {
		input    string
		expected WriterVersion
	}{
		{"PARQUET_1_0", Parquet1},
		{"parquet_1_0", Parquet1},
		{"v1", Parquet1},
		{"1.0", Parquet1},
		{"PARQUET_2_0", Parquet2},
		{"V2", Parquet2},
		{" 2.0 ", Parquet2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := ParseWriterVersion(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}

	_, err := ParseWriterVersion("PARQUET_3_0")
	assert.True(t, errors.Is(err, ErrInvalidWriterVersion))
}

func TestWriterVersion_String(t *testing.T) {
	assert.Equal(t, "PARQUET_1_0", Parquet1.String())
	assert.Equal(t, "PARQUET_2_0", Parquet2.String())
	assert.Equal(t, "WriterVersion(0)", WriterVersion(0).String())
	assert.False(t, WriterVersion(0).IsValid())
	assert.Equal(t, []WriterVersion{Parquet1, Parquet2}, WriterVersions())
}

func TestWriterVersion_JSON(t *testing.T) {
	data, err := json.Marshal(map[string]WriterVersion{"v": Parquet1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":"PARQUET_1_0"}`, string(data))

	var decoded map[string]WriterVersion
	require.NoError(t, json.Unmarshal([]byte(`{"v":"v2"}`), &decoded))
	assert.Equal(t, Parquet2, decoded["v"])

	_, err = json.Marshal(WriterVersion(9))
	assert.Error(t, err)
}
