package config

const (
	// Storage Defaults
	DefaultStorageParquetBasePath  = "database"
	DefaultStorageCompressionCodec = "zstd"
	DefaultStorageWriterVersion    = "PARQUET_2_0"
	DefaultStorageMaxRowGroupSize  = "128MB"
	DefaultStorageMaxPageSize      = "1MB"
	DefaultStorageMemoryHeadroom   = 0.5

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// ConfigPathEnv overrides the config file location
	ConfigPathEnv = "PQWRITER_CONFIG_PATH"
)
