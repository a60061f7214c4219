package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aleister1102/pqwriter/internal/common"
	"github.com/aleister1102/pqwriter/internal/config"
	"github.com/aleister1102/pqwriter/internal/datastore"
	"github.com/aleister1102/pqwriter/internal/logger"
	"github.com/aleister1102/pqwriter/internal/models"
	"github.com/aleister1102/pqwriter/internal/writeropts"
	"github.com/rs/zerolog"
)

type cliFlags struct {
	configFile   string
	version      string
	rowGroupSize string
	pageSize     string
	output       string
	records      int
	payloadSize  int
}

func parseFlags() cliFlags {
	var f cliFlags
	flag.StringVar(&f.configFile, "config", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	flag.StringVar(&f.configFile, "gc", "", "Alias for --config")
	flag.StringVar(&f.version, "version", "", "Writer version override: PARQUET_1_0 or PARQUET_2_0 (v1/v2 accepted)")
	flag.StringVar(&f.rowGroupSize, "row-group-size", "", "Max row group size override, e.g. 256MB")
	flag.StringVar(&f.pageSize, "page-size", "", "Max page size override, e.g. 2MB")
	flag.StringVar(&f.output, "output", "", "Write a sample file with this name under the storage base path")
	flag.IntVar(&f.records, "records", 10000, "Number of sample records to write with --output")
	flag.IntVar(&f.payloadSize, "payload-size", 256, "Payload bytes per sample record")
	flag.Parse()
	return f
}

// validateFlags rejects values the sample generator cannot use
func validateFlags(f cliFlags) error {
	if f.records < 0 {
		return common.NewValidationError("records", f.records, "must not be negative")
	}
	if f.payloadSize < 0 {
		return common.NewValidationError("payload-size", f.payloadSize, "must not be negative")
	}
	return nil
}

func main() {
	flags := parseFlags()
	if err := validateFlags(flags); err != nil {
		log.Fatalf("[FATAL] Invalid flags: %v", err)
	}

	gCfg, err := config.LoadGlobalConfig(flags.configFile, zerolog.Nop())
	if err != nil {
		log.Fatalf("[FATAL] Could not load config using path '%s': %v", flags.configFile, err)
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		zLogger.Fatal().Err(err).Msg("Configuration validation failed")
	}

	opts, err := resolveOptions(gCfg.StorageConfig, flags)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Invalid writer options")
	}

	zLogger.Info().
		Str("writer_version", opts.WriterVersion().String()).
		Int("max_row_group_size", opts.MaxRowGroupSize()).
		Int("max_page_size", opts.MaxPageSize()).
		Msg("Resolved writer options")
	fmt.Println(opts)

	if flags.output == "" {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := writeSample(ctx, &gCfg.StorageConfig, opts, flags, zLogger); err != nil {
		zLogger.Fatal().Err(err).Msg("Sample write failed")
	}
}

// resolveOptions layers command-line overrides on top of the config file
func resolveOptions(storage config.StorageConfig, flags cliFlags) (writeropts.WriterOptions, error) {
	builder, err := storage.WriterOptionsBuilder()
	if err != nil {
		return writeropts.WriterOptions{}, err
	}

	if flags.version != "" {
		version, err := writeropts.ParseWriterVersion(flags.version)
		if err != nil {
			return writeropts.WriterOptions{}, err
		}
		builder.SetWriterVersion(version)
	}
	if flags.rowGroupSize != "" {
		builder.SetMaxRowGroupSizeString(flags.rowGroupSize)
	}
	if flags.pageSize != "" {
		builder.SetMaxPageSizeString(flags.pageSize)
	}

	return builder.Build()
}

func writeSample(ctx context.Context, storage *config.StorageConfig, opts writeropts.WriterOptions, flags cliFlags, zLogger zerolog.Logger) error {
	writer, err := datastore.NewParquetWriterBuilder[models.SampleRecord](zLogger).
		WithStorageConfig(storage).
		WithWriterOptions(opts).
		Build()
	if err != nil {
		return err
	}

	records := models.GenerateSampleRecords(flags.records, flags.payloadSize, time.Now())
	result, err := writer.Write(ctx, flags.output, records)
	if err != nil {
		return err
	}

	stats, err := datastore.ReadFileStats(result.FilePath)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d rows in %d row groups, %d bytes, created by %q\n",
		result.FilePath, stats.NumRows, stats.RowGroups, result.FileSize, stats.CreatedBy)
	return nil
}
