package main

import (
	"os"

	ung "github.com/dillonstreator/go-unique-name-generator"
	"github.com/dillonstreator/go-unique-name-generator/dictionaries"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"
	"github.com/spf13/pflag"
)

func main() {
	configPath := pflag.String("config", "config.env", "Path to the key-value config file")
	dryRun := pflag.Bool("dry-run", false, "Compute and log tag changes without writing them")
	pflag.Parse()

	runID := ksuid.New().String()
	runName := ung.NewUniqueNameGenerator(
		ung.WithDictionaries(
			[][]string{
				dictionaries.Colors,
				dictionaries.Animals,
				dictionaries.Names,
			},
		),
		ung.WithSeparator("-"),
	).Generate()

	logger := zerolog.New(os.Stderr).With().
		Timestamp().
		Str("run_id", runID).
		Str("run_name", runName).
		Logger()

	logger.Info().Msg("Starting tag sync run")

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Info().Msgf("Reading CSV file from: %s", cfg.CSVFilePath)
	rows, err := LoadRows(cfg.CSVFilePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load CSV file")
	}
	logger.Info().Msgf("Successfully loaded CSV with %d rows", len(rows))

	registerMetrics()
	if cfg.MetricsListenAddr != "" {
		startMetricsServer(cfg.MetricsListenAddr, logger)
	}

	var audit *AuditStore
	if cfg.AuditDBConn != "" && !*dryRun {
		audit, err = OpenAuditStore(cfg.AuditDBConn)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to open audit store")
		}
		defer audit.Close()
	}

	logger.Info().Msgf("Initializing API client with endpoint: %s", cfg.APIEndpoint)
	client := NewZabbixClient(cfg.APIEndpoint, cfg.AuthToken, cfg.HTTPTimeout, logger)

	reconciler := NewReconciler(client, audit, logger, runID, runName, *dryRun)
	stats := reconciler.Run(rows)

	logger.Info().
		Int("rows_processed", stats.RowsProcessed).
		Int("rows_skipped", stats.RowsSkipped).
		Int("hosts_updated", stats.HostsUpdated).
		Int("hosts_failed", stats.HostsFailed).
		Msg("Tag sync run completed")
}
