package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"unkcheck/internal/pkg/unkcheck/config"
	"unkcheck/internal/pkg/unkcheck/diag"
	"unkcheck/internal/pkg/unkcheck/tokenizer"

	_ "unkcheck/internal/pkg/unkcheck/sources/hub"
	_ "unkcheck/internal/pkg/unkcheck/sources/local"
	_ "unkcheck/internal/pkg/unkcheck/sources/vocab"
)

var Version = "dev"

func main() {
	fmt.Fprintf(os.Stderr, "unkcheck %s\n", Version)

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.LoadVerify()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse configuration")
	}

	if err := setupLogging(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to setup logging")
	}

	if !tokenizer.IsRegistered("hub") {
		log.Error().Msg("No hub tokenizer source available")
		os.Exit(1)
	}

	loader := func(modelID string) (diag.Codec, error) {
		return tokenizer.Load("hub", tokenizer.SourceConfig{
			Model:     modelID,
			CacheDir:  cfg.CacheDir,
			AuthToken: cfg.AuthToken,
		})
	}

	fmt.Println("UNK Token Detection Verification")
	fmt.Println(strings.Repeat("=", 60))

	runner := diag.NewRunner(loader, os.Stdout, cfg.Normalize)
	results := runner.Run(diag.DefaultBattery())
	diag.WriteSummary(os.Stdout, results)
}

func setupLogging(cfg *config.Config) error {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
	}

	return nil
}
