package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"unkcheck/internal/pkg/unkcheck/config"
	"unkcheck/internal/pkg/unkcheck/model"
	"unkcheck/internal/pkg/unkcheck/preprocess"
	"unkcheck/internal/pkg/unkcheck/resolver"
	"unkcheck/internal/pkg/unkcheck/tokenizer"

	_ "unkcheck/internal/pkg/unkcheck/sources/hub"
	_ "unkcheck/internal/pkg/unkcheck/sources/local"
	_ "unkcheck/internal/pkg/unkcheck/sources/vocab"
)

var Version = "dev"

func main() {
	fmt.Fprintf(os.Stderr, "tokconvert %s\n", Version)

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.LoadConvert()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse configuration")
	}

	if err := setupLogging(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to setup logging")
	}

	log.Debug().
		Str("model", cfg.Model).
		Str("output_dir", cfg.OutputDir).
		Str("text", cfg.Text).
		Msg("Configuration loaded")

	src := tokenizer.SourceConfig{
		Model:     cfg.Model,
		CacheDir:  cfg.CacheDir,
		AuthToken: cfg.AuthToken,
	}

	log.Info().Str("model", cfg.Model).Msg("Loading reference tokenizer...")
	slow, err := tokenizer.Load("vocab", src)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load reference tokenizer")
	}
	log.Debug().
		Str("source", slow.Source()).
		Int("vocab_size", slow.VocabSize()).
		Msg("Reference tokenizer loaded")

	log.Info().Str("model", cfg.Model).Msg("Loading fast tokenizer...")
	fast, err := tokenizer.Load("hub", src)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load fast tokenizer")
	}
	log.Debug().Str("source", fast.Source()).Msg("Fast tokenizer loaded")

	savedPath, err := fast.Save(cfg.OutputDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to save fast tokenizer")
	}
	log.Info().Str("path", savedPath).Msg("Fast tokenizer saved")

	reloaded, err := tokenizer.Load("file", tokenizer.SourceConfig{Path: savedPath})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to reload fast tokenizer from disk")
	}

	text := preprocess.NewPreprocessor(true).Process(cfg.Text)

	inMemory, err := fast.Encode(text, true)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode sample text")
	}
	enc, err := reloaded.Encode(text, true)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode sample text with reloaded tokenizer")
	}
	if !enc.Equal(inMemory) {
		log.Fatal().
			Ints("in_memory", inMemory.IDs).
			Ints("reloaded", enc.IDs).
			Msg("Reloaded tokenizer disagrees with the in-memory instance")
	}
	log.Info().Int("tokens", enc.Len()).Msg("Persistence round-trip verified")

	if slowEnc, err := slow.Encode(text, true); err == nil && !slowEnc.Equal(enc) {
		log.Warn().
			Ints("slow", slowEnc.IDs).
			Ints("fast", enc.IDs).
			Msg("Reference and fast tokenizers disagree on the sample text")
	}

	modelPath := cfg.ModelPath
	if modelPath == "" {
		log.Info().Str("model", cfg.Model).Msg("Resolving ONNX encoder...")
		modelPath, err = resolver.New(cfg.CacheDir, cfg.AuthToken).ModelONNX(cfg.Model)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to resolve ONNX encoder")
		}
	}

	log.Info().Str("path", modelPath).Msg("Loading ONNX encoder...")
	encoder, err := model.NewEncoder(modelPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", modelPath).Msg("Failed to load ONNX encoder")
	}
	defer encoder.Close()

	startTime := time.Now()
	hidden, err := encoder.Forward(toInt64(enc.IDs), toInt64(enc.AttentionMask), toInt64(enc.TypeIDs))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to run forward pass")
	}
	log.Info().Dur("elapsed", time.Since(startTime)).Msg("Forward pass complete")

	fmt.Printf("Tokenized input:\n")
	fmt.Printf("  IDs: %v\n", enc.IDs)
	fmt.Printf("  Tokens: %v\n", enc.Tokens)
	fmt.Printf("Model output (last hidden state):\n")
	fmt.Printf("  Shape: %v\n", hidden.Shape)
	fmt.Printf("  Values: %v ...\n", hidden.Preview(8))
}

func toInt64(xs []int) []int64 {
	out := make([]int64, len(xs))
	for i, x := range xs {
		out[i] = int64(x)
	}
	return out
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
