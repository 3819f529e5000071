// PlayAtlas - Gaming Library Analytics and Persona Inference
// Copyright 2026 PlayAtlas contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playatlas/playatlas

// Package main is the personactl command: it runs the persona/mood inference
// pipeline over session, catalog, and integration fixtures and prints the
// resulting snapshot and ranked recommendations as JSON.
//
// The pipeline stages run in order: signal collection, feature extraction,
// trait derivation, mood packaging, narrative assembly, mood forecasting,
// and catalog scoring. Historical resonance data, when a durable log exists,
// recalibrates forecast confidence.
//
// Usage:
//
//	personactl -user u1 -sessions sessions.json -catalog catalog.json
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config file (config.yaml),
// built-in defaults.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/playatlas/playatlas/internal/config"
	"github.com/playatlas/playatlas/internal/logging"
	"github.com/playatlas/playatlas/internal/persona"
	"github.com/playatlas/playatlas/internal/recommend"
	"github.com/playatlas/playatlas/internal/resonance"
	"github.com/playatlas/playatlas/internal/signals"
)

// fixture is the JSON input personactl consumes.
type fixture struct {
	Sessions     []signals.SessionRecord       `json:"sessions"`
	Games        []signals.GameRecord          `json:"games"`
	Integrations []signals.IntegrationActivity `json:"integrations,omitempty"`
	MoodEntry    *persona.MoodState            `json:"mood_entry,omitempty"`
}

// output is what personactl prints.
type output struct {
	Snapshot        *persona.Snapshot   `json:"snapshot"`
	Prediction      persona.Prediction  `json:"prediction"`
	Recommendations *recommend.Response `json:"recommendations"`
}

func main() {
	if err := run(); err != nil {
		logging.Err(err).Msg("personactl failed")
		os.Exit(1)
	}
}

func run() error {
	var (
		userID      string
		fixturePath string
		catalogPath string
		topK        int
	)
	flag.StringVar(&userID, "user", "", "user ID the fixture belongs to")
	flag.StringVar(&fixturePath, "sessions", "", "path to the sessions fixture (JSON)")
	flag.StringVar(&catalogPath, "catalog", "", "path to the catalog fixture (JSON)")
	flag.IntVar(&topK, "k", 0, "number of recommendations (0 = configured default)")
	flag.Parse()

	if userID == "" || fixturePath == "" || catalogPath == "" {
		flag.Usage()
		return fmt.Errorf("user, sessions, and catalog are required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	var fix fixture
	if err := readJSON(fixturePath, &fix); err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}
	var catalog []recommend.Game
	if err := readJSON(catalogPath, &catalog); err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}

	ctx := logging.ContextWithNewRequestID(context.Background())

	// Collect signals into the per-user buffer.
	collector := signals.NewCollector(logger)
	store := signals.NewMemoryStore(cfg.Pipeline.MaxSignalAge)
	store.Add(userID, collector.Collect(fix.Sessions, fix.Games, fix.Integrations)...)
	window := store.Recent(userID, cfg.Pipeline.MaxSignalAge)
	if window == nil {
		window = []signals.Signal{}
	}

	// Build the snapshot.
	builder := persona.NewBuilder(cfg.Pipeline.MoodStaleness, logger)
	snap, err := builder.BuildSnapshot(window, fix.MoodEntry)
	if err != nil {
		return fmt.Errorf("build snapshot: %w", err)
	}

	// Pull historical accuracy from the resonance log, if one is configured.
	adjustments, err := loadAdjustments(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("load resonance data: %w", err)
	}

	pred := persona.Forecast(snap, adjustments, snap.GeneratedAt)

	engine, err := recommend.NewEngine(&cfg.Recommend, logger)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	resp := engine.Rank(catalog, pred.Mood, pred.Confidence, topK)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output{
		Snapshot:        snap,
		Prediction:      pred,
		Recommendations: resp,
	})
}

// loadAdjustments opens the durable resonance log when configured and
// derives the per-mood confidence adjustments. Without a configured log
// there is no history, so no adjustment applies.
func loadAdjustments(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (map[persona.Mood]float64, error) {
	if cfg.Resonance.BadgerPath == "" {
		return nil, nil
	}

	opts := badger.DefaultOptions(cfg.Resonance.BadgerPath).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open resonance log: %w", err)
	}
	defer db.Close()

	svc := resonance.NewService(resonance.NewBadgerLog(db), logger)
	data, err := svc.ForecastingData(ctx)
	if err != nil {
		return nil, err
	}
	return data.ConfidenceAdjustments, nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
