package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"rice-lab/contract"
	"rice-lab/dataset"
	"rice-lab/domain"
	"rice-lab/internal"
	"rice-lab/observability"
	"rice-lab/repositories"
	"rice-lab/services"
	"rice-lab/sink"
	"strings"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// samples collects repeated -sample flags, each "solidity,aspect,roundness,compactness,class".
type samples []domain.Record

func (s *samples) String() string {
	return fmt.Sprintf("%d samples", len(*s))
}

func (s *samples) Set(value string) error {
	record, err := domain.ParseRecord(strings.Split(value, ","))
	if err != nil {
		return err
	}
	*s = append(*s, record)
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run wires configuration, storage and sinks, then trains once per requested run.
// Every run builds a fresh network, nothing is carried over between runs.
func run() error {
	var manual samples
	flag.Var(&manual, "sample", "extra labelled row appended to the dataset (repeatable)")
	runs := flag.Int("runs", 1, "number of independent training runs")
	flag.Parse()

	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Dataset
	records, err := dataset.LoadCSV(config.DatasetPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", config.DatasetPath, err)
	}
	log.Info("Dataset loaded", "path", config.DatasetPath, "rows", len(records))

	// 3. Sinks
	sinks := []contract.ReportSink{sink.NewConsoleSink(os.Stdout, config.Colours)}
	if config.PlotPath != "" {
		sinks = append(sinks, sink.NewPlotSink(config.PlotPath))
	}
	if config.BadgerFilepath != "" {
		db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
			WithLoggingLevel(badger.WARNING))
		if err != nil {
			return fmt.Errorf("database opening failed: %w", err)
		}
		defer func() {
			log.Info("Closing BadgerDB...")
			_ = db.Close()
		}()
		sinks = append(sinks, sink.NewHistorySink(repositories.NewReportRepository(db, log), log))
	}

	// 4. Context & Signals, checked between runs only
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	trainer := services.NewTrainerService(log, sinks...)
	for i := 0; i < *runs; i++ {
		if ctx.Err() != nil {
			log.Info("Interrupted, skipping remaining runs", "done", i)
			break
		}
		if _, err = trainer.Run(ctx, services.TrainingRequest{
			Records: records,
			Samples: manual,
			Params:  config.TrainingParams(),
		}); err != nil {
			return err
		}
	}

	observability.LogProcessStats(log)
	return nil
}
