package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"rice-lab/repositories"
	"rice-lab/sink"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	BadgerFilepath string `envconfig:"BADGER_FILEPATH" default:"data/history"`
	Limit          int    `envconfig:"HISTORY_LIMIT" default:"20"`
}

func main() {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		log.Fatal("Config error: ", err)
	}
	dbPath := flag.String("db", config.BadgerFilepath, "Path to badger DB")
	limit := flag.Int("limit", config.Limit, "Maximum number of runs to list, 0 for all")
	flag.Parse()

	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	var maxRuns *int
	if *limit > 0 {
		maxRuns = limit
	}
	reports, err := repositories.NewReportRepository(db, slog.Default()).GetReports(maxRuns)
	if err != nil {
		log.Fatal(err)
	}

	table := sink.NewPlainTable(os.Stdout, "Run", "At", "LR", "Epochs", "Train", "Test", "Accuracy", "MSE", "Classes")

	for _, r := range reports {
		// First 8 characters of the run id are enough to tell runs apart
		displayID := r.ID.String()[:8]
		table.Append([]string{
			displayID,
			r.At.Format("2006-01-02 15:04:05"),
			strconv.FormatFloat(r.Params.LearningRate, 'g', -1, 64),
			strconv.Itoa(r.Params.Epochs),
			strconv.Itoa(r.TrainRows),
			strconv.Itoa(r.TestRows),
			fmt.Sprintf("%.2f%%", r.Accuracy*100),
			fmt.Sprintf("%.4f", r.MSE),
			strings.Join(r.ClassNames, ","),
		})
	}
	table.Render()
}
