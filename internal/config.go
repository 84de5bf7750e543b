package internal

import (
	"fmt"
	"rice-lab/domain"
	"rice-lab/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Config is read from the environment of the trainer binary.
// LearningRate and Epochs carry the bounds offered to users, the classifier itself is looser.
type Config struct {
	DatasetPath    string  `env:"DATASET_PATH,default=data/Rice_MSC_Dataset_sample.csv" validate:"required"`
	LearningRate   float64 `env:"LEARNING_RATE,default=0.1" validate:"min=0.001,max=1"`
	Epochs         int     `env:"EPOCHS,default=1000" validate:"min=100,max=5000"`
	TrainRatio     float64 `env:"TRAIN_RATIO,default=0.8" validate:"gt=0,lt=1"`
	Seed           *int64  `env:"SEED"`
	Shuffle        bool    `env:"SHUFFLE,default=false"`
	LogLevel       string  `env:"LOG_LEVEL,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR"`
	BadgerFilepath string  `env:"BADGER_FILEPATH"`
	PlotPath       string  `env:"PLOT_PATH"`
	Colours        bool    `env:"COLOURS,default=true"`
}

// Validate checks the harness bounds of the configuration.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidParams, err)
	}
	return nil
}

// TrainingParams extracts what a single run needs.
func (c Config) TrainingParams() domain.TrainingParams {
	return domain.TrainingParams{
		LearningRate: c.LearningRate,
		Epochs:       c.Epochs,
		TrainRatio:   c.TrainRatio,
		Seed:         c.Seed,
		Shuffle:      c.Shuffle,
	}
}
