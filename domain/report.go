package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTrainRatio is the share of rows used for training, the rest is held out for evaluation.
const DefaultTrainRatio = 0.8

// TrainingParams are the caller tunables of a single run.
// The core only requires a positive learning rate and a non-negative epoch count,
// tighter bounds belong to the harness.
type TrainingParams struct {
	LearningRate float64 `validate:"gt=0"`
	Epochs       int     `validate:"gte=0"`
	TrainRatio   float64 `validate:"gt=0,lt=1"`
	// Seed makes weight initialization and shuffling reproducible. Nil means time seeded.
	Seed    *int64
	Shuffle bool
}

// Result is what a training run hands to the reporting boundary.
// Predictions and Actuals are class indices exposed as floats, index aligned with ClassNames.
type Result struct {
	Predictions []float64
	Actuals     []float64
	MSE         float64
	Accuracy    float64
	ClassNames  []string
	TrainRows   int
	TestRows    int
}

// Correct counts test rows where the predicted class matches the actual one.
func (r Result) Correct() int {
	n := 0
	for i := range r.Predictions {
		if r.Predictions[i] == r.Actuals[i] {
			n++
		}
	}
	return n
}

// ClassName resolves a class index carried as float, "?" when out of range.
func (r Result) ClassName(idx float64) string {
	i := int(idx)
	if i < 0 || i >= len(r.ClassNames) {
		return "?"
	}
	return r.ClassNames[i]
}

// Report is a Result stamped with its run identity.
type Report struct {
	ID     uuid.UUID
	At     time.Time
	Params TrainingParams
	Result
}
