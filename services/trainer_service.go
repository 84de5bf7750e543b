package services

import (
	"context"
	goerrors "errors"
	"fmt"
	"log/slog"
	"rice-lab/ai"
	"rice-lab/contract"
	"rice-lab/domain"
	"time"

	"github.com/google/uuid"
)

type ITrainerService interface {
	Run(ctx context.Context, request TrainingRequest) (domain.Report, error)
}

// TrainingRequest carries one "train and evaluate" invocation.
// Samples are manually entered rows appended after Records before vectorization.
type TrainingRequest struct {
	Records []domain.Record
	Samples []domain.Record
	Params  domain.TrainingParams
}

type TrainerService struct {
	log   *slog.Logger
	sinks []contract.ReportSink
	now   func() time.Time
}

func NewTrainerService(log *slog.Logger, sinks ...contract.ReportSink) *TrainerService {
	return &TrainerService{
		log:   log,
		sinks: sinks,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Run trains a fresh network on the request and notifies every sink with the report.
// Sink failures do not discard the report, they are joined into the returned error.
func (s *TrainerService) Run(ctx context.Context, request TrainingRequest) (domain.Report, error) {
	params := request.Params
	if params.TrainRatio == 0 {
		params.TrainRatio = domain.DefaultTrainRatio
	}
	if err := domain.ValidateParams(params); err != nil {
		return domain.Report{}, err
	}

	records := make([]domain.Record, 0, len(request.Records)+len(request.Samples))
	records = append(records, request.Records...)
	records = append(records, request.Samples...)

	runID := uuid.New()
	log := s.log.With("run", runID.String())
	log.Info("Training started",
		"rows", len(records),
		"samples", len(request.Samples),
		"learning_rate", params.LearningRate,
		"epochs", params.Epochs,
		"shuffle", params.Shuffle,
	)

	start := time.Now()
	result, err := ai.TrainAndEvaluate(records, params)
	if err != nil {
		log.Error("Training aborted", "error", err)
		return domain.Report{}, fmt.Errorf("training run %s: %w", runID, err)
	}
	log.Info("Training done",
		"duration", time.Since(start),
		"train_rows", result.TrainRows,
		"test_rows", result.TestRows,
		"accuracy", result.Accuracy,
		"mse", result.MSE,
	)

	report := domain.Report{
		ID:     runID,
		At:     s.now(),
		Params: params,
		Result: result,
	}

	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Consume(ctx, report); err != nil {
			log.Warn("Sink failed", "sink", contract.GetSinkName(sink), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", contract.GetSinkName(sink), err))
		}
	}
	return report, goerrors.Join(errs...)
}
