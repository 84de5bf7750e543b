package services

import (
	"context"
	goerrors "errors"
	"log/slog"
	"rice-lab/domain"
	"rice-lab/errors"
	"rice-lab/mocks"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func records() []domain.Record {
	var out []domain.Record
	for i := 0; i < 5; i++ {
		d := float64(i) / 100
		out = append(out,
			domain.Record{Solidity: 0.10 + d, AspectRatio: 0.12, Roundness: 0.11 + d, Compactness: 0.10, Class: "Arborio"},
			domain.Record{Solidity: 0.90 - d, AspectRatio: 0.88, Roundness: 0.86 + d, Compactness: 0.91, Class: "Basmati"},
		)
	}
	return out
}

func TestTrainerService_Run_NotifiesSinks(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	first := mocks.NewMockReportSink(ctrl)
	second := mocks.NewMockReportSink(ctrl)
	service := NewTrainerService(log, first, second)

	var seen []domain.Report
	record := func(_ context.Context, r domain.Report) error {
		seen = append(seen, r)
		return nil
	}
	gomock.InOrder(
		first.EXPECT().Consume(gomock.Any(), gomock.Any()).DoAndReturn(record).Times(1),
		second.EXPECT().Consume(gomock.Any(), gomock.Any()).DoAndReturn(record).Times(1),
	)

	seed := int64(8)
	report, err := service.Run(ctx, TrainingRequest{
		Records: records(),
		Params:  domain.TrainingParams{LearningRate: 0.1, Epochs: 500, Seed: &seed},
	})
	req.NoError(err)
	req.Len(seen, 2)
	req.Equal(report, seen[0])
	req.Equal(report, seen[1])
	req.Equal(domain.DefaultTrainRatio, report.Params.TrainRatio)
	req.Equal(1.0, report.Accuracy)
	req.Equal([]string{"Arborio", "Basmati"}, report.ClassNames)
	req.False(report.At.IsZero())
}

func TestTrainerService_Run_FreshNetworkEachRun(t *testing.T) {
	req := require.New(t)
	service := NewTrainerService(slog.Default())
	seed := int64(21)
	request := TrainingRequest{
		Records: records(),
		Params:  domain.TrainingParams{LearningRate: 0.1, Epochs: 50, Seed: &seed},
	}

	first, err := service.Run(context.Background(), request)
	req.NoError(err)
	second, err := service.Run(context.Background(), request)
	req.NoError(err)

	req.NotEqual(first.ID, second.ID)
	req.Equal(first.Result, second.Result)
}

func TestTrainerService_Run_AppendsSamples(t *testing.T) {
	req := require.New(t)
	service := NewTrainerService(slog.Default())
	seed := int64(4)

	report, err := service.Run(context.Background(), TrainingRequest{
		Records: records(),
		Samples: []domain.Record{
			{Solidity: 0.5, AspectRatio: 0.5, Roundness: 0.5, Compactness: 0.5, Class: "Jasmine"},
			{Solidity: 0.12, AspectRatio: 0.12, Roundness: 0.12, Compactness: 0.12, Class: "Arborio"},
		},
		Params: domain.TrainingParams{LearningRate: 0.1, Epochs: 10, Seed: &seed},
	})
	req.NoError(err)
	req.Equal([]string{"Arborio", "Basmati", "Jasmine"}, report.ClassNames)
	req.Equal(10, report.TrainRows)
	req.Equal(2, report.TestRows)
	req.Equal([]float64{2, 0}, report.Actuals)
}

func TestTrainerService_Run_Failures(t *testing.T) {
	tests := []struct {
		description string
		request     TrainingRequest
		wantErr     error
	}{
		{
			"Should reject a zero learning rate",
			TrainingRequest{Records: records(), Params: domain.TrainingParams{Epochs: 10}},
			errors.ErrInvalidParams,
		},
		{
			"Should reject negative epochs",
			TrainingRequest{Records: records(), Params: domain.TrainingParams{LearningRate: 0.1, Epochs: -1}},
			errors.ErrInvalidParams,
		},
		{
			"Should reject an empty dataset",
			TrainingRequest{Params: domain.TrainingParams{LearningRate: 0.1, Epochs: 10}},
			errors.ErrData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req := require.New(t)
			ctrl := gomock.NewController(t)
			sink := mocks.NewMockReportSink(ctrl)
			sink.EXPECT().Consume(gomock.Any(), gomock.Any()).Times(0)

			_, err := NewTrainerService(slog.Default(), sink).Run(context.Background(), tt.request)
			req.ErrorIs(err, tt.wantErr)
		})
	}
}

func TestTrainerService_Run_SinkFailureKeepsReport(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	broken := mocks.NewMockReportSink(ctrl)
	healthy := mocks.NewMockReportSink(ctrl)
	boom := goerrors.New("disk full")
	broken.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(boom).Times(1)
	healthy.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	report, err := NewTrainerService(slog.Default(), broken, healthy).Run(context.Background(), TrainingRequest{
		Records: records(),
		Params:  domain.TrainingParams{LearningRate: 0.1, Epochs: 5},
	})
	req.ErrorIs(err, boom)
	req.Equal(2, report.TestRows)
}
