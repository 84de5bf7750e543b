//go:generate go run go.uber.org/mock/mockgen -source=report.go -destination=../mocks/mock_report_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"rice-lab/domain"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const reportPrefix = "run:"

type IReportRepository interface {
	StoreReport(report domain.Report) error
	GetReports(limit *int) ([]domain.Report, error)
}

// ReportRepository keeps the outcome of past training runs.
// Only evaluation results are stored, trained weights are never persisted.
type ReportRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewReportRepository(db *badger.DB, log *slog.Logger) ReportRepository {
	return ReportRepository{db: db, log: log}
}

// StoreReport persists a report under "run:{timestamp_padded}:{uuid}".
// The 19-digit padding keeps keys in chronological order, the uuid separates
// runs finishing at the same nanosecond.
func (r ReportRepository) StoreReport(report domain.Report) error {
	key := reportKey(report)
	value, err := fromReport(report)
	if err != nil {
		return err
	}
	bytes, err := proto.Marshal(value)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// GetReports returns stored runs, newest first, stopping at limit when set.
func (r ReportRepository) GetReports(limit *int) ([]domain.Report, error) {
	var reports []domain.Report
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte(reportPrefix)
		seekKey := append([]byte(reportPrefix), []byte("9999999999999999999")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if limit != nil && len(reports) == *limit {
				r.log.Debug(fmt.Sprintf("Maximum of %d reports reached", *limit))
				break
			}
			err := it.Item().Value(func(value []byte) error {
				var s structpb.Struct
				if err := proto.Unmarshal(value, &s); err != nil {
					return err
				}
				report, err := toReport(&s)
				if err != nil {
					return err
				}
				reports = append(reports, report)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func reportKey(report domain.Report) string {
	return fmt.Sprintf("%s%019d:%s", reportPrefix, report.At.UnixNano(), report.ID)
}

func fromReport(report domain.Report) (*structpb.Struct, error) {
	var seed any
	if report.Params.Seed != nil {
		seed = strconv.FormatInt(*report.Params.Seed, 10)
	}
	return structpb.NewStruct(map[string]any{
		"id":            report.ID.String(),
		"at":            report.At.Format(time.RFC3339Nano),
		"learning_rate": report.Params.LearningRate,
		"epochs":        report.Params.Epochs,
		"train_ratio":   report.Params.TrainRatio,
		"seed":          seed,
		"shuffle":       report.Params.Shuffle,
		"predictions":   lo.ToAnySlice(report.Predictions),
		"actuals":       lo.ToAnySlice(report.Actuals),
		"mse":           report.MSE,
		"accuracy":      report.Accuracy,
		"class_names":   lo.ToAnySlice(report.ClassNames),
		"train_rows":    report.TrainRows,
		"test_rows":     report.TestRows,
	})
}

func toReport(s *structpb.Struct) (domain.Report, error) {
	f := s.GetFields()
	id, err := uuid.Parse(f["id"].GetStringValue())
	if err != nil {
		return domain.Report{}, err
	}
	at, err := time.Parse(time.RFC3339Nano, f["at"].GetStringValue())
	if err != nil {
		return domain.Report{}, err
	}
	var seed *int64
	if raw := f["seed"].GetStringValue(); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return domain.Report{}, err
		}
		seed = &v
	}
	numbers := func(name string) []float64 {
		return lo.Map(f[name].GetListValue().GetValues(), func(v *structpb.Value, _ int) float64 {
			return v.GetNumberValue()
		})
	}
	return domain.Report{
		ID: id,
		At: at,
		Params: domain.TrainingParams{
			LearningRate: f["learning_rate"].GetNumberValue(),
			Epochs:       int(f["epochs"].GetNumberValue()),
			TrainRatio:   f["train_ratio"].GetNumberValue(),
			Seed:         seed,
			Shuffle:      f["shuffle"].GetBoolValue(),
		},
		Result: domain.Result{
			Predictions: numbers("predictions"),
			Actuals:     numbers("actuals"),
			MSE:         f["mse"].GetNumberValue(),
			Accuracy:    f["accuracy"].GetNumberValue(),
			ClassNames: lo.Map(f["class_names"].GetListValue().GetValues(), func(v *structpb.Value, _ int) string {
				return v.GetStringValue()
			}),
			TrainRows: int(f["train_rows"].GetNumberValue()),
			TestRows:  int(f["test_rows"].GetNumberValue()),
		},
	}, nil
}
