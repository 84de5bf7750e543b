//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"rice-lab/domain"
)

// ReportSink observes finished training runs.
// Sinks are called one after the other once a run completed, never during training.
type ReportSink interface {
	Consume(ctx context.Context, report domain.Report) error
}

// GetSinkName uses reflection to retrieve the type name of the sink for logging.
func GetSinkName(s ReportSink) string {
	if s == nil {
		return "NilSink"
	}
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
