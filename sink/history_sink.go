package sink

import (
	"context"
	"log/slog"
	"rice-lab/domain"
	"rice-lab/repositories"
)

// HistorySink records every finished run in the report repository.
type HistorySink struct {
	repository repositories.IReportRepository
	log        *slog.Logger
}

func NewHistorySink(repository repositories.IReportRepository, log *slog.Logger) *HistorySink {
	return &HistorySink{repository: repository, log: log}
}

func (h *HistorySink) Consume(_ context.Context, report domain.Report) error {
	if err := h.repository.StoreReport(report); err != nil {
		return err
	}
	h.log.Debug("Run stored", "run", report.ID.String(), "accuracy", report.Accuracy)
	return nil
}
