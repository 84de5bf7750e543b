package sink

import (
	"context"
	"fmt"
	"rice-lab/domain"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PlotSink draws predicted against actual class indices for every test row.
type PlotSink struct {
	path string
}

func NewPlotSink(path string) *PlotSink {
	return &PlotSink{path: path}
}

func (p *PlotSink) Consume(_ context.Context, report domain.Report) error {
	chart := plot.New()
	chart.Title.Text = fmt.Sprintf("Rice classifier, accuracy %.2f%%", report.Accuracy*100)
	chart.X.Label.Text = "Test row"
	chart.Y.Label.Text = "Class index"

	if err := plotutil.AddLinePoints(chart,
		"Predicted", points(report.Predictions),
		"Actual", points(report.Actuals),
	); err != nil {
		return fmt.Errorf("plot lines: %w", err)
	}
	if err := chart.Save(8*vg.Inch, 4*vg.Inch, p.path); err != nil {
		return fmt.Errorf("save plot %s: %w", p.path, err)
	}
	return nil
}

func points(values []float64) plotter.XYs {
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	return pts
}
