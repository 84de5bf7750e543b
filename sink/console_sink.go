package sink

import (
	"context"
	"fmt"
	"io"
	"rice-lab/domain"
	"strconv"

	"github.com/gookit/color"
)

// ConsoleSink prints the per row classification table followed by the run summary.
type ConsoleSink struct {
	out    io.Writer
	colour bool
}

func NewConsoleSink(out io.Writer, colour bool) *ConsoleSink {
	return &ConsoleSink{out: out, colour: colour}
}

func (c *ConsoleSink) Consume(_ context.Context, report domain.Report) error {
	fmt.Fprintf(c.out, "\nClassification Results (run %s):\n", report.ID)

	table := NewPlainTable(c.out, "Index", "Predicted", "Actual", "Correct")

	for i := range report.Predictions {
		predicted, actual := report.Predictions[i], report.Actuals[i]
		table.Append([]string{
			strconv.Itoa(i),
			report.ClassName(predicted),
			report.ClassName(actual),
			c.mark(predicted == actual),
		})
	}
	table.Render()

	fmt.Fprintln(c.out, "\nModel Performance:")
	fmt.Fprintf(c.out, "Accuracy: %.2f%%\n", report.Accuracy*100)
	fmt.Fprintf(c.out, "Correct predictions: %d/%d\n", report.Correct(), len(report.Predictions))
	fmt.Fprintf(c.out, "Mean Squared Error: %.4f\n", report.MSE)

	fmt.Fprintln(c.out, "\nClass Mapping:")
	for i, name := range report.ClassNames {
		fmt.Fprintf(c.out, "Class %d: %s\n", i, name)
	}
	return nil
}

func (c *ConsoleSink) mark(correct bool) string {
	switch {
	case !c.colour && correct:
		return "✓"
	case !c.colour:
		return "✗"
	case correct:
		return color.New(color.FgGreen).Render("✓")
	default:
		return color.New(color.FgRed).Render("✗")
	}
}
