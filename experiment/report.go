package experiment

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteTable writes reports as an aligned text table.
func WriteTable(w io.Writer, reports []Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Trial\tIterations\tFinal value\t|grad|\tObjective evals\tGrad evals\tStatus\n"); err != nil {
		return fmt.Errorf("write table header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "-----\t----------\t-----------\t------\t---------------\t----------\t------\n"); err != nil {
		return fmt.Errorf("write table header: %w", err)
	}

	for _, r := range reports {
		status := "ok"
		if r.Err != nil {
			status = r.Err.Error()
		}
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%.6e\t%.3e\t%d\t%d\t%s\n",
			r.Trial,
			r.Iterations,
			r.FinalValue,
			r.GradNorm,
			r.Objective,
			r.Grad,
			status,
		); err != nil {
			return fmt.Errorf("write table row: %w", err)
		}
	}
	return tw.Flush()
}
