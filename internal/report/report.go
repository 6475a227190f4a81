package report

import (
	"fmt"
	"io"

	"github.com/drakos74/granulo/internal/math"
	"github.com/drakos74/granulo/internal/pipeline"
	"github.com/olekukonko/tablewriter"
)

// Write renders one table per data set with the prototype, sigma-count
// and quantifier degrees of every granule.
func Write(w io.Writer, results []pipeline.Result) error {
	for _, r := range results {
		if r.Skipped {
			if _, err := fmt.Fprintf(w, "%s: skipped\n\n", r.Set); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s (%s after %d iterations)\n", r.Set, r.Centroids.State, r.Centroids.Iterations); err != nil {
			return err
		}
		table(w, r).Render()
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func table(w io.Writer, r pipeline.Result) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(append([]string{"granule", "prototype", "cardinality"}, r.Quantifiers...))
	t.SetAlignment(tablewriter.ALIGN_RIGHT)
	for i, g := range r.Centroids.Labels {
		degrees := make([]float64, len(r.Quantifiers))
		for j, q := range r.Quantifiers {
			degrees[j] = r.Quantified[g][q]
		}
		row := []string{g, math.Format(r.Centroids.Prototypes[i]), math.Format(r.Cardinalities[g])}
		t.Append(append(row, math.FormatAll(degrees)...))
	}
	return t
}
