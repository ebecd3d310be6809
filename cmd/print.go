package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/clarinetlint/analysis"
	"github.com/jsphweid/clarinetlint/render"
)

func printReport(w io.Writer, results []analysis.Result) error {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := render.Text(w, r); err != nil {
			return err
		}
	}
	return nil
}
