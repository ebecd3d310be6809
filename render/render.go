// Package render prints annotated parts as plain text, one note per line:
//
//	0  B4    L
//	6  E-5   X
//	7  F5    -  ^
//
// The hand column is L or R, X for notes no consistent pinky pattern can
// reach, and - for notes outside any run. A caret marks break jumping.
package render

import (
	"fmt"
	"io"

	"github.com/jsphweid/clarinetlint/analysis"
	"github.com/jsphweid/clarinetlint/model"
	"github.com/jsphweid/clarinetlint/pitch"
)

func Text(w io.Writer, r analysis.Result) error {
	if _, err := fmt.Fprintf(w, "# %s\n", r.Part); err != nil {
		return err
	}
	for i, e := range r.Events {
		hand := r.Annotations[i].String()
		if hand == "" {
			hand = "-"
		}
		line := fmt.Sprintf("%3d  %-4s  %s", i, pitch.EventName(e), hand)
		if r.BreakJumps[i] {
			line += "  ^"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	for _, run := range r.Runs {
		status := "ok"
		if !run.Feasible {
			status = "infeasible"
		}
		if _, err := fmt.Fprintf(w, "run %d-%d lane %s %s\n", run.Start, run.End-1, run.Lane, status); err != nil {
			return err
		}
	}
	return nil
}

// Part converts a result into its JSON shape.
func Part(r analysis.Result) model.AnnotatedPart {
	notes := make([]model.AnnotatedNote, len(r.Events))
	for i, e := range r.Events {
		a := r.Annotations[i]
		n := model.AnnotatedNote{
			Index:     i,
			Name:      pitch.EventName(e),
			BreakJump: r.BreakJumps[i],
		}
		switch a {
		case model.HandLeft, model.HandRight:
			n.Hand = a.String()
		case model.Infeasible:
			n.Infeasible = true
		}
		notes[i] = n
	}
	runs := r.Runs
	if runs == nil {
		runs = []model.RunSummary{}
	}
	return model.AnnotatedPart{Name: r.Part, Notes: notes, Runs: runs}
}

func Response(rep analysis.Report) model.AnnotateResponse {
	parts := make([]model.AnnotatedPart, len(rep.Results))
	for i, r := range rep.Results {
		parts[i] = Part(r)
	}
	return model.AnnotateResponse{
		ID:        rep.ID,
		CreatedAt: rep.CreatedAt,
		Variant:   string(rep.Variant),
		Parts:     parts,
	}
}
