// Package pinky finds hand assignments for runs of notes that need the
// clarinet's little finger keys.
//
// A run is a maximal stretch of pinky notes with no rest and no repeated
// pitch. Two hypotheses are followed through each run: lane A starts with
// the left pinky, lane B with the right. When the run ends the resolver
// picks a lane and writes one annotation per note.
package pinky

import (
	"errors"
	"fmt"

	"github.com/jsphweid/clarinetlint/fingering"
	"github.com/jsphweid/clarinetlint/model"
)

var ErrInvalidPitch = errors.New("invalid pitch")

type Result struct {
	Annotations []model.Annotation
	Runs        []model.RunSummary
}

// Tracker consumes one note sequence. It is not safe for concurrent use;
// analyze independent parts with independent trackers.
type Tracker struct {
	table *fingering.Table
	a     lane
	b     lane
	prev  *model.NoteEvent
	pos   int
	res   Result
}

func NewTracker(t *fingering.Table) *Tracker {
	if t == nil {
		t = fingering.Basic()
	}
	return &Tracker{
		table: t,
		a:     lane{name: "A"},
		b:     lane{name: "B"},
	}
}

// Feed consumes the next event of the sequence.
func (tr *Tracker) Feed(e model.NoteEvent) error {
	i := tr.pos
	if !e.IsRest() && !e.Pitch.Valid() {
		return fmt.Errorf("%w %d at position %d", ErrInvalidPitch, e.Pitch, i)
	}
	tr.pos++
	tr.res.Annotations = append(tr.res.Annotations, model.Unlabeled)

	prev := tr.prev
	tr.prev = &e

	if tr.breaks(prev, e) {
		tr.endRun()
		return nil
	}

	if tr.a.empty() {
		tr.a.push(i, seed(tr.table, Left, e.Pitch))
		tr.b.push(i, seed(tr.table, Right, e.Pitch))
		return nil
	}

	tr.a.push(i, next(tr.table, tr.a.last(), e.Pitch))
	tr.b.push(i, next(tr.table, tr.b.last(), e.Pitch))
	return nil
}

// Finish resolves any open run and returns the annotations for everything
// fed so far.
func (tr *Tracker) Finish() Result {
	tr.endRun()
	return tr.res
}

func (tr *Tracker) breaks(prev *model.NoteEvent, e model.NoteEvent) bool {
	if e.IsRest() {
		return true
	}
	if prev != nil && !prev.IsRest() && prev.Pitch == e.Pitch {
		return true
	}
	return !tr.table.RequiresLittleFinger(e.Pitch)
}

func (tr *Tracker) endRun() {
	if summary, ok := resolve(&tr.a, &tr.b, tr.res.Annotations); ok {
		tr.res.Runs = append(tr.res.Runs, summary)
	}
	tr.a.reset()
	tr.b.reset()
}

// Annotate runs a fresh tracker over events. Annotations line up with
// events by position; events itself is never modified. A pitch event with
// an out of range pitch aborts the whole sequence.
func Annotate(t *fingering.Table, events []model.NoteEvent) (Result, error) {
	tr := NewTracker(t)
	for _, e := range events {
		if err := tr.Feed(e); err != nil {
			return Result{}, err
		}
	}
	return tr.Finish(), nil
}
