// Package breaks flags passages that keep crossing between registers, the
// "break jumping" that makes fast clarinet passages awkward.
package breaks

import (
	"github.com/jsphweid/clarinetlint/model"
	"github.com/jsphweid/clarinetlint/register"
)

const DefaultThreshold = 4

// Label returns one flag per event. A stretch of consecutive notes in which
// each note sits in a different register from the one before is flagged
// when it is longer than threshold. Rests do not interrupt a stretch and are
// never flagged.
func Label(events []model.NoteEvent, threshold int) []bool {
	flags := make([]bool, len(events))
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	var stretch []int
	var last register.Register
	flush := func() {
		if len(stretch) > threshold {
			for _, i := range stretch {
				flags[i] = true
			}
		}
		stretch = stretch[:0]
	}

	for i, e := range events {
		if e.IsRest() {
			continue
		}
		cur := register.Of(e.Pitch)
		if len(stretch) > 0 && cur == last {
			flush()
		}
		stretch = append(stretch, i)
		last = cur
	}
	flush()

	return flags
}
