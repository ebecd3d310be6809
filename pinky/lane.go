package pinky

import (
	"fmt"

	"github.com/jsphweid/clarinetlint/fingering"
	"github.com/jsphweid/clarinetlint/model"
)

// Hand is the little finger a lane has pressed for its latest note, or
// Failed once the lane's hypothesis can no longer hold.
type Hand uint8

const (
	Left Hand = iota
	Right
	Failed
)

func (h Hand) String() string {
	switch h {
	case Left:
		return "left"
	case Right:
		return "right"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Hand(%d)", uint8(h))
}

func (h Hand) annotation() model.Annotation {
	switch h {
	case Left:
		return model.HandLeft
	case Right:
		return model.HandRight
	case Failed:
		return model.Infeasible
	}
	panic("unknown hand " + h.String())
}

type step struct {
	index int
	hand  Hand
}

// lane is one hand assignment hypothesis for the current run.
type lane struct {
	name    string
	history []step
}

func (l *lane) empty() bool {
	return len(l.history) == 0
}

func (l *lane) last() Hand {
	return l.history[len(l.history)-1].hand
}

func (l *lane) push(index int, h Hand) {
	l.history = append(l.history, step{index: index, hand: h})
}

// feasible is the length of the prefix recorded before the lane failed.
func (l *lane) feasible() int {
	for i, s := range l.history {
		if s.hand == Failed {
			return i
		}
	}
	return len(l.history)
}

func (l *lane) reset() {
	l.history = nil
}

// seed returns the state of a lane that wants to start on hand for p.
func seed(t *fingering.Table, want Hand, p model.Pitch) Hand {
	switch want {
	case Left:
		if t.IsSplit(p) || !t.LeftHas(p) {
			return Failed
		}
		return Left
	case Right:
		if !t.RightHas(p) {
			return Failed
		}
		return Right
	case Failed:
		return Failed
	}
	panic("unknown hand " + want.String())
}

// next advances a lane from state cur onto p. The split pitch can only be
// played by the right pinky after the left one; every other pitch flips
// hands.
func next(t *fingering.Table, cur Hand, p model.Pitch) Hand {
	switch cur {
	case Failed:
		return Failed
	case Left:
		if t.RightHas(p) {
			return Right
		}
		return Failed
	case Right:
		if t.IsSplit(p) || !t.LeftHas(p) {
			return Failed
		}
		return Left
	}
	panic("unknown hand " + cur.String())
}
