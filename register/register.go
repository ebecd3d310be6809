package register

import (
	"github.com/jsphweid/clarinetlint/model"
	"github.com/jsphweid/clarinetlint/pitch"
)

type Register uint8

const (
	Chalumeau Register = iota
	Throat
	Clarion
	Altissimo
)

func (r Register) String() string {
	switch r {
	case Chalumeau:
		return "chalumeau"
	case Throat:
		return "throat"
	case Clarion:
		return "clarion"
	case Altissimo:
		return "altissimo"
	}
	return "unknown"
}

// Upper bounds (inclusive) of the lower three registers.
var (
	ChalumeauTop = pitch.MustParse("E4")
	ThroatTop    = pitch.MustParse("A#4")
	ClarionTop   = pitch.MustParse("C6")
)

// ClarionOffset is the distance between a chalumeau note and the clarion
// note played with the same fingering plus the register key (a twelfth).
const ClarionOffset = 19

func Of(p model.Pitch) Register {
	switch {
	case p <= ChalumeauTop:
		return Chalumeau
	case p <= ThroatTop:
		return Throat
	case p <= ClarionTop:
		return Clarion
	default:
		return Altissimo
	}
}

// ToClarion returns the clarion pitch sharing p's fingering. Pitches outside
// the chalumeau, and those so low that a twelfth up is still chalumeau, come
// back unchanged.
func ToClarion(p model.Pitch) model.Pitch {
	if Of(p) != Chalumeau {
		return p
	}
	up := p + ClarionOffset
	if Of(up) == Chalumeau {
		return p
	}
	return up
}

// ToChalumeau is the inverse of ToClarion.
func ToChalumeau(p model.Pitch) model.Pitch {
	if Of(p) == Chalumeau {
		return p
	}
	down := p - ClarionOffset
	if down < model.MinPitch || Of(down) != Chalumeau {
		return p
	}
	return down
}

// NormalizeToClarion replaces a chalumeau note with a new event at its
// clarion equivalent. Rests and other registers are returned as is.
func NormalizeToClarion(e model.NoteEvent) model.NoteEvent {
	if e.IsRest() {
		return e
	}
	up := ToClarion(e.Pitch)
	if up == e.Pitch {
		return e
	}
	return model.Note(up)
}

// NormalizeAll returns a new slice; events is left untouched.
func NormalizeAll(events []model.NoteEvent) []model.NoteEvent {
	res := make([]model.NoteEvent, len(events))
	for i, e := range events {
		res[i] = NormalizeToClarion(e)
	}
	return res
}
