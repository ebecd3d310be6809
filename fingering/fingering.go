// Package fingering holds the static tables of pitches that need a little
// finger (pinky) key on the clarinet.
//
// Both hands have pinky keys for B, C and C# in the clarion register, so a
// run of those notes can alternate hands. E-flat (D#) only exists on the
// right side and is reachable only when the left pinky played the note
// before; that is the split pitch.
package fingering

import (
	"errors"
	"fmt"

	"github.com/jsphweid/clarinetlint/model"
	"github.com/jsphweid/clarinetlint/pitch"
	"github.com/jsphweid/clarinetlint/register"
	"github.com/jsphweid/clarinetlint/util"
)

var ErrUnknownVariant = errors.New("unknown fingering variant")

type Variant string

const (
	VariantBasic    Variant = "basic"
	VariantExtended Variant = "extended"
)

type pitchSet = map[model.Pitch]struct{}

type Table struct {
	Variant Variant
	right   pitchSet
	left    pitchSet
	split   pitchSet
}

var (
	basic    = newTable(VariantBasic, []string{"B4", "C5", "C#5", "D#5"}, []string{"B4", "C5", "C#5"}, []string{"E-5"})
	extended = withChalumeau(VariantExtended, basic)
)

func newTable(v Variant, right, left, split []string) *Table {
	return &Table{
		Variant: v,
		right:   toSet(right),
		left:    toSet(left),
		split:   toSet(split),
	}
}

// withChalumeau copies t and adds the chalumeau note a twelfth below every
// entry, since those share the clarion note's pinky key.
func withChalumeau(v Variant, t *Table) *Table {
	return &Table{
		Variant: v,
		right:   addChalumeau(t.right),
		left:    addChalumeau(t.left),
		split:   addChalumeau(t.split),
	}
}

func addChalumeau(set pitchSet) pitchSet {
	res := make(pitchSet, 2*len(set))
	for p := range set {
		res[p] = struct{}{}
		res[register.ToChalumeau(p)] = struct{}{}
	}
	return res
}

func toSet(names []string) pitchSet {
	res := make(pitchSet, len(names))
	for _, n := range names {
		res[pitch.MustParse(n)] = struct{}{}
	}
	return res
}

// Basic covers the clarion pinky keys only.
func Basic() *Table { return basic }

// Extended also lists the low E, F, F# and G# chalumeau pinky notes, for
// analysis of sequences that are not normalized to the clarion first.
func Extended() *Table { return extended }

func ByVariant(v Variant) (*Table, error) {
	switch v {
	case VariantBasic, "":
		return basic, nil
	case VariantExtended:
		return extended, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, v)
}

// RequiresLittleFinger reports membership in the right side set, which is
// the superset of everything a pinky plays.
func (t *Table) RequiresLittleFinger(p model.Pitch) bool {
	_, ok := t.right[p]
	return ok
}

func (t *Table) IsSplit(p model.Pitch) bool {
	_, ok := t.split[p]
	return ok
}

func (t *Table) RightHas(p model.Pitch) bool {
	_, ok := t.right[p]
	return ok
}

func (t *Table) LeftHas(p model.Pitch) bool {
	_, ok := t.left[p]
	return ok
}

func (t *Table) RightPitches() []model.Pitch { return util.SortedKeys(t.right) }
func (t *Table) LeftPitches() []model.Pitch  { return util.SortedKeys(t.left) }
func (t *Table) SplitPitches() []model.Pitch { return util.SortedKeys(t.split) }
