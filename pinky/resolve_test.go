package pinky

import (
	"testing"

	"github.com/jsphweid/clarinetlint/model"
	"github.com/stretchr/testify/assert"
)

func laneOf(name string, hands ...Hand) lane {
	l := lane{name: name}
	for i, h := range hands {
		l.push(i, h)
	}
	return l
}

func TestResolveEmptyLanesIsNoop(t *testing.T) {
	var a, b lane
	out := []model.Annotation{U}
	_, ok := resolve(&a, &b, out)
	assert.False(t, ok)
	assert.Equal(t, []model.Annotation{U}, out)
}

func TestResolveTieGoesToLaneA(t *testing.T) {
	a := laneOf("A", Left, Right, Failed, Failed)
	b := laneOf("B", Right, Left, Failed, Failed)
	out := make([]model.Annotation, 4)

	summary, ok := resolve(&a, &b, out)

	assert := assert.New(t)
	assert.True(ok)
	assert.Equal([]model.Annotation{L, R, X, X}, out)
	assert.Equal(model.RunSummary{Start: 0, End: 4, Lane: "A", Feasible: false}, summary)
}

func TestResolveSurvivorBeatsLongerFailure(t *testing.T) {
	a := laneOf("A", Left, Right, Left, Failed)
	b := laneOf("B", Right, Left, Right, Right)
	out := make([]model.Annotation, 4)

	summary, _ := resolve(&a, &b, out)
	assert.Equal(t, []model.Annotation{R, L, R, R}, out)
	assert.True(t, summary.Feasible)
}

func TestHandTransitionsAreTotal(t *testing.T) {
	for _, h := range []Hand{Left, Right, Failed} {
		assert.NotPanics(t, func() { _ = h.annotation() })
	}
	assert.Panics(t, func() { _ = Hand(9).annotation() })
}

func TestResolveBothFailedPrefersLongerPrefix(t *testing.T) {
	// equal histories, B plays further before failing
	a := laneOf("A", Left, Failed, Failed, Failed)
	b := laneOf("B", Right, Left, Right, Failed)
	out := make([]model.Annotation, 4)

	summary, ok := resolve(&a, &b, out)

	assert := assert.New(t)
	assert.True(ok)
	assert.Equal([]model.Annotation{R, L, R, X}, out)
	assert.Equal(model.RunSummary{Start: 0, End: 4, Lane: "B", Feasible: false}, summary)
}
