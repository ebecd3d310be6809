package pinky

import "github.com/jsphweid/clarinetlint/model"

// resolve writes the labels of the winning lane into out. A lane that
// reaches the end of the run without failing wins, lane A first. If both
// failed, the lane with the longer playable prefix wins (lane A on a tie)
// and its failed notes are marked infeasible.
func resolve(a, b *lane, out []model.Annotation) (model.RunSummary, bool) {
	if a.empty() && b.empty() {
		return model.RunSummary{}, false
	}

	var winner *lane
	feasible := true
	switch {
	case !a.empty() && a.last() != Failed:
		winner = a
	case !b.empty() && b.last() != Failed:
		winner = b
	default:
		feasible = false
		winner = a
		if a.empty() || b.feasible() > a.feasible() {
			winner = b
		}
	}

	for _, s := range winner.history {
		out[s.index] = s.hand.annotation()
	}

	return model.RunSummary{
		Start:    winner.history[0].index,
		End:      winner.history[len(winner.history)-1].index + 1,
		Lane:     winner.name,
		Feasible: feasible,
	}, true
}
