package model

type Annotation uint8

const (
	Unlabeled Annotation = iota
	HandLeft
	HandRight
	Infeasible
)

func (a Annotation) String() string {
	switch a {
	case Unlabeled:
		return ""
	case HandLeft:
		return "L"
	case HandRight:
		return "R"
	case Infeasible:
		return "X"
	}
	return "?"
}

// RunSummary describes one resolved little finger run. Start and End are
// positions in the analyzed sequence, End exclusive.
type RunSummary struct {
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Lane     string `json:"lane"`
	Feasible bool   `json:"feasible"`
}
