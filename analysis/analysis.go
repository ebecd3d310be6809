package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jsphweid/clarinetlint/breaks"
	"github.com/jsphweid/clarinetlint/fingering"
	"github.com/jsphweid/clarinetlint/model"
	"github.com/jsphweid/clarinetlint/pinky"
	"github.com/jsphweid/clarinetlint/register"
	"github.com/jsphweid/clarinetlint/util"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	Table          *fingering.Table
	Normalize      bool
	BreakThreshold int
	Workers        int
	Logger         *zap.Logger
}

func DefaultOptions() Options {
	return Options{
		Table:          fingering.Basic(),
		Normalize:      true,
		BreakThreshold: breaks.DefaultThreshold,
		Workers:        4,
	}
}

func (o Options) Log() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Result is aligned with the analyzed part's events by position.
type Result struct {
	Part        string
	Events      []model.NoteEvent
	Annotations []model.Annotation
	BreakJumps  []bool
	Runs        []model.RunSummary
}

func (r Result) Infeasible() int {
	return util.Count(r.Annotations, func(a model.Annotation) bool {
		return a == model.Infeasible
	})
}

// Analyze annotates one part. The part's events are not modified.
func Analyze(part model.Part, opts Options) (Result, error) {
	events := part.Events
	if opts.Normalize {
		events = register.NormalizeAll(events)
	}

	pr, err := pinky.Annotate(opts.Table, events)
	if err != nil {
		return Result{}, errors.Wrapf(err, "part %q", part.Name)
	}

	log := opts.Log()
	for _, run := range pr.Runs {
		log.Debug("resolved run",
			zap.String("part", part.Name),
			zap.Int("start", run.Start),
			zap.Int("end", run.End),
			zap.String("lane", run.Lane),
			zap.Bool("feasible", run.Feasible))
	}

	return Result{
		Part:        part.Name,
		Events:      part.Events,
		Annotations: pr.Annotations,
		BreakJumps:  breaks.Label(part.Events, opts.BreakThreshold),
		Runs:        pr.Runs,
	}, nil
}

// AnalyzeParts analyzes independent parts concurrently. Results keep the
// order of parts. The first error cancels the remaining work.
func AnalyzeParts(ctx context.Context, parts []model.Part, opts Options) ([]Result, error) {
	res := make([]Result, len(parts))
	g, ctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}

	for i, part := range parts {
		i, part := i, part
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := Analyze(part, opts)
			if err != nil {
				return err
			}
			res[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

type Report struct {
	ID        string
	CreatedAt time.Time
	Variant   fingering.Variant
	Results   []Result
}

func NewReport(variant fingering.Variant, results []Result) Report {
	return Report{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Variant:   variant,
		Results:   results,
	}
}
