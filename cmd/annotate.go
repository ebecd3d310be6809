package cmd

import (
	"errors"
	"fmt"

	"github.com/jsphweid/clarinetlint/midi"
	"github.com/jsphweid/clarinetlint/model"
	"github.com/jsphweid/clarinetlint/pitch"
	"github.com/jsphweid/clarinetlint/render"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	annotateMidi        string
	annotateTrack       int
	annotateVariant     string
	annotateNoNormalize bool
	annotateSave        bool
)

func init() {
	rootCmd.AddCommand(annotateCmd)
	annotateCmd.Flags().StringVar(&annotateMidi, "midi", "", "read notes from a MIDI file instead of args")
	annotateCmd.Flags().IntVar(&annotateTrack, "track", -1, "only annotate this part of the MIDI file")
	annotateCmd.Flags().StringVar(&annotateVariant, "variant", "", "fingering table: basic or extended")
	annotateCmd.Flags().BoolVar(&annotateNoNormalize, "no-normalize", false, "compare chalumeau notes as written")
	annotateCmd.Flags().BoolVar(&annotateSave, "save", false, "store the report")
}

var annotateCmd = &cobra.Command{
	Use:   "annotate [NOTE...]",
	Short: "Annotates notes with little finger hands",
	Long: `Annotates notes with little finger hands.

Notes are names like B4, C#5 or E-5, with R for a rest:

  clarinetlint annotate B4 C#5 C5 E-5
  clarinetlint annotate --midi piece.mid --track 0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		parts, err := loadParts(args)
		if err != nil {
			return err
		}
		return annotate(cmd, parts)
	},
}

func loadParts(args []string) ([]model.Part, error) {
	if annotateMidi == "" {
		if len(args) == 0 {
			return nil, errors.New("need notes or --midi")
		}
		events, err := pitch.ParseEvents(args)
		if err != nil {
			return nil, err
		}
		return []model.Part{{Name: "notes", Events: events}}, nil
	}

	s, err := midi.ReadMidiFile(annotateMidi)
	if err != nil {
		return nil, err
	}
	parts := midi.Parts(s)
	if annotateTrack < 0 {
		return parts, nil
	}
	if annotateTrack >= len(parts) {
		return nil, fmt.Errorf("%s has %d parts, no part %d", annotateMidi, len(parts), annotateTrack)
	}
	return parts[annotateTrack : annotateTrack+1], nil
}

// ErrNoPersistentStore is returned for --save when reports would only live
// in the memory of this process.
var ErrNoPersistentStore = errors.New("--save needs a persistent store, set store.kind to dynamodb")

func annotate(cmd *cobra.Command, parts []model.Part) error {
	if annotateSave && cfg.Store.Kind == "memory" {
		return ErrNoPersistentStore
	}

	var normalize *bool
	if annotateNoNormalize {
		f := false
		normalize = &f
	}
	opts, err := analysisOptions(cfg, logger, annotateVariant, normalize)
	if err != nil {
		return err
	}

	rep, err := annotateParts(cmd.Context(), parts, opts)
	if err != nil {
		return err
	}

	if err := printReport(cmd.OutOrStdout(), rep.Results); err != nil {
		return err
	}

	if annotateSave {
		st, err := newStore(cfg)
		if err != nil {
			return err
		}
		if err := st.Put(cmd.Context(), render.Response(rep)); err != nil {
			return err
		}
		logger.Info("saved report", zap.String("id", rep.ID))
		fmt.Fprintf(cmd.OutOrStdout(), "report %s\n", rep.ID)
	}
	return nil
}
