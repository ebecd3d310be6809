package cmd

import (
	"context"

	"github.com/jsphweid/clarinetlint/analysis"
	"github.com/jsphweid/clarinetlint/config"
	"github.com/jsphweid/clarinetlint/fingering"
	"github.com/jsphweid/clarinetlint/logging"
	"github.com/jsphweid/clarinetlint/model"
	"github.com/jsphweid/clarinetlint/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "clarinetlint",
	Short: "Flags clarinet passages that are hard to finger",
	Long: `clarinetlint reads note sequences and marks which little finger plays each
pinky key note, flagging runs that no consistent left/right alternation can
finger.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		cfg.ApplyEnv()
		if err := cfg.Validate(); err != nil {
			return err
		}
		logger, err = logging.New(cfg.Logging.Level)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "clarinetlint.yaml", "config file")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// analysisOptions builds options from c, with variant and normalize
// overriding the config when set.
func analysisOptions(c *config.Config, log *zap.Logger, variant string, normalize *bool) (analysis.Options, error) {
	if variant == "" {
		variant = c.Variant
	}
	table, err := fingering.ByVariant(fingering.Variant(variant))
	if err != nil {
		return analysis.Options{}, err
	}

	opts := analysis.Options{
		Table:          table,
		Normalize:      c.Normalize,
		BreakThreshold: c.BreakThreshold,
		Workers:        c.Workers,
		Logger:         log,
	}
	if normalize != nil {
		opts.Normalize = *normalize
	}
	return opts, nil
}

func newStore(c *config.Config) (store.Store, error) {
	if c.Store.Kind == "dynamodb" {
		return store.NewDynamo(c.Store.DynamoEndpoint, c.Store.Region, c.Store.Table)
	}
	return store.NewMemory(), nil
}

func annotateParts(ctx context.Context, parts []model.Part, opts analysis.Options) (analysis.Report, error) {
	results, err := analysis.AnalyzeParts(ctx, parts, opts)
	if err != nil {
		return analysis.Report{}, err
	}
	rep := analysis.NewReport(opts.Table.Variant, results)
	for _, r := range results {
		opts.Log().Info("annotated part",
			zap.String("report", rep.ID),
			zap.String("part", r.Part),
			zap.Int("notes", len(r.Events)),
			zap.Int("runs", len(r.Runs)),
			zap.Int("infeasible", r.Infeasible()))
	}
	return rep, nil
}
