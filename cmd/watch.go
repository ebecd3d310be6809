package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/jsphweid/clarinetlint/analysis"
	"github.com/jsphweid/clarinetlint/midi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchDelay time.Duration

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchDelay, "delay", 300*time.Millisecond, "wait this long after the last change")
}

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Re-annotates a MIDI file whenever it changes",
	Long:  `Re-annotates a MIDI file whenever it changes`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := analysisOptions(cfg, logger, "", nil)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return watch(ctx, args[0], watchDelay, opts, func(results []analysis.Result) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "== %s %s\n", args[0], time.Now().Format(time.Kitchen))
			if err := printReport(out, results); err != nil {
				logger.Warn("printing report", zap.Error(err))
			}
		})
	},
}

// watch analyzes path once, then again once a burst of writes has been
// quiet for delay, until ctx is done. The parent directory is watched since
// many editors replace files instead of writing them in place. Analysis and
// onResult only ever run on the calling goroutine.
func watch(ctx context.Context, path string, delay time.Duration, opts analysis.Options, onResult func([]analysis.Result)) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	log := opts.Log()
	run := func() {
		s, err := midi.ReadMidiFile(path)
		if err != nil {
			log.Warn("reading midi file", zap.String("path", path), zap.Error(err))
			return
		}
		results, err := analysis.AnalyzeParts(ctx, midi.Parts(s), opts)
		if err != nil {
			log.Warn("analyzing midi file", zap.String("path", path), zap.Error(err))
			return
		}
		onResult(results)
	}

	run()

	// the debounce timer only signals; the loop below does the work
	settled := make(chan struct{}, 1)
	debounced := debounce.New(delay)
	notify := func() {
		select {
		case settled <- struct{}{}:
		default:
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(evt.Name) != path {
				continue
			}
			if evt.Has(fsnotify.Write) || evt.Has(fsnotify.Create) || evt.Has(fsnotify.Rename) {
				log.Debug("file changed", zap.String("path", path), zap.String("op", evt.Op.String()))
				debounced(notify)
			}
		case <-settled:
			if ctx.Err() == nil {
				run()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))
		}
	}
}
