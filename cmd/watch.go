package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/EvanDorsky/3dprint-gcode-speedup/formatter"
	"github.com/EvanDorsky/3dprint-gcode-speedup/internal/fixer"
	"github.com/EvanDorsky/3dprint-gcode-speedup/speedup"
)

var debounce = speedup.DefaultDebounce

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Fix G-code files as they are exported into a directory",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		w, err := speedup.NewWatcher(fixer.New(loadPipeline(), logger, false), logger, debounce)
		if err != nil {
			logger.Fatal("Failed to create watcher", zap.Error(err))
		}
		w.OnReport = func(r speedup.Report) {
			if r.Err != nil {
				fmt.Print(formatter.FormatError(r.Path, r.Err))
				return
			}
			fmt.Print(formatter.FormatResult(r.Path, r.Result))
		}
		if err := w.Add(dir); err != nil {
			logger.Fatal("Failed to watch directory", zap.String("dir", dir), zap.Error(err))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		logger.Info("watching", zap.String("dir", dir))
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Watcher stopped", zap.Error(err))
			os.Exit(1)
		}
	},
}

func init() {
	watchCmd.Flags().DurationVar(&debounce, "debounce", speedup.DefaultDebounce, "Quiet period before a written file is fixed")
}
