package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/EvanDorsky/3dprint-gcode-speedup/formatter"
	"github.com/EvanDorsky/3dprint-gcode-speedup/internal/fixer"
	"github.com/EvanDorsky/3dprint-gcode-speedup/speedup"
)

var (
	dryRun   bool
	showDiff bool
	outPath  string
)

var fixCmd = &cobra.Command{
	Use:   "fix [paths...]",
	Short: "Rewrite G-code files in place to skip redundant start steps",
	Long: `Rewrites each G-code file (or every .gcode/.gco/.g file below a directory):
  - the bed leveling nozzle temperature is raised to the print temperature
  - the wait for the bed leveling temperature is commented out
  - the later extruder temperature set is commented out
  - G29 bed probing is replaced by loading the saved mesh

A file missing any required line is left untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		fix := fixer.New(loadPipeline(), logger, dryRun)

		var reports []speedup.Report
		if outPath != "" {
			if len(args) != 1 {
				fmt.Println("error: --output needs exactly one input file")
				os.Exit(1)
			}
			result, err := fix.FixTo(args[0], outPath)
			reports = []speedup.Report{{Path: args[0], Result: result, Err: err}}
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			var err error
			reports, err = speedup.NewProcessor(fix, logger).ProcessPaths(ctx, args)
			if err != nil {
				logger.Error("Processing stopped", zap.Error(err))
				printReports(reports)
				os.Exit(1)
			}
		}

		printReports(reports)
		if len(speedup.Failed(reports)) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	fixCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the changes without writing files")
	fixCmd.Flags().BoolVar(&showDiff, "diff", false, "Show the changes that were written")
	fixCmd.Flags().StringVarP(&outPath, "output", "o", "", "Write the result here instead of in place (single file only)")
}

func printReports(reports []speedup.Report) {
	for _, r := range reports {
		if r.Err != nil {
			fmt.Print(formatter.FormatError(r.Path, r.Err))
			continue
		}
		if dryRun || showDiff {
			fmt.Print(formatter.FormatResult(r.Path, r.Result))
		}
	}
}
