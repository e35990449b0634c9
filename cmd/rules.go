package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/EvanDorsky/3dprint-gcode-speedup/internal/pipeline"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rules in the order they run",
	Run: func(cmd *cobra.Command, args []string) {
		printRules(os.Stdout, loadPipeline().Rules())
	},
}

func printRules(w io.Writer, rules []pipeline.Rule) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tMODE\tDESCRIPTION")
	for _, r := range rules {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, r.Mode, r.Description)
	}
	tw.Flush()
}
